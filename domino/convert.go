// MODUL: convert
// ZWECK: Gesamte Umwandlung Bild -> Domino-Mosaik inklusive JPEG-Kodierung
// INPUT: Rohe Bild-Bytes, Brettgroesse
// OUTPUT: Result mit JPEG-Bytes, Textkarte und Zaehlern
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: image/jpeg, logutil
// HINWEISE: Deterministisch und ohne geteilten Zustand, parallel aufrufbar

package domino

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/dominomaker/dominomaker/logutil"
)

// Quality ist die feste JPEG-Qualitaet des Ergebnisbilds
const Quality = jpeg.DefaultQuality

// Result ist das unveraenderliche Ergebnis einer Umwandlung
type Result struct {
	// Image enthaelt das kodierte Graustufen-JPEG
	Image []byte

	// Map enthaelt pro Reihe die Laeufe in der Form "3b", "2w"
	Map [][]string

	WhiteCount uint32
	BlackCount uint32
}

// Convert wandelt data in ein Domino-Mosaik mit size Spalten und Reihen um
func Convert(data []byte, size BoardSize) (*Result, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	img, err := Normalize(data, size)
	if err != nil {
		return nil, err
	}

	board, white, black := Render(img, size)

	encoded, err := encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	logutil.Trace("converted image", "board", size, "bounds", img.Bounds().Size(), "white", white, "black", black, "bytes", len(encoded))

	return &Result{
		Image:      encoded,
		Map:        board.Strings(),
		WhiteCount: white,
		BlackCount: black,
	}, nil
}

// encodeJPEG kodiert das gemalte Bild als einkanaliges JPEG
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailure, err)
	}
	return buf.Bytes(), nil
}
