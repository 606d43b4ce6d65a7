// MODUL: normalize
// ZWECK: Dekodieren, exakte Groessenanpassung und Binarisierung des Eingabebilds
// INPUT: Rohe Bild-Bytes, Brettgroesse (Spalten, Reihen)
// OUTPUT: *image.Gray mit exakter Zielgroesse, nur Werte 0 und 255
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: golang.org/x/image/draw (extern)
// HINWEISE: Nearest-Neighbor, damit harte Kanten fuer den Schwellwert erhalten bleiben
//           Luminanz nach Rec. 709 aus RGB, Alpha wird nicht beruecksichtigt

package domino

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Zellgeometrie und Schwellwert sind feste Konstanten
const (
	CellWidth  = 8
	CellHeight = 24

	// Threshold trennt schwarz (< Threshold) von weiss
	Threshold = 128

	// maxDimension ist die groesste Seitenlaenge, die JPEG kodieren kann
	maxDimension = 65535

	// MaxSourcePixels begrenzt die Pixelzahl des Eingabebilds vor dem Dekodieren
	MaxSourcePixels = 1 << 26
)

// Groesste Brettgroesse, deren Zielbild noch kodierbar ist
const (
	MaxColumns = (maxDimension/CellWidth + 1) / 2
	MaxRows    = (maxDimension/CellWidth + 1) / 4
)

// BoardSize ist die Brettgroesse in Domino-Zellen
type BoardSize struct {
	Columns uint32
	Rows    uint32
}

// Validate prueft die Brettgroesse bevor mit ihr gerechnet wird
func (s BoardSize) Validate() error {
	if s.Columns == 0 || s.Rows == 0 {
		return fmt.Errorf("%w: %dx%d, columns and rows must be at least 1", ErrInvalidBoardSize, s.Columns, s.Rows)
	}
	if s.Columns > MaxColumns || s.Rows > MaxRows {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrInvalidBoardSize, s.Columns, s.Rows, MaxColumns, MaxRows)
	}
	return nil
}

// TargetSize gibt die Pixelgroesse des Zielbilds zurueck.
// Setzt eine gueltige Brettgroesse voraus.
func (s BoardSize) TargetSize() (width, height int) {
	width = CellWidth * (2*int(s.Columns) - 1)
	height = CellWidth * (4*int(s.Rows) - 1)
	return width, height
}

// Cells gibt die Anzahl der Domino-Zellen zurueck
func (s BoardSize) Cells() uint32 {
	return s.Columns * s.Rows
}

func (s BoardSize) String() string {
	return fmt.Sprintf("%dx%d", s.Columns, s.Rows)
}

// Normalize dekodiert data und liefert ein binarisiertes Graustufenbild
// in der exakten Zielgroesse fuer size
func Normalize(data []byte, size BoardSize) (*image.Gray, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}

	format := DetectFormat(data)
	if format == FormatUnknown {
		return nil, fmt.Errorf("%w: could not determine image format", ErrInvalidInput)
	}

	// Header zuerst, damit ein kleines Bild mit riesigen Abmessungen nicht dekodiert wird
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, format.MimeType(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxSourcePixels {
		return nil, fmt.Errorf("%w: %s: source size %dx%d exceeds %d pixels", ErrUnsupportedFormat, format.MimeType(), cfg.Width, cfg.Height, MaxSourcePixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, format.MimeType(), err)
	}

	width, height := size.TargetSize()
	dst := image.NewGray(image.Rect(0, 0, width, height))
	// Nearest-Neighbor kopiert nur Pixel, daher ist Luma vor dem Skalieren gleichwertig
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), luma(src), src.Bounds(), draw.Src, nil)

	binarize(dst)
	return dst, nil
}

// luma rechnet src in Rec. 709 Luminanz um. Alpha wird ignoriert,
// transparente Pixel behalten ihre RGB-Helligkeit.
func luma(src image.Image) *image.Gray {
	if g, ok := src.(*image.Gray); ok {
		return g
	}

	b := src.Bounds()
	dst := image.NewGray(b)

	if n, ok := src.(*image.NRGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := n.PixOffset(b.Min.X, y)
			j := dst.PixOffset(b.Min.X, y)
			for x := 0; x < b.Dx(); x++ {
				p := n.Pix[i+4*x : i+4*x+3]
				dst.Pix[j+x] = rec709(uint32(p[0]), uint32(p[1]), uint32(p[2]))
			}
		}
		return dst
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		j := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := straightRGB(src.At(x, y))
			dst.Pix[j+x-b.Min.X] = rec709(r, g, bl)
		}
	}
	return dst
}

// straightRGB gibt die nicht vormultiplizierten 8-Bit-Kanaele von c zurueck
func straightRGB(c color.Color) (r, g, b uint32) {
	switch c := c.(type) {
	case color.NRGBA:
		return uint32(c.R), uint32(c.G), uint32(c.B)
	case color.NRGBA64:
		return uint32(c.R >> 8), uint32(c.G >> 8), uint32(c.B >> 8)
	}

	r, g, b, a := c.RGBA()
	if a == 0 {
		return 0, 0, 0
	}
	if a != 0xffff {
		r = r * 0xffff / a
		g = g * 0xffff / a
		b = b * 0xffff / a
	}
	return r >> 8, g >> 8, b >> 8
}

// rec709 gewichtet 8-Bit-RGB mit 0.2126/0.7152/0.0722
func rec709(r, g, b uint32) uint8 {
	return uint8((2126*r + 7152*g + 722*b) / 10000)
}

// binarize setzt jeden Pixel auf 0 oder 255
func binarize(img *image.Gray) {
	for i, v := range img.Pix {
		if v < Threshold {
			img.Pix[i] = 0x00
		} else {
			img.Pix[i] = 0xff
		}
	}
}
