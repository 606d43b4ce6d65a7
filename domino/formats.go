// MODUL: formats
// ZWECK: Erkennung des Container-Formats anhand der Magic-Bytes
// INPUT: Rohe Bild-Bytes
// OUTPUT: ImageFormat (FormatUnknown wenn nicht erkannt)
// NEBENEFFEKTE: Registriert WebP-, BMP- und TIFF-Decoder beim image-Paket
// ABHAENGIGKEITEN: golang.org/x/image (bmp, tiff, webp)
// HINWEISE: Erkennung und Dekodierung sind getrennt, damit "unbekannt"
//           und "nicht dekodierbar" unterschieden werden koennen

package domino

import (
	"bytes"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageFormat repraesentiert ein erkanntes Eingabeformat
type ImageFormat string

const (
	FormatJPEG    ImageFormat = "jpeg"
	FormatPNG     ImageFormat = "png"
	FormatGIF     ImageFormat = "gif"
	FormatWebP    ImageFormat = "webp"
	FormatBMP     ImageFormat = "bmp"
	FormatTIFF    ImageFormat = "tiff"
	FormatUnknown ImageFormat = "unknown"
)

// Magic-Byte-Signaturen
var (
	magicJPEG   = []byte{0xFF, 0xD8, 0xFF}
	magicPNG    = []byte{0x89, 0x50, 0x4E, 0x47}
	magicGIF    = []byte("GIF8")
	magicRIFF   = []byte("RIFF")
	magicBMP    = []byte("BM")
	magicTIFFLE = []byte{'I', 'I', 0x2A, 0x00}
	magicTIFFBE = []byte{'M', 'M', 0x00, 0x2A}
)

// DetectFormat erkennt das Bildformat anhand der Magic-Bytes
func DetectFormat(data []byte) ImageFormat {
	switch {
	case bytes.HasPrefix(data, magicJPEG):
		return FormatJPEG
	case bytes.HasPrefix(data, magicPNG):
		return FormatPNG
	case bytes.HasPrefix(data, magicGIF):
		return FormatGIF
	case bytes.HasPrefix(data, magicRIFF) && isWebP(data):
		return FormatWebP
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return FormatTIFF
	case bytes.HasPrefix(data, magicBMP) && len(data) >= 14:
		return FormatBMP
	}
	return FormatUnknown
}

// isWebP prueft auf "WEBP" Marker nach RIFF Header
func isWebP(data []byte) bool {
	// RIFF....WEBP
	return len(data) >= 12 && string(data[8:12]) == "WEBP"
}

// MimeType gibt den MIME-Type fuer ein Format zurueck
func (f ImageFormat) MimeType() string {
	switch f {
	case FormatUnknown:
		return "application/octet-stream"
	default:
		return "image/" + string(f)
	}
}

func (f ImageFormat) String() string {
	return string(f)
}
