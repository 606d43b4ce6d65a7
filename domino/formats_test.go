// MODUL: formats_test
// ZWECK: Tests fuer Format-Erkennung
// INPUT: Test-Bytes mit verschiedenen Signaturen
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Testet Magic-Byte-Erkennung fuer alle registrierten Formate

package domino

import (
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected ImageFormat
	}{
		{
			name:     "JPEG Magic Bytes",
			data:     []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10},
			expected: FormatJPEG,
		},
		{
			name:     "PNG Magic Bytes",
			data:     []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A},
			expected: FormatPNG,
		},
		{
			name:     "GIF Magic Bytes",
			data:     []byte("GIF89a"),
			expected: FormatGIF,
		},
		{
			name:     "WebP Magic Bytes",
			data:     []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 'W', 'E', 'B', 'P'},
			expected: FormatWebP,
		},
		{
			name:     "RIFF ohne WEBP",
			data:     []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0x00, 0x00, 0x00, 'W', 'A', 'V', 'E'},
			expected: FormatUnknown,
		},
		{
			name:     "TIFF Little Endian",
			data:     []byte{'I', 'I', 0x2A, 0x00, 0x08, 0x00},
			expected: FormatTIFF,
		},
		{
			name:     "TIFF Big Endian",
			data:     []byte{'M', 'M', 0x00, 0x2A, 0x00, 0x08},
			expected: FormatTIFF,
		},
		{
			name:     "BMP Header",
			data:     append([]byte("BM"), make([]byte, 12)...),
			expected: FormatBMP,
		},
		{
			name:     "Zu kurze Daten",
			data:     []byte{0xFF, 0xD8},
			expected: FormatUnknown,
		},
		{
			name:     "Unbekanntes Format",
			data:     []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			expected: FormatUnknown,
		},
		{
			name:     "Leere Daten",
			data:     []byte{},
			expected: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DetectFormat(tt.data)
			if result != tt.expected {
				t.Errorf("DetectFormat() = %v, erwartet %v", result, tt.expected)
			}
		})
	}
}

func TestMimeType(t *testing.T) {
	if got := FormatJPEG.MimeType(); got != "image/jpeg" {
		t.Errorf("MimeType() = %q, erwartet image/jpeg", got)
	}
	if got := FormatUnknown.MimeType(); got != "application/octet-stream" {
		t.Errorf("MimeType() = %q, erwartet application/octet-stream", got)
	}
}
