package domino

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRaster erzeugt ein binarisiertes Raster in Zielgroesse, black bestimmt je Pixel die Farbe
func newRaster(size BoardSize, black func(x, y int) bool) *image.Gray {
	w, h := size.TargetSize()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if black(x, y) {
				img.Pix[img.PixOffset(x, y)] = 0x00
			} else {
				img.Pix[img.PixOffset(x, y)] = 0xff
			}
		}
	}
	return img
}

func TestClassify(t *testing.T) {
	tests := []struct {
		sum      uint32
		expected Color
	}{
		{0, Black},
		// 47 / 8 * 24 = 120
		{47, Black},
		// 48 / 8 * 24 = 144
		{48, White},
		// ein einzelner weisser Pixel reicht fuer weiss
		{255, White},
		{CellWidth * CellHeight * 255, White},
	}

	for _, tt := range tests {
		d := Classify(tt.sum)
		if d.Color != tt.expected || d.Count != 1 {
			t.Errorf("Classify(%d) = %v, erwartet 1%c", tt.sum, d, tt.expected.Letter())
		}
	}
}

func TestRenderHalves(t *testing.T) {
	size := BoardSize{4, 2}
	// Domino-Spalten liegen bei x = 0, 16, 32, 48
	img := newRaster(size, func(x, _ int) bool { return x < 24 })

	board, white, black := Render(img, size)

	expected := Board{
		{{Black, 2}, {White, 2}},
		{{Black, 2}, {White, 2}},
	}
	if diff := cmp.Diff(expected, board); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, uint32(4), white)
	assert.Equal(t, uint32(4), black)
}

func TestRenderPaintsLayout(t *testing.T) {
	size := BoardSize{2, 2}
	img := newRaster(size, func(_, _ int) bool { return true })

	_, white, black := Render(img, size)
	assert.Equal(t, uint32(0), white)
	assert.Equal(t, uint32(4), black)

	tests := []struct {
		name  string
		x, y  int
		shade uint8
	}{
		{"Domino-Zelle oben links", 0, 0, 0x00},
		{"Domino-Zelle unten rechts", 7, 23, 0x00},
		{"Luecken-Spalte", 8, 0, GapShade},
		{"Luecken-Spalte unten", 15, 23, GapShade},
		{"Trenner unter Domino", 0, 24, SeparatorShade},
		{"Trenner unter Luecke", 12, 31, SeparatorShade},
		{"Zweite Reihe Domino", 16, 32, 0x00},
		{"Zweite Reihe Luecke", 8, 55, GapShade},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.shade, img.GrayAt(tt.x, tt.y).Y)
		})
	}
}

func TestRenderSingleWhitePixel(t *testing.T) {
	size := BoardSize{1, 1}
	img := newRaster(size, func(x, y int) bool { return x != 3 || y != 11 })

	board, white, black := Render(img, size)
	assert.Equal(t, Board{{{White, 1}}}, board)
	assert.Equal(t, uint32(1), white)
	assert.Equal(t, uint32(0), black)

	// das ganze Bild ist danach weiss
	for _, v := range img.Pix {
		require.Equal(t, uint8(0xff), v)
	}
}

func TestRenderInvariants(t *testing.T) {
	sizes := []BoardSize{{1, 1}, {1, 5}, {5, 1}, {3, 2}, {7, 4}, {16, 9}}

	for _, size := range sizes {
		t.Run(size.String(), func(t *testing.T) {
			// Streifenmuster, damit Reihen gemischte Laeufe enthalten
			img := newRaster(size, func(x, y int) bool {
				return (x/16+y/32)%3 == 0 || (x/16)%5 == 4
			})

			board, white, black := Render(img, size)

			require.Len(t, board, int(size.Rows))
			assert.Equal(t, size.Cells(), white+black)

			for i, row := range board {
				assert.Equal(t, size.Columns, row.Cells(), "Reihe %d", i)
				for j := 1; j < len(row); j++ {
					assert.NotEqual(t, row[j-1].Color, row[j].Color, "Reihe %d, Eintrag %d", i, j)
				}
			}
		})
	}
}

func TestRenderOffsetBounds(t *testing.T) {
	size := BoardSize{2, 1}
	w, h := size.TargetSize()

	img := image.NewGray(image.Rect(100, 50, 100+w, 50+h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	board, white, _ := Render(img, size)
	assert.Equal(t, Board{{{White, 2}}}, board)
	assert.Equal(t, uint32(2), white)
	assert.Equal(t, uint8(GapShade), img.GrayAt(108, 50).Y)
}
