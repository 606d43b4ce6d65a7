// MODUL: render
// ZWECK: Zellenweiser Scan des binarisierten Bilds, Klassifizierung und Neuzeichnen
// INPUT: *image.Gray in exakter Zielgroesse, Brettgroesse
// OUTPUT: Board (zusammengefasste Laeufe pro Reihe), Anzahl weiss/schwarz
// NEBENEFFEKTE: Ueberschreibt das Eingabebild vollstaendig
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Pro Zelle gilt: lesen, klassifizieren, zusammenfassen, malen, Trenner malen

package domino

import (
	"image"
)

const (
	// GapShade ist der Grauwert der Luecken-Spalten
	GapShade = 0xee

	// SeparatorShade ist der Grauwert des Trenners unter einer Zelle
	SeparatorShade = 0xff

	// bandHeight ist die Hoehe einer Reihe inklusive Trenner
	bandHeight = CellHeight + CellWidth
)

// Render scannt img Reihe fuer Reihe, klassifiziert jede Domino-Zelle und
// malt das Bild neu. img muss die Groesse size.TargetSize() haben.
func Render(img *image.Gray, size BoardSize) (board Board, white, black uint32) {
	width, height := size.TargetSize()
	origin := img.Bounds().Min

	lastColumn := width - CellWidth
	lastBand := height - CellHeight

	board = make(Board, 0, size.Rows)
	var row Row

	x, y := 0, 0
	gap := false
	for y < height {
		cell := image.Rect(x, y, x+CellWidth, y+CellHeight).Add(origin)

		shade := uint8(GapShade)
		if !gap {
			d := Classify(sumCell(img, cell))
			row = row.Push(d)
			shade = d.Color.Shade()
		}
		fill(img, cell, shade)

		if y != lastBand {
			below := image.Rect(x, y+CellHeight, x+CellWidth, y+bandHeight).Add(origin)
			fill(img, below, SeparatorShade)
		}

		if x == lastColumn {
			board = append(board, row)
			row = nil
			x = 0
			y += bandHeight
			gap = false
		} else {
			x += CellWidth
			gap = !gap
		}
	}

	white, black = board.Counts()
	return board, white, black
}

// Classify ordnet eine Zellsumme einer Farbe zu.
// Die Metrik teilt zuerst durch die Breite und multipliziert dann mit der Hoehe.
func Classify(sum uint32) Domino {
	metric := sum / CellWidth * CellHeight
	if metric < Threshold {
		return Domino{Color: Black, Count: 1}
	}
	return Domino{Color: White, Count: 1}
}

// sumCell summiert alle Pixelwerte im Rechteck r
func sumCell(img *image.Gray, r image.Rectangle) uint32 {
	var sum uint32
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for _, v := range img.Pix[i : i+r.Dx()] {
			sum += uint32(v)
		}
	}
	return sum
}

// fill malt das Rechteck r einfarbig
func fill(img *image.Gray, r image.Rectangle, shade uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		line := img.Pix[i : i+r.Dx()]
		for k := range line {
			line[k] = shade
		}
	}
}
