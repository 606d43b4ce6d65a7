// MODUL: domino
// ZWECK: Datentypen fuer das Domino-Mosaik (Farbe, Domino-Lauf, Reihe, Brett)
// INPUT: Klassifizierte Zellen aus dem Renderer
// OUTPUT: Zusammengefasste Laeufe und deren Textform ("3b", "2w")
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: keine (nur Standardbibliothek)
// HINWEISE: Merge ist eine normale Funktion, kein Operator

// Package domino wandelt Rasterbilder in ein schwarz-weisses Domino-Mosaik um.
package domino

import (
	"strconv"
)

// Color ist die Farbe eines Domino-Steins
type Color uint8

const (
	Black Color = iota
	White
)

// Letter gibt den Buchstaben fuer die Textform zurueck
func (c Color) Letter() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// Shade gibt den Grauwert zurueck, mit dem die Zelle gemalt wird
func (c Color) Shade() uint8 {
	if c == Black {
		return 0x00
	}
	return 0xff
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Domino ist ein Lauf gleichfarbiger Zellen innerhalb einer Reihe
type Domino struct {
	Color Color
	Count uint32
}

// String gibt die kompakte Form "<count><b|w>" zurueck
func (d Domino) String() string {
	return strconv.FormatUint(uint64(d.Count), 10) + string(d.Color.Letter())
}

// Merge fasst zwei aufeinanderfolgende Laeufe zusammen.
// Gleiche Farbe ergibt einen Eintrag mit summierter Anzahl,
// unterschiedliche Farben bleiben zwei Eintraege in Reihenfolge.
func Merge(last, next Domino) []Domino {
	if last.Color == next.Color {
		return []Domino{{Color: last.Color, Count: last.Count + next.Count}}
	}
	return []Domino{last, next}
}

// Row ist eine Reihe von Laeufen, links nach rechts.
// Zwei benachbarte Eintraege haben nie dieselbe Farbe.
type Row []Domino

// Push haengt einen Lauf an und verschmilzt ihn mit dem letzten Eintrag
func (r Row) Push(d Domino) Row {
	if len(r) == 0 {
		return append(r, d)
	}
	return append(r[:len(r)-1], Merge(r[len(r)-1], d)...)
}

// Cells gibt die Summe aller Laeufe zurueck
func (r Row) Cells() uint32 {
	var n uint32
	for _, d := range r {
		n += d.Count
	}
	return n
}

// Strings gibt die Textform jedes Laufs zurueck
func (r Row) Strings() []string {
	s := make([]string, len(r))
	for i, d := range r {
		s[i] = d.String()
	}
	return s
}

// Board ist die Domino-Karte, Reihen von oben nach unten
type Board []Row

// Counts zaehlt weisse und schwarze Zellen ueber alle Reihen
func (b Board) Counts() (white, black uint32) {
	for _, row := range b {
		for _, d := range row {
			switch d.Color {
			case White:
				white += d.Count
			case Black:
				black += d.Count
			}
		}
	}
	return white, black
}

// Strings gibt die Karte in Textform zurueck
func (b Board) Strings() [][]string {
	s := make([][]string, len(b))
	for i, row := range b {
		s[i] = row.Strings()
	}
	return s
}
