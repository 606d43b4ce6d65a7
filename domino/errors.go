package domino

import "errors"

var (
	// ErrInvalidInput wird zurueckgegeben wenn das Bildformat nicht erkannt wurde
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat wird zurueckgegeben wenn das Format erkannt,
	// der Inhalt aber nicht dekodiert werden konnte
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrInvalidBoardSize wird bei Spalten oder Reihen gleich 0 zurueckgegeben,
	// oder wenn das Zielbild die JPEG-Grenze ueberschreiten wuerde
	ErrInvalidBoardSize = errors.New("invalid board size")

	// ErrEncodeFailure ist ein interner Fehler beim Kodieren des Ergebnisbilds
	ErrEncodeFailure = errors.New("failed to encode image")
)

// IsUserError meldet ob der Fehler auf eine fehlerhafte Eingabe zurueckgeht
func IsUserError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrInvalidBoardSize)
}
