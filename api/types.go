// types.go - Request/Response-Typen der dominomaker HTTP-API
// Enthaelt: StatusError, Counts, ConvertResponse, Header-Namen
package api

import (
	"fmt"
	"strconv"
)

// Header der Bild-Antwort mit den Stueckzahlen
const (
	HeaderWhiteCount = "X-White-Count"
	HeaderBlackCount = "X-Black-Count"
	HeaderRequestID  = "X-Request-Id"
)

// StatusError is an error with an HTTP status code and message.
type StatusError struct {
	StatusCode   int
	Status       string
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		// this should not happen
		return "something went wrong, please see the dominomaker server logs for details"
	}
}

// Counts ist die Stueckliste: benoetigte weisse und schwarze Steine
type Counts struct {
	White uint32 `json:"white_count"`
	Black uint32 `json:"black_count"`
}

// Total gibt die Gesamtzahl der Steine zurueck
func (c Counts) Total() uint32 {
	return c.White + c.Black
}

// ConvertResponse ist die JSON-Antwort von /api/convert.
// Image ist das JPEG, in JSON base64-kodiert.
type ConvertResponse struct {
	Image []byte     `json:"image"`
	Map   [][]string `json:"map"`
	Counts
}

// parseCounts liest die Stueckzahlen aus den Antwort-Headern
func parseCounts(white, black string) (Counts, error) {
	w, err := strconv.ParseUint(white, 10, 32)
	if err != nil {
		return Counts{}, fmt.Errorf("invalid %s header %q: %w", HeaderWhiteCount, white, err)
	}

	b, err := strconv.ParseUint(black, 10, 32)
	if err != nil {
		return Counts{}, fmt.Errorf("invalid %s header %q: %w", HeaderBlackCount, black, err)
	}

	return Counts{White: uint32(w), Black: uint32(b)}, nil
}
