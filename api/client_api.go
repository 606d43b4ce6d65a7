// client_api.go - API-Methoden des Clients
// Hauptfunktionen: Convert, ConvertImage, Heartbeat, Version
package api

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dominomaker/dominomaker/domino"
)

// boardQuery kodiert die Brettgroesse als Query-Parameter
func boardQuery(size domino.BoardSize) url.Values {
	q := url.Values{}
	q.Set("board_width", strconv.FormatUint(uint64(size.Columns), 10))
	q.Set("board_height", strconv.FormatUint(uint64(size.Rows), 10))
	return q
}

// Convert laesst den Server data umwandeln und liefert Bild, Karte und Zaehler.
func (c *Client) Convert(ctx context.Context, data []byte, size domino.BoardSize) (*ConvertResponse, error) {
	var resp ConvertResponse
	if err := c.do(ctx, http.MethodPost, "/api/convert", boardQuery(size), data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConvertImage nutzt den Bild-Endpunkt und liest die Zaehler aus den Headern.
func (c *Client) ConvertImage(ctx context.Context, data []byte, size domino.BoardSize) ([]byte, Counts, error) {
	resp, body, err := c.send(ctx, http.MethodPost, "/convert", boardQuery(size), bytes.NewReader(data), "application/octet-stream")
	if err != nil {
		return nil, Counts{}, err
	}

	counts, err := parseCounts(resp.Header.Get(HeaderWhiteCount), resp.Header.Get(HeaderBlackCount))
	if err != nil {
		return nil, Counts{}, err
	}

	return body, counts, nil
}

// Heartbeat checks if the server has started and is responsive; if yes, it
// returns nil, otherwise an error.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.do(ctx, http.MethodHead, "/", nil, nil, nil)
}

// Version returns the dominomaker server version as a string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var version struct {
		Version string `json:"version"`
	}

	if err := c.do(ctx, http.MethodGet, "/api/version", nil, nil, &version); err != nil {
		return "", err
	}

	return version.Version, nil
}
