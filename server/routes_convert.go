// routes_convert.go - Handler fuer die Umwandlung Bild -> Domino-Mosaik
// Enthaelt: ConvertHandler, ConvertJSONHandler, OptionsHandler, Fehlerabbildung

package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dominomaker/dominomaker/api"
	"github.com/dominomaker/dominomaker/domino"
)

// errBadQuery kennzeichnet fehlende oder ungueltige Query-Parameter
var errBadQuery = errors.New("invalid query")

// boardSize liest board_width und board_height aus der Query
func (s *Server) boardSize(c *gin.Context) (domino.BoardSize, error) {
	var size domino.BoardSize
	for _, p := range []struct {
		key string
		dst *uint32
	}{
		{"board_width", &size.Columns},
		{"board_height", &size.Rows},
	} {
		raw, ok := c.GetQuery(p.key)
		if !ok {
			return size, fmt.Errorf("%w: %s is required", errBadQuery, p.key)
		}

		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return size, fmt.Errorf("%w: %s must be a non-negative integer", errBadQuery, p.key)
		}
		*p.dst = uint32(n)
	}

	if size.Columns > s.maxBoard || size.Rows > s.maxBoard {
		return size, fmt.Errorf("%w: %s exceeds the server limit of %d", domino.ErrInvalidBoardSize, size, s.maxBoard)
	}

	return size, nil
}

// convert liest den Body und fuehrt die Umwandlung aus
func (s *Server) convert(c *gin.Context) (*domino.Result, bool) {
	size, err := s.boardSize(c)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	result, err := domino.Convert(data, size)
	if err != nil {
		s.abort(c, err)
		return nil, false
	}

	slog.Info("converted image", "id", c.GetString(requestIDKey), "board", size, "format", domino.DetectFormat(data).MimeType(), "bytes", len(data), "white", result.WhiteCount, "black", result.BlackCount)
	return result, true
}

// ConvertHandler antwortet mit dem JPEG und den Zaehlern als Header
func (s *Server) ConvertHandler(c *gin.Context) {
	result, ok := s.convert(c)
	if !ok {
		return
	}

	c.Header(api.HeaderWhiteCount, strconv.FormatUint(uint64(result.WhiteCount), 10))
	c.Header(api.HeaderBlackCount, strconv.FormatUint(uint64(result.BlackCount), 10))
	c.Data(http.StatusOK, "image/jpeg", result.Image)
}

// ConvertJSONHandler antwortet mit Bild, Karte und Zaehlern als JSON
func (s *Server) ConvertJSONHandler(c *gin.Context) {
	result, ok := s.convert(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, api.ConvertResponse{
		Image: result.Image,
		Map:   result.Map,
		Counts: api.Counts{
			White: result.WhiteCount,
			Black: result.BlackCount,
		},
	})
}

// OptionsHandler beantwortet OPTIONS ohne Origin-Header, CORS-Preflights
// werden bereits von der cors-Middleware beantwortet
func (s *Server) OptionsHandler(c *gin.Context) {
	c.Header("Allow", "OPTIONS, POST")
	c.Status(http.StatusNoContent)
}

// abort bildet Fehler auf HTTP-Status ab: Eingabefehler 4xx, sonst 500
func (s *Server) abort(c *gin.Context, err error) {
	var maxBytes *http.MaxBytesError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &maxBytes):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadQuery), domino.IsUserError(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		slog.Error("conversion failed", "id", c.GetString(requestIDKey), "error", err)
	} else {
		slog.Debug("rejected request", "id", c.GetString(requestIDKey), "status", status, "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
