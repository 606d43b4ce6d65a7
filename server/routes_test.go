package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominomaker/dominomaker/api"
)

func createPNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("DOMINO_ORIGINS", "")
	t.Setenv("DOMINO_MAX_UPLOAD", "")
	t.Setenv("DOMINO_MAX_BOARD", "")

	h, err := NewServer(nil).GenerateRoutes()
	require.NoError(t, err)
	return h
}

func TestConvertHandler(t *testing.T) {
	h := setupRouter(t)

	body := createPNG(t, 72, 48, color.Black)
	req := httptest.NewRequest(http.MethodPost, "/convert?board_width=3&board_height=2", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, "0", w.Header().Get(api.HeaderWhiteCount))
	assert.Equal(t, "6", w.Header().Get(api.HeaderBlackCount))

	_, err := uuid.Parse(w.Header().Get(api.HeaderRequestID))
	assert.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 56, cfg.Height)
}

func TestConvertJSONHandler(t *testing.T) {
	h := setupRouter(t)

	body := createPNG(t, 30, 30, color.White)
	req := httptest.NewRequest(http.MethodPost, "/api/convert?board_width=3&board_height=2", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.ConvertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	if diff := cmp.Diff([][]string{{"3w"}, {"3w"}}, resp.Map); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, api.Counts{White: 6, Black: 0}, resp.Counts)
	assert.NotEmpty(t, resp.Image)
}

func TestConvertHandlerErrors(t *testing.T) {
	valid := createPNG(t, 10, 10, color.White)

	cases := []struct {
		name   string
		query  string
		body   []byte
		status int
	}{
		{"missing width", "?board_height=2", valid, http.StatusBadRequest},
		{"missing height", "?board_width=2", valid, http.StatusBadRequest},
		{"negative width", "?board_width=-1&board_height=2", valid, http.StatusBadRequest},
		{"zero width", "?board_width=0&board_height=2", valid, http.StatusBadRequest},
		{"zero height", "?board_width=2&board_height=0", valid, http.StatusBadRequest},
		{"board too large", "?board_width=257&board_height=2", valid, http.StatusBadRequest},
		{"not an image", "?board_width=2&board_height=2", []byte("hello"), http.StatusBadRequest},
		{"broken jpeg", "?board_width=2&board_height=2", []byte{0xFF, 0xD8, 0xFF, 0x00}, http.StatusBadRequest},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			h := setupRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/convert"+tt.query, bytes.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)

			var resp api.StatusError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.ErrorMessage)
		})
	}
}

func TestConvertHandlerBodyLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("DOMINO_MAX_UPLOAD", "64")
	h, err := NewServer(nil).GenerateRoutes()
	require.NoError(t, err)

	body := createPNG(t, 200, 200, color.White)
	require.Greater(t, len(body), 64)

	req := httptest.NewRequest(http.MethodPost, "/convert?board_width=2&board_height=2", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPreflight(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/convert", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestOptionsWithoutOrigin(t *testing.T) {
	h := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/convert", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "OPTIONS, POST", w.Header().Get("Allow"))
}

func TestRestrictedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("DOMINO_ORIGINS", "http://allowed.example")

	h, err := NewServer(nil).GenerateRoutes()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/convert", nil)
	req.Header.Set("Origin", "http://other.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGeneralRoutes(t *testing.T) {
	h := setupRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "dominomaker is running", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "version")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/convert", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRequestIDPassthrough(t *testing.T) {
	h := setupRouter(t)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(api.HeaderRequestID, id)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get(api.HeaderRequestID))
}
