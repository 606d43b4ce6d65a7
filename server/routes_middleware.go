// routes_middleware.go - Middleware-Funktionen fuer den HTTP-Router
// Enthaelt: requestIDMiddleware(), limitBody()

package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dominomaker/dominomaker/api"
)

// requestIDKey ist der gin-Context-Schluessel fuer die Request-ID
const requestIDKey = "request_id"

// requestIDMiddleware vergibt jeder Anfrage eine ID und loggt Status und Dauer
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(api.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(api.HeaderRequestID, id)

		start := time.Now()
		c.Next()

		slog.Debug("request", "id", id, "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "duration", time.Since(start))
	}
}

// limitBody begrenzt die Groesse des Request-Body
func (s *Server) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
		c.Next()
	}
}
