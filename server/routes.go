// Package server - Haupt-Router und Server-Setup fuer dominomaker
// Beinhaltet: Server-Struct, Router-Registrierung, CORS, allgemeine Routen
package server

import (
	"fmt"
	"net"
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dominomaker/dominomaker/api"
	"github.com/dominomaker/dominomaker/envconfig"
	"github.com/dominomaker/dominomaker/version"
)

var mode string = gin.DebugMode

// Server haelt die Limits fuer eingehende Umwandlungen
type Server struct {
	addr net.Addr

	// maxUpload begrenzt den Request-Body in Bytes
	maxUpload int64

	// maxBoard begrenzt Spalten und Reihen pro Anfrage
	maxBoard uint32
}

func init() {
	switch mode {
	case gin.DebugMode:
	case gin.ReleaseMode:
	case gin.TestMode:
	default:
		mode = gin.DebugMode
	}

	gin.SetMode(mode)
}

// NewServer erstellt einen Server mit Limits aus der Umgebung
func NewServer(addr net.Addr) *Server {
	return &Server{
		addr:      addr,
		maxUpload: int64(envconfig.MaxUploadSize()),
		maxBoard:  uint32(envconfig.MaxBoardSize()),
	}
}

// corsConfig erlaubt Preflight fuer /convert, Origins aus DOMINO_ORIGINS
func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{http.MethodOptions, http.MethodPost, http.MethodGet, http.MethodHead}
	config.AllowHeaders = []string{"Content-Type"}
	config.ExposeHeaders = []string{api.HeaderWhiteCount, api.HeaderBlackCount, api.HeaderRequestID}

	origins := envconfig.AllowedOrigins()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowWildcard = true
		config.AllowBrowserExtensions = true
	}

	return config
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() (http.Handler, error) {
	config := corsConfig()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid DOMINO_ORIGINS: %w", err)
	}

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(config),
		requestIDMiddleware(),
	)

	// General
	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "dominomaker is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "dominomaker is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	// Conversion
	r.POST("/convert", s.limitBody(), s.ConvertHandler)
	r.OPTIONS("/convert", s.OptionsHandler)
	r.POST("/api/convert", s.limitBody(), s.ConvertJSONHandler)

	return r, nil
}
