// config.go - Haupt-Konfigurationsfunktionen fuer dominomaker
//
// Dieses Modul enthaelt:
// - Host: Gibt Scheme und Host zurueck (DOMINO_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (DOMINO_ORIGINS)
// - LogLevel: Gibt Log-Level zurueck (DOMINO_DEBUG)
// - Limits: Upload-Groesse, Brettgroesse, Worker (DOMINO_MAX_UPLOAD, DOMINO_MAX_BOARD, DOMINO_WORKERS)
// - ReleaseMode: Router im Release-Modus (DOMINO_RELEASE)
//
// Utility-Funktionen und AsMap/Values liegen in config_utils.go
package envconfig

import (
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Host gibt Scheme und Host zurueck
// Konfigurierbar via DOMINO_HOST
// Default: http://127.0.0.1:8000
func Host() *url.URL {
	defaultPort := "8000"

	s := strings.TrimSpace(Var("DOMINO_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via DOMINO_ORIGINS (komma-separiert)
// Leer bedeutet: alle Origins erlaubt
func AllowedOrigins() (origins []string) {
	for _, origin := range strings.Split(Var("DOMINO_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via DOMINO_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("DOMINO_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// MaxUploadSize begrenzt die Groesse des hochgeladenen Bilds in Bytes
	MaxUploadSize = Uint64("DOMINO_MAX_UPLOAD", 10<<20)

	// MaxBoardSize begrenzt Spalten und Reihen pro Anfrage an den Server
	MaxBoardSize = Uint("DOMINO_MAX_BOARD", 256)

	// Workers ist die Anzahl paralleler Umwandlungen in der Kommandozeile (0 = Anzahl CPUs)
	Workers = Uint("DOMINO_WORKERS", 0)

	// ReleaseMode schaltet den Router in den Release-Modus
	ReleaseMode = Bool("DOMINO_RELEASE")
)

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
