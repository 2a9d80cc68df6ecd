// Package observability sets up the process-wide logger and tracer.
package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-error-codes/internal/config"
)

// NewLogger returns a JSON logger whose lines carry the service name, the
// host name and the process id next to the timestamp. With pretty set it
// writes human-readable console lines instead.
func NewLogger(w io.Writer, name string, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	host, _ := os.Hostname()
	return zerolog.New(w).With().
		Timestamp().
		Str("name", name).
		Str("hostname", firstNonEmpty(host, os.Getenv("HOSTNAME"), "unknown")).
		Int("pid", os.Getpid()).
		Logger()
}

// InitLogger builds the logger described by cfg, installs it as the global
// log.Logger and applies cfg.LogLevel.
func InitLogger(cfg config.Config) zerolog.Logger {
	SetLogLevel(cfg.LogLevel)
	l := NewLogger(os.Stdout, cfg.LogName, cfg.LogPretty)
	log.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}

// SetLogLevel configures the global zerolog level based on a string value.
// Supported values (case-insensitive): debug, info, warn, error, fatal, panic.
// Anything else selects info.
func SetLogLevel(lvl string) {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// firstNonEmpty returns the first value that is not blank, or "".
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
