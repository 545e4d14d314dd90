package observability

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger writing to w.
// APP_ENV=dev (or development) switches to the console writer; level falls back
// to debug in dev and info elsewhere when empty or unknown.
func NewLogger(w io.Writer, env, level string) zerolog.Logger {
	dev := env == "dev" || env == "development"

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
		if dev {
			lvl = zerolog.DebugLevel
		}
	}

	if dev {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "review-sentiment").Logger()
}
