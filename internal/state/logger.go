package state

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger writes structured logs to path. The terminal belongs to the UI,
// so nothing is logged to stderr.
func NewLogger(path string, debug bool) (zerolog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, f, nil
}
