// Package logging configures the diagnostic logger.
//
// Diagnostics go to stderr through zerolog and are separate from the
// user-facing progress lines, which are printed directly.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w at the named level.
func New(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parsing log level %q: %w", level, err)
	}

	writer := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger(), nil
}
