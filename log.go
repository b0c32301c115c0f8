package weather

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "weather",
	})
}

// defaultLogger is used by documents and engines without an explicit logger.
// It only reports warnings and errors.
func defaultLogger() *log.Logger {
	return NewLogger(os.Stderr, log.WarnLevel)
}
