package logx

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// NewLogger returns a tint-backed logger. Colors are meant for local runs,
// pass noColor in containers where output is collected as plain text.
func NewLogger(w io.Writer, level slog.Leveler, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		AddSource:  false,
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}))
}
