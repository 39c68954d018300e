package telemetry

import (
	"io"
	"log/slog"
)

// InitSlog installs a text handler writing to w as the default slog logger,
// at debug level when verbose is set.
func InitSlog(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
