package orion

import (
	"io"
	"log/slog"
)

// SetupLogging installs the default logger writing text to w
func SetupLogging(w io.Writer, level slog.Level) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: true, Level: level})
	slog.SetDefault(slog.New(handler))
}
