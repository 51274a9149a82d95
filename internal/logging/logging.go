package logging

import (
	"log/slog"
	"os"
)

// New initializes a new slog logger and sets it as the default.
// format is usually config.GetLogFormat(); it falls back to the LOG_FORMAT
// environment variable and then to "text".
func New(format string) {
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		})
	}

	slog.SetDefault(slog.New(handler))
}
