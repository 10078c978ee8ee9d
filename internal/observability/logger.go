package observability

import (
	"io"
	"log/slog"
	"os"

	"github.com/mikasimoncelli/Railway-Temperature-Dashboard/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds the application logger from config: JSON or text handler
// per LOG_FORMAT, level per LOG_LEVEL. When LOG_FILE is set, output goes
// through a size-rotated file instead of stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	var w io.Writer = os.Stdout
	if cfg.LogFile != "" {
		w = &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
