package logging

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type Config struct {
	Debug  bool
	JSON   bool
	Output io.Writer
}

// Setup builds a charm logger for cfg and installs it as the slog default
// handler, so the rest of the program logs through log/slog.
func Setup(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	level := charmlog.InfoLevel
	if cfg.Debug {
		level = charmlog.DebugLevel
	}

	handler := charmlog.NewWithOptions(output, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "opal-catalog",
	})
	if cfg.JSON {
		handler.SetFormatter(charmlog.JSONFormatter)
	} else {
		handler.SetFormatter(charmlog.TextFormatter)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
