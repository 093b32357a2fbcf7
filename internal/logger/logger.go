package logger

import (
	stdlog "log"
	"strings"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/rs/zerolog"
)

// New builds a zerolog logger from the application log configuration.
// Console output is always on; file output with rotation is added when a log
// file path is configured.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level := parseLevel(cfg.LogLevel)
	format := parseFormat(cfg.LogFormat)

	factory := newWriterFactory()
	writers := factory.createWriters(cfg, format)

	multiWriter := zerolog.MultiLevelWriter(writers...)
	logger := zerolog.New(multiWriter).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)

	// Route the standard log package through zerolog so library output is structured too.
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)

	return logger, nil
}

// parseLevel parses a string log level, falling back to info.
func parseLevel(levelStr string) zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil || levelStr == "" {
		return zerolog.InfoLevel
	}
	return level
}

// parseFormat parses a string format to LogFormat.
func parseFormat(formatStr string) LogFormat {
	switch strings.ToLower(formatStr) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}
