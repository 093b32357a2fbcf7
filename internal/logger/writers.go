package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFormat represents available log formats
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatJSON
	FormatText
)

// writerFactory creates writers based on format
type writerFactory struct{}

func newWriterFactory() *writerFactory {
	return &writerFactory{}
}

// createWriters creates the configured output writers: console always, a
// rotating file writer when a log file is set.
func (wf *writerFactory) createWriters(cfg config.LogConfig, format LogFormat) []io.Writer {
	writers := []io.Writer{wf.createConsoleWriter(format)}

	if cfg.LogFile != "" {
		writers = append(writers, wf.createFileWriter(cfg, format))
	}

	return writers
}

// createConsoleWriter creates a console writer
func (wf *writerFactory) createConsoleWriter(format LogFormat) io.Writer {
	if format == FormatJSON {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    format == FormatText,
	}
}

// createFileWriter creates a file writer with rotation
func (wf *writerFactory) createFileWriter(cfg config.LogConfig, format LogFormat) io.Writer {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		// Fall back to console-only output; lumberjack would fail the same way.
		return io.Discard
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}

	if format == FormatJSON {
		return rotating
	}
	return zerolog.ConsoleWriter{
		Out:        rotating,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
}
