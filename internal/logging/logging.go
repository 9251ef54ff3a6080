// Package logging builds the slog logger used by every long-running
// WinTrace component.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/slihbo/WinTrace/internal/config"
	"github.com/slihbo/WinTrace/internal/osutil"
)

// Logger wraps the slog logger together with the rotating file behind it so
// that callers can close the file on exit.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New returns a JSON logger writing to the rotating log file. When verbose is
// set, records are also printed as text to stderr.
func New(cfg *config.Config) (*Logger, error) {
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Paths.LogFile), osutil.DirPermission); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Paths.LogFile,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
		Compress:   true,
	}

	opts := &slog.HandlerOptions{Level: level}

	l := &Logger{
		Logger: slog.New(newHandler(file, config.Stderr, cfg.CLI.Verbose, opts)),
		file:   file,
	}

	if level <= slog.LevelDebug {
		l.Debug("effective configuration", slog.String("config", spew.Sdump(cfg)))
	}

	return l, nil
}

// newHandler writes JSON records to file and, when verbose, the same records
// as text to stderr.
func newHandler(file, stderr io.Writer, verbose bool, opts *slog.HandlerOptions) slog.Handler {
	handler := slog.NewJSONHandler(file, opts)

	if !verbose {
		return handler
	}

	return slogmulti.Fanout(handler, slog.NewTextHandler(stderr, opts))
}

// Discard returns a logger that drops every record. Useful in tests and for
// one-shot commands that never touch the tracker.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}
