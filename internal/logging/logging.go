// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/codelens/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs the global logger described by cfg and returns the writer
// it logs to. Output goes to stderr unless cfg.File is set, in which case it
// goes to a size-rotated file. Callers should Close the returned writer on exit.
func Setup(cfg config.LogConfig) (io.WriteCloser, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	w := Writer(cfg)
	out := io.Writer(w)
	if strings.TrimSpace(cfg.File) == "" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return w, nil
}

// Writer returns the destination for cfg without touching global state.
func Writer(cfg config.LogConfig) io.WriteCloser {
	if strings.TrimSpace(cfg.File) == "" {
		return nopCloser{os.Stderr}
	}
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
