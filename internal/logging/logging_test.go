package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/codelens/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_File(t *testing.T) {
	restoreLogger(t)
	path := filepath.Join(t.TempDir(), "codelens.log")

	w, err := Setup(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Debug().Msg("hidden")
	log.Info().Str("path", "src/a.ts").Msg("visible")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"visible"`) || !strings.Contains(out, `"path":"src/a.ts"`) {
		t.Errorf("log file missing entry: %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry written at info level: %s", out)
	}
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("global level = %v", zerolog.GlobalLevel())
	}
}

func TestSetup_BadLevel(t *testing.T) {
	restoreLogger(t)
	if _, err := Setup(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestWriter(t *testing.T) {
	if _, ok := Writer(config.LogConfig{}).(nopCloser); !ok {
		t.Error("empty file should log to stderr")
	}
	lj, ok := Writer(config.LogConfig{File: "x.log", MaxSizeMB: 5, MaxBackups: 2, MaxAgeDays: 7, Compress: true}).(*lumberjack.Logger)
	if !ok {
		t.Fatal("expected rotating file writer")
	}
	if lj.Filename != "x.log" || lj.MaxSize != 5 || lj.MaxBackups != 2 || lj.MaxAge != 7 || !lj.Compress {
		t.Errorf("writer = %+v", lj)
	}
}
