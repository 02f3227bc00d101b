package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func restoreGlobals(t *testing.T) {
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})
}

func TestSetup_WritesToFile(t *testing.T) {
	restoreGlobals(t)
	path := filepath.Join(t.TempDir(), "logs", "snek.log")

	closer, err := Setup(path, "debug")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	log.Info().Str("round", "abc").Msg("round started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	got := string(b)
	if !strings.Contains(got, "round started") || !strings.Contains(got, "round=abc") {
		t.Fatalf("log file missing entry:\n%s", got)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("log file contains color codes:\n%s", got)
	}
}

func TestSetup_Level(t *testing.T) {
	restoreGlobals(t)
	closer, err := Setup(filepath.Join(t.TempDir(), "snek.log"), "warn")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer closer.Close()
	if got := zerolog.GlobalLevel(); got != zerolog.WarnLevel {
		t.Fatalf("level=%v want=warn", got)
	}
}

func TestSetup_BadLevel(t *testing.T) {
	restoreGlobals(t)
	if _, err := Setup("", "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Warn().Str("cause", "border").Msg("round over")
	if got := buf.String(); !strings.Contains(got, "WRN") || !strings.Contains(got, "cause=border") {
		t.Fatalf("unexpected output %q", got)
	}
}
