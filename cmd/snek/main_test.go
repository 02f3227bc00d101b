package main

import (
	"testing"
	"time"

	"github.com/brensch/snekterm/game"
	"github.com/brensch/snekterm/tui"
)

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("SNEK_TEST_STR", "hard")
	t.Setenv("SNEK_TEST_INT", "42")
	t.Setenv("SNEK_TEST_BAD_INT", "forty")
	t.Setenv("SNEK_TEST_FLOAT", "120.5")
	t.Setenv("SNEK_TEST_BOOL", "yes")

	if got := getEnvOrDefault("SNEK_TEST_STR", "normal"); got != "hard" {
		t.Fatalf("str=%q", got)
	}
	if got := getEnvOrDefault("SNEK_TEST_UNSET", "normal"); got != "normal" {
		t.Fatalf("unset str=%q", got)
	}
	if got := getEnvInt64OrDefault("SNEK_TEST_INT", 7); got != 42 {
		t.Fatalf("int=%d", got)
	}
	if got := getEnvInt64OrDefault("SNEK_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("bad int=%d want fallback", got)
	}
	if got := getEnvFloatOrDefault("SNEK_TEST_FLOAT", 1); got != 120.5 {
		t.Fatalf("float=%v", got)
	}
	if !getEnvBoolOrDefault("SNEK_TEST_BOOL", false) {
		t.Fatalf("bool should be true")
	}
	if getEnvBoolOrDefault("SNEK_TEST_UNSET", false) {
		t.Fatalf("unset bool should fall back to false")
	}
}

func TestFrameInterval(t *testing.T) {
	if got := frameInterval(50); got != 20*time.Millisecond {
		t.Fatalf("50fps=%v want=20ms", got)
	}
	if got := frameInterval(0); got != tui.DefaultFrameInterval {
		t.Fatalf("0fps=%v want default", got)
	}
}

func TestRun_RejectsBadConfig(t *testing.T) {
	if err := run(config{difficulty: "impossible", screen: game.DefaultScreen}); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
	cfg := config{difficulty: "easy"}
	if err := run(cfg); err == nil {
		t.Fatalf("expected error for empty world")
	}
}
