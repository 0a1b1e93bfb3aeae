package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iburimskiy/bgfield/internal/config"
)

func TestParseFlagsReduceMotion(t *testing.T) {
	f, err := ParseFlags("bgfield", nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.ReduceMotion != nil {
		t.Errorf("ReduceMotion without flag: got %v, want nil", *f.ReduceMotion)
	}

	f, err = ParseFlags("bgfield", []string{"--reduce-motion=false", "--seed", "12", "-c", "x.yaml"})
	if err != nil {
		t.Fatal(err)
	}
	if f.ReduceMotion == nil || *f.ReduceMotion {
		t.Error("ReduceMotion: want explicit false")
	}
	if f.Seed != 12 {
		t.Errorf("Seed: got %d, want 12", f.Seed)
	}
	if f.ConfigPath != "x.yaml" {
		t.Errorf("ConfigPath: got %q, want x.yaml", f.ConfigPath)
	}
}

func TestParseFlagsRejectsUnknown(t *testing.T) {
	if _, err := ParseFlags("bgfield", []string{"--nope"}); err == nil {
		t.Error("unknown flag: want error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestPrepare(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvReducedMotion, "1")

	path := filepath.Join(t.TempDir(), "bgfield.yaml")
	if err := os.WriteFile(path, []byte("density: 0.0002\nseed: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var logs bytes.Buffer
	s, err := Prepare("bgfield", []string{"--config", path}, &logs)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	defer s.Close()

	if !s.Reduced {
		t.Error("Reduced: got false, want true from env")
	}
	if s.Config.Density != 0.0002 {
		t.Errorf("Density: got %v, want 0.0002", s.Config.Density)
	}
	if s.Options.Field.Density != 0.0002 {
		t.Errorf("Options density: got %v, want 0.0002", s.Options.Field.Density)
	}
	if s.Options.Rand == nil {
		t.Error("Options.Rand is nil")
	}
	if !strings.Contains(logs.String(), "source=env") {
		t.Errorf("logs: got %q, want the preference source", logs.String())
	}
}

func TestPrepareBadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("alpha: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Prepare("bgfield", []string{"--config", path}, &bytes.Buffer{}); err == nil {
		t.Error("Prepare with invalid config: want error")
	}
}

func TestPrepareLogFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvReducedMotion, "0")
	logPath := filepath.Join(t.TempDir(), "bgfield.log")

	s, err := Prepare("bgfield", []string{"--log-file", logPath}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "motion preference") {
		t.Errorf("log file: got %q", data)
	}
}
