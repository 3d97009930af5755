package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")
	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Error("expected exists=false for missing file")
	}
	if resolved != path {
		t.Errorf("resolved path: got %q, want %q", resolved, path)
	}
	if cfg.CaptionInterval() != 200*time.Millisecond {
		t.Errorf("caption interval: got %v", cfg.CaptionInterval())
	}
	if cfg.ProgressInterval() != 400*time.Millisecond {
		t.Errorf("progress interval: got %v", cfg.ProgressInterval())
	}
	if cfg.Playback.Lookup != "interval" {
		t.Errorf("lookup: got %q", cfg.Playback.Lookup)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := writeConfig(t, `
[playback]
caption_interval_ms = 100
lookup = "Bucket"

[logging]
level = "DEBUG"
format = "json"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Error("expected exists=true")
	}
	if cfg.Playback.CaptionIntervalMS != 100 {
		t.Errorf("caption interval: got %d", cfg.Playback.CaptionIntervalMS)
	}
	if cfg.Playback.ProgressIntervalMS != 400 {
		t.Errorf("progress interval should keep default, got %d", cfg.Playback.ProgressIntervalMS)
	}
	if cfg.Playback.Lookup != "bucket" || cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("normalization failed: %+v", cfg)
	}
	if cfg.ProbeTimeout() != 10*time.Second {
		t.Errorf("probe timeout: got %v", cfg.ProbeTimeout())
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"zero caption interval", "[playback]\ncaption_interval_ms = 0\n", "caption_interval_ms"},
		{"negative progress", "[playback]\nprogress_interval_ms = -5\n", "progress_interval_ms"},
		{"unknown lookup", "[playback]\nlookup = \"nearest\"\n", "playback.lookup"},
		{"negative timeout", "[media]\nprobe_timeout_seconds = -1\n", "probe_timeout_seconds"},
		{"unknown level", "[logging]\nlevel = \"trace\"\n", "logging.level"},
		{"unknown format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"unknown key", "[playback]\nspeed = 2\n", "parse config"},
		{"bad toml", "[playback\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	written, err := WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault returned error: %v", err)
	}
	cfg, _, exists, err := Load(written)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Error("expected written config to exist")
	}
	want := Default()
	if *cfg != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", *cfg, want)
	}

	if _, err := WriteDefault(path); err == nil {
		t.Error("expected error when config already exists")
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := expandPath("~/captions/config.toml")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if got != filepath.Join(home, "captions", "config.toml") {
		t.Errorf("got %q", got)
	}
}
