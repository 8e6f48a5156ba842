package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/feed/internal/render"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	wantLog, err := expandPath(defaultLogPath)
	if err != nil {
		t.Fatalf("expandPath(defaultLogPath) returned error: %v", err)
	}
	if cfg.LogPath != wantLog {
		t.Fatalf("LogPath = %q, want %q", cfg.LogPath, wantLog)
	}
	if cfg.Lines != 10 {
		t.Fatalf("Lines = %d, want 10", cfg.Lines)
	}
	if cfg.Blink != 1500*time.Millisecond {
		t.Fatalf("Blink = %v, want 1.5s", cfg.Blink)
	}
	if cfg.Color != 5*time.Minute {
		t.Fatalf("Color = %v, want 5m", cfg.Color)
	}
	if cfg.Refresh != 100*time.Millisecond {
		t.Fatalf("Refresh = %v, want 100ms", cfg.Refresh)
	}
	if cfg.Timezone != "CET" || cfg.Location == nil {
		t.Fatalf("Timezone = %q (%v), want CET", cfg.Timezone, cfg.Location)
	}
	if cfg.DebugLog != "" {
		t.Fatalf("DebugLog = %q, want empty", cfg.DebugLog)
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "feed")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("lines = 4\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Lines != 4 {
		t.Fatalf("Lines = %d, want 4", cfg.Lines)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_path = "  ~/status/feed.log  "
lines = 25
blink_millis = 800
color_minutes = 2
refresh_millis = 250
timezone = "America/New_York"
history_size = 50
debug_log = "~/feed-debug.log"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LogPath != filepath.Join(home, "status", "feed.log") {
		t.Fatalf("LogPath = %q, want it under HOME %q", cfg.LogPath, home)
	}
	if cfg.Lines != 25 || cfg.HistorySize != 50 {
		t.Fatalf("Lines/HistorySize = %d/%d, want 25/50", cfg.Lines, cfg.HistorySize)
	}
	if cfg.Blink != 800*time.Millisecond || cfg.Color != 2*time.Minute || cfg.Refresh != 250*time.Millisecond {
		t.Fatalf("durations = %v %v %v", cfg.Blink, cfg.Color, cfg.Refresh)
	}
	if cfg.Location.String() != "America/New_York" {
		t.Fatalf("Location = %v, want America/New_York", cfg.Location)
	}
	if !strings.HasPrefix(cfg.DebugLog, home) {
		t.Fatalf("DebugLog = %q, want it under HOME %q", cfg.DebugLog, home)
	}
}

func TestLoad_NonPositiveValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
log_path = "   "
lines = 0
blink_millis = -5
timezone = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	def := Default()
	if cfg.LogPath != def.LogPath || cfg.Lines != def.Lines || cfg.Blink != def.Blink || cfg.Timezone != def.Timezone {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`lines = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_UnknownTimezoneFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`timezone = "Mars/Olympus"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load returned nil error, want timezone error")
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestDefault_SharesDisplayLocation(t *testing.T) {
	cfg := Default()
	want := render.DisplayLocation()
	if cfg.Location.String() != want.String() || cfg.Timezone != render.DefaultLocation {
		t.Fatalf("default zone = %q (%s), want %q (%s)", cfg.Timezone, cfg.Location, render.DefaultLocation, want)
	}
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	if got, want := winter.In(cfg.Location).Format(time.TimeOnly), winter.In(want).Format(time.TimeOnly); got != want {
		t.Fatalf("default zone renders %s, want %s", got, want)
	}
}
