package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata" // timezone names resolve without system zoneinfo

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/feed/internal/render"
)

// Config captures the feed settings shared by the writer and the tailer.
type Config struct {
	LogPath     string
	Lines       int
	Blink       time.Duration
	Color       time.Duration
	Refresh     time.Duration
	Timezone    string
	Location    *time.Location
	HistorySize int
	DebugLog    string
}

const (
	defaultConfigPath  = "~/.config/feed/config.toml"
	defaultLogPath     = "~/.local/share/feed/feed.log"
	defaultLines       = 10
	defaultBlinkMillis = 1500
	defaultColorMins   = 5
	defaultRefreshMs   = 100
	defaultHistorySize = 1000
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogPath:     mustExpand(defaultLogPath),
		Lines:       defaultLines,
		Blink:       defaultBlinkMillis * time.Millisecond,
		Color:       defaultColorMins * time.Minute,
		Refresh:     defaultRefreshMs * time.Millisecond,
		Timezone:    render.DefaultLocation,
		Location:    render.DisplayLocation(),
		HistorySize: defaultHistorySize,
	}
}

// Load locates and parses the feed config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		LogPath       string `toml:"log_path"`
		Lines         int    `toml:"lines"`
		BlinkMillis   int    `toml:"blink_millis"`
		ColorMinutes  int    `toml:"color_minutes"`
		RefreshMillis int    `toml:"refresh_millis"`
		Timezone      string `toml:"timezone"`
		HistorySize   int    `toml:"history_size"`
		DebugLog      string `toml:"debug_log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}
	if raw.Lines > 0 {
		cfg.Lines = raw.Lines
	}
	if raw.BlinkMillis > 0 {
		cfg.Blink = time.Duration(raw.BlinkMillis) * time.Millisecond
	}
	if raw.ColorMinutes > 0 {
		cfg.Color = time.Duration(raw.ColorMinutes) * time.Minute
	}
	if raw.RefreshMillis > 0 {
		cfg.Refresh = time.Duration(raw.RefreshMillis) * time.Millisecond
	}
	if raw.HistorySize > 0 {
		cfg.HistorySize = raw.HistorySize
	}
	if debugLog := strings.TrimSpace(raw.DebugLog); debugLog != "" {
		cfg.DebugLog = mustExpand(debugLog)
	}
	if tz := strings.TrimSpace(raw.Timezone); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: timezone %q: %w", tz, err)
		}
		cfg.Timezone = tz
		cfg.Location = loc
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
