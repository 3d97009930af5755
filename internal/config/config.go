package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Playback contains polling cadences and the lookup strategy.
type Playback struct {
	CaptionIntervalMS  int    `toml:"caption_interval_ms"`
	ProgressIntervalMS int    `toml:"progress_interval_ms"`
	Lookup             string `toml:"lookup"`
}

// Media contains ffprobe settings.
type Media struct {
	ProbeTimeoutSeconds int `toml:"probe_timeout_seconds"`
}

// Logging contains logger settings.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	Playback Playback `toml:"playback"`
	Media    Media    `toml:"media"`
	Logging  Logging  `toml:"logging"`
}

// Load reads the config at path (or the default location when empty) and
// returns it with the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := expandPath(defaultConfigPath)
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}

	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() {
	c.Playback.Lookup = strings.ToLower(strings.TrimSpace(c.Playback.Lookup))
	if c.Playback.Lookup == "" {
		c.Playback.Lookup = defaultLookupMode
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Playback.CaptionIntervalMS <= 0 {
		return fmt.Errorf("playback.caption_interval_ms must be positive, got %d", c.Playback.CaptionIntervalMS)
	}
	if c.Playback.ProgressIntervalMS <= 0 {
		return fmt.Errorf("playback.progress_interval_ms must be positive, got %d", c.Playback.ProgressIntervalMS)
	}
	switch c.Playback.Lookup {
	case "interval", "bucket":
	default:
		return fmt.Errorf("playback.lookup must be interval or bucket, got %q", c.Playback.Lookup)
	}
	if c.Media.ProbeTimeoutSeconds < 0 {
		return fmt.Errorf("media.probe_timeout_seconds must not be negative, got %d", c.Media.ProbeTimeoutSeconds)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) CaptionInterval() time.Duration {
	return time.Duration(c.Playback.CaptionIntervalMS) * time.Millisecond
}

func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.Playback.ProgressIntervalMS) * time.Millisecond
}

// ProbeTimeout is zero when probing may run without a deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Media.ProbeTimeoutSeconds) * time.Second
}

// Encode renders the config as TOML.
func (c *Config) Encode() (string, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(data), nil
}

func expandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// WriteDefault writes the default config to path, refusing to overwrite an
// existing file.
func WriteDefault(path string) (string, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("config already exists at %s", resolved)
	}
	cfg := Default()
	content, err := cfg.Encode()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(resolved, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return resolved, nil
}
