package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the client settings fruitvision reads at startup.
type Config struct {
	APIURL  string
	Timeout time.Duration
}

const (
	defaultConfigPath     = "~/.config/fruitvision/config.toml"
	defaultAPIURL         = "http://localhost:5000"
	defaultTimeoutSeconds = 30
)

// Load locates and parses the fruitvision config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{APIURL: defaultAPIURL, Timeout: defaultTimeoutSeconds * time.Second}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parsed struct {
		APIURL         string `toml:"api_url"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
	}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if trimmed := strings.TrimSpace(parsed.APIURL); trimmed != "" {
		cfg.APIURL = trimmed
	}
	if parsed.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(parsed.TimeoutSeconds) * time.Second
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
