package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"textdiff/internal/diffview"
	"textdiff/internal/textdiff"
)

const (
	configDirName  = "textdiff"
	configFileName = "config.json"
)

type AppConfig struct {
	ContextLines  int           `json:"context_lines"`
	ViewMode      diffview.Mode `json:"view_mode"`
	Granularity   string        `json:"granularity"`
	Algorithm     string        `json:"algorithm"`
	MaxLineBytes  int           `json:"max_line_bytes"`
	MaxInputBytes int           `json:"max_input_bytes"`
	// Theme names a chroma style; empty selects the built-in dark theme.
	Theme string `json:"theme"`
}

func Default() AppConfig {
	return AppConfig{
		ContextLines:  -1,
		ViewMode:      diffview.ModeSideBySide,
		Granularity:   textdiff.GranularityChar.String(),
		Algorithm:     textdiff.AlgorithmAnchored.String(),
		MaxLineBytes:  textdiff.DefaultMaxLineBytes,
		MaxInputBytes: textdiff.DefaultMaxInputBytes,
	}
}

func Load() (AppConfig, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return AppConfig{}, "", err
	}
	cfg, err := LoadFromPath(path)
	return cfg, path, err
}

// LoadFromPath reads the config at path. Keys missing from the file keep their Default values; a missing or blank file
// yields Default.
func LoadFromPath(path string) (AppConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return AppConfig{}, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Granularity = strings.ToLower(strings.TrimSpace(cfg.Granularity))
	cfg.Algorithm = strings.ToLower(strings.TrimSpace(cfg.Algorithm))
	cfg.Theme = strings.TrimSpace(cfg.Theme)

	if _, err := cfg.Options(); err != nil {
		return AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts cfg into diff options. The error is a *textdiff.ConfigError naming the offending key.
func (c AppConfig) Options() (textdiff.Options, error) {
	g, err := textdiff.ParseGranularity(c.Granularity)
	if err != nil {
		return textdiff.Options{}, err
	}
	a, err := textdiff.ParseAlgorithm(c.Algorithm)
	if err != nil {
		return textdiff.Options{}, err
	}
	opts := textdiff.Options{
		ContextLines:  c.ContextLines,
		Granularity:   g,
		Algorithm:     a,
		MaxLineBytes:  c.MaxLineBytes,
		MaxInputBytes: c.MaxInputBytes,
	}
	if err := opts.Validate(); err != nil {
		return textdiff.Options{}, err
	}
	return opts, nil
}

func DefaultPath() (string, error) {
	home, err := configHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func configHome() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}
