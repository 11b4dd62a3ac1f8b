package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the endpoints, model and logging settings retroai uses.
type Config struct {
	SearchURL   string
	MetadataURL string
	Model       string
	OllamaBin   string
	Rows        int
	LogFile     string
	LogLevel    string
}

const (
	defaultConfigPath  = "~/.config/retroai/config.toml"
	defaultSearchURL   = "https://archive.org/advancedsearch.php"
	defaultMetadataURL = "https://archive.org/metadata/"
	defaultModel       = "llama3"
	defaultOllamaBin   = "ollama"
	defaultRows        = 10
	maxRows            = 100
	defaultLogFile     = "~/.local/state/retroai/retroai.log"
	defaultLogLevel    = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		SearchURL:   defaultSearchURL,
		MetadataURL: defaultMetadataURL,
		Model:       defaultModel,
		OllamaBin:   defaultOllamaBin,
		Rows:        defaultRows,
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
	}
}

// Load locates and parses the retroai config, falling back to defaults when missing.
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
		SearchURL   string `toml:"search_url"`
		MetadataURL string `toml:"metadata_url"`
		Model       string `toml:"model"`
		OllamaBin   string `toml:"ollama_bin"`
		Rows        int    `toml:"rows"`
		LogFile     string `toml:"log_file"`
		LogLevel    string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.SearchURL = orDefault(raw.SearchURL, defaultSearchURL)
	cfg.MetadataURL = orDefault(raw.MetadataURL, defaultMetadataURL)
	cfg.Model = orDefault(raw.Model, defaultModel)
	cfg.OllamaBin = orDefault(raw.OllamaBin, defaultOllamaBin)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	switch {
	case raw.Rows <= 0:
		cfg.Rows = defaultRows
	case raw.Rows > maxRows:
		cfg.Rows = maxRows
	default:
		cfg.Rows = raw.Rows
	}

	return cfg, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
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
