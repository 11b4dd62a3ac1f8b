package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SearchURL != defaultSearchURL {
		t.Fatalf("SearchURL = %q, want %q", cfg.SearchURL, defaultSearchURL)
	}
	if cfg.MetadataURL != defaultMetadataURL {
		t.Fatalf("MetadataURL = %q, want %q", cfg.MetadataURL, defaultMetadataURL)
	}
	if cfg.Model != defaultModel || cfg.OllamaBin != defaultOllamaBin {
		t.Fatalf("Model/OllamaBin = %q/%q, want %q/%q", cfg.Model, cfg.OllamaBin, defaultModel, defaultOllamaBin)
	}
	if cfg.Rows != defaultRows {
		t.Fatalf("Rows = %d, want %d", cfg.Rows, defaultRows)
	}

	wantLogFile, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLogFile {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLogFile)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
search_url = "  http://localhost:9000/advancedsearch.php  "
metadata_url = "http://localhost:9000/metadata/"
model = " mistral "
ollama_bin = "/opt/ollama/bin/ollama"
rows = 25
log_file = "  ~/logs/retroai.log  "
log_level = "DEBUG"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SearchURL != "http://localhost:9000/advancedsearch.php" {
		t.Fatalf("SearchURL = %q, want trimmed override", cfg.SearchURL)
	}
	if cfg.Model != "mistral" {
		t.Fatalf("Model = %q, want mistral", cfg.Model)
	}
	if cfg.OllamaBin != "/opt/ollama/bin/ollama" {
		t.Fatalf("OllamaBin = %q, want /opt/ollama/bin/ollama", cfg.OllamaBin)
	}
	if cfg.Rows != 25 {
		t.Fatalf("Rows = %d, want 25", cfg.Rows)
	}
	if cfg.LogFile != filepath.Join(home, "logs/retroai.log") {
		t.Fatalf("LogFile = %q, want it expanded under HOME", cfg.LogFile)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
search_url = "   "
model = ""
rows = -4
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SearchURL != defaultSearchURL {
		t.Fatalf("SearchURL = %q, want %q", cfg.SearchURL, defaultSearchURL)
	}
	if cfg.Model != defaultModel {
		t.Fatalf("Model = %q, want %q", cfg.Model, defaultModel)
	}
	if cfg.Rows != defaultRows {
		t.Fatalf("Rows = %d, want %d", cfg.Rows, defaultRows)
	}
}

func TestLoad_RowsAreCapped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`rows = 5000`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Rows != maxRows {
		t.Fatalf("Rows = %d, want %d", cfg.Rows, maxRows)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`model = [`), 0o600); err != nil {
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
