package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := strings.Join([]string{
		"backend:",
		"  url: https://assistant.example.com/api/query",
		"audio:",
		"  backend: portaudio",
		"  buffer_size: 1024",
		"logging:",
		"  level: debug",
		"  format: json",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}

	if config.Backend.URL != "https://assistant.example.com/api/query" {
		t.Errorf("unexpected backend url %q", config.Backend.URL)
	}
	if config.Audio.Backend != "portaudio" {
		t.Errorf("unexpected audio backend %q", config.Audio.Backend)
	}
	if config.Audio.BufferSize != 1024 {
		t.Errorf("unexpected buffer size %d", config.Audio.BufferSize)
	}
	if config.Logging.Level != "debug" || config.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", config.Logging)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "backend:\n  url: http://localhost:9000/query\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}

	if config.Backend.URL != "http://localhost:9000/query" {
		t.Errorf("unexpected backend url %q", config.Backend.URL)
	}
	if config.Audio.Backend != "miniaudio" {
		t.Errorf("expected default audio backend, got %q", config.Audio.Backend)
	}
	if config.Logging.Level != "info" {
		t.Errorf("expected default log level, got %q", config.Logging.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	contents := "backend:\n  url: http://localhost:9000/query\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CALCHAT_BACKEND_URL", "https://override.example.com/query")
	t.Setenv("CALCHAT_LOG_LEVEL", "warn")

	config, err := Load(path)
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}

	if config.Backend.URL != "https://override.example.com/query" {
		t.Errorf("expected env override for backend url, got %q", config.Backend.URL)
	}
	if config.Logging.Level != "warn" {
		t.Errorf("expected env override for log level, got %q", config.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Backend.URL = "" }},
		{"bad scheme", func(c *Config) { c.Backend.URL = "ftp://example.com/query" }},
		{"no host", func(c *Config) { c.Backend.URL = "http:///query" }},
		{"unknown audio backend", func(c *Config) { c.Audio.Backend = "alsa" }},
		{"tiny buffer", func(c *Config) { c.Audio.BufferSize = 16 }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			config := Default()
			tc.mutate(config)
			if err := config.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("expected schema to generate, got %v", err)
	}
	for _, want := range []string{"backend", "audio", "logging", "buffer_size"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected schema to mention %q", want)
		}
	}
}
