// Package config loads and validates the client configuration from an
// optional YAML file, a .env file, and environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Audio   AudioConfig   `yaml:"audio" json:"audio"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// BackendConfig locates the assistant backend.
type BackendConfig struct {
	// URL is the full query endpoint, e.g. http://localhost:8000/api/query.
	URL string `yaml:"url" json:"url" jsonschema:"title=Backend URL,description=Full URL of the assistant query endpoint"`
}

// AudioConfig tunes microphone capture.
type AudioConfig struct {
	Backend    string `yaml:"backend" json:"backend" jsonschema:"enum=miniaudio,enum=portaudio,default=miniaudio"`
	BufferSize int    `yaml:"buffer_size" json:"buffer_size" jsonschema:"default=512"`
}

// LoggingConfig tunes log output.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `yaml:"format" json:"format" jsonschema:"enum=json,enum=text,default=text"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Backend: BackendConfig{URL: "http://localhost:8000/api/query"},
		Audio:   AudioConfig{Backend: "miniaudio", BufferSize: 512},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the configuration file when path is non-empty, then applies
// environment overrides. A .env file in the working directory is honored.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("CALCHAT_BACKEND_URL"); ok {
		c.Backend.URL = v
	}
	if v, ok := os.LookupEnv("CALCHAT_AUDIO_BACKEND"); ok {
		c.Audio.Backend = v
	}
	if v, ok := os.LookupEnv("CALCHAT_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("CALCHAT_LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return fmt.Errorf("backend config: %w", err)
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

func (b *BackendConfig) Validate() error {
	if b.URL == "" {
		return fmt.Errorf("url cannot be empty")
	}

	parsed, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("url is not valid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url must include a host")
	}

	return nil
}

func (a *AudioConfig) Validate() error {
	switch a.Backend {
	case "miniaudio", "portaudio":
	default:
		return fmt.Errorf("backend must be miniaudio or portaudio, got %q", a.Backend)
	}

	if a.BufferSize < 64 {
		return fmt.Errorf("buffer_size must be at least 64 samples, got %d", a.BufferSize)
	}

	return nil
}

func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got %q", l.Level)
	}

	if l.Format != "json" && l.Format != "text" {
		return fmt.Errorf("format must be json or text, got %q", l.Format)
	}

	return nil
}

// Schema returns the JSON schema describing the configuration file.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&Config{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config schema: %w", err)
	}
	return data, nil
}
