// Package config loads service configuration from defaults, an optional
// YAML file and AMIOKAY_-prefixed environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// defaultConfigPaths lists where a config file is searched, first hit wins.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/amiokay/config.yaml",
}

// envPrefix prefixes every environment override, e.g. AMIOKAY_SERVER_PORT.
const envPrefix = "AMIOKAY_"

type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Log        LogConfig        `koanf:"log"`
	Generation GenerationConfig `koanf:"generation"`
	Cooccur    CooccurConfig    `koanf:"cooccur"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

type GenerationConfig struct {
	BaseURL string        `koanf:"base_url"`
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

type CooccurConfig struct {
	MinSupport int `koanf:"min_support"`
}

func defaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Path: "data/amiokay.db"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Generation: GenerationConfig{
			BaseURL: "https://generativelanguage.googleapis.com",
			Model:   "gemini-2.0-flash",
			Timeout: 15 * time.Second,
		},
		Cooccur: CooccurConfig{MinSupport: 10},
	}
}

// Load builds the configuration: defaults, then config file, then env vars.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// envTransform maps AMIOKAY_SERVER_PORT to server.port. Only the first
// underscore becomes a section delimiter; the remainder keeps underscores
// so keys like generation.api_key resolve.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

func findConfigFile() string {
	if p := os.Getenv("AMIOKAY_CONFIG"); p != "" {
		return p
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}
	if c.Cooccur.MinSupport < 1 {
		return fmt.Errorf("cooccur min_support must be at least 1, got %d", c.Cooccur.MinSupport)
	}
	if c.Generation.Timeout <= 0 {
		return fmt.Errorf("generation timeout must be positive")
	}
	return nil
}
