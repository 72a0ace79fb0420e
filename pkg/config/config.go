/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/segmentio/ksuid"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendPebble = "pebble"

	// DefaultMaxPayloadSize matches the record store default of 1 MiB.
	DefaultMaxPayloadSize = 1 << 20
)

// Config represents the recordstore configuration
type Config struct {
	DataDir        string  `yaml:"data_dir"`
	Backend        string  `yaml:"backend"`
	MaxPayloadSize int     `yaml:"max_payload_size"`
	InstanceID     string  `yaml:"instance_id"`
	Server         Server  `yaml:"server"`
	Logging        Logging `yaml:"logging"`
}

// Server contains HTTP server configuration
type Server struct {
	Bind   string `yaml:"bind"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir:        "./data",
		Backend:        BackendFile,
		MaxPayloadSize: DefaultMaxPayloadSize,
		Server: Server{
			Bind:   "127.0.0.1",
			Port:   8080,
			APIKey: "auto",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Backend {
	case BackendFile, BackendPebble:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendPebble)
	}
	if c.MaxPayloadSize <= 0 {
		return fmt.Errorf("max_payload_size must be positive, got %d", c.MaxPayloadSize)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	if c.InstanceID != "" {
		if _, err := ksuid.Parse(c.InstanceID); err != nil {
			return fmt.Errorf("invalid instance_id: %w", err)
		}
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Fields missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates and saves a new configuration with a generated
// API key and instance id
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Server.APIKey = apiKey
	config.InstanceID = ksuid.New().String()

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./recordstore.yaml"
	}

	// ~/.config/recordstore/config.yaml
	configDir := filepath.Join(homeDir, ".config", "recordstore")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
