package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Store     StoreConfig     `mapstructure:"store"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// StoreConfig locates the JSON document store holding the persisted
// structure.
type StoreConfig struct {
	Dir      string `mapstructure:"dir"`
	Filename string `mapstructure:"filename"`
}

// ServerConfig contains serve-mode configuration
type ServerConfig struct {
	Port          int    `mapstructure:"port"`
	SessionAPIKey string `mapstructure:"session_api_key"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// Load loads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := postProcess(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Store defaults
	viper.SetDefault("store.dir", "json_files")
	viper.SetDefault("store.filename", "file_structure.json")

	// Server defaults
	viper.SetDefault("server.port", 8000)

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)

	// Environment variable mappings
	viper.BindEnv("store.dir", "FILESTRUCT_STORE_DIR")
	viper.BindEnv("server.session_api_key", "SESSION_API_KEY")
	viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) error {
	// Resolve the store directory against the working directory
	if !filepath.IsAbs(cfg.Store.Dir) {
		abs, err := filepath.Abs(cfg.Store.Dir)
		if err != nil {
			return err
		}
		cfg.Store.Dir = abs
	}

	// Get session API key from environment if not set
	if cfg.Server.SessionAPIKey == "" {
		cfg.Server.SessionAPIKey = os.Getenv("SESSION_API_KEY")
	}

	return nil
}
