package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Archive  ArchiveConfig  `toml:"archive"`
	Audio    AudioConfig    `toml:"audio"`
	Database DatabaseConfig `toml:"database"`
}

// ArchiveConfig contains archive behavior settings.
type ArchiveConfig struct {
	LoadingSeconds int  `toml:"loading_seconds"` // Duration of the loading screen before content reveal
	MaxNotes       int  `toml:"max_notes"`       // Collection cap; oldest notes are evicted past this
	RememberUser   bool `toml:"remember_user"`   // Auto-select the last remembered user on startup
}

// AudioConfig contains playback settings.
type AudioConfig struct {
	DefaultVolume float64 `toml:"default_volume"` // Initial volume when none has been persisted (0.0-1.0)
	Autoplay      bool    `toml:"autoplay"`       // Start the user's track on selection
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
