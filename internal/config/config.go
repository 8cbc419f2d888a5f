package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the recognized image extensions, navigation and zoom behavior,
// rename settings, and window parameters.
type Config struct {
	Extensions []string `yaml:"extensions"` // Recognized image file patterns
	Navigation struct {
		Wrap bool `yaml:"wrap"` // Wrap around at the ends of the image set
	} `yaml:"navigation"`
	Zoom struct {
		Min float64 `yaml:"min"` // Minimum zoom level
		Max float64 `yaml:"max"` // Maximum zoom level
		In  float64 `yaml:"in"`  // Zoom-in step multiplier
		Out float64 `yaml:"out"` // Zoom-out step multiplier
	} `yaml:"zoom"`
	Rename struct {
		DateFormat string `yaml:"date_format"` // Go time layout for the date prefix
	} `yaml:"rename"`
	Window struct {
		Width  int `yaml:"width"`  // Initial window width
		Height int `yaml:"height"` // Initial window height
	} `yaml:"window"`
	Trash struct {
		Dir string `yaml:"dir"` // Override trash directory (empty = platform default)
	} `yaml:"trash"`
	Watch struct {
		Enabled bool `yaml:"enabled"` // Refresh the image set on directory changes
	} `yaml:"watch"`
}

// LoadConfig loads configuration from the default location
// (~/.config/miniviewer/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "miniviewer", "config.yaml")
	return LoadConfigFile(configPath)
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "miniviewer", "config.yaml"), nil
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	// Try to read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Booleans whose default is true need pointer decoding to tell
	// "absent" apart from "false"
	var flags struct {
		Navigation struct {
			Wrap *bool `yaml:"wrap"`
		} `yaml:"navigation"`
		Watch struct {
			Enabled *bool `yaml:"enabled"`
		} `yaml:"watch"`
	}
	if err := yaml.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if len(tempCfg.Extensions) > 0 {
		cfg.Extensions = tempCfg.Extensions
	}
	if flags.Navigation.Wrap != nil {
		cfg.Navigation.Wrap = *flags.Navigation.Wrap
	}

	if tempCfg.Zoom.Min > 0 {
		cfg.Zoom.Min = tempCfg.Zoom.Min
	}
	if tempCfg.Zoom.Max > 0 {
		cfg.Zoom.Max = tempCfg.Zoom.Max
	}
	if tempCfg.Zoom.In > 0 {
		cfg.Zoom.In = tempCfg.Zoom.In
	}
	if tempCfg.Zoom.Out > 0 {
		cfg.Zoom.Out = tempCfg.Zoom.Out
	}

	if tempCfg.Rename.DateFormat != "" {
		cfg.Rename.DateFormat = tempCfg.Rename.DateFormat
	}

	if tempCfg.Window.Width > 0 {
		cfg.Window.Width = tempCfg.Window.Width
	}
	if tempCfg.Window.Height > 0 {
		cfg.Window.Height = tempCfg.Window.Height
	}

	if tempCfg.Trash.Dir != "" {
		cfg.Trash.Dir = tempCfg.Trash.Dir
	}
	if flags.Watch.Enabled != nil {
		cfg.Watch.Enabled = *flags.Watch.Enabled
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	// Recognized extensions, matched case-insensitively
	cfg.Extensions = []string{
		"*.heic", "*.heif",
		"*.jpg", "*.jpeg",
		"*.png", "*.gif",
		"*.webp", "*.bmp",
		"*.tif", "*.tiff",
	}

	cfg.Navigation.Wrap = true

	cfg.Zoom.Min = 0.05
	cfg.Zoom.Max = 8.0
	cfg.Zoom.In = 1.25
	cfg.Zoom.Out = 0.8

	cfg.Rename.DateFormat = "2006-01-02_"

	cfg.Window.Width = 1100
	cfg.Window.Height = 800

	cfg.Trash.Dir = ""
	cfg.Watch.Enabled = true

	return cfg
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	// Create parent directories if they don't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal the config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write the data to the file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid.
// Returns error if any settings are invalid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one image extension pattern is required")
	}
	for i, ext := range c.Extensions {
		if ext == "" {
			return fmt.Errorf("extension %d: pattern cannot be empty", i)
		}
	}

	if c.Zoom.Min <= 0 {
		return fmt.Errorf("zoom min must be > 0")
	}
	if c.Zoom.Max <= c.Zoom.Min {
		return fmt.Errorf("zoom max must be greater than zoom min")
	}
	if c.Zoom.In <= 1 {
		return fmt.Errorf("zoom in step must be > 1")
	}
	if c.Zoom.Out <= 0 || c.Zoom.Out >= 1 {
		return fmt.Errorf("zoom out step must be between 0 and 1")
	}

	if c.Rename.DateFormat == "" {
		return fmt.Errorf("rename date format is required")
	}

	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("window dimensions must be positive")
	}

	return nil
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Extensions = []string{"*.jpg", "*.jpeg", "*.png", "*.gif"}
	cfg.Watch.Enabled = false
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}
