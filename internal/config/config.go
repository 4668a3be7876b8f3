// Package config loads the application configuration from an optional YAML
// file layered over built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/forecast-terminal/internal/database"
	"github.com/ngmaloney/forecast-terminal/internal/forecast"
	"github.com/ngmaloney/forecast-terminal/internal/log"
	"github.com/ngmaloney/forecast-terminal/internal/models"
)

// Config is the application configuration
type Config struct {
	Spot     string        `yaml:"spot"`
	Variant  string        `yaml:"variant"`
	Timezone string        `yaml:"timezone"`
	Delay    time.Duration `yaml:"delay"`
	DBPath   string        `yaml:"db_path"`
	LogPath  string        `yaml:"log_path"`
	Debug    bool          `yaml:"debug"`

	// Generator holds per-field overrides applied on top of the variant preset
	Generator yaml.Node `yaml:"generator"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Spot:     models.DefaultSpotName,
		Variant:  forecast.VariantStandard,
		Timezone: "Local",
		Delay:    forecast.DefaultDelay,
		DBPath:   database.DBPath(),
		LogPath:  log.DefaultPath(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Delay < 0 {
		return nil, fmt.Errorf("delay must not be negative, got %s", cfg.Delay)
	}

	return cfg, nil
}

// ForecastConfig resolves the variant preset and applies the generator
// overrides from the file.
func (c *Config) ForecastConfig() (forecast.Config, error) {
	fc, err := forecast.Variant(c.Variant)
	if err != nil {
		return forecast.Config{}, err
	}

	if !c.Generator.IsZero() {
		if err := c.Generator.Decode(&fc); err != nil {
			return forecast.Config{}, fmt.Errorf("decoding generator overrides: %w", err)
		}
	}

	if err := fc.Validate(); err != nil {
		return forecast.Config{}, err
	}
	return fc, nil
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
