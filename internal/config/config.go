// Package config loads observer and track settings from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-solar/internal/astro"
	"github.com/litescript/ls-solar/internal/logging"
	"github.com/litescript/ls-solar/internal/spa"
	"github.com/litescript/ls-solar/internal/track"
)

// FileName is the config file name searched for in standard locations.
const FileName = "ls-solar.yaml"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Site       astro.Location   `yaml:"site"`
	Atmosphere astro.Atmosphere `yaml:"atmosphere"`
	Surface    astro.Surface    `yaml:"surface"`
	DeltaT     float64          `yaml:"delta_t"` // seconds, TT - UT
	Track      TrackConfig      `yaml:"track"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// TrackConfig holds sampling settings.
type TrackConfig struct {
	Interval time.Duration `yaml:"interval"`
	Steps    int           `yaml:"steps"`
	Model    string        `yaml:"model"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	Refresh time.Duration `yaml:"refresh"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	file := logging.DefaultFileConfig("")
	return &Config{
		Site: astro.Location{
			Latitude:  42.364908,
			Longitude: -71.112828,
			Name:      "Cambridge, MA",
		},
		Atmosphere: astro.StandardAtmosphere(),
		DeltaT:     69.2,
		Track: TrackConfig{
			Interval: track.DefaultInterval,
			Steps:    track.DefaultSteps,
			Model:    string(track.ModelSimple),
		},
		UI: UIConfig{
			Refresh: time.Second,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  file.MaxSizeMB,
			MaxBackups: file.MaxBackups,
			MaxAgeDays: file.MaxAgeDays,
		},
	}
}

// Load returns defaults overlaid with the file at path. An empty path
// searches the standard locations and falls back to defaults alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		filepath.Join(".", FileName),
		filepath.Join(Dir(), FileName),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Dir returns the OS-appropriate config directory.
func Dir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "ls-solar")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "ls-solar")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ls-solar")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "ls-solar")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return fmt.Errorf("%w: site: %w", ErrInvalid, err)
	}
	if err := c.Atmosphere.OrStandard().Validate(); err != nil {
		return fmt.Errorf("%w: atmosphere: %w", ErrInvalid, err)
	}
	if err := c.Surface.Validate(); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalid, err)
	}
	if math.IsNaN(c.DeltaT) || math.Abs(c.DeltaT) > spa.MaxDeltaT {
		return fmt.Errorf("%w: delta_t %v outside ±%v s", ErrInvalid, c.DeltaT, spa.MaxDeltaT)
	}
	if err := c.Params(time.Time{}).Validate(); err != nil {
		return fmt.Errorf("%w: track: %w", ErrInvalid, err)
	}
	if c.UI.Refresh <= 0 {
		return fmt.Errorf("%w: ui.refresh %v must be positive", ErrInvalid, c.UI.Refresh)
	}
	return nil
}

// Input returns the solar position input described by c.
func (c *Config) Input() spa.Input {
	return spa.Input{
		Location:   c.Site,
		Atmosphere: c.Atmosphere,
		Surface:    c.Surface,
		DeltaT:     c.DeltaT,
	}
}

// Params returns track parameters starting at start. An unknown model
// name is carried through so Validate can report it.
func (c *Config) Params(start time.Time) track.Params {
	m, err := track.ParseModel(c.Track.Model)
	if err != nil {
		m = track.Model(c.Track.Model)
	}
	return track.Params{
		Input:    c.Input(),
		Start:    start,
		Interval: c.Track.Interval,
		Steps:    c.Track.Steps,
		Model:    m,
	}
}

// FileLogging returns the rotating file settings, or a zero value when no
// log file is configured.
func (c *Config) FileLogging() logging.FileConfig {
	if c.Logging.LogFile == "" {
		return logging.FileConfig{}
	}
	cfg := logging.DefaultFileConfig(c.Logging.LogFile)
	if c.Logging.MaxSizeMB > 0 {
		cfg.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		cfg.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		cfg.MaxAgeDays = c.Logging.MaxAgeDays
	}
	return cfg
}
