// Package config provides configuration loading and validation for gcline.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mastercactapus/gcline/gcode"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Default values for configuration.
const (
	DefaultPort        = "/dev/ttyUSB0"
	DefaultBaud        = 115200
	DefaultReadTimeout = 30 * time.Second
	DefaultListen      = ":9091"
	DefaultLogLevel    = "info"
	DefaultStartLine   = 1
)

// EnvPort overrides the configured serial port.
const EnvPort = "GCLINE_PORT"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Port is the serial device of the printer.
	Port        string        `yaml:"port"`
	Baud        int           `yaml:"baud"`
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// Listen is the address the HTTP API binds to.
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`

	// StartLine is the first line number assigned when rendering a job.
	StartLine int64 `yaml:"start_line"`

	Multipliers Multipliers `yaml:"multipliers"`
}

// Multipliers mirrors gcode.Multipliers; zero leaves a value unset.
type Multipliers struct {
	Speed     float64 `yaml:"speed"`
	Extrusion float64 `yaml:"extrusion"`
	Travel    float64 `yaml:"travel"`
}

func (m Multipliers) Gcode() gcode.Multipliers {
	return gcode.Multipliers{Speed: m.Speed, Extrusion: m.Extrusion, Travel: m.Travel}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
		Listen:      DefaultListen,
		LogLevel:    DefaultLogLevel,
		StartLine:   DefaultStartLine,
	}
}

// Load reads and validates a configuration file. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if port := os.Getenv(EnvPort); port != "" {
		cfg.Port = port
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if cfg.Baud <= 0 {
		return errors.New("baud: must be positive")
	}
	if cfg.ReadTimeout < 0 {
		return errors.New("read_timeout: must not be negative")
	}
	if cfg.StartLine < 0 {
		return errors.New("start_line: must not be negative")
	}
	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	for name, v := range map[string]float64{
		"speed":     cfg.Multipliers.Speed,
		"extrusion": cfg.Multipliers.Extrusion,
		"travel":    cfg.Multipliers.Travel,
	} {
		if v < 0 {
			return fmt.Errorf("multipliers.%s: must not be negative", name)
		}
	}
	return nil
}
