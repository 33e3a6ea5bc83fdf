// Package config loads the application configuration from a YAML file,
// with environment overrides for the connection settings so deployments
// can keep credentials out of the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Risk     RiskConfig     `yaml:"risk"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RiskConfig struct {
	ShiftType string        `yaml:"shift_type"`
	Curves    []CurveConfig `yaml:"curves"`
	Deltas    []DeltaConfig `yaml:"deltas"`
}

type CurveConfig struct {
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// DeltaConfig is one entry of the portfolio delta vector: the PV change
// per unit move of the named curve node.
type DeltaConfig struct {
	Curve    string  `yaml:"curve"`
	Currency string  `yaml:"currency"`
	Label    string  `yaml:"label"`
	Value    float64 `yaml:"value"`
}

// Load reads and validates the configuration file, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrideString(&c.Database.Host, "DB_HOST")
	overrideInt(&c.Database.Port, "DB_PORT")
	overrideString(&c.Database.User, "DB_USER")
	overrideString(&c.Database.Password, "DB_PASSWORD")
	overrideString(&c.Database.Name, "DB_NAME")
	overrideString(&c.Redis.Addr, "REDIS_ADDR")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")
}

func overrideString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func overrideInt(dst *int, name string) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	switch c.Risk.ShiftType {
	case "absolute", "relative":
	default:
		return fmt.Errorf("risk.shift_type must be absolute or relative, got %q", c.Risk.ShiftType)
	}
	if len(c.Risk.Curves) == 0 {
		return errors.New("risk.curves must list at least one curve")
	}
	for i, cv := range c.Risk.Curves {
		if cv.Name == "" || cv.Currency == "" {
			return fmt.Errorf("risk.curves[%d]: name and currency are required", i)
		}
	}
	for i, d := range c.Risk.Deltas {
		if d.Curve == "" || d.Label == "" {
			return fmt.Errorf("risk.deltas[%d]: curve and label are required", i)
		}
	}
	return nil
}
