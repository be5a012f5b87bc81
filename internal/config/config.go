// Package config loads mapconv settings from a YAML file, a .env file and
// MAPCONV_* environment variables. Later sources override earlier ones;
// command-line flags are applied by the caller on top.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"mapconv/internal/tsrg"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "mapconv.yaml"

const envPrefix = "MAPCONV_"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Hierarchy string `yaml:"hierarchy"`
	Jar       string `yaml:"jar"`
	Direction string `yaml:"direction" validate:"omitempty,oneof=obf-to-named named-to-obf"`
	// Workers is the serializer worker count; 0 means one per CPU.
	Workers  int    `yaml:"workers" validate:"gte=0"`
	Fields   bool   `yaml:"fields"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	// AllowRedundant accepts exact repeats of member lines.
	AllowRedundant bool `yaml:"allow_redundant"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Direction: tsrg.ObfToNamed.String(),
		Workers:   1,
		Fields:    true,
		LogLevel:  "info",
	}
}

// Locate returns explicit when set, otherwise DefaultFile if it exists,
// otherwise "".
func Locate(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile
	}

	return ""
}

// LoadConfig builds a Config from defaults, the YAML file at path (skipped
// when path is empty) and the environment. envFiles are loaded into the
// environment first; without them a .env in the working directory is loaded
// if present.
func LoadConfig(path string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	cfg := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(file))
		dec.KnownFields(true)

		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"INPUT":     &c.Input,
		"OUTPUT":    &c.Output,
		"HIERARCHY": &c.Hierarchy,
		"JAR":       &c.Jar,
		"DIRECTION": &c.Direction,
		"LOG_LEVEL": &c.LogLevel,
	}

	for key, dst := range strs {
		if v := os.Getenv(envPrefix + key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv(envPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS %q: %w", envPrefix, v, err)
		}

		c.Workers = n
	}

	bools := map[string]*bool{
		"FIELDS":          &c.Fields,
		"ALLOW_REDUNDANT": &c.AllowRedundant,
	}

	for key, dst := range bools {
		v := os.Getenv(envPrefix + key)
		if v == "" {
			continue
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s %q: %w", envPrefix, key, v, err)
		}

		*dst = b
	}

	return nil
}

// Validate checks values that have a fixed vocabulary.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// ParsedDirection returns the configured output direction.
func (c *Config) ParsedDirection() (tsrg.Direction, error) {
	return tsrg.ParseDirection(c.Direction)
}

// Level returns the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level: %w", err)
	}

	return lvl, nil
}
