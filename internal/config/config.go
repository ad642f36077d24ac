// Package config provides configuration loading and validation for the API
// server. It uses koanf to merge an optional YAML file with environment
// variables; environment variables take precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration values for the API server.
type Config struct {
	// Server settings
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`

	// Country data source. DatasetPath points at a JSON or CSV file,
	// DBPath at a SQLite database seeded on first use. Both empty means
	// the embedded seed collection.
	DatasetPath string `koanf:"dataset_path"`
	DBPath      string `koanf:"db_path"`

	// WeightsPath optionally points at a JSON file overriding the default
	// scoring weight distribution.
	WeightsPath string `koanf:"weights_path"`
}

// Configuration validation errors.
var (
	ErrInvalidPort        = errors.New("PORT must be a valid integer")
	ErrPortOutOfRange     = errors.New("port must be between 1 and 65535")
	ErrUnknownEnv         = errors.New(`env must be "development", "staging", "production", or "test"`)
	ErrConflictingSources = errors.New("dataset_path and db_path are mutually exclusive")
)

// Default values.
const (
	DefaultPort = 8080
	DefaultEnv  = "development"
)

// Load reads configuration from an optional YAML file and environment
// variables, with the environment taking precedence. It returns the config
// and a slice of validation errors (empty if valid).
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	var loadErrs []error

	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	port, portErr := getEnvIntOrDefaultMulti([]string{"ADVISOR_PORT", "PORT"}, k.Int("port"), DefaultPort)
	if portErr != nil {
		loadErrs = append(loadErrs, portErr)
	}

	cfg := &Config{
		Port:        port,
		Env:         getEnvOrDefaultMulti([]string{"ADVISOR_ENV", "ENV", "GO_ENV"}, k.String("env"), DefaultEnv),
		DatasetPath: getEnvOrKoanf("DATASET_PATH", k, "dataset_path"),
		DBPath:      getEnvOrKoanf("DB_PATH", k, "db_path"),
		WeightsPath: getEnvOrKoanf("WEIGHTS_PATH", k, "weights_path"),
	}

	errs := cfg.Validate()
	errs = append(loadErrs, errs...)

	return cfg, errs
}

// getEnvOrKoanf returns the environment variable value if set, otherwise the koanf value.
func getEnvOrKoanf(envKey string, k *koanf.Koanf, koanfKey string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	return k.String(koanfKey)
}

// getEnvOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first non-empty value found, otherwise the koanf value, or default.
func getEnvOrDefaultMulti(envKeys []string, koanfVal string, defaultVal string) string {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			return val
		}
	}
	if koanfVal != "" {
		return koanfVal
	}
	return defaultVal
}

// getEnvIntOrDefaultMulti tries multiple environment variable keys in order.
// Returns the first value found parsed as an integer, otherwise the koanf
// value, or default. A set but unparsable variable is an error.
func getEnvIntOrDefaultMulti(envKeys []string, koanfVal int, defaultVal int) (int, error) {
	for _, key := range envKeys {
		if val := os.Getenv(key); val != "" {
			i, err := strconv.Atoi(val)
			if err != nil {
				return 0, fmt.Errorf("%s must be a valid integer: %w", key, ErrInvalidPort)
			}
			return i, nil
		}
	}
	if koanfVal != 0 {
		return koanfVal, nil
	}
	return defaultVal, nil
}

// Validate checks the configuration. Returns a slice of validation errors
// (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, ErrPortOutOfRange)
	}

	switch c.Env {
	case "development", "staging", "production", "test":
	default:
		errs = append(errs, ErrUnknownEnv)
	}

	if c.DatasetPath != "" && c.DBPath != "" {
		errs = append(errs, ErrConflictingSources)
	}

	return errs
}

// LogSummary returns the effective configuration for startup logging.
func (c *Config) LogSummary() map[string]string {
	dataset := c.DatasetPath
	switch {
	case c.DBPath != "":
		dataset = "sqlite:" + c.DBPath
	case dataset == "":
		dataset = "(embedded seed)"
	}
	weights := c.WeightsPath
	if weights == "" {
		weights = "(defaults)"
	}
	return map[string]string{
		"port":    strconv.Itoa(c.Port),
		"env":     c.Env,
		"dataset": dataset,
		"weights": weights,
	}
}
