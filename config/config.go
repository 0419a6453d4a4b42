// Package config loads the settings of the csm command.
//
// Settings are layered, from lowest to highest precedence: built-in
// defaults, a YAML file, then CSM_* environment variables. Command-line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/consortium"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CSM_"

// EnvConfig names the environment variable holding the path to the YAML file.
const EnvConfig = EnvPrefix + "CONFIG"

// Config holds the settings of the csm command.
type Config struct {
	// DB is the path to the SQLite database.
	DB string `koanf:"db"`
	// Currency of every amount in the pool (ISO 4217).
	Currency string `koanf:"currency"`
	// Addr is the listen address of the HTTP API.
	Addr string `koanf:"addr"`

	LogLevel  string `koanf:"log_level"`  // debug, info, warn, error
	LogFormat string `koanf:"log_format"` // pretty or json
	LogFile   string `koanf:"log_file"`   // optional rotating log file
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DB:        "consortium.db",
		Currency:  consortium.DefaultCurrency,
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "pretty",
	}
}

// Load builds the Config. The YAML file is path if not empty, else the file
// named by CSM_CONFIG if set. Environment variables map to keys by dropping
// the prefix and lowering the case: CSM_LOG_LEVEL sets log_level.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %q: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no usable fallback.
func (c *Config) Validate() error {
	var errs []error
	if c.DB == "" {
		errs = append(errs, errors.New("db must not be empty"))
	}
	if err := consortium.ValidateCurrency(c.Currency); err != nil {
		errs = append(errs, fmt.Errorf("currency: %w", err))
	}
	switch c.LogFormat {
	case "pretty", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be pretty or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
