// Package config loads container settings from a YAML file and the
// environment, and turns them into depot options.
//
// Environment variables override the file:
//
//	DEPOT_SERVER_MODE      true on server processes (disables singleton reuse)
//	DEPOT_LOG_LEVEL        debug, info, warn, error
//	DEPOT_LOG_DEVELOPMENT  true for human-readable development logs
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/zerr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/xraph/depot"
)

// Config holds container settings.
type Config struct {
	ServerMode bool      `yaml:"server_mode" env:"DEPOT_SERVER_MODE"`
	Log        LogConfig `yaml:"log"         envPrefix:"DEPOT_LOG_"`
}

// LogConfig controls the diagnostics logger.
type LogConfig struct {
	Level       string `yaml:"level"       env:"LEVEL"`
	Development bool   `yaml:"development" env:"DEVELOPMENT"`
}

// Default returns the settings used when neither a file nor the environment
// says otherwise. A Go process has no browser context, so it defaults to
// server mode.
func Default() Config {
	return Config{
		ServerMode: true,
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads settings from path, if not empty, then applies environment
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, zerr.Wrap(err, "failed to read container config")
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, zerr.Wrap(err, "failed to parse container config")
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, zerr.Wrap(err, "failed to parse container environment")
	}

	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied. When the
// environment is invalid it returns the defaults together with the parse
// error, so callers can keep going and report it.
func FromEnv() (Config, error) {
	cfg, err := Load("")
	if err != nil {
		return Default(), err
	}

	return cfg, nil
}

// NewLogger builds the diagnostics logger described by the log settings.
func (c Config) NewLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if c.Log.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	if c.Log.Level != "" {
		level, err := zapcore.ParseLevel(c.Log.Level)
		if err != nil {
			return nil, zerr.Wrap(err, "invalid log level")
		}

		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build logger")
	}

	return logger.Named("depot"), nil
}

// Options converts the settings into container options.
func (c Config) Options() ([]depot.Option, error) {
	logger, err := c.NewLogger()
	if err != nil {
		return nil, err
	}

	return []depot.Option{
		depot.WithServerMode(c.ServerMode),
		depot.WithLogger(logger),
	}, nil
}

// NewContainer creates a container configured by c.
func (c Config) NewContainer() (depot.Depot, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}

	return depot.New(opts...), nil
}
