package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Output OutputConfig
	Log    LogConfig
}

type OutputConfig struct {
	Format string // default "table"
}

type LogConfig struct {
	Level  string // default "info"
	Format string // "console" or "json", default "console"
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "table",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// NewLogger builds a zap logger from the log configuration.
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	return zcfg.Build()
}
