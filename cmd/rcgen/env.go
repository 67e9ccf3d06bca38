package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envConfig holds settings read from the environment. Flags override them.
type envConfig struct {
	LogLevel     string   `env:"RCGEN_LOG_LEVEL"     envDefault:"warn"`
	Compiler     string   `env:"RCGEN_COMPILER"`
	CompilerArgs []string `env:"RCGEN_COMPILER_ARGS" envSeparator:" "`
	OutDir       string   `env:"OUT_DIR"`
}

func loadEnv() (envConfig, error) {
	cfg, err := env.ParseAs[envConfig]()
	if err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
