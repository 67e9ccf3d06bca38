package rcscript

import (
	"path/filepath"

	"go.uber.org/zap"
)

// Config controls script generation. The zero value is usable.
type Config struct {
	// Observer receives non-fatal diagnostics. Optional.
	Observer Observer
	// Logger overrides the package logger for this call.
	Logger *zap.Logger
	// ResolvePath turns an asset path into the absolute path written to the
	// script. Defaults to filepath.Abs. A result that is not valid UTF-8 fails
	// generation with ErrInvalidPath.
	ResolvePath func(string) (string, error)
	// Parallel renders languages concurrently. The output is identical to
	// sequential rendering.
	Parallel bool
}

func (cfg Config) withDefaults() Config {
	if cfg.Logger == nil {
		cfg.Logger = Logger()
	}
	if cfg.ResolvePath == nil {
		cfg.ResolvePath = filepath.Abs
	}
	return cfg
}
