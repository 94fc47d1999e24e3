// Package logging builds the zap logger shared by the commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/armourconstruction/site/internal/config"
)

// New returns a logger for cfg. verbose forces debug level regardless of the
// configured one.
func New(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Format == config.FormatConsole {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := cfg.Level
	if verbose {
		level = "debug"
	}
	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		zc.Level = lvl
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
