package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a zap logger writing to stderr.
func NewLogger(settings LogSettings) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if settings.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	level, err := zap.ParseAtomicLevel(settings.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
