// Package logger builds the application logger on top of the Uber zap
// logging library.
package logger

import (
	"go.uber.org/zap"
)

// New builds a SugaredLogger at the given level ("debug", "info", ...).
// The logger is handed to each component explicitly rather than kept as
// a package global.
func New(level string) (*zap.SugaredLogger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	return zl.Sugar(), nil
}
