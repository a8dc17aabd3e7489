// Package logging builds the process logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level picks the minimum level for the CLI flags: --debug wins over --quiet.
func Level(debug, quiet bool) zapcore.Level {
	switch {
	case debug:
		return zapcore.DebugLevel
	case quiet:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}

// New builds a production (JSON, stderr) logger at the level chosen by the flags.
func New(debug, quiet bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(Level(debug, quiet))
	config.DisableStacktrace = !debug
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("jarvis"), nil
}
