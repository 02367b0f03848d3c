// Package logging builds the zap loggers used by the patchnet CLI.
// Library packages take a *zap.Logger and default to zap.NewNop.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Levels accepted by New.
var Levels = []string{"debug", "info", "warn", "error"}

// ParseLevel maps a level name to its zap level; the empty name is info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zap.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return lvl, fmt.Errorf("logging: unknown level %q (want one of %s)", name, strings.Join(Levels, ", "))
	}

	return lvl, nil
}

// New returns a logger writing to stderr at level. Development mode uses the
// console encoder with colored levels; otherwise JSON with sampling.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	// Results go to stdout.
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	log, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}

	return log, nil
}
