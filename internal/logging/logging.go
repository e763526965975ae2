// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds zap loggers from the log section of the
// configuration.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/kkp-generator/pkg/types"
)

// Level is a supported logging granularity.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format is a supported output encoding.
type Format string

const (
	FormatStructured Format = "structured"
	FormatConsole    Format = "console"
)

var levels = map[Level]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var encodings = map[Format]string{
	FormatStructured: "json",
	FormatConsole:    "console",
}

// Factory builds loggers with a consistent configuration. Output always goes
// to stderr so stdout stays free for command output such as block dumps.
type Factory struct {
	outputPaths []string
}

// NewFactory returns a Factory writing to stderr.
func NewFactory() *Factory {
	return &Factory{outputPaths: []string{"stderr"}}
}

// Create returns a logger for the given level and format. Empty values
// select info and console.
func (f *Factory) Create(level Level, format Format) (*zap.Logger, error) {
	if level == "" {
		level = LevelInfo
	}
	if format == "" {
		format = FormatConsole
	}

	zapLevel, ok := levels[Level(strings.ToLower(string(level)))]
	if !ok {
		return nil, fmt.Errorf("unsupported log level: %s", level)
	}
	encoding, ok := encodings[Format(strings.ToLower(string(format)))]
	if !ok {
		return nil, fmt.Errorf("unsupported log format: %s", format)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.Encoding = encoding
	cfg.OutputPaths = f.outputPaths
	cfg.ErrorOutputPaths = f.outputPaths
	if encoding == "console" {
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// FromConfig is Create driven by a LogConfig.
func (f *Factory) FromConfig(cfg types.LogConfig) (*zap.Logger, error) {
	return f.Create(Level(cfg.Level), Format(cfg.Format))
}
