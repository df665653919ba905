package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mcncl/jsonenv/internal/errors"
)

// Config holds the settings for a single conversion run
type Config struct {
	Input  string // path of the JSON document to read
	Output string // optional destination; empty means console only
	Debug  bool
}

// New builds a validated Config from command-line values.
func New(input, output string, debug bool) (*Config, error) {
	cfg := &Config{
		Input:  input,
		Output: output,
		Debug:  debug,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Input = filepath.Clean(cfg.Input)
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}
	return cfg, nil
}

// Validate checks that the paths can be used before any file is touched
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.NewInputError("input path is required", errors.ErrInvalidFilePath)
	}
	if c.Output == "" {
		return nil
	}
	if strings.TrimSpace(c.Output) == "" {
		return errors.NewOutputError("output path is blank", errors.ErrInvalidFilePath)
	}
	// A trailing separator names a directory, which can never be replaced by a file.
	if strings.HasSuffix(c.Output, "/") || strings.HasSuffix(c.Output, string(filepath.Separator)) {
		return errors.NewOutputError(fmt.Sprintf("output path '%s' names a directory", c.Output), errors.ErrNotAFile)
	}
	return nil
}

// LogLevel returns the minimum level for the run's logger.
func (c *Config) LogLevel() zapcore.Level {
	if c.Debug {
		return zapcore.DebugLevel
	}
	return zapcore.WarnLevel
}

// NewLogger builds the structured stderr logger for this run.
func (c *Config) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(c.LogLevel())
	zc.DisableStacktrace = !c.Debug
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
