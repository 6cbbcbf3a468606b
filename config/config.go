// Copyright 2025 go-stencil Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the YAML file that fixes the element size, vector
// fold and backend choices of a stencil build.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ajroetker/go-stencil/realv"
)

// Config holds the build-time configuration surface.
type Config struct {
	// RealBytes is the element size: 4 (float32) or 8 (float64).
	RealBytes int `yaml:"real_bytes"`

	// Width is "auto", "none", "256" or "512".
	Width string `yaml:"width"`

	Fold realv.Fold `yaml:"fold"`

	FastDivide     bool `yaml:"fast_divide"`
	ForceEmulation bool `yaml:"force_emulation"`
	Trace          bool `yaml:"trace"`

	// TupleFirstInner selects the linearization orientation of tuples:
	// true makes the first dimension unit-stride.
	TupleFirstInner bool `yaml:"tuple_first_inner"`

	// LogLevel is a zap level name: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns a 2x2x2 float32 fold with automatic backend
// selection.
func DefaultConfig() *Config {
	return &Config{
		RealBytes:       4,
		Width:           "auto",
		Fold:            realv.Fold{N: 1, X: 2, Y: 2, Z: 2},
		TupleFirstInner: true,
		LogLevel:        "info",
	}
}

// Load reads configuration from a YAML file on top of the defaults. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults, rejecting unknown keys, and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets STENCIL_WIDTH and STENCIL_LOG_LEVEL override the
// file. STENCIL_NO_SIMD is read by realv directly.
func (c *Config) applyEnvOverrides() {
	if w := os.Getenv("STENCIL_WIDTH"); w != "" {
		c.Width = w
	}
	if l := os.Getenv("STENCIL_LOG_LEVEL"); l != "" {
		c.LogLevel = l
	}
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.RealBytes != 4 && c.RealBytes != 8 {
		return fmt.Errorf("invalid real_bytes: %d (valid: 4, 8)", c.RealBytes)
	}
	if _, err := realv.ParseWidth(c.Width); err != nil {
		return fmt.Errorf("invalid width: %w", err)
	}
	if err := c.Fold.Validate(); err != nil {
		return fmt.Errorf("invalid fold: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// Vector returns the engine configuration. Call Validate first.
func (c *Config) Vector() (realv.Config, error) {
	w, err := realv.ParseWidth(c.Width)
	if err != nil {
		return realv.Config{}, err
	}
	return realv.Config{
		Fold:           c.Fold,
		Width:          w,
		FastDivide:     c.FastDivide,
		ForceEmulation: c.ForceEmulation,
		Trace:          c.Trace,
	}, nil
}

// Logger builds a production zap logger at the configured level. debug
// forces the debug level.
func (c *Config) Logger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	if debug || c.Trace {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
