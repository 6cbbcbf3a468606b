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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ajroetker/go-stencil/realv"
)

func clearEnv(t *testing.T) {
	t.Setenv("STENCIL_WIDTH", "")
	t.Setenv("STENCIL_LOG_LEVEL", "")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.RealBytes)
	assert.Equal(t, 8, cfg.Fold.VLEN())
	assert.True(t, cfg.TupleFirstInner)
}

func TestParse(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse([]byte(`
real_bytes: 8
width: "512"
fold: {n: 1, x: 2, y: 1, z: 4, first_unit_stride: true}
fast_divide: true
tuple_first_inner: false
log_level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.RealBytes)
	assert.Equal(t, realv.Fold{N: 1, X: 2, Y: 1, Z: 4, FirstUnitStride: true}, cfg.Fold)
	assert.False(t, cfg.TupleFirstInner)

	vc, err := cfg.Vector()
	require.NoError(t, err)
	assert.Equal(t, realv.Width512, vc.Width)
	assert.True(t, vc.FastDivide)
	assert.Equal(t, 8, vc.Fold.VLEN())
}

func TestParseEmpty(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Parse([]byte("# nothing but a comment\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown key", "vlen: 8\n", "failed to parse config"},
		{"bad real_bytes", "real_bytes: 2\n", "invalid real_bytes"},
		{"bad width", "width: 128\n", "invalid width"},
		{"oversized fold", "fold: {n: 1, x: 4, y: 4, z: 4}\n", "invalid fold"},
		{"negative fold", "fold: {n: 1, x: -2, y: 1, z: 1}\n", "invalid fold"},
		{"bad log level", "log_level: loud\n", "invalid log_level"},
		{"malformed", "fold: [1, 2\n", "failed to parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "stencil.yaml")

	cfg := DefaultConfig()
	cfg.RealBytes = 8
	cfg.Width = "256"
	cfg.Fold = realv.Fold{N: 1, X: 1, Y: 1, Z: 4}
	cfg.Trace = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadUnreadable(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be read as a file.
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STENCIL_WIDTH", "none")
	t.Setenv("STENCIL_LOG_LEVEL", "warn")

	cfg, err := Parse([]byte("width: \"512\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Width)
	assert.Equal(t, "warn", cfg.LogLevel)

	t.Setenv("STENCIL_WIDTH", "bogus")
	_, err = Parse(nil)
	require.Error(t, err)
}

func TestLogger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "warn"

	logger, err := cfg.Logger(false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = cfg.Logger(true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	cfg.LogLevel = "chatty"
	_, err = cfg.Logger(false)
	require.Error(t, err)
}

func TestSaveIntoFile(t *testing.T) {
	// The parent "directory" is a regular file, so MkdirAll fails.
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, nil, 0o644))
	err := DefaultConfig().Save(filepath.Join(parent, "stencil.yaml"))
	require.Error(t, err)
}
