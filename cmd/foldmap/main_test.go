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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-stencil/realv"
)

// run executes foldmap with args against a config file in a temp dir.
// An empty yaml leaves the file absent so defaults apply.
func run(t *testing.T, yaml string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STENCIL_WIDTH", "")
	t.Setenv("STENCIL_LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "stencil.yaml")
	if yaml != "" {
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	}
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestLinearize(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"first inner", []string{"linearize", "x=4,y=3", "x=3,y=2"}, "11"},
		{"last inner", []string{"linearize", "--last-inner", "x=4,y=3", "x=3,y=2"}, "11"},
		{"last inner inner dim", []string{"linearize", "--last-inner", "x=4,y=3", "x=0,y=1"}, "1"},
		{"non-strict", []string{"linearize", "--non-strict", "x=4,y=3", "y=1"}, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}
}

func TestLinearizeConfiguredOrientation(t *testing.T) {
	out, err := run(t, "tuple_first_inner: false\n", "linearize", "x=4,y=3", "x=1,y=0")
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(out))
}

func TestLinearizeErrors(t *testing.T) {
	_, err := run(t, "", "linearize", "x=4,y=3", "x=4,y=0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract violation")

	_, err = run(t, "", "linearize", "x=4,y=3", "x=1")
	require.Error(t, err)

	_, err = run(t, "", "linearize", "x=4,x=3", "x=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = run(t, "", "linearize", "x=4")
	require.Error(t, err)
}

func TestUnlinearize(t *testing.T) {
	out, err := run(t, "", "unlinearize", "x=4,y=3", "11")
	require.NoError(t, err)
	assert.Equal(t, "x=3, y=2", strings.TrimSpace(out))

	_, err = run(t, "", "unlinearize", "x=4,y=3", "12")
	require.Error(t, err)
	_, err = run(t, "", "unlinearize", "x=4,y=3", "eleven")
	require.Error(t, err)
}

func TestEnumerate(t *testing.T) {
	want := "0: x=0, y=0\n1: x=1, y=0\n2: x=2, y=0\n3: x=0, y=1\n4: x=1, y=1\n5: x=2, y=1\n"

	out, err := run(t, "", "enumerate", "x=3,y=2")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	out, err = run(t, "", "enumerate", "--parallel", "3", "x=3,y=2")
	require.NoError(t, err)
	assert.Equal(t, want, out)

	out, err = run(t, "", "enumerate", "x=3,y=0")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "", "enumerate", "x=-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestLanes(t *testing.T) {
	out, err := run(t, "force_emulation: true\n", "lanes")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 9)
	assert.Contains(t, lines[0], "VLEN 8, z unit stride, 4-byte reals, backend emulated")
	assert.Contains(t, lines[1], "n=0, x=0, y=0, z=0")
	assert.Contains(t, lines[2], "zv + (1 / VLEN_Z)")
	assert.Contains(t, lines[5], "n=0, x=1, y=0, z=0")

	out, err = run(t, "real_bytes: 8\nforce_emulation: true\n", "lanes", "--fold", "x=2,z=2", "--first-unit-stride")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "n unit stride, 8-byte reals")
	assert.Contains(t, lines[2], "n=0, x=1, y=0, z=0")

	_, err = run(t, "", "lanes", "--fold", "w=2")
	require.Error(t, err)
	_, err = run(t, "", "lanes", "--fold", "x=4,y=4,z=4")
	require.Error(t, err)
}

func TestLanesFoldKeepsConfiguredOrientation(t *testing.T) {
	cfg := "force_emulation: true\nfold:\n  first_unit_stride: true\n"
	out, err := run(t, cfg, "lanes", "--fold", "x=2,z=2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "n unit stride")
	assert.Contains(t, lines[2], "n=0, x=1, y=0, z=0")

	out, err = run(t, cfg, "lanes", "--fold", "x=2,z=2", "--first-unit-stride=false")
	require.NoError(t, err)
	assert.Contains(t, out, "z unit stride")
}

func TestConform(t *testing.T) {
	out, err := run(t, "", "conform", "--rounds", "4", "--all-sizes", "--fold", "z=4")
	require.NoError(t, err)
	assert.Contains(t, out, "4-byte reals")
	assert.Contains(t, out, "8-byte reals")
	assert.Contains(t, out, realv.EmulatedName)
	assert.NotContains(t, out, "mismatches")
}

func TestBadConfigFile(t *testing.T) {
	_, err := run(t, "real_bytes: 3\n", "lanes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid real_bytes")
}
