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

package realv

import (
	"fmt"
	"strings"
)

// MaxLanes is the largest supported vector length.
const MaxLanes = 16

// Fold is the vector-fold shape: how many points along n, x, y and z
// share one vector. Zero extents are treated as 1.
type Fold struct {
	N int `yaml:"n"`
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`

	// FirstUnitStride selects the fold layout: when true n is the
	// unit-stride dimension, otherwise z is.
	FirstUnitStride bool `yaml:"first_unit_stride"`
}

// Normalized returns f with zero extents replaced by 1.
func (f Fold) Normalized() Fold {
	one := func(v int) int {
		if v == 0 {
			return 1
		}
		return v
	}
	f.N, f.X, f.Y, f.Z = one(f.N), one(f.X), one(f.Y), one(f.Z)
	return f
}

// VLEN returns the number of lanes, the product of the fold extents.
func (f Fold) VLEN() int {
	f = f.Normalized()
	return f.N * f.X * f.Y * f.Z
}

// Validate checks that every extent is non-negative and the fold fits
// in MaxLanes.
func (f Fold) Validate() error {
	for _, d := range []struct {
		name string
		v    int
	}{{"n", f.N}, {"x", f.X}, {"y", f.Y}, {"z", f.Z}} {
		if d.v < 0 {
			return fmt.Errorf("fold extent %s=%d is negative", d.name, d.v)
		}
		if d.v > MaxLanes {
			return fmt.Errorf("fold extent %s=%d exceeds %d lanes", d.name, d.v, MaxLanes)
		}
	}
	if vlen := f.VLEN(); vlen > MaxLanes {
		return fmt.Errorf("fold %s has %d lanes, more than %d", f, vlen, MaxLanes)
	}
	return nil
}

// String returns the fold as "n=1, x=2, y=2, z=2".
func (f Fold) String() string {
	f = f.Normalized()
	return fmt.Sprintf("n=%d, x=%d, y=%d, z=%d", f.N, f.X, f.Y, f.Z)
}

// Width is the hardware register width class an engine may use.
type Width int

const (
	// WidthAuto uses the widest width the CPU supports.
	WidthAuto Width = iota
	// WidthNone disables hardware backends.
	WidthNone
	// Width256 selects 256-bit (AVX2) registers.
	Width256
	// Width512 selects 512-bit (AVX-512) registers.
	Width512
)

// Bytes returns the register size in bytes, or 0 for auto and none.
func (w Width) Bytes() int {
	switch w {
	case Width256:
		return 32
	case Width512:
		return 64
	default:
		return 0
	}
}

func (w Width) String() string {
	switch w {
	case WidthAuto:
		return "auto"
	case WidthNone:
		return "none"
	case Width256:
		return "256"
	case Width512:
		return "512"
	default:
		return fmt.Sprintf("Width(%d)", int(w))
	}
}

// ParseWidth parses "auto", "none", "256" or "512". The instruction set
// names "avx2" and "avx512" are accepted as aliases.
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return WidthAuto, nil
	case "none", "emulated", "scalar":
		return WidthNone, nil
	case "256", "avx2":
		return Width256, nil
	case "512", "avx512":
		return Width512, nil
	}
	return WidthAuto, fmt.Errorf("unknown vector width %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (w Width) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *Width) UnmarshalText(text []byte) error {
	v, err := ParseWidth(string(text))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// Config selects the fold, the backend and the arithmetic mode of an
// Engine. The zero value is a one-lane emulated engine.
type Config struct {
	Fold  Fold  `yaml:"fold"`
	Width Width `yaml:"width"`

	// FastDivide computes a/b as a*(1/b). Results may differ from true
	// division in the last bits.
	FastDivide bool `yaml:"fast_divide"`

	// ForceEmulation always selects the emulated backend.
	ForceEmulation bool `yaml:"force_emulation"`

	// Trace logs every cross-lane operation at debug level.
	Trace bool `yaml:"trace"`
}

// Validate checks the fold and width.
func (c Config) Validate() error {
	if err := c.Fold.Validate(); err != nil {
		return err
	}
	if c.Width < WidthAuto || c.Width > Width512 {
		return fmt.Errorf("unknown vector width %d", int(c.Width))
	}
	return nil
}
