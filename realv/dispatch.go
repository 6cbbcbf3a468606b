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
	"os"
	"strconv"
)

// DispatchLevel is the widest vector instruction set the CPU offers.
type DispatchLevel int

const (
	// DispatchScalar indicates no usable vector instructions.
	DispatchScalar DispatchLevel = iota

	// DispatchAVX2 indicates AVX2 (256-bit vectors).
	DispatchAVX2

	// DispatchAVX512 indicates AVX-512F (512-bit vectors).
	DispatchAVX512
)

// String returns a human-readable name for the dispatch level.
func (d DispatchLevel) String() string {
	switch d {
	case DispatchScalar:
		return "scalar"
	case DispatchAVX2:
		return "avx2"
	case DispatchAVX512:
		return "avx512"
	default:
		return "unknown"
	}
}

// Width returns the register width class of the level.
func (d DispatchLevel) Width() Width {
	switch d {
	case DispatchAVX2:
		return Width256
	case DispatchAVX512:
		return Width512
	default:
		return WidthNone
	}
}

// currentLevel is the detected level. Set by init() in dispatch_*.go.
var currentLevel DispatchLevel

// CurrentLevel returns the detected vector instruction set.
func CurrentLevel() DispatchLevel {
	return currentLevel
}

// CurrentWidth returns the register width class of the detected level.
func CurrentWidth() Width {
	return currentLevel.Width()
}

// NoSimdEnv reports whether STENCIL_NO_SIMD is set. When set, every engine
// uses the emulated backend regardless of CPU capabilities, which is useful
// for testing and for bit-for-bit comparisons against reference runs.
func NoSimdEnv() bool {
	val := os.Getenv("STENCIL_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
