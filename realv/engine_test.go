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
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ajroetker/go-stencil/contract"
)

// cube is the 2x2x2 fold used throughout the tests.
var cube = Fold{N: 1, X: 2, Y: 2, Z: 2}

func newEngine[T Real](t testing.TB, cfg Config) *Engine[T] {
	t.Helper()
	e, err := New[T](cfg)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	return e
}

func expectViolation(t *testing.T, name string, fn func()) {
	t.Helper()
	err := contract.Catch(fn)
	if _, ok := contract.AsViolation(err); !ok {
		t.Errorf("%s: expected a contract violation, got %v", name, err)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"negative extent", Config{Fold: Fold{X: -1}}, "negative"},
		{"too many lanes", Config{Fold: Fold{X: 4, Y: 4, Z: 2}}, "more than 16"},
		{"extent too large", Config{Fold: Fold{Z: 17}}, "exceeds"},
		{"bad width", Config{Width: Width(9)}, "unknown vector width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[float32](tt.cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("New() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestEngineShape(t *testing.T) {
	e := newEngine[float64](t, Config{Fold: Fold{X: 2, Z: 4}})
	if got := e.VLEN(); got != 8 {
		t.Errorf("VLEN() = %d, want 8", got)
	}
	if got, want := e.Fold(), (Fold{N: 1, X: 2, Y: 1, Z: 4}); got != want {
		t.Errorf("Fold() = %+v, want %+v", got, want)
	}
	if got := e.CtrlIndexMask(); got != 0x7 {
		t.Errorf("CtrlIndexMask() = %#x, want 0x7", got)
	}
	if got := e.CtrlSelectBit(); got != 0x8 {
		t.Errorf("CtrlSelectBit() = %#x, want 0x8", got)
	}

	f := newEngine[float32](t, Config{})
	if f.VLEN() != 1 || !f.Emulated() {
		t.Errorf("zero config: VLEN=%d backend=%s, want 1 lane emulated", f.VLEN(), f.BackendName())
	}
	if f.CtrlIndexMask() != 0xf || f.CtrlSelectBit() != 0x10 {
		t.Errorf("float32 control bits = %#x/%#x, want 0xf/0x10", f.CtrlIndexMask(), f.CtrlSelectBit())
	}
}

func TestFoldIndex(t *testing.T) {
	a := newEngine[float32](t, Config{Fold: Fold{N: 1, X: 2, Y: 2, Z: 2, FirstUnitStride: true}})
	b := newEngine[float32](t, Config{Fold: cube})

	tests := []struct {
		n, i, j, k int
		wantA      int
		wantB      int
	}{
		{0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 1, 4},
		{0, 0, 1, 0, 2, 2},
		{0, 0, 0, 1, 4, 1},
		{0, 1, 1, 1, 7, 7},
	}
	for _, tt := range tests {
		if got := a.FoldIndex(tt.n, tt.i, tt.j, tt.k); got != tt.wantA {
			t.Errorf("unit-stride n: FoldIndex(%d,%d,%d,%d) = %d, want %d", tt.n, tt.i, tt.j, tt.k, got, tt.wantA)
		}
		if got := b.FoldIndex(tt.n, tt.i, tt.j, tt.k); got != tt.wantB {
			t.Errorf("unit-stride z: FoldIndex(%d,%d,%d,%d) = %d, want %d", tt.n, tt.i, tt.j, tt.k, got, tt.wantB)
		}
	}

	expectViolation(t, "i == X", func() { a.FoldIndex(0, 2, 0, 0) })
	expectViolation(t, "negative n", func() { a.FoldIndex(-1, 0, 0, 0) })
}

func TestFoldCoordsRoundTrip(t *testing.T) {
	for _, first := range []bool{true, false} {
		e := newEngine[float64](t, Config{Fold: Fold{N: 2, X: 2, Y: 1, Z: 3, FirstUnitStride: first}})
		for l := range e.VLEN() {
			n, i, j, k := e.FoldCoords(l)
			if got := e.FoldIndex(n, i, j, k); got != l {
				t.Errorf("first=%v: FoldIndex(FoldCoords(%d)) = %d", first, l, got)
			}
		}
		expectViolation(t, "lane == VLEN", func() { e.FoldCoords(e.VLEN()) })
	}
}

func TestForcedEmulation(t *testing.T) {
	e := newEngine[float32](t, Config{Fold: Fold{X: 8}, ForceEmulation: true})
	if !e.Emulated() {
		t.Errorf("ForceEmulation: backend = %s, want %s", e.BackendName(), EmulatedName)
	}

	t.Setenv("STENCIL_NO_SIMD", "1")
	e = newEngine[float32](t, Config{Fold: Fold{X: 8}, Width: Width256})
	if !e.Emulated() {
		t.Errorf("STENCIL_NO_SIMD: backend = %s, want %s", e.BackendName(), EmulatedName)
	}
}

func TestWidthMismatchFallsBack(t *testing.T) {
	t.Setenv("STENCIL_NO_SIMD", "")
	core, logs := observer.New(zapcore.WarnLevel)

	e, err := New[float32](Config{Fold: Fold{X: 3}, Width: Width256}, WithLogger(zap.New(core)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.Emulated() {
		t.Errorf("backend = %s, want %s", e.BackendName(), EmulatedName)
	}
	entries := logs.FilterMessageSnippet("does not match the hardware vector length").All()
	if len(entries) != 1 {
		t.Fatalf("got %d fallback warnings, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["hw_lanes"]; got != int64(8) {
		t.Errorf("hw_lanes = %v, want 8", got)
	}
}

func TestWithBackend(t *testing.T) {
	e, err := New[float64](Config{Fold: cube}, WithBackend(EmulatedName))
	if err != nil || !e.Emulated() {
		t.Fatalf("WithBackend(emulated) = %v, %v", e, err)
	}
	if _, err := New[float64](Config{Fold: cube}, WithBackend("sse9")); err == nil {
		t.Errorf("WithBackend(sse9): expected an error")
	}

	// Named hardware backends must match VLEN exactly.
	for _, b := range Backends() {
		if b.ElemBytes != 8 {
			continue
		}
		_, err := New[float64](Config{Fold: Fold{X: b.Lanes() / 2}}, WithBackend(b.Name))
		if err == nil {
			t.Errorf("WithBackend(%s) with half the lanes: expected an error", b.Name)
		}
	}
}

func TestBackendsRegistry(t *testing.T) {
	for _, b := range Backends() {
		if b.Name == EmulatedName {
			t.Errorf("emulated backend must not be registered")
		}
		if b.Lanes() < 4 || b.Lanes() > MaxLanes {
			t.Errorf("%s/%d bytes: %d lanes out of range", b.Name, b.ElemBytes, b.Lanes())
		}
		if b.Supported() != (b.Level <= CurrentLevel()) {
			t.Errorf("%s: Supported() inconsistent with CurrentLevel()", b.Name)
		}
	}
}

func TestDispatchLevel(t *testing.T) {
	tests := []struct {
		level DispatchLevel
		name  string
		width Width
	}{
		{DispatchScalar, "scalar", WidthNone},
		{DispatchAVX2, "avx2", Width256},
		{DispatchAVX512, "avx512", Width512},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.level.Width(); got != tt.width {
			t.Errorf("%s.Width() = %v, want %v", tt.name, got, tt.width)
		}
	}
	t.Logf("current level: %s", CurrentLevel())
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("STENCIL_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("NoSimdEnv() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustNew with a bad fold did not panic")
		}
	}()
	MustNew[float32](Config{Fold: Fold{N: -1}})
}
