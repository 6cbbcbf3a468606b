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
	"unsafe"

	"go.uber.org/zap"

	"github.com/ajroetker/go-stencil/contract"
)

// Engine fixes the fold, lane count and backend shared by a family of
// vectors. An Engine is immutable after New and safe for concurrent use;
// the vectors it creates are plain values.
type Engine[T Real] struct {
	cfg  Config
	fold Fold
	vlen int
	full uint32

	kind    backendKind
	backend string

	// Permute control encoding: the low bits select a lane, selBit picks
	// the second source in Permute2.
	idxMask uint64
	selBit  uint64

	log   *zap.Logger
	trace bool
}

// Option configures New.
type Option func(*options)

type options struct {
	log     *zap.Logger
	backend string
}

// WithLogger sets the logger used for backend selection warnings and
// operation tracing. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithBackend requests a backend by name ("emulated", "avx2", "avx512").
// New fails if the backend is unknown, has a different lane count than the
// fold, or cannot run on this CPU.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// New returns an engine for cfg.
//
// Unless a backend is named with WithBackend, a hardware backend is used
// only when its register lane count equals the fold's VLEN; otherwise the
// engine logs a warning and falls back to emulation. Results are identical
// either way.
func New[T Real](cfg Config, opts ...Option) (*Engine[T], error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine[T]{
		cfg:   cfg,
		fold:  cfg.Fold.Normalized(),
		log:   o.log,
		trace: cfg.Trace,
	}
	e.vlen = e.fold.VLEN()
	e.full = uint32(1)<<e.vlen - 1
	if ElemBytes[T]() == 4 {
		e.idxMask, e.selBit = 0xf, 0x10
	} else {
		e.idxMask, e.selBit = 0x7, 0x8
	}

	if err := e.selectBackend(o.backend); err != nil {
		return nil, err
	}
	e.log.Debug("vector engine ready",
		zap.Stringer("fold", e.fold),
		zap.Int("vlen", e.vlen),
		zap.String("backend", e.backend),
		zap.Bool("fast_divide", cfg.FastDivide))
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew[T Real](cfg Config, opts ...Option) *Engine[T] {
	e, err := New[T](cfg, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// ElemBytes returns the size in bytes of T.
func ElemBytes[T Real]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// selectBackend sets e.kind and e.backend.
func (e *Engine[T]) selectBackend(name string) error {
	bytes := ElemBytes[T]()
	e.kind, e.backend = kindEmulated, EmulatedName

	if name != "" {
		if name == EmulatedName {
			return nil
		}
		info, ok := findBackend(func(b BackendInfo) bool {
			return b.Name == name && b.ElemBytes == bytes
		})
		switch {
		case !ok:
			return fmt.Errorf("no %q backend for %d-byte reals in this build", name, bytes)
		case info.Lanes() != e.vlen:
			return fmt.Errorf("backend %q has %d lanes, fold %s needs %d", name, info.Lanes(), e.fold, e.vlen)
		case !info.Supported():
			return fmt.Errorf("backend %q needs %s, CPU provides %s", name, info.Level, currentLevel)
		}
		e.kind, e.backend = info.kind, info.Name
		return nil
	}

	if e.cfg.ForceEmulation || NoSimdEnv() || e.vlen == 1 {
		return nil
	}
	width := e.cfg.Width
	if width == WidthAuto {
		width = CurrentWidth()
	}
	if width == WidthNone {
		return nil
	}

	if hw := width.Bytes() / bytes; hw != e.vlen {
		e.log.Warn("emulating vector operations: fold does not match the hardware vector length",
			zap.Stringer("fold", e.fold),
			zap.Int("vlen", e.vlen),
			zap.Int("hw_lanes", hw),
			zap.Stringer("width", width))
		return nil
	}
	info, ok := findBackend(func(b BackendInfo) bool {
		return b.Width == width && b.ElemBytes == bytes
	})
	if !ok {
		e.log.Warn("emulating vector operations: no hardware backend in this build (requires GOEXPERIMENT=simd)",
			zap.Stringer("width", width))
		return nil
	}
	if !info.Supported() {
		e.log.Warn("emulating vector operations: CPU does not support the requested width",
			zap.Stringer("width", width),
			zap.Stringer("cpu", currentLevel))
		return nil
	}
	e.kind, e.backend = info.kind, info.Name
	return nil
}

// Config returns the configuration the engine was built with.
func (e *Engine[T]) Config() Config {
	return e.cfg
}

// Fold returns the normalized fold.
func (e *Engine[T]) Fold() Fold {
	return e.fold
}

// VLEN returns the number of lanes.
func (e *Engine[T]) VLEN() int {
	return e.vlen
}

// BackendName returns the name of the selected backend.
func (e *Engine[T]) BackendName() string {
	return e.backend
}

// Emulated reports whether the engine runs the emulated backend.
func (e *Engine[T]) Emulated() bool {
	return e.kind == kindEmulated
}

// CtrlIndexMask returns the bits of a control lane that select a lane.
func (e *Engine[T]) CtrlIndexMask() uint64 {
	return e.idxMask
}

// CtrlSelectBit returns the control bit that makes Permute2 read from its
// second source.
func (e *Engine[T]) CtrlSelectBit() uint64 {
	return e.selBit
}

// FoldIndex returns the lane holding fold point (n, i, j, k). With
// FirstUnitStride the lane is n + N*(i + X*(j + Y*k)); otherwise it is
// k + Z*(j + Y*(i + X*n)).
func (e *Engine[T]) FoldIndex(n, i, j, k int) int {
	f := e.fold
	if n < 0 || n >= f.N || i < 0 || i >= f.X || j < 0 || j >= f.Y || k < 0 || k >= f.Z {
		contract.Failf("Engine.FoldIndex", "point (%d, %d, %d, %d) outside fold %s", n, i, j, k, f)
	}
	if f.FirstUnitStride {
		return n + f.N*(i+f.X*(j+f.Y*k))
	}
	return k + f.Z*(j+f.Y*(i+f.X*n))
}

// FoldCoords is the inverse of FoldIndex.
func (e *Engine[T]) FoldCoords(l int) (n, i, j, k int) {
	e.checkLane("Engine.FoldCoords", l)
	f := e.fold
	if f.FirstUnitStride {
		n, l = l%f.N, l/f.N
		i, l = l%f.X, l/f.X
		j, k = l%f.Y, l/f.Y
		return n, i, j, k
	}
	k, l = l%f.Z, l/f.Z
	j, l = l%f.Y, l/f.Y
	i, n = l%f.X, l/f.X
	return n, i, j, k
}

func (e *Engine[T]) checkLane(op string, l int) {
	if l < 0 || l >= e.vlen {
		contract.Failf(op, "lane %d out of range [0, %d)", l, e.vlen)
	}
}

// check verifies that v belongs to e, has the wanted view and that all
// VLEN lanes are defined.
func (e *Engine[T]) check(op string, v *Vec[T], want overlay) {
	switch {
	case v.e == nil:
		contract.Failf(op, "use of a vector that was not created by an Engine")
	case v.e != e:
		contract.Failf(op, "vector belongs to a different engine")
	case v.view != want:
		contract.Failf(op, "vector holds %s lanes, want %s lanes", v.view, want)
	case v.live&e.full != e.full:
		contract.Failf(op, "use of uninitialized lanes (mask %#x)", ^v.live&e.full)
	}
}

// vec returns a fully defined real vector of e with lanes r.
func (e *Engine[T]) vec(r *[MaxLanes]T) Vec[T] {
	return Vec[T]{e: e, r: *r, live: e.full}
}
