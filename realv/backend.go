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
	"slices"
	"sync"
)

// EmulatedName is the name of the portable lane-by-lane backend.
const EmulatedName = "emulated"

// backendKind identifies the backend an Engine runs on. Primitives switch
// on it instead of calling through an interface, so lane arrays passed to
// them stay on the caller's stack.
type backendKind uint8

const (
	kindEmulated backendKind = iota
	kindAVX2
	kindAVX512
)

// Lane-wise primitives shared by the emulated and hardware paths.
type binOp uint8

const (
	opAdd binOp = iota
	opSub
	opMul
	opDiv
)

type unOp uint8

const (
	opNeg unOp = iota // 0 - a
	opRecip           // 1 / a
)

// The emulated kernels define the reference semantics every hardware
// backend must match bit for bit.

func emuBinary[T Real](op binOp, dst, a, b *[MaxLanes]T, n int) {
	switch op {
	case opAdd:
		for i := range n {
			dst[i] = a[i] + b[i]
		}
	case opSub:
		for i := range n {
			dst[i] = a[i] - b[i]
		}
	case opMul:
		for i := range n {
			dst[i] = a[i] * b[i]
		}
	case opDiv:
		for i := range n {
			dst[i] = a[i] / b[i]
		}
	}
}

func emuUnary[T Real](op unOp, dst, a *[MaxLanes]T, n int) {
	switch op {
	case opNeg:
		for i := range n {
			dst[i] = 0 - a[i]
		}
	case opRecip:
		for i := range n {
			dst[i] = 1 / a[i]
		}
	}
}

// binary sets dst = a op b on the first VLEN lanes.
func (e *Engine[T]) binary(op binOp, dst, a, b *[MaxLanes]T) {
	if e.kind != kindEmulated && hwBinary(e.kind, op, dst, a, b) {
		return
	}
	emuBinary(op, dst, a, b, e.vlen)
}

func (e *Engine[T]) unary(op unOp, dst, a *[MaxLanes]T) {
	if e.kind != kindEmulated && hwUnary(e.kind, op, dst, a) {
		return
	}
	emuUnary(op, dst, a, e.vlen)
}

func (e *Engine[T]) broadcast(dst *[MaxLanes]T, s T) {
	if e.kind != kindEmulated && hwBroadcast(e.kind, dst, s) {
		return
	}
	for i := range e.vlen {
		dst[i] = s
	}
}

// load copies src, which has exactly VLEN elements, into dst.
func (e *Engine[T]) load(dst *[MaxLanes]T, src []T) {
	if e.kind != kindEmulated && hwLoad(e.kind, dst, src) {
		return
	}
	copy(dst[:], src)
}

// store copies the first VLEN lanes of src into dst, which has exactly
// VLEN elements. stream requests a non-temporal store.
func (e *Engine[T]) store(dst []T, src *[MaxLanes]T, stream bool) {
	if e.kind != kindEmulated && hwStore(e.kind, dst, src, stream) {
		return
	}
	copy(dst, src[:len(dst)])
}

// window copies VLEN consecutive lanes of src starting at off.
func (e *Engine[T]) window(dst *[MaxLanes]T, src *[2 * MaxLanes]T, off int) {
	e.load(dst, src[off:off+e.vlen])
}

// gather sets dst[i] = src[idx[i]]. It has no hardware form: a gather
// over a stack buffer is not faster than the loop.
func (e *Engine[T]) gather(dst *[MaxLanes]T, src *[2 * MaxLanes]T, idx *[MaxLanes]int) {
	for i := range e.vlen {
		dst[i] = src[idx[i]]
	}
}

// blend copies the lanes of src whose bit is set in mask into dst.
func (e *Engine[T]) blend(dst, src *[MaxLanes]T, mask uint32) {
	for i := range e.vlen {
		if mask&(1<<i) != 0 {
			dst[i] = src[i]
		}
	}
}

// BackendInfo describes a registered hardware backend.
type BackendInfo struct {
	Name      string
	ElemBytes int
	Width     Width
	Level     DispatchLevel

	kind backendKind
}

// Lanes returns the register lane count of the backend.
func (b BackendInfo) Lanes() int {
	return b.Width.Bytes() / b.ElemBytes
}

// Supported reports whether the running CPU can execute the backend.
func (b BackendInfo) Supported() bool {
	return b.Level <= currentLevel
}

var (
	registryMu sync.RWMutex
	registry   []BackendInfo
)

// register adds a hardware backend. Called from init() of build-tagged
// backend files.
func register(info BackendInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, info)
}

// Backends returns every registered hardware backend, ordered by element
// size and width. The emulated backend is always available and not listed.
func Backends() []BackendInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := slices.Clone(registry)
	slices.SortFunc(out, func(a, b BackendInfo) int {
		if a.ElemBytes != b.ElemBytes {
			return a.ElemBytes - b.ElemBytes
		}
		return int(a.Width) - int(b.Width)
	})
	return out
}

// findBackend returns the first registration matching pred.
func findBackend(pred func(BackendInfo) bool) (BackendInfo, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, b := range registry {
		if pred(b) {
			return b, true
		}
	}
	return BackendInfo{}, false
}
