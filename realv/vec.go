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

// Package realv provides a fixed-length vector of reals whose lanes map
// to a small 4-D fold (n, x, y, z) of stencil points. Every operation is
// defined lane-wise by an emulated backend; hardware backends built with
// GOEXPERIMENT=simd produce bit-identical results.
//
// Vectors are created by an Engine, which fixes the fold, the lane count
// (VLEN) and the backend:
//
//	e, err := realv.New[float32](realv.Config{Fold: realv.Fold{X: 2, Y: 2, Z: 2}})
//	a := e.Set(1)
//	b := e.Load(data, 0)
//	c := a.Add(b)
//
// Misuse such as out-of-range lanes, unaligned loads or reading lanes that
// were never written panics with a *contract.Violation.
package realv

import (
	"math"
	"unsafe"

	"github.com/ajroetker/go-stencil/contract"
)

// Real is the set of element types a vector can hold.
type Real interface {
	~float32 | ~float64
}

// overlay tells how the lane bits of a vector are currently interpreted.
type overlay uint8

const (
	overlayReal overlay = iota
	overlayCtrl
)

func (o overlay) String() string {
	if o == overlayCtrl {
		return "control"
	}
	return "real"
}

// Vec is a vector of VLEN reals. The zero Vec is not usable; obtain
// vectors from an Engine. A Vec is a value: copying it copies its lanes.
//
// The same lane bits may be viewed as unsigned integers of the same width
// (see AsCtrl), which is how permute control vectors are built.
type Vec[T Real] struct {
	e    *Engine[T]
	r    [MaxLanes]T
	live uint32
	view overlay
}

// Engine returns the engine that created v, or nil for the zero Vec.
func (v Vec[T]) Engine() *Engine[T] {
	return v.e
}

// Len returns the lane count of v.
func (v Vec[T]) Len() int {
	if v.e == nil {
		return 0
	}
	return v.e.vlen
}

// IsControl reports whether v is viewed as a control vector.
func (v Vec[T]) IsControl() bool {
	return v.view == overlayCtrl
}

// Defined reports whether every lane of v has been written.
func (v Vec[T]) Defined() bool {
	return v.e != nil && v.live&v.e.full == v.e.full
}

// Lane returns lane l.
func (v Vec[T]) Lane(l int) T {
	e := v.owner("Vec.Lane")
	e.checkLane("Vec.Lane", l)
	if v.view != overlayReal {
		contract.Failf("Vec.Lane", "vector holds control lanes")
	}
	if v.live&(1<<l) == 0 {
		contract.Failf("Vec.Lane", "use of uninitialized lane %d", l)
	}
	return v.r[l]
}

// SetLane writes x into lane l.
func (v *Vec[T]) SetLane(l int, x T) {
	e := v.owner("Vec.SetLane")
	e.checkLane("Vec.SetLane", l)
	if v.view != overlayReal {
		contract.Failf("Vec.SetLane", "vector holds control lanes")
	}
	v.r[l] = x
	v.live |= 1 << l
}

// At returns the lane holding fold point (n, i, j, k).
func (v Vec[T]) At(n, i, j, k int) T {
	return v.Lane(v.owner("Vec.At").FoldIndex(n, i, j, k))
}

// SetAt writes x into the lane holding fold point (n, i, j, k).
func (v *Vec[T]) SetAt(n, i, j, k int, x T) {
	v.SetLane(v.owner("Vec.SetAt").FoldIndex(n, i, j, k), x)
}

// Lanes returns a copy of the VLEN lanes.
func (v Vec[T]) Lanes() []T {
	e := v.owner("Vec.Lanes")
	e.check("Vec.Lanes", &v, overlayReal)
	out := make([]T, e.vlen)
	copy(out, v.r[:e.vlen])
	return out
}

// AsCtrl returns v with its lanes viewed as control integers.
func (v Vec[T]) AsCtrl() Vec[T] {
	v.owner("Vec.AsCtrl")
	v.view = overlayCtrl
	return v
}

// AsReal returns v with its lanes viewed as reals.
func (v Vec[T]) AsReal() Vec[T] {
	v.owner("Vec.AsReal")
	v.view = overlayReal
	return v
}

// CtrlLane returns lane l of a control vector as an integer.
func (v Vec[T]) CtrlLane(l int) uint64 {
	e := v.owner("Vec.CtrlLane")
	e.checkLane("Vec.CtrlLane", l)
	if v.view != overlayCtrl {
		contract.Failf("Vec.CtrlLane", "vector holds real lanes")
	}
	if v.live&(1<<l) == 0 {
		contract.Failf("Vec.CtrlLane", "use of uninitialized lane %d", l)
	}
	return toBits(v.r[l])
}

// SetCtrlLane writes c into lane l of a control vector.
func (v *Vec[T]) SetCtrlLane(l int, c uint64) {
	e := v.owner("Vec.SetCtrlLane")
	e.checkLane("Vec.SetCtrlLane", l)
	if v.view != overlayCtrl {
		contract.Failf("Vec.SetCtrlLane", "vector holds real lanes")
	}
	var zero T
	if unsafe.Sizeof(zero) == 4 && c > math.MaxUint32 {
		contract.Failf("Vec.SetCtrlLane", "control value %#x does not fit in 32 bits", c)
	}
	v.r[l] = fromBits[T](c)
	v.live |= 1 << l
}

func (v *Vec[T]) owner(op string) *Engine[T] {
	if v.e == nil {
		contract.Failf(op, "use of a vector that was not created by an Engine")
	}
	return v.e
}

// toBits returns the raw bits of x.
func toBits[T Real](x T) uint64 {
	if unsafe.Sizeof(x) == 4 {
		return uint64(math.Float32bits(float32(x)))
	}
	return math.Float64bits(float64(x))
}

// fromBits returns the real whose raw bits are c.
func fromBits[T Real](c uint64) T {
	var x T
	if unsafe.Sizeof(x) == 4 {
		return T(math.Float32frombits(uint32(c)))
	}
	return T(math.Float64frombits(c))
}
