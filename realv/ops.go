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
	"github.com/ajroetker/go-stencil/contract"
)

// Undefined returns a vector with no defined lanes. Reading any lane
// before writing it is a contract violation.
func (e *Engine[T]) Undefined() Vec[T] {
	return Vec[T]{e: e}
}

// Set returns a vector with every lane equal to s.
func (e *Engine[T]) Set(s T) Vec[T] {
	var r [MaxLanes]T
	e.broadcast(&r, s)
	return e.vec(&r)
}

// SetFloat64 broadcasts s converted to T.
func (e *Engine[T]) SetFloat64(s float64) Vec[T] {
	return e.Set(T(s))
}

// SetInt broadcasts s converted to T.
func (e *Engine[T]) SetInt(s int) Vec[T] {
	return e.Set(T(s))
}

// Zero returns a vector of zeros.
func (e *Engine[T]) Zero() Vec[T] {
	return e.Set(0)
}

// FromLanes returns a vector holding lanes, which must have exactly VLEN
// elements.
func (e *Engine[T]) FromLanes(lanes ...T) Vec[T] {
	if len(lanes) != e.vlen {
		contract.Failf("Engine.FromLanes", "got %d lanes, want %d", len(lanes), e.vlen)
	}
	var r [MaxLanes]T
	copy(r[:], lanes)
	return e.vec(&r)
}

// Iota returns the vector whose lane l holds start+l.
func (e *Engine[T]) Iota(start T) Vec[T] {
	var r [MaxLanes]T
	for l := range e.vlen {
		r[l] = start + T(l)
	}
	return e.vec(&r)
}

// Ctrl returns a control vector whose lane l holds indices[l]. Exactly
// VLEN indices are required.
func (e *Engine[T]) Ctrl(indices ...uint64) Vec[T] {
	if len(indices) != e.vlen {
		contract.Failf("Engine.Ctrl", "got %d indices, want %d", len(indices), e.vlen)
	}
	v := Vec[T]{e: e, view: overlayCtrl}
	for l, c := range indices {
		v.SetCtrlLane(l, c)
	}
	return v
}

// Neg returns -v, computed as 0-v.
func (v Vec[T]) Neg() Vec[T] {
	e := v.owner("Vec.Neg")
	e.check("Vec.Neg", &v, overlayReal)
	var r [MaxLanes]T
	e.unary(opNeg, &r, &v.r)
	return e.vec(&r)
}

// arith applies a lane-wise primitive to two defined real vectors.
func (v Vec[T]) arith(name string, op binOp, o Vec[T]) Vec[T] {
	e := v.owner(name)
	e.check(name, &v, overlayReal)
	e.check(name, &o, overlayReal)
	var r [MaxLanes]T
	e.binary(op, &r, &v.r, &o.r)
	return e.vec(&r)
}

// Add returns the lane-wise sum v+o.
func (v Vec[T]) Add(o Vec[T]) Vec[T] {
	return v.arith("Vec.Add", opAdd, o)
}

// Sub returns the lane-wise difference v-o.
func (v Vec[T]) Sub(o Vec[T]) Vec[T] {
	return v.arith("Vec.Sub", opSub, o)
}

// Mul returns the lane-wise product v*o.
func (v Vec[T]) Mul(o Vec[T]) Vec[T] {
	return v.arith("Vec.Mul", opMul, o)
}

// Div returns the lane-wise quotient v/o. With Config.FastDivide it is
// computed as v*(1/o).
func (v Vec[T]) Div(o Vec[T]) Vec[T] {
	e := v.owner("Vec.Div")
	if !e.cfg.FastDivide {
		return v.arith("Vec.Div", opDiv, o)
	}
	e.check("Vec.Div", &v, overlayReal)
	e.check("Vec.Div", &o, overlayReal)
	var rcp, r [MaxLanes]T
	e.unary(opRecip, &rcp, &o.r)
	e.binary(opMul, &r, &v.r, &rcp)
	return e.vec(&r)
}

// AddScalar returns v+s in every lane.
func (v Vec[T]) AddScalar(s T) Vec[T] {
	return v.Add(v.owner("Vec.AddScalar").Set(s))
}

// SubScalar returns v-s in every lane.
func (v Vec[T]) SubScalar(s T) Vec[T] {
	return v.Sub(v.owner("Vec.SubScalar").Set(s))
}

// MulScalar returns v*s in every lane.
func (v Vec[T]) MulScalar(s T) Vec[T] {
	return v.Mul(v.owner("Vec.MulScalar").Set(s))
}

// DivScalar returns v/s in every lane.
func (v Vec[T]) DivScalar(s T) Vec[T] {
	return v.Div(v.owner("Vec.DivScalar").Set(s))
}

// ScalarAdd returns s+v in every lane.
func ScalarAdd[T Real](s T, v Vec[T]) Vec[T] {
	return v.owner("ScalarAdd").Set(s).Add(v)
}

// ScalarSub returns s-v in every lane.
func ScalarSub[T Real](s T, v Vec[T]) Vec[T] {
	return v.owner("ScalarSub").Set(s).Sub(v)
}

// ScalarMul returns s*v in every lane.
func ScalarMul[T Real](s T, v Vec[T]) Vec[T] {
	return v.owner("ScalarMul").Set(s).Mul(v)
}

// ScalarDiv returns s/v in every lane.
func ScalarDiv[T Real](s T, v Vec[T]) Vec[T] {
	return v.owner("ScalarDiv").Set(s).Div(v)
}

// Equal reports whether every lane of v equals the same lane of o.
func (v Vec[T]) Equal(o Vec[T]) bool {
	e := v.owner("Vec.Equal")
	e.check("Vec.Equal", &v, overlayReal)
	e.check("Vec.Equal", &o, overlayReal)
	for l := range e.vlen {
		if v.r[l] != o.r[l] {
			return false
		}
	}
	return true
}

// NotEqual is !Equal.
func (v Vec[T]) NotEqual(o Vec[T]) bool {
	return !v.Equal(o)
}

// compare orders v and o lexicographically from lane 0.
func (v Vec[T]) compare(op string, o Vec[T]) int {
	e := v.owner(op)
	e.check(op, &v, overlayReal)
	e.check(op, &o, overlayReal)
	for l := range e.vlen {
		switch {
		case v.r[l] < o.r[l]:
			return -1
		case v.r[l] > o.r[l]:
			return 1
		}
	}
	return 0
}

// Less orders vectors lexicographically by lane, lane 0 first. The order
// is a total order only when no lane is NaN.
func (v Vec[T]) Less(o Vec[T]) bool {
	return v.compare("Vec.Less", o) < 0
}

// Greater orders vectors lexicographically by lane, lane 0 first.
func (v Vec[T]) Greater(o Vec[T]) bool {
	return v.compare("Vec.Greater", o) > 0
}
