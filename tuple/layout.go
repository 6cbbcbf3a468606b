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

package tuple

import (
	"iter"
	"math"

	"github.com/ajroetker/go-stencil/contract"
)

// This file maps between n-D points and flat indices. Both directions and
// the enumeration order are driven by the orientation flag, so that
// Enumerate visits points in increasing Linearize order.

// outward returns the position of the k-th dimension counting from unit
// stride outward.
func (t *Tuple[T]) outward(k int) int {
	if t.lastInner {
		return len(t.dims) - 1 - k
	}
	return k
}

// Linearize treats the values of t as the extents of an n-D box and returns
// the flat index of offsets inside it.
//
// If strict is set, offsets must have exactly the dimensions of t.
// Otherwise offsets missing from the argument are taken as zero and extra
// dimensions in offsets are ignored. Every offset must be an integer in
// [0, extent); anything else is a contract violation. So is a box with
// more points than an int can index.
func (t *Tuple[T]) Linearize(offsets *Tuple[T], strict bool) int {
	const op = "Tuple.Linearize"
	if strict && !t.AreDimsSame(offsets) {
		contract.Failf(op, "offsets (%s) do not have the dims of (%s)",
			offsets.DimStr(", ", "", ""), t.DimStr(", ", "", ""))
	}

	idx, stride := 0, 1
	for k := range len(t.dims) {
		s := t.dims[t.outward(k)]
		extent := int(s.val)
		if s.val < 0 || T(extent) != s.val {
			contract.Failf(op, "extent %v in dim '%s' is not a non-negative integer", s.val, s.name)
		}

		var off T
		if p := offsets.LookupName(s.name); p != nil {
			off = *p
		}
		if !(off >= 0 && off < s.val) {
			contract.Failf(op, "offset %v in dim '%s' not in [0, %v)", off, s.name, s.val)
		}
		if T(int(off)) != off {
			contract.Failf(op, "offset %v in dim '%s' is not an integer", off, s.name)
		}

		idx += int(off) * stride
		if stride > math.MaxInt/extent {
			contract.Failf(op, "box (%s) has too many points to index", t.DimValStr(", ", "=", "", ""))
		}
		stride *= extent
	}
	return idx
}

// Unlinearize is the inverse of Linearize: it returns the point with the
// dimensions of t whose flat index is idx. idx must be in [0, Product()).
func (t *Tuple[T]) Unlinearize(idx int) *Tuple[T] {
	const op = "Tuple.Unlinearize"
	total := t.checkedProduct(op)
	if idx < 0 || idx >= total {
		contract.Failf(op, "index %d not in [0, %d)", idx, total)
	}

	pt := t.Clone()
	for k := range len(t.dims) {
		d := t.outward(k)
		extent := int(t.dims[d].val)
		pt.dims[d].val = T(idx % extent)
		idx /= extent
	}
	return pt
}

// checkedProduct returns the number of points in the box of extents,
// failing on a negative extent.
func (t *Tuple[T]) checkedProduct(op string) int {
	total := 1
	for _, s := range t.dims {
		if s.val < 0 {
			contract.Failf(op, "negative extent %v in dim '%s'", s.val, s.name)
		}
		total *= int(s.val)
	}
	return total
}

// Enumerate calls visit once for every point of the n-D box whose extents
// are the values of t, in increasing Linearize order. A tuple with no
// dimensions is visited exactly once; a zero extent yields no visits.
//
// The point passed to visit is reused between calls; Clone it to keep it.
func (t *Tuple[T]) Enumerate(visit func(point *Tuple[T])) {
	t.walk(func(pt *Tuple[T]) bool {
		visit(pt)
		return true
	})
}

// Points returns an iterator over the same points as Enumerate, in the
// same order. Breaking out of the range loop stops the enumeration.
//
//	for pt := range sizes.Points() {
//		fmt.Println(pt.DimValStr(", ", "=", "", ""))
//	}
func (t *Tuple[T]) Points() iter.Seq[*Tuple[T]] {
	return func(yield func(*Tuple[T]) bool) {
		t.walk(yield)
	}
}

func (t *Tuple[T]) walk(visit func(*Tuple[T]) bool) {
	t.checkedProduct("Tuple.Enumerate")
	pt := t.Clone()
	if len(t.dims) == 0 {
		visit(pt)
		return
	}

	// The outermost dimension is the one farthest from unit stride.
	if t.FirstInner() {
		t.visitDim(pt, len(t.dims)-1, -1, visit)
	} else {
		t.visitDim(pt, 0, 1, visit)
	}
}

// visitDim iterates dimension d and recurses toward unit stride. It returns
// false once visit has asked to stop.
func (t *Tuple[T]) visitDim(pt *Tuple[T], d, step int, visit func(*Tuple[T]) bool) bool {
	if d < 0 || d >= len(t.dims) {
		return visit(pt)
	}
	extent := t.dims[d].val
	for i := T(0); i < extent; i++ {
		pt.dims[d].val = i
		if !t.visitDim(pt, d+step, step, visit) {
			return false
		}
	}
	return true
}
