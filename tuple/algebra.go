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
	"github.com/ajroetker/go-stencil/contract"
)

// UnionWith returns a copy of t plus the dimensions of o that t lacks,
// appended with o's values. Where both have a dimension, t's value wins.
func (t *Tuple[T]) UnionWith(o *Tuple[T]) *Tuple[T] {
	u := t.Clone()
	for _, s := range o.dims {
		if u.LookupName(s.name) == nil {
			u.AddBack(s.name.String(), s.val)
		}
	}
	return u
}

// AreDimsSame reports whether t and o have the same set of dimension names,
// in any order.
func (t *Tuple[T]) AreDimsSame(o *Tuple[T]) bool {
	if len(t.dims) != len(o.dims) {
		return false
	}
	for _, s := range t.dims {
		if o.LookupName(s.name) == nil {
			return false
		}
	}
	return true
}

// Equal reports whether t and o have the same dimensions with the same
// values. Dimension order does not matter.
func (t *Tuple[T]) Equal(o *Tuple[T]) bool {
	if !t.AreDimsSame(o) {
		return false
	}
	for _, s := range t.dims {
		if *o.LookupName(s.name) != s.val {
			return false
		}
	}
	return true
}

// Less is a total order for use in sorted containers, not a magnitude
// comparison. Tuples with fewer dimensions sort first. Tuples with the same
// dimensions compare values in t's dimension order. Otherwise the
// comma-joined dimension names are compared.
func (t *Tuple[T]) Less(o *Tuple[T]) bool {
	if len(t.dims) != len(o.dims) {
		return len(t.dims) < len(o.dims)
	}
	if t.AreDimsSame(o) {
		for _, s := range t.dims {
			ov := *o.LookupName(s.name)
			if s.val < ov {
				return true
			} else if s.val > ov {
				return false
			}
		}
		return false
	}
	return t.DimStr(", ", "", "") < o.DimStr(", ", "", "")
}

// Compare returns 0 if t and o are Equal, -1 if t is Less than o and +1
// otherwise.
func (t *Tuple[T]) Compare(o *Tuple[T]) int {
	switch {
	case t.Equal(o):
		return 0
	case t.Less(o):
		return -1
	}
	return 1
}

// LessOrEqual reports Equal or Less.
func (t *Tuple[T]) LessOrEqual(o *Tuple[T]) bool {
	return t.Equal(o) || t.Less(o)
}

// Greater reports neither Equal nor Less.
func (t *Tuple[T]) Greater(o *Tuple[T]) bool {
	return !t.LessOrEqual(o)
}

// GreaterOrEqual reports not Less.
func (t *Tuple[T]) GreaterOrEqual(o *Tuple[T]) bool {
	return !t.Less(o)
}

// Reduce folds reducer over the values in dimension order. It returns zero
// for an empty tuple.
func (t *Tuple[T]) Reduce(reducer func(acc, val T) T) T {
	var acc T
	for i, s := range t.dims {
		if i == 0 {
			acc = s.val
			continue
		}
		acc = reducer(acc, s.val)
	}
	return acc
}

// Sum returns the sum of the values; zero for an empty tuple.
func (t *Tuple[T]) Sum() T {
	return t.Reduce(func(a, b T) T { return a + b })
}

// Product returns the product of the values; one for an empty tuple.
func (t *Tuple[T]) Product() T {
	if len(t.dims) == 0 {
		return 1
	}
	return t.Reduce(func(a, b T) T { return a * b })
}

// Max returns the largest value; zero for an empty tuple.
func (t *Tuple[T]) Max() T {
	return t.Reduce(func(a, b T) T { return max(a, b) })
}

// Min returns the smallest value; zero for an empty tuple.
func (t *Tuple[T]) Min() T {
	return t.Reduce(func(a, b T) T { return min(a, b) })
}

// CombineElements returns a copy of t where each value that has a match in
// o is replaced by combine(t's value, o's value). If strict is set, t and o
// must have the same dimensions; otherwise unmatched dimensions of t keep
// their value and extra dimensions of o are ignored.
func (t *Tuple[T]) CombineElements(combine func(a, b T) T, o *Tuple[T], strict bool) *Tuple[T] {
	if strict {
		contract.Check(t.AreDimsSame(o), "Tuple.CombineElements",
			"(%s) does not have the dims of (%s)",
			o.DimStr(", ", "", ""), t.DimStr(", ", "", ""))
	}
	c := t.Clone()
	for i, s := range c.dims {
		if p := o.LookupName(s.name); p != nil {
			c.dims[i].val = combine(s.val, *p)
		}
	}
	return c
}

// AddElements adds matching values.
func (t *Tuple[T]) AddElements(o *Tuple[T], strict bool) *Tuple[T] {
	return t.CombineElements(func(a, b T) T { return a + b }, o, strict)
}

// MultElements multiplies matching values.
func (t *Tuple[T]) MultElements(o *Tuple[T], strict bool) *Tuple[T] {
	return t.CombineElements(func(a, b T) T { return a * b }, o, strict)
}

// MaxElements takes the larger of matching values.
func (t *Tuple[T]) MaxElements(o *Tuple[T], strict bool) *Tuple[T] {
	return t.CombineElements(func(a, b T) T { return max(a, b) }, o, strict)
}

// MinElements takes the smaller of matching values.
func (t *Tuple[T]) MinElements(o *Tuple[T], strict bool) *Tuple[T] {
	return t.CombineElements(func(a, b T) T { return min(a, b) }, o, strict)
}

// MapElements returns a copy of t with every value replaced by fn(value, c).
func (t *Tuple[T]) MapElements(fn func(val, c T) T, c T) *Tuple[T] {
	m := t.Clone()
	for i := range m.dims {
		m.dims[i].val = fn(m.dims[i].val, c)
	}
	return m
}

// AddConst adds c to every value.
func (t *Tuple[T]) AddConst(c T) *Tuple[T] {
	return t.MapElements(func(a, b T) T { return a + b }, c)
}

// MultConst multiplies every value by c.
func (t *Tuple[T]) MultConst(c T) *Tuple[T] {
	return t.MapElements(func(a, b T) T { return a * b }, c)
}

// MaxConst raises every value to at least c.
func (t *Tuple[T]) MaxConst(c T) *Tuple[T] {
	return t.MapElements(func(a, b T) T { return max(a, b) }, c)
}

// MinConst lowers every value to at most c.
func (t *Tuple[T]) MinConst(c T) *Tuple[T] {
	return t.MapElements(func(a, b T) T { return min(a, b) }, c)
}

// RemoveDim returns a copy of t without the named dimension. If the
// dimension does not exist the result is a plain copy.
func (t *Tuple[T]) RemoveDim(name string) *Tuple[T] {
	r := &Tuple[T]{lastInner: t.lastInner, names: t.names}
	for _, s := range t.dims {
		if s.name.String() != name {
			r.dims = append(r.dims, s)
		}
	}
	r.reindex()
	return r
}

// ValInDir returns t's value in the dimension of dir, which must exist.
func (t *Tuple[T]) ValInDir(dir Scalar[T]) T {
	return t.ValName(dir.name)
}

// DirInDim returns the named dimension as a Scalar, which must exist.
func (t *Tuple[T]) DirInDim(name string) Scalar[T] {
	return t.Dim(name)
}

// IsInlineInDir reports whether t and o agree in every dimension except the
// dimension of dir. Both must have the same dimensions.
func (t *Tuple[T]) IsInlineInDir(o *Tuple[T], dir Scalar[T]) bool {
	contract.Check(t.AreDimsSame(o), "Tuple.IsInlineInDir",
		"(%s) does not have the dims of (%s)",
		o.DimStr(", ", "", ""), t.DimStr(", ", "", ""))
	dname, _ := t.resolve(dir.name)
	for _, s := range t.dims {
		if s.name != dname && s.val != *o.LookupName(s.name) {
			return false
		}
	}
	return true
}

// IsAheadOfInDir reports whether t is inline with o along dir and farther
// along the sign of dir's value: greater for a positive direction, lesser
// for a negative one. A zero direction is never ahead.
func (t *Tuple[T]) IsAheadOfInDir(o *Tuple[T], dir Scalar[T]) bool {
	if !t.IsInlineInDir(o, dir) {
		return false
	}
	tv := t.ValName(dir.name)
	ov := o.ValName(dir.name)
	return (dir.val > 0 && tv > ov) || (dir.val < 0 && tv < ov)
}
