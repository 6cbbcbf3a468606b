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

// Package tuple provides the named-coordinate model used to describe stencil
// domains: an ordered set of named values that can stand for the sizes of an
// n-D box, a point inside it, an offset vector, or the values at a point.
//
// The same concrete Tuple type serves all of these roles. The role decides
// which operations make sense: Linearize and Enumerate treat the values as
// extents, the directional predicates treat them as coordinates.
//
//	sizes := tuple.New[int]()
//	sizes.AddBack("x", 4)
//	sizes.AddBack("y", 3)
//
//	pt := tuple.New[int]()
//	pt.AddBack("x", 3)
//	pt.AddBack("y", 2)
//	idx := sizes.Linearize(pt, true) // 11: x is unit stride
//
// Dimension names are interned (see Interner) so lookups compare identities
// instead of strings. A Tuple is not safe for concurrent mutation.
package tuple

import (
	"github.com/ajroetker/go-stencil/contract"
)

// Tuple is an ordered collection of uniquely named values.
//
// The orientation flag selects which dimension is unit stride for
// Linearize, Unlinearize and Enumerate: with first-inner set (the default),
// dimension 0 varies fastest; otherwise the last dimension does.
//
// The zero value is an empty first-inner Tuple bound to the default
// Interner. Assignment copies share storage; use Clone for a deep copy.
type Tuple[T Number] struct {
	dims  []Scalar[T]
	index map[Name]int

	// lastInner is stored inverted so the zero value is first-inner.
	lastInner bool

	names *Interner
}

// New returns an empty first-inner Tuple bound to the default Interner.
func New[T Number]() *Tuple[T] {
	return &Tuple[T]{}
}

// NewIn returns an empty first-inner Tuple whose names are interned in in.
func NewIn[T Number](in *Interner) *Tuple[T] {
	return &Tuple[T]{names: in}
}

// FromScalars returns a Tuple holding the given dimensions in order.
// Later duplicates overwrite earlier values.
func FromScalars[T Number](dims ...Scalar[T]) *Tuple[T] {
	t := New[T]()
	for _, s := range dims {
		t.AddScalarBack(s)
	}
	return t
}

func (t *Tuple[T]) interner() *Interner {
	if t.names == nil {
		return defaultInterner
	}
	return t.names
}

// Interner returns the Interner this Tuple resolves names in.
func (t *Tuple[T]) Interner() *Interner {
	return t.interner()
}

// reindex rebuilds the name index from scratch.
func (t *Tuple[T]) reindex() {
	t.index = make(map[Name]int, len(t.dims))
	for i, s := range t.dims {
		t.index[s.name] = i
	}
}

// resolve maps a Name that may come from another Interner onto this
// Tuple's Interner.
func (t *Tuple[T]) resolve(n Name) (Name, bool) {
	in := t.interner()
	if in.Owns(n) {
		return n, true
	}
	if n.IsZero() {
		return Name{}, false
	}
	return in.Lookup(n.String())
}

// Clone returns a deep copy of t with a rebuilt index.
func (t *Tuple[T]) Clone() *Tuple[T] {
	c := &Tuple[T]{
		dims:      append([]Scalar[T](nil), t.dims...),
		lastInner: t.lastInner,
		names:     t.names,
	}
	c.reindex()
	return c
}

// FirstInner reports whether dimension 0 is unit stride.
func (t *Tuple[T]) FirstInner() bool {
	return !t.lastInner
}

// SetFirstInner sets the orientation flag.
func (t *Tuple[T]) SetFirstInner(firstInner bool) {
	t.lastInner = !firstInner
}

// NumDims returns the number of dimensions.
func (t *Tuple[T]) NumDims() int {
	return len(t.dims)
}

// Dims returns a copy of the dimensions in order.
func (t *Tuple[T]) Dims() []Scalar[T] {
	return append([]Scalar[T](nil), t.dims...)
}

// Names returns the dimension names in order.
func (t *Tuple[T]) Names() []string {
	out := make([]string, len(t.dims))
	for i, s := range t.dims {
		out[i] = s.name.String()
	}
	return out
}

// Vals returns the values in dimension order.
func (t *Tuple[T]) Vals() []T {
	out := make([]T, len(t.dims))
	for i, s := range t.dims {
		out[i] = s.val
	}
	return out
}

// DimAt returns the dimension at position i, which must exist.
func (t *Tuple[T]) DimAt(i int) Scalar[T] {
	contract.Check(i >= 0 && i < len(t.dims), "Tuple.DimAt",
		"index %d not in [0, %d)", i, len(t.dims))
	return t.dims[i]
}

// DimName returns the name of the dimension at position i, which must exist.
func (t *Tuple[T]) DimName(i int) string {
	return t.DimAt(i).name.String()
}

// Dim returns the named dimension, which must exist.
func (t *Tuple[T]) Dim(name string) Scalar[T] {
	n, ok := t.interner().Lookup(name)
	if ok {
		if i, ok := t.index[n]; ok {
			return t.dims[i]
		}
	}
	contract.Failf("Tuple.Dim", "dimension '%s' not in (%s)", name, t.DimStr(", ", "", ""))
	return Scalar[T]{}
}

// LookupAt returns a pointer to the value at position i, or nil.
// The pointer is valid until the next AddFront, AddBack or Clear.
func (t *Tuple[T]) LookupAt(i int) *T {
	if i < 0 || i >= len(t.dims) {
		return nil
	}
	return &t.dims[i].val
}

// LookupName returns a pointer to the value for n, or nil.
func (t *Tuple[T]) LookupName(n Name) *T {
	n, ok := t.resolve(n)
	if !ok {
		return nil
	}
	i, ok := t.index[n]
	if !ok {
		return nil
	}
	return &t.dims[i].val
}

// Lookup returns a pointer to the value for the named dimension, or nil.
// Looking up never interns name.
func (t *Tuple[T]) Lookup(name string) *T {
	n, ok := t.interner().Lookup(name)
	if !ok {
		return nil
	}
	i, ok := t.index[n]
	if !ok {
		return nil
	}
	return &t.dims[i].val
}

// Has reports whether the named dimension exists.
func (t *Tuple[T]) Has(name string) bool {
	return t.Lookup(name) != nil
}

// ValAt returns the value at position i, which must exist.
func (t *Tuple[T]) ValAt(i int) T {
	p := t.LookupAt(i)
	contract.Check(p != nil, "Tuple.ValAt", "index %d not in [0, %d)", i, len(t.dims))
	return *p
}

// Val returns the value of the named dimension, which must exist.
func (t *Tuple[T]) Val(name string) T {
	p := t.Lookup(name)
	if p == nil {
		contract.Failf("Tuple.Val", "dimension '%s' not in (%s)", name, t.DimStr(", ", "", ""))
	}
	return *p
}

// ValName returns the value for n, which must exist.
func (t *Tuple[T]) ValName(n Name) T {
	p := t.LookupName(n)
	if p == nil {
		contract.Failf("Tuple.ValName", "dimension '%s' not in (%s)", n, t.DimStr(", ", "", ""))
	}
	return *p
}

// Clear removes all dimensions. The orientation flag is kept.
func (t *Tuple[T]) Clear() {
	t.dims = nil
	t.index = nil
}

// AddBack sets the named dimension to val, appending it after the last
// dimension if it does not exist yet. An existing dimension keeps its
// position.
func (t *Tuple[T]) AddBack(name string, val T) {
	t.addName(t.interner().Intern(name), val, false)
}

// AddFront is like AddBack but prepends a new dimension.
func (t *Tuple[T]) AddFront(name string, val T) {
	t.addName(t.interner().Intern(name), val, true)
}

// AddScalarBack is AddBack for a Scalar.
func (t *Tuple[T]) AddScalarBack(s Scalar[T]) {
	t.addScalar(s, false)
}

// AddScalarFront is AddFront for a Scalar.
func (t *Tuple[T]) AddScalarFront(s Scalar[T]) {
	t.addScalar(s, true)
}

func (t *Tuple[T]) addScalar(s Scalar[T], front bool) {
	n := s.name
	if !t.interner().Owns(n) {
		n = t.interner().Intern(n.String())
	}
	t.addName(n, s.val, front)
}

func (t *Tuple[T]) addName(n Name, val T, front bool) {
	if i, ok := t.index[n]; ok {
		t.dims[i].val = val
		return
	}
	s := Scalar[T]{name: n, val: val}
	if front {
		t.dims = append([]Scalar[T]{s}, t.dims...)
		t.reindex()
		return
	}
	t.dims = append(t.dims, s)
	if t.index == nil {
		t.index = make(map[Name]int)
	}
	t.index[n] = len(t.dims) - 1
}

// SetVal sets the value of the named dimension, which must exist.
func (t *Tuple[T]) SetVal(name string, val T) {
	p := t.Lookup(name)
	if p == nil {
		contract.Failf("Tuple.SetVal", "dimension '%s' not in (%s)", name, t.DimStr(", ", "", ""))
	}
	*p = val
}

// SetValAt sets the value at position i, which must exist.
func (t *Tuple[T]) SetValAt(i int, val T) {
	p := t.LookupAt(i)
	contract.Check(p != nil, "Tuple.SetValAt", "index %d not in [0, %d)", i, len(t.dims))
	*p = val
}

// SetVals assigns vals by position in the current dimension order.
// Extra values are ignored; if there are fewer values than dimensions only
// the leading dimensions change. Dimensions are never added or removed.
func (t *Tuple[T]) SetVals(vals []T) {
	n := min(len(vals), len(t.dims))
	for i := range n {
		t.dims[i].val = vals[i]
	}
}

// SetValsSame sets every dimension to val.
func (t *Tuple[T]) SetValsSame(val T) {
	for i := range t.dims {
		t.dims[i].val = val
	}
}

// SetValsFrom copies values from src for dimensions present in both tuples.
// If addMissing is set, dimensions only in src are appended with src's
// values. Dimensions only in t are left unchanged.
func (t *Tuple[T]) SetValsFrom(src *Tuple[T], addMissing bool) {
	for _, s := range src.dims {
		if p := t.LookupName(s.name); p != nil {
			*p = s.val
		} else if addMissing {
			t.AddBack(s.name.String(), s.val)
		}
	}
}
