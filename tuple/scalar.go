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

import "fmt"

// Number is a constraint for the value types a Tuple can hold.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Scalar is one named value: the atom of the coordinate model.
type Scalar[T Number] struct {
	name Name
	val  T
}

// NewScalar returns a Scalar with name interned in the default Interner.
func NewScalar[T Number](name string, val T) Scalar[T] {
	return Scalar[T]{name: Intern(name), val: val}
}

// MakeScalar returns a Scalar for an already interned name.
func MakeScalar[T Number](name Name, val T) Scalar[T] {
	return Scalar[T]{name: name, val: val}
}

// Name returns the interned dimension name.
func (s Scalar[T]) Name() Name { return s.name }

// Val returns the value.
func (s Scalar[T]) Val() T { return s.val }

// WithVal returns a copy of s holding val.
func (s Scalar[T]) WithVal(val T) Scalar[T] {
	s.val = val
	return s
}

// Compare orders Scalars by value first, then by name interning order.
// It returns -1, 0 or +1.
func (s Scalar[T]) Compare(o Scalar[T]) int {
	switch {
	case s.val < o.val:
		return -1
	case s.val > o.val:
		return 1
	}
	switch sa, oa := s.name.Seq(), o.name.Seq(); {
	case sa < oa:
		return -1
	case sa > oa:
		return 1
	}
	return 0
}

// Less reports whether s sorts before o.
func (s Scalar[T]) Less(o Scalar[T]) bool {
	return s.Compare(o) < 0
}

// Equal reports whether s and o have the same name identity and value.
func (s Scalar[T]) Equal(o Scalar[T]) bool {
	return s.name == o.name && s.val == o.val
}

// String renders s as "name=value".
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%s=%v", s.name, s.val)
}
