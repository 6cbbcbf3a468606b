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

// Package contract defines the single error kind shared by the tuple and
// realv packages: a caller bug such as an out-of-range offset, a missing
// dimension or a read of an undefined lane.
//
// Violations are fatal by default: the failing operation panics with a
// *Violation. Validation code that wants an error value instead wraps the
// call with Catch:
//
//	err := contract.Catch(func() {
//		idx = extents.Linearize(offsets, true)
//	})
//	if v, ok := contract.AsViolation(err); ok {
//		log.Printf("bad offsets in %s: %s", v.Op, v.Msg)
//	}
//
// A violation is never retried or corrected; offsets are not clamped.
package contract

import (
	"errors"
	"fmt"
)

// Violation describes a broken caller contract.
type Violation struct {
	// Op is the operation that detected the problem, e.g. "Tuple.Linearize".
	Op string

	// Msg describes what was wrong.
	Msg string
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return "contract violation in " + v.Op + ": " + v.Msg
}

// Failf panics with a *Violation for op.
func Failf(op, format string, args ...any) {
	panic(&Violation{Op: op, Msg: fmt.Sprintf(format, args...)})
}

// Check panics with a *Violation for op when cond is false.
func Check(cond bool, op, format string, args ...any) {
	if !cond {
		Failf(op, format, args...)
	}
}

// Catch runs fn and converts a *Violation panic into a returned error.
// Any other panic is propagated unchanged.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			v, ok := r.(*Violation)
			if !ok {
				panic(r)
			}
			err = v
		}
	}()
	fn()
	return nil
}

// AsViolation reports whether err is, or wraps, a *Violation.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
