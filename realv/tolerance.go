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

// DefaultEpsilon is the tolerance used when validating against a
// reference computation.
const DefaultEpsilon = 1e-3

// WithinTolerance reports whether |val-ref| < eps, where eps is scaled by
// |ref| when |ref| > 1. The switch between the absolute and relative
// regimes is a hard cutoff. Arithmetic is done in T. NaN is never within
// tolerance.
func WithinTolerance[T Real](val, ref, eps T) bool {
	diff := abs(val - ref)
	if abs(ref) > 1 {
		eps = abs(ref * eps)
	}
	return diff < eps
}

func abs[T Real](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// WithinToleranceVec reports whether every lane of val is within eps of
// the same lane of ref.
func WithinToleranceVec[T Real](val, ref Vec[T], eps T) bool {
	e := val.owner("WithinToleranceVec")
	return WithinToleranceEps(val, ref, e.Set(eps))
}

// WithinToleranceEps is WithinToleranceVec with a tolerance per lane.
func WithinToleranceEps[T Real](val, ref, eps Vec[T]) bool {
	e := val.owner("WithinToleranceEps")
	e.check("WithinToleranceEps", &val, overlayReal)
	e.check("WithinToleranceEps", &ref, overlayReal)
	e.check("WithinToleranceEps", &eps, overlayReal)
	for l := range e.vlen {
		if !WithinTolerance(val.r[l], ref.r[l], eps.r[l]) {
			return false
		}
	}
	return true
}
