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

// Memory moves address slices in units of elements. "Aligned" means the
// offset is a multiple of VLEN, i.e. the slice is viewed as an array of
// whole vectors.

// Load returns the vector at src[off:off+VLEN]. off must be a multiple of
// VLEN.
func (e *Engine[T]) Load(src []T, off int) Vec[T] {
	e.checkAligned("Engine.Load", off)
	e.checkSpan("Engine.Load", len(src), off)
	var r [MaxLanes]T
	e.load(&r, src[off:off+e.vlen])
	return e.vec(&r)
}

// LoadUnaligned returns the vector at src[off:off+VLEN] for any off.
func (e *Engine[T]) LoadUnaligned(src []T, off int) Vec[T] {
	e.checkSpan("Engine.LoadUnaligned", len(src), off)
	var r [MaxLanes]T
	e.load(&r, src[off:off+e.vlen])
	return e.vec(&r)
}

// Store writes v to dst[off:off+VLEN]. off must be a multiple of VLEN.
func (v Vec[T]) Store(dst []T, off int) {
	e := v.owner("Vec.Store")
	e.check("Vec.Store", &v, overlayReal)
	e.checkAligned("Vec.Store", off)
	e.checkSpan("Vec.Store", len(dst), off)
	e.store(dst[off:off+e.vlen], &v.r, false)
}

// StoreUnaligned writes v to dst[off:off+VLEN] for any off.
func (v Vec[T]) StoreUnaligned(dst []T, off int) {
	e := v.owner("Vec.StoreUnaligned")
	e.check("Vec.StoreUnaligned", &v, overlayReal)
	e.checkSpan("Vec.StoreUnaligned", len(dst), off)
	e.store(dst[off:off+e.vlen], &v.r, false)
}

// StoreStream is Store with a hint that dst will not be read soon.
func (v Vec[T]) StoreStream(dst []T, off int) {
	e := v.owner("Vec.StoreStream")
	e.check("Vec.StoreStream", &v, overlayReal)
	e.checkAligned("Vec.StoreStream", off)
	e.checkSpan("Vec.StoreStream", len(dst), off)
	e.store(dst[off:off+e.vlen], &v.r, true)
}

func (e *Engine[T]) checkAligned(op string, off int) {
	if off%e.vlen != 0 {
		contract.Failf(op, "offset %d is not a multiple of VLEN %d", off, e.vlen)
	}
}

func (e *Engine[T]) checkSpan(op string, n, off int) {
	if off < 0 || off+e.vlen > n {
		contract.Failf(op, "lanes [%d, %d) outside slice of length %d", off, off+e.vlen, n)
	}
}
