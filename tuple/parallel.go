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

import "github.com/ajroetker/go-stencil/workerpool"

// EnumerateParallel visits the same points as Enumerate, splitting the
// outermost (slowest-varying) dimension into slabs run on pool. Each slab
// gets its own point tuple and is visited in increasing linear index, but
// slabs run concurrently, so visit must be safe for concurrent use.
//
// A nil pool runs Enumerate on the calling goroutine.
func (t *Tuple[T]) EnumerateParallel(pool *workerpool.Pool, visit func(point *Tuple[T])) {
	if pool == nil || len(t.dims) == 0 {
		t.Enumerate(visit)
		return
	}
	t.checkedProduct("Tuple.EnumerateParallel")

	outer, step := 0, 1
	if t.FirstInner() {
		outer, step = len(t.dims)-1, -1
	}
	yield := func(pt *Tuple[T]) bool {
		visit(pt)
		return true
	}

	pool.ParallelFor(int(t.dims[outer].val), func(start, end int) {
		pt := t.Clone()
		for i := start; i < end; i++ {
			pt.dims[outer].val = T(i)
			t.visitDim(pt, outer+step, step, yield)
		}
	})
}
