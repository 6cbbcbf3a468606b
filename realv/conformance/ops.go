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

package conformance

import (
	"math/rand/v2"
	"strconv"

	"github.com/ajroetker/go-stencil/realv"
)

// inputs holds the raw lanes of one round. Vectors are rebuilt from them
// on each engine because a vector belongs to the engine that made it.
type inputs[T realv.Real] struct {
	a, b, c []T
	scalar  T
	ctrl    []uint64 // single-source indices
	ctrl2   []uint64 // two-source indices with select bits
	mask    uint32
	mem     []T // 3*VLEN elements
	memOff  int // unaligned offset into mem
}

func newInputs[T realv.Real](vlen int, seed uint64, round int) *inputs[T] {
	rng := rand.New(rand.NewPCG(seed, uint64(round)))
	val := func() T {
		// Mix magnitudes so both tolerance regimes and rounding show up.
		return T((rng.Float64()*2 - 1) * float64(int(1)<<rng.IntN(12)))
	}
	nonZero := func() T {
		for {
			if v := val(); v != 0 {
				return v
			}
		}
	}
	in := &inputs[T]{
		a:      make([]T, vlen),
		b:      make([]T, vlen),
		c:      make([]T, vlen),
		ctrl:   make([]uint64, vlen),
		ctrl2:  make([]uint64, vlen),
		scalar: nonZero(),
		mask:   uint32(rng.Uint64()) & (uint32(1)<<vlen - 1),
		mem:    make([]T, 3*vlen),
		memOff: rng.IntN(vlen + 1),
	}
	sel := uint64(0x10)
	if realv.ElemBytes[T]() == 8 {
		sel = 0x8
	}
	for l := range vlen {
		in.a[l] = val()
		in.b[l] = nonZero()
		in.c[l] = val()
		in.ctrl[l] = uint64(rng.IntN(vlen))
		in.ctrl2[l] = uint64(rng.IntN(vlen))
		if rng.IntN(2) == 1 {
			in.ctrl2[l] |= sel
		}
	}
	for i := range in.mem {
		in.mem[i] = val()
	}
	return in
}

// operation runs one vector operation on engine e and flattens its result.
type operation[T realv.Real] struct {
	name string
	fast bool // run on the fast-divide engine and compare within tolerance
	run  func(e *realv.Engine[T], in *inputs[T]) []T
}

func flag[T realv.Real](b bool) T {
	if b {
		return 1
	}
	return 0
}

func operations[T realv.Real](vlen int) []operation[T] {
	vecs := func(e *realv.Engine[T], in *inputs[T]) (a, b realv.Vec[T]) {
		return e.FromLanes(in.a...), e.FromLanes(in.b...)
	}
	ops := []operation[T]{
		{name: "add", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return a.Add(b).Lanes()
		}},
		{name: "sub", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return a.Sub(b).Lanes()
		}},
		{name: "mul", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return a.Mul(b).Lanes()
		}},
		{name: "div", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return a.Div(b).Lanes()
		}},
		{name: "fast_div", fast: true, run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return a.Div(b).Lanes()
		}},
		{name: "neg", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			return e.FromLanes(in.a...).Neg().Lanes()
		}},
		{name: "scalar_ops", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a := e.FromLanes(in.a...)
			v := a.AddScalar(in.scalar).MulScalar(in.scalar)
			v = realv.ScalarSub(in.scalar, v).DivScalar(in.scalar)
			return realv.ScalarDiv(in.scalar, e.FromLanes(in.b...)).Add(v).Lanes()
		}},
		{name: "expression", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			c := e.FromLanes(in.c...)
			return a.Mul(b).Add(c).Sub(a.Div(b)).Neg().Lanes()
		}},
		{name: "masked_align", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			dst := e.FromLanes(in.c...)
			realv.MaskedAlign(&dst, a, b, in.memOff, in.mask)
			return dst.Lanes()
		}},
		{name: "permute", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			return realv.Permute(e.Ctrl(in.ctrl...), e.FromLanes(in.a...)).Lanes()
		}},
		{name: "masked_permute", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			dst := e.FromLanes(in.c...)
			realv.MaskedPermute(&dst, e.Ctrl(in.ctrl...), e.FromLanes(in.a...), in.mask)
			return dst.Lanes()
		}},
		{name: "permute2", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return realv.Permute2(e.Ctrl(in.ctrl2...), a, b).Lanes()
		}},
		{name: "load_store", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			out := make([]T, len(in.mem))
			for off := 0; off < len(in.mem); off += vlen {
				e.Load(in.mem, off).Store(out, off)
			}
			return out
		}},
		{name: "load_unaligned", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			out := make([]T, len(in.mem))
			e.LoadUnaligned(in.mem, in.memOff).StoreUnaligned(out, in.memOff)
			e.LoadUnaligned(in.mem, in.memOff+vlen).StoreStream(out, 2*vlen)
			return out
		}},
		{name: "compare", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			return []T{flag[T](a.Less(b)), flag[T](a.Greater(b)), flag[T](a.Equal(a)), flag[T](a.NotEqual(b))}
		}},
		{name: "tolerance", run: func(e *realv.Engine[T], in *inputs[T]) []T {
			a, b := vecs(e, in)
			near := a.Add(a.MulScalar(T(realv.DefaultEpsilon) / 4))
			return []T{
				flag[T](realv.WithinToleranceVec(near, a, realv.DefaultEpsilon)),
				flag[T](realv.WithinToleranceVec(a, b, realv.DefaultEpsilon)),
			}
		}},
	}
	for count := 0; count <= vlen; count++ {
		ops = append(ops, operation[T]{
			name: "align/" + strconv.Itoa(count),
			run: func(e *realv.Engine[T], in *inputs[T]) []T {
				a, b := vecs(e, in)
				return realv.Align(a, b, count).Lanes()
			},
		})
	}
	return ops
}
