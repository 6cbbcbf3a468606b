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

import "testing"

var (
	sinkVec  Vec[float32]
	sinkBool bool
	sinkReal float32
)

// emulatedCube returns a 2x2x2 float32 engine on the emulated backend and
// two operands with all lanes defined.
func emulatedCube(tb testing.TB) (e *Engine[float32], a, b Vec[float32]) {
	e = newEngine[float32](tb, Config{Fold: cube, ForceEmulation: true})
	return e, e.Iota(1), e.Iota(10)
}

func TestVectorOpsDoNotAllocate(t *testing.T) {
	e, a, b := emulatedCube(t)
	fast := newEngine[float32](t, Config{Fold: cube, ForceEmulation: true, FastDivide: true})
	fa, fb := fast.Iota(1), fast.Iota(10)
	ctrl := e.Ctrl(7, 6, 5, 4, 3, 2, 1, 0)
	ctrl2 := e.Ctrl(0x10, 1, 0x12, 3, 0x14, 5, 0x16, 7)
	src := make([]float32, 4*e.VLEN())
	dst := make([]float32, len(src))
	masked := e.Zero()

	tests := []struct {
		name string
		fn   func()
	}{
		{"Set", func() { sinkVec = e.Set(2) }},
		{"Add", func() { sinkVec = a.Add(b) }},
		{"Sub", func() { sinkVec = a.Sub(b) }},
		{"Mul", func() { sinkVec = a.Mul(b) }},
		{"Div", func() { sinkVec = a.Div(b) }},
		{"FastDiv", func() { sinkVec = fa.Div(fb) }},
		{"Neg", func() { sinkVec = a.Neg() }},
		{"MulScalar", func() { sinkVec = a.MulScalar(3) }},
		{"ScalarSub", func() { sinkVec = ScalarSub(3, a) }},
		{"Align", func() { sinkVec = Align(a, b, 3) }},
		{"MaskedAlign", func() { MaskedAlign(&masked, a, b, 5, 0x0f) }},
		{"Permute", func() { sinkVec = Permute(ctrl, a) }},
		{"MaskedPermute", func() { MaskedPermute(&masked, ctrl, a, 0xf0) }},
		{"Permute2", func() { sinkVec = Permute2(ctrl2, a, b) }},
		{"Load", func() { sinkVec = e.Load(src, 8) }},
		{"LoadUnaligned", func() { sinkVec = e.LoadUnaligned(src, 3) }},
		{"Store", func() { a.Store(dst, 16) }},
		{"StoreUnaligned", func() { a.StoreUnaligned(dst, 5) }},
		{"StoreStream", func() { a.StoreStream(dst, 24) }},
		{"Lane", func() { sinkReal = a.Lane(5) }},
		{"At", func() { sinkReal = a.At(0, 1, 0, 1) }},
		{"Equal", func() { sinkBool = a.Equal(b) }},
		{"Less", func() { sinkBool = a.Less(b) }},
		{"WithinToleranceVec", func() { sinkBool = WithinToleranceVec(a, b, DefaultEpsilon) }},
	}
	for _, tt := range tests {
		if allocs := testing.AllocsPerRun(100, tt.fn); allocs != 0 {
			t.Errorf("%s: %v allocs/op, want 0", tt.name, allocs)
		}
	}
}

func BenchmarkAdd(b *testing.B) {
	_, x, y := emulatedCube(b)
	b.ReportAllocs()
	for b.Loop() {
		sinkVec = x.Add(y)
	}
}

func BenchmarkDiv(b *testing.B) {
	_, x, y := emulatedCube(b)
	b.ReportAllocs()
	for b.Loop() {
		sinkVec = x.Div(y)
	}
}

func BenchmarkAlign(b *testing.B) {
	e, x, y := emulatedCube(b)
	b.ReportAllocs()
	for b.Loop() {
		for count := range e.VLEN() + 1 {
			sinkVec = Align(x, y, count)
		}
	}
}

func BenchmarkPermute2(b *testing.B) {
	e, x, y := emulatedCube(b)
	ctrl := e.Ctrl(0x10, 1, 0x12, 3, 0x14, 5, 0x16, 7)
	b.ReportAllocs()
	for b.Loop() {
		sinkVec = Permute2(ctrl, x, y)
	}
}

func BenchmarkLoadStore(b *testing.B) {
	e, _, _ := emulatedCube(b)
	src := make([]float32, 64*e.VLEN())
	dst := make([]float32, len(src))
	for i := range src {
		src[i] = float32(i)
	}
	b.ReportAllocs()
	for b.Loop() {
		for off := 0; off < len(src); off += e.VLEN() {
			e.Load(src, off).Store(dst, off)
		}
	}
}

// BenchmarkStencil3 is the inner loop of a 1-D 3-point average.
func BenchmarkStencil3(b *testing.B) {
	e := newEngine[float32](b, Config{Fold: Fold{Z: 8}})
	vlen := e.VLEN()
	src := make([]float32, 128*vlen)
	dst := make([]float32, len(src))
	for i := range src {
		src[i] = float32(i % 7)
	}
	b.ReportAllocs()
	for b.Loop() {
		prev, cur := e.Zero(), e.Load(src, 0)
		for off := 0; off < len(src); off += vlen {
			next := e.Zero()
			if off+vlen < len(src) {
				next = e.Load(src, off+vlen)
			}
			Align(cur, prev, vlen-1).Add(cur).Add(Align(next, cur, 1)).DivScalar(3).Store(dst, off)
			prev, cur = cur, next
		}
	}
}
