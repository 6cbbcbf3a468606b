//go:build amd64 && goexperiment.simd

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

import "simd/archsimd"

// 512-bit kernels. The engine only dispatches here when VLEN equals the
// register lane count.

func init() {
	register(BackendInfo{Name: "avx512", ElemBytes: 4, Width: Width512, Level: DispatchAVX512, kind: kindAVX512})
	register(BackendInfo{Name: "avx512", ElemBytes: 8, Width: Width512, Level: DispatchAVX512, kind: kindAVX512})
}

func avx512BinaryF32(op binOp, dst, a, b *[MaxLanes]float32) {
	x, y := archsimd.LoadFloat32x16Slice(a[:16]), archsimd.LoadFloat32x16Slice(b[:16])
	switch op {
	case opAdd:
		x.Add(y).StoreSlice(dst[:16])
	case opSub:
		x.Sub(y).StoreSlice(dst[:16])
	case opMul:
		x.Mul(y).StoreSlice(dst[:16])
	case opDiv:
		x.Div(y).StoreSlice(dst[:16])
	}
}

func avx512UnaryF32(op unOp, dst, a *[MaxLanes]float32) {
	x := archsimd.LoadFloat32x16Slice(a[:16])
	switch op {
	case opNeg:
		archsimd.BroadcastFloat32x16(0).Sub(x).StoreSlice(dst[:16])
	case opRecip:
		archsimd.BroadcastFloat32x16(1).Div(x).StoreSlice(dst[:16])
	}
}

func avx512BroadcastF32(dst *[MaxLanes]float32, s float32) {
	archsimd.BroadcastFloat32x16(s).StoreSlice(dst[:16])
}

func avx512LoadF32(dst *[MaxLanes]float32, src []float32) {
	archsimd.LoadFloat32x16Slice(src).StoreSlice(dst[:16])
}

func avx512StoreF32(dst []float32, src *[MaxLanes]float32) {
	archsimd.LoadFloat32x16Slice(src[:16]).StoreSlice(dst)
}

func avx512BinaryF64(op binOp, dst, a, b *[MaxLanes]float64) {
	x, y := archsimd.LoadFloat64x8Slice(a[:8]), archsimd.LoadFloat64x8Slice(b[:8])
	switch op {
	case opAdd:
		x.Add(y).StoreSlice(dst[:8])
	case opSub:
		x.Sub(y).StoreSlice(dst[:8])
	case opMul:
		x.Mul(y).StoreSlice(dst[:8])
	case opDiv:
		x.Div(y).StoreSlice(dst[:8])
	}
}

func avx512UnaryF64(op unOp, dst, a *[MaxLanes]float64) {
	x := archsimd.LoadFloat64x8Slice(a[:8])
	switch op {
	case opNeg:
		archsimd.BroadcastFloat64x8(0).Sub(x).StoreSlice(dst[:8])
	case opRecip:
		archsimd.BroadcastFloat64x8(1).Div(x).StoreSlice(dst[:8])
	}
}

func avx512BroadcastF64(dst *[MaxLanes]float64, s float64) {
	archsimd.BroadcastFloat64x8(s).StoreSlice(dst[:8])
}

func avx512LoadF64(dst *[MaxLanes]float64, src []float64) {
	archsimd.LoadFloat64x8Slice(src).StoreSlice(dst[:8])
}

func avx512StoreF64(dst []float64, src *[MaxLanes]float64) {
	archsimd.LoadFloat64x8Slice(src[:8]).StoreSlice(dst)
}
