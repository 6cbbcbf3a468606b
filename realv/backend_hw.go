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

import "unsafe"

// The kernels are written for float32 and float64. A lane array of any
// Real type has the same layout as one of those, so the dispatchers
// reinterpret it in place.

func lanes32[T Real](p *[MaxLanes]T) *[MaxLanes]float32 {
	return (*[MaxLanes]float32)(unsafe.Pointer(p))
}

func lanes64[T Real](p *[MaxLanes]T) *[MaxLanes]float64 {
	return (*[MaxLanes]float64)(unsafe.Pointer(p))
}

func slice32[T Real](s []T) []float32 {
	return unsafe.Slice((*float32)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

func slice64[T Real](s []T) []float64 {
	return unsafe.Slice((*float64)(unsafe.Pointer(unsafe.SliceData(s))), len(s))
}

func hwBinary[T Real](k backendKind, op binOp, dst, a, b *[MaxLanes]T) bool {
	wide := ElemBytes[T]() == 8
	switch {
	case k == kindAVX2 && !wide:
		avx2BinaryF32(op, lanes32(dst), lanes32(a), lanes32(b))
	case k == kindAVX2 && wide:
		avx2BinaryF64(op, lanes64(dst), lanes64(a), lanes64(b))
	case k == kindAVX512 && !wide:
		avx512BinaryF32(op, lanes32(dst), lanes32(a), lanes32(b))
	case k == kindAVX512 && wide:
		avx512BinaryF64(op, lanes64(dst), lanes64(a), lanes64(b))
	default:
		return false
	}
	return true
}

func hwUnary[T Real](k backendKind, op unOp, dst, a *[MaxLanes]T) bool {
	wide := ElemBytes[T]() == 8
	switch {
	case k == kindAVX2 && !wide:
		avx2UnaryF32(op, lanes32(dst), lanes32(a))
	case k == kindAVX2 && wide:
		avx2UnaryF64(op, lanes64(dst), lanes64(a))
	case k == kindAVX512 && !wide:
		avx512UnaryF32(op, lanes32(dst), lanes32(a))
	case k == kindAVX512 && wide:
		avx512UnaryF64(op, lanes64(dst), lanes64(a))
	default:
		return false
	}
	return true
}

func hwBroadcast[T Real](k backendKind, dst *[MaxLanes]T, s T) bool {
	wide := ElemBytes[T]() == 8
	switch {
	case k == kindAVX2 && !wide:
		avx2BroadcastF32(lanes32(dst), float32(s))
	case k == kindAVX2 && wide:
		avx2BroadcastF64(lanes64(dst), float64(s))
	case k == kindAVX512 && !wide:
		avx512BroadcastF32(lanes32(dst), float32(s))
	case k == kindAVX512 && wide:
		avx512BroadcastF64(lanes64(dst), float64(s))
	default:
		return false
	}
	return true
}

func hwLoad[T Real](k backendKind, dst *[MaxLanes]T, src []T) bool {
	wide := ElemBytes[T]() == 8
	switch {
	case k == kindAVX2 && !wide:
		avx2LoadF32(lanes32(dst), slice32(src))
	case k == kindAVX2 && wide:
		avx2LoadF64(lanes64(dst), slice64(src))
	case k == kindAVX512 && !wide:
		avx512LoadF32(lanes32(dst), slice32(src))
	case k == kindAVX512 && wide:
		avx512LoadF64(lanes64(dst), slice64(src))
	default:
		return false
	}
	return true
}

// TODO: honor stream with a non-temporal store once archsimd exposes one.
func hwStore[T Real](k backendKind, dst []T, src *[MaxLanes]T, stream bool) bool {
	wide := ElemBytes[T]() == 8
	switch {
	case k == kindAVX2 && !wide:
		avx2StoreF32(slice32(dst), lanes32(src))
	case k == kindAVX2 && wide:
		avx2StoreF64(slice64(dst), lanes64(src))
	case k == kindAVX512 && !wide:
		avx512StoreF32(slice32(dst), lanes32(src))
	case k == kindAVX512 && wide:
		avx512StoreF64(slice64(dst), lanes64(src))
	default:
		return false
	}
	return true
}
