//go:build !amd64 || !goexperiment.simd

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

// Without GOEXPERIMENT=simd no hardware backend is registered and every
// primitive runs emulated.

func hwBinary[T Real](backendKind, binOp, *[MaxLanes]T, *[MaxLanes]T, *[MaxLanes]T) bool {
	return false
}

func hwUnary[T Real](backendKind, unOp, *[MaxLanes]T, *[MaxLanes]T) bool { return false }

func hwBroadcast[T Real](backendKind, *[MaxLanes]T, T) bool { return false }

func hwLoad[T Real](backendKind, *[MaxLanes]T, []T) bool { return false }

func hwStore[T Real](backendKind, []T, *[MaxLanes]T, bool) bool { return false }
