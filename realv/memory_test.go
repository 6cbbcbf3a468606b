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
	"reflect"
	"testing"
)

func TestLoadStoreRoundTrip(t *testing.T) {
	e := newEngine[float64](t, Config{Fold: cube})
	src := make([]float64, 32)
	for i := range src {
		src[i] = float64(i) * 0.5
	}

	dst := make([]float64, len(src))
	for off := 0; off < len(src); off += e.VLEN() {
		e.Load(src, off).Store(dst, off)
	}
	if !reflect.DeepEqual(dst, src) {
		t.Errorf("aligned round trip = %v, want %v", dst, src)
	}

	clear(dst)
	for off := 0; off < len(src); off += e.VLEN() {
		e.Load(src, off).StoreStream(dst, off)
	}
	if !reflect.DeepEqual(dst, src) {
		t.Errorf("streaming round trip = %v, want %v", dst, src)
	}

	clear(dst)
	for _, off := range []int{3, 11, 24} {
		e.LoadUnaligned(src, off).StoreUnaligned(dst, off)
		if !reflect.DeepEqual(dst[off:off+8], src[off:off+8]) {
			t.Errorf("unaligned round trip at %d = %v", off, dst[off:off+8])
		}
	}
}

func TestLoadMatchesLanes(t *testing.T) {
	e := newEngine[float32](t, Config{Fold: Fold{Z: 4}})
	src := []float32{9, 8, 7, 6, 5, 4, 3, 2}
	if got, want := e.LoadUnaligned(src, 1).Lanes(), []float32{8, 7, 6, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("LoadUnaligned(1) = %v, want %v", got, want)
	}
	if got, want := e.Load(src, 4).Lanes(), []float32{5, 4, 3, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("Load(4) = %v, want %v", got, want)
	}
}

func TestMemoryViolations(t *testing.T) {
	e := newEngine[float32](t, Config{Fold: Fold{Z: 4}})
	buf := make([]float32, 8)
	v := e.Set(1)

	tests := []struct {
		name string
		fn   func()
	}{
		{"unaligned Load", func() { e.Load(buf, 2) }},
		{"unaligned Store", func() { v.Store(buf, 1) }},
		{"unaligned StoreStream", func() { v.StoreStream(buf, 3) }},
		{"Load past end", func() { e.Load(buf, 8) }},
		{"LoadUnaligned past end", func() { e.LoadUnaligned(buf, 5) }},
		{"StoreUnaligned negative", func() { v.StoreUnaligned(buf, -1) }},
		{"Store into short slice", func() { v.Store(buf[:3], 0) }},
	}
	for _, tt := range tests {
		expectViolation(t, tt.name, tt.fn)
	}
}
