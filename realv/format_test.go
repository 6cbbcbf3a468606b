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

func TestVecString(t *testing.T) {
	e := newEngine[float32](t, Config{Fold: Fold{Y: 2, Z: 2}})

	partial := e.Undefined()
	partial.SetLane(1, 0.1)

	tests := []struct {
		name string
		v    Vec[float32]
		want string
	}{
		{"reals", e.FromLanes(1, 2, 0.5, -3), "[0]=1, [1]=2, [2]=0.5, [3]=-3"},
		{"shortest float32 form", e.Set(0.1), "[0]=0.1, [1]=0.1, [2]=0.1, [3]=0.1"},
		{"undefined lanes", partial, "[0]=?, [1]=0.1, [2]=?, [3]=?"},
		{"control", e.Ctrl(0, 1, 0x10, 0x13), "[0]=0x0, [1]=0x1, [2]=0x10, [3]=0x13"},
		{"zero Vec", Vec[float32]{}, "<nil engine>"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%s: String() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFoldString(t *testing.T) {
	e := newEngine[float64](t, Config{Fold: Fold{X: 2, Z: 2}})
	got := e.Iota(0).FoldString()
	want := "(0,0,0,0)=0, (0,0,0,1)=1, (0,1,0,0)=2, (0,1,0,1)=3"
	if got != want {
		t.Errorf("FoldString() = %q, want %q", got, want)
	}
}
