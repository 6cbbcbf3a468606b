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
	"context"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/ajroetker/go-stencil/realv"
	"github.com/ajroetker/go-stencil/workerpool"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRunFolds(t *testing.T) {
	folds := []realv.Fold{
		{},
		{Z: 4},
		{X: 2, Y: 2, Z: 2},
		{N: 2, X: 2, Y: 2, Z: 2, FirstUnitStride: true},
		{X: 3},
	}
	for _, f := range folds {
		t.Run(f.String()+"/float32", func(t *testing.T) {
			checkReport(t, mustRun[float32](t, realv.Config{Fold: f}, Options{Seed: 1, Rounds: 8}))
		})
		t.Run(f.String()+"/float64", func(t *testing.T) {
			checkReport(t, mustRun[float64](t, realv.Config{Fold: f}, Options{Seed: 2, Rounds: 8}))
		})
	}
}

func mustRun[T realv.Real](t *testing.T, cfg realv.Config, opts Options) Report {
	t.Helper()
	r, err := Run[T](context.Background(), cfg, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return r
}

func checkReport(t *testing.T, r Report) {
	t.Helper()
	if r.Failed() {
		t.Errorf("conformance failures:\n%s", r)
	}
	found := false
	for _, res := range r.Results {
		if res.Backend == realv.EmulatedName {
			found = true
		}
		if res.Checks == 0 {
			t.Errorf("%s: no checks ran", res.Backend)
		}
	}
	if !found {
		t.Errorf("emulated backend missing from report:\n%s", r)
	}
	t.Logf("\n%s", r)
}

func TestRunSharedPool(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Close()

	r := mustRun[float32](t, realv.Config{Fold: realv.Fold{X: 4, Z: 2}}, Options{Rounds: 5, Pool: pool})
	checkReport(t, r)
}

func TestRunRestrictBackends(t *testing.T) {
	r := mustRun[float64](t, realv.Config{Fold: realv.Fold{Z: 8}}, Options{Rounds: 2, Backends: []string{"none-such"}})
	if len(r.Results) != 0 {
		t.Errorf("restricted run checked %d backends, want 0", len(r.Results))
	}
}

func TestRunDeterministic(t *testing.T) {
	a := newInputs[float32](8, 42, 3)
	b := newInputs[float32](8, 42, 3)
	if a.mask != b.mask || a.memOff != b.memOff || a.scalar != b.scalar {
		t.Errorf("inputs differ for the same seed and round")
	}
	for i := range a.mem {
		if a.mem[i] != b.mem[i] {
			t.Fatalf("mem[%d] differs for the same seed", i)
		}
	}
}

func TestRunBadConfig(t *testing.T) {
	_, err := Run[float32](context.Background(), realv.Config{Fold: realv.Fold{X: -1}}, Options{})
	if err == nil {
		t.Errorf("Run with a negative fold: expected an error")
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run[float32](ctx, realv.Config{Fold: realv.Fold{Z: 4}}, Options{Rounds: 4})
	if err == nil || !strings.Contains(err.Error(), "canceled") {
		t.Errorf("Run with a canceled context = %v, want a cancellation error", err)
	}
}

func TestMismatchReport(t *testing.T) {
	r := Report{
		ElemBytes: 4,
		Fold:      realv.Fold{Z: 4},
		Results: []Result{{
			Backend:    "avx2",
			Checks:     10,
			Mismatches: []Mismatch{{Backend: "avx2", Op: "add", Round: 1, Index: 2, Got: 1, Want: 2}},
		}},
		Skipped: []Skipped{{Backend: "avx512", Reason: "16 lanes, fold has 4"}},
	}
	if !r.Failed() {
		t.Errorf("Failed() = false with a mismatch")
	}
	s := r.String()
	for _, want := range []string{"1 mismatches", "avx2: add round 1 element 2: got 1, want 2", "avx512     skipped"} {
		if !strings.Contains(s, want) {
			t.Errorf("report missing %q:\n%s", want, s)
		}
	}
}
