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

// Package conformance checks that every vector backend usable with a
// fold computes exactly what the emulated backend computes.
//
// Run draws seeded random inputs, executes every vector operation on an
// emulated reference engine and on one engine per candidate backend, and
// reports each lane that differs. Results must match bit for bit, except
// fast division, which is held to realv.DefaultEpsilon against true
// division.
package conformance

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-stencil/contract"
	"github.com/ajroetker/go-stencil/realv"
	"github.com/ajroetker/go-stencil/workerpool"
)

// Options tunes a conformance run. The zero value is usable.
type Options struct {
	// Seed makes the random inputs reproducible.
	Seed uint64

	// Rounds is the number of random input sets per backend. Default 64.
	Rounds int

	// Backends restricts the run to the named backends. Empty means every
	// compatible backend plus the emulated backend itself.
	Backends []string

	// MaxMismatches caps the mismatches kept per backend. Default 32.
	MaxMismatches int

	// Pool runs rounds in parallel. When nil a pool is created for the
	// duration of Run.
	Pool *workerpool.Pool

	Logger *zap.Logger
}

// Mismatch is one output element that differs from the reference.
type Mismatch struct {
	Backend string
	Op      string
	Round   int
	Index   int
	Got     float64
	Want    float64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: %s round %d element %d: got %v, want %v", m.Backend, m.Op, m.Round, m.Index, m.Got, m.Want)
}

// Result summarizes one backend.
type Result struct {
	Backend    string
	Checks     int
	Mismatches []Mismatch
}

// Skipped is a registered backend that could not be checked.
type Skipped struct {
	Backend string
	Reason  string
}

// Report is the outcome of Run.
type Report struct {
	ElemBytes int
	Fold      realv.Fold
	Results   []Result
	Skipped   []Skipped
}

// Failed reports whether any backend produced a mismatch.
func (r Report) Failed() bool {
	for _, res := range r.Results {
		if len(res.Mismatches) > 0 {
			return true
		}
	}
	return false
}

// String renders one line per backend.
func (r Report) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "fold %s, %d-byte reals\n", r.Fold, r.ElemBytes)
	for _, res := range r.Results {
		status := "ok"
		if len(res.Mismatches) > 0 {
			status = fmt.Sprintf("%d mismatches", len(res.Mismatches))
		}
		fmt.Fprintf(&sb, "  %-10s %6d checks  %s\n", res.Backend, res.Checks, status)
		for _, m := range res.Mismatches {
			fmt.Fprintf(&sb, "    %s\n", m)
		}
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&sb, "  %-10s skipped: %s\n", s.Backend, s.Reason)
	}
	return sb.String()
}

// Run checks every candidate backend for cfg against the emulated
// backend. The error is non-nil only if the run itself could not be
// carried out; mismatches are reported in the Report.
func Run[T realv.Real](ctx context.Context, cfg realv.Config, opts Options) (Report, error) {
	if opts.Rounds <= 0 {
		opts.Rounds = 64
	}
	if opts.MaxMismatches <= 0 {
		opts.MaxMismatches = 32
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	pool := opts.Pool
	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	exact := cfg
	exact.FastDivide = false
	ref, err := realv.New[T](exact, realv.WithBackend(realv.EmulatedName))
	if err != nil {
		return Report{}, fmt.Errorf("building reference engine: %w", err)
	}

	report := Report{ElemBytes: realv.ElemBytes[T](), Fold: ref.Fold()}
	names, skipped := candidates(report.ElemBytes, ref.VLEN(), opts.Backends)
	report.Skipped = skipped
	report.Results = make([]Result, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			res, err := checkBackend[T](ctx, ref, exact, name, opts, pool)
			if err != nil {
				return fmt.Errorf("backend %s: %w", name, err)
			}
			report.Results[i] = res
			opts.Logger.Debug("backend checked",
				zap.String("backend", name),
				zap.Int("checks", res.Checks),
				zap.Int("mismatches", len(res.Mismatches)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	return report, nil
}

// candidates returns the backends to check and the registered backends
// that cannot run with this fold on this machine.
func candidates(elemBytes, vlen int, only []string) ([]string, []Skipped) {
	wanted := func(name string) bool {
		if len(only) == 0 {
			return true
		}
		for _, n := range only {
			if n == name {
				return true
			}
		}
		return false
	}

	var names []string
	var skipped []Skipped
	if wanted(realv.EmulatedName) {
		names = append(names, realv.EmulatedName)
	}
	for _, b := range realv.Backends() {
		if b.ElemBytes != elemBytes || !wanted(b.Name) {
			continue
		}
		switch {
		case b.Lanes() != vlen:
			skipped = append(skipped, Skipped{b.Name, fmt.Sprintf("%d lanes, fold has %d", b.Lanes(), vlen)})
		case !b.Supported():
			skipped = append(skipped, Skipped{b.Name, fmt.Sprintf("CPU lacks %s", b.Level)})
		default:
			names = append(names, b.Name)
		}
	}
	return names, skipped
}

func checkBackend[T realv.Real](ctx context.Context, ref *realv.Engine[T], exact realv.Config, name string,
	opts Options, pool *workerpool.Pool) (Result, error) {
	cand, err := realv.New[T](exact, realv.WithBackend(name), realv.WithLogger(opts.Logger))
	if err != nil {
		return Result{}, err
	}
	fastCfg := exact
	fastCfg.FastDivide = true
	fast, err := realv.New[T](fastCfg, realv.WithBackend(name), realv.WithLogger(opts.Logger))
	if err != nil {
		return Result{}, err
	}

	type roundResult struct {
		checks     int
		mismatches []Mismatch
		err        error
	}
	rounds := make([]roundResult, opts.Rounds)
	pool.ParallelForAtomic(opts.Rounds, func(r int) {
		if ctx.Err() != nil {
			rounds[r].err = ctx.Err()
			return
		}
		in := newInputs[T](ref.VLEN(), opts.Seed, r)
		rounds[r].err = contract.Catch(func() {
			rounds[r].checks, rounds[r].mismatches = runRound(ref, cand, fast, in, name, r)
		})
	})

	res := Result{Backend: name}
	for _, rr := range rounds {
		if rr.err != nil {
			return Result{}, rr.err
		}
		res.Checks += rr.checks
		for _, m := range rr.mismatches {
			if len(res.Mismatches) < opts.MaxMismatches {
				res.Mismatches = append(res.Mismatches, m)
			}
		}
	}
	return res, nil
}

// runRound executes every operation on the reference and the candidate
// engines and returns the number of compared elements and the mismatches.
func runRound[T realv.Real](ref, cand, fast *realv.Engine[T], in *inputs[T], name string, round int) (int, []Mismatch) {
	var checks int
	var out []Mismatch
	for _, op := range operations[T](ref.VLEN()) {
		want := op.run(ref, in)
		var got []T
		if op.fast {
			got = op.run(fast, in)
		} else {
			got = op.run(cand, in)
		}
		checks += len(want)
		for i := range want {
			if !sameResult(got[i], want[i], op.fast) {
				out = append(out, Mismatch{
					Backend: name,
					Op:      op.name,
					Round:   round,
					Index:   i,
					Got:     float64(got[i]),
					Want:    float64(want[i]),
				})
			}
		}
	}
	return checks, out
}

func sameResult[T realv.Real](got, want T, approx bool) bool {
	g, w := float64(got), float64(want)
	if math.IsNaN(g) || math.IsNaN(w) {
		return math.IsNaN(g) && math.IsNaN(w)
	}
	if approx {
		return realv.WithinTolerance(got, want, realv.DefaultEpsilon)
	}
	return math.Float64bits(g) == math.Float64bits(w)
}
