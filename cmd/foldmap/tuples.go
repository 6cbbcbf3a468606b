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

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-stencil/contract"
	"github.com/ajroetker/go-stencil/tuple"
	"github.com/ajroetker/go-stencil/workerpool"
)

// sizesArg parses the SIZES argument and applies the orientation flag or,
// when it is not given, the configured orientation.
func (a *app) sizesArg(cmd *cobra.Command, text string, lastInner bool) (*tuple.Tuple[int], error) {
	sizes, err := tuple.ParseDims[int](text)
	if err != nil {
		return nil, err
	}
	for _, s := range sizes.Dims() {
		if s.Val() < 0 {
			return nil, fmt.Errorf("extent %s is negative", s)
		}
	}
	firstInner := a.cfg.TupleFirstInner
	if cmd.Flags().Changed("last-inner") {
		firstInner = !lastInner
	}
	sizes.SetFirstInner(firstInner)
	return sizes, nil
}

func (a *app) linearizeCmd() *cobra.Command {
	var lastInner, nonStrict bool
	cmd := &cobra.Command{
		Use:   "linearize SIZES OFFSETS",
		Short: "Convert tuple offsets to a linear index",
		Example: `  foldmap linearize x=4,y=3 x=3,y=2      # 11
  foldmap linearize --last-inner x=4,y=3 x=3,y=2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := a.sizesArg(cmd, args[0], lastInner)
			if err != nil {
				return err
			}
			offsets, err := tuple.ParseDims[int](args[1])
			if err != nil {
				return err
			}
			var idx int
			if err := contract.Catch(func() { idx = sizes.Linearize(offsets, !nonStrict) }); err != nil {
				return err
			}
			a.logger.Debug("linearized",
				zap.Stringer("sizes", sizes),
				zap.Stringer("offsets", offsets),
				zap.Int("index", idx))
			fmt.Fprintln(cmd.OutOrStdout(), idx)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lastInner, "last-inner", false, "make the last dimension unit-stride")
	cmd.Flags().BoolVar(&nonStrict, "non-strict", false, "default missing offsets to 0 and ignore extra ones")
	return cmd
}

func (a *app) unlinearizeCmd() *cobra.Command {
	var lastInner bool
	cmd := &cobra.Command{
		Use:     "unlinearize SIZES INDEX",
		Short:   "Convert a linear index to tuple offsets",
		Example: `  foldmap unlinearize x=4,y=3 11          # x=3, y=2`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := a.sizesArg(cmd, args[0], lastInner)
			if err != nil {
				return err
			}
			idx, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}
			var pt *tuple.Tuple[int]
			if err := contract.Catch(func() { pt = sizes.Unlinearize(idx) }); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), pt)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lastInner, "last-inner", false, "make the last dimension unit-stride")
	return cmd
}

func (a *app) enumerateCmd() *cobra.Command {
	var lastInner bool
	var workers int
	cmd := &cobra.Command{
		Use:   "enumerate SIZES",
		Short: "List every point of a tuple in linear order",
		Long: `Lists every point inside SIZES with its linear index. With --parallel
the outermost dimension is split across a worker pool; the output order
is the same.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sizes, err := a.sizesArg(cmd, args[0], lastInner)
			if err != nil {
				return err
			}
			var lines []string
			err = contract.Catch(func() {
				lines = make([]string, sizes.Product())
				visit := func(pt *tuple.Tuple[int]) {
					// Each index is written by exactly one worker.
					lines[sizes.Linearize(pt, true)] = pt.String()
				}
				if workers > 1 {
					pool := workerpool.New(workers)
					defer pool.Close()
					sizes.EnumerateParallel(pool, visit)
				} else {
					sizes.Enumerate(visit)
				}
			})
			if err != nil {
				return err
			}
			a.logger.Debug("enumerated", zap.Stringer("sizes", sizes), zap.Int("points", len(lines)), zap.Int("workers", workers))
			w := cmd.OutOrStdout()
			for i, line := range lines {
				fmt.Fprintf(w, "%d: %s\n", i, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lastInner, "last-inner", false, "make the last dimension unit-stride")
	cmd.Flags().IntVar(&workers, "parallel", 1, "number of workers")
	return cmd
}
