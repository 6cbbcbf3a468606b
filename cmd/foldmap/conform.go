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
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/go-stencil/realv"
	"github.com/ajroetker/go-stencil/realv/conformance"
	"github.com/ajroetker/go-stencil/workerpool"
)

var errMismatch = errors.New("conformance mismatches found")

func (a *app) conformCmd() *cobra.Command {
	var (
		rounds   int
		seed     uint64
		allSizes bool
		backends []string
		foldSpec string
	)
	cmd := &cobra.Command{
		Use:   "conform",
		Short: "Check hardware vector backends against the emulated backend",
		Long: `Runs every vector operation on seeded random inputs through each
backend compatible with the fold and reports any lane that differs from
the emulated backend. Exits non-zero on a mismatch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vc, err := a.cfg.Vector()
			if err != nil {
				return err
			}
			if foldSpec != "" {
				if vc.Fold, err = parseFold(foldSpec, vc.Fold); err != nil {
					return err
				}
			}
			pool := workerpool.New(0)
			defer pool.Close()
			opts := conformance.Options{
				Seed:     seed,
				Rounds:   rounds,
				Backends: backends,
				Pool:     pool,
				Logger:   a.logger,
			}

			sizes := []int{a.cfg.RealBytes}
			if allSizes {
				sizes = []int{4, 8}
			}
			reports := make([]conformance.Report, len(sizes))
			g, ctx := errgroup.WithContext(cmd.Context())
			for i, size := range sizes {
				g.Go(func() error {
					var err error
					reports[i], err = runConformance(ctx, size, vc, opts)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := false
			for _, r := range reports {
				fmt.Fprint(cmd.OutOrStdout(), r)
				failed = failed || r.Failed()
			}
			if failed {
				return errMismatch
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&rounds, "rounds", 64, "random input sets per backend")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().BoolVar(&allSizes, "all-sizes", false, "check both 4- and 8-byte reals")
	cmd.Flags().StringSliceVar(&backends, "backend", nil, "only check these backends")
	cmd.Flags().StringVar(&foldSpec, "fold", "", "fold extents as n=..,x=..,y=..,z=..")
	return cmd
}

func runConformance(ctx context.Context, realBytes int, vc realv.Config, opts conformance.Options) (conformance.Report, error) {
	switch realBytes {
	case 4:
		return conformance.Run[float32](ctx, vc, opts)
	case 8:
		return conformance.Run[float64](ctx, vc, opts)
	}
	return conformance.Report{}, fmt.Errorf("invalid real size %d", realBytes)
}
