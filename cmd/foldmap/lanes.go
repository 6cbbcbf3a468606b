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
	"io"

	"github.com/spf13/cobra"

	"github.com/ajroetker/go-stencil/realv"
	"github.com/ajroetker/go-stencil/tuple"
)

func (a *app) lanesCmd() *cobra.Command {
	var foldSpec string
	var firstUnit bool
	cmd := &cobra.Command{
		Use:   "lanes",
		Short: "Print the fold point held by every vector lane",
		Long: `Prints, for each lane of the configured fold, the (n, x, y, z) point
it holds and the point's address relative to the enclosing vector.

--fold overrides the configured fold, e.g. --fold x=4,z=2.`,
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
			if cmd.Flags().Changed("first-unit-stride") {
				vc.Fold.FirstUnitStride = firstUnit
			}
			if a.cfg.RealBytes == 8 {
				return printLanes[float64](cmd.OutOrStdout(), a, vc)
			}
			return printLanes[float32](cmd.OutOrStdout(), a, vc)
		},
	}
	cmd.Flags().StringVar(&foldSpec, "fold", "", "fold extents as n=..,x=..,y=..,z=..")
	cmd.Flags().BoolVar(&firstUnit, "first-unit-stride", false, "make n the unit-stride fold dimension")
	return cmd
}

// parseFold reads the extents of a fold from "x=2,y=2,z=2". Omitted
// extents are 1; the orientation is taken from base.
func parseFold(spec string, base realv.Fold) (realv.Fold, error) {
	dims, err := tuple.ParseDims[int](spec)
	if err != nil {
		return realv.Fold{}, err
	}
	f := realv.Fold{FirstUnitStride: base.FirstUnitStride}
	for _, s := range dims.Dims() {
		switch s.Name().String() {
		case "n":
			f.N = s.Val()
		case "x":
			f.X = s.Val()
		case "y":
			f.Y = s.Val()
		case "z":
			f.Z = s.Val()
		default:
			return realv.Fold{}, fmt.Errorf("unknown fold dimension %q (want n, x, y or z)", s.Name())
		}
	}
	return f, f.Validate()
}

func printLanes[T realv.Real](w io.Writer, a *app, vc realv.Config) error {
	e, err := realv.New[T](vc, realv.WithLogger(a.logger))
	if err != nil {
		return err
	}
	f := e.Fold()
	unit := "z"
	if f.FirstUnitStride {
		unit = "n"
	}
	fmt.Fprintf(w, "fold %s: VLEN %d, %s unit stride, %d-byte reals, backend %s\n",
		f, e.VLEN(), unit, realv.ElemBytes[T](), e.BackendName())

	norm := tuple.New[int]()
	norm.AddBack("n", f.N)
	norm.AddBack("x", f.X)
	norm.AddBack("y", f.Y)
	norm.AddBack("z", f.Z)

	for l := range e.VLEN() {
		n, i, j, k := e.FoldCoords(l)
		pt := tuple.New[int]()
		pt.AddBack("n", n)
		pt.AddBack("x", i)
		pt.AddBack("y", j)
		pt.AddBack("z", k)
		fmt.Fprintf(w, "lane %2d: %-24s %s\n", l, pt, pt.DimValNormOffsetStr(norm, ", ", "", ""))
	}
	return nil
}
