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

// Command foldmap inspects vector folds and tuple layouts and checks
// vector backends for conformance.
//
// Usage:
//
//	foldmap lanes --fold x=2,y=2,z=2
//	foldmap linearize x=4,y=3 x=3,y=2
//	foldmap unlinearize x=4,y=3 11
//	foldmap enumerate x=3,y=2 --parallel 4
//	foldmap conform --config stencil.yaml --all-sizes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajroetker/go-stencil/config"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	debug      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "foldmap",
		Short: "Inspect vector folds and tuple layouts",
		Long: `foldmap prints how stencil points map to vector lanes, converts
between tuple offsets and linear indices, and checks that every hardware
vector backend computes exactly what the emulated backend computes.

Settings come from a YAML file (--config); a missing file means defaults.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger, err = cfg.Logger(a.debug)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "stencil.yaml", "configuration file")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		a.lanesCmd(),
		a.linearizeCmd(),
		a.unlinearizeCmd(),
		a.enumerateCmd(),
		a.conformCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
