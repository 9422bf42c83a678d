// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command litmusenum drives the enumerator core against a litmus
// source file: parse, enumerate, print each delivered concrete
// execution's final state. It does not evaluate memory-model axioms —
// that consumer lives outside this module's scope.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"code.hybscloud.com/litmuscore"
	"code.hybscloud.com/litmuscore/isa"
	"code.hybscloud.com/litmuscore/litmus"
	"code.hybscloud.com/litmuscore/solver"
)

func newRootCmd() *cobra.Command {
	var configPath string
	var unroll int
	var optace bool

	root := &cobra.Command{
		Use:   "litmusenum",
		Short: "Enumerate candidate concrete executions of a litmus test",
	}

	run := &cobra.Command{
		Use:   "run <file>",
		Short: "Parse and enumerate a litmus test file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := litmuscore.DefaultConfig()
			if configPath != "" {
				loaded, err := litmuscore.LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("unroll") {
				cfg.Unroll = unroll
			}
			if cmd.Flags().Changed("optace") {
				cfg.Optace = optace
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("litmusenum: %w", err)
			}
			test, err := litmus.Parse(string(src))
			if err != nil {
				return err
			}

			return enumerate(cmd, test, cfg)
		},
	}
	run.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	run.Flags().IntVar(&unroll, "unroll", 0, "loop back-jump bound (overrides config)")
	run.Flags().BoolVar(&optace, "optace", false, "enable uniproc-based pruning (overrides config)")

	root.AddCommand(run)
	return root
}

func enumerate(cmd *cobra.Command, test litmuscore.Test, cfg litmuscore.Config) error {
	sem := isa.Semantics{}
	slv := solver.New()

	glom, err := litmuscore.GlommedEventStructures(sem, test, cfg)
	if err != nil {
		return fmt.Errorf("litmusenum: %w", err)
	}

	count := 0
	for _, ic := range glom.Structures {
		count = litmuscore.CalculateRFWithConstraints(
			test, ic.Structure, ic.Constraints, slv, cfg,
			func(c litmuscore.ConcreteExecution, n int) int {
				printConcrete(cmd, n, c)
				return n + 1
			},
			func(n int) int { return n },
			count,
		)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d concrete execution(s); too_far=%v\n", count, glom.TooFar)
	return nil
}

func printConcrete(cmd *cobra.Command, index int, c litmuscore.ConcreteExecution) {
	names := make([]string, 0, len(c.FinalState))
	for k := range c.FinalState {
		names = append(names, k)
	}
	sort.Strings(names)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d:", index)
	for _, n := range names {
		fmt.Fprintf(out, " %s=%d", n, c.FinalState[n])
	}
	fmt.Fprintln(out)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
