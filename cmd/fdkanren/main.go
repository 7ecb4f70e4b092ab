// Command fdkanren drives the worked example puzzles in internal/puzzle
// through internal/search and prints whatever solutions it finds. It is
// the one main package in this module: a minimal, concrete instantiation
// of the search-driving surface the engine leaves to its caller, not a
// generic command shell around it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gitrdm/fdkanren/internal/puzzle"
	"github.com/gitrdm/fdkanren/internal/search"
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:   "fdkanren",
		Short: "Solve small constraint-propagation puzzles",
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v, -vv)")

	root.AddCommand(newSolveCmd(&verbosity))
	return root
}

func newSolveCmd(verbosity *int) *cobra.Command {
	var maxValue int
	var maxSolutions int

	cmd := &cobra.Command{
		Use:       "solve {distinct-triple|bridge-sum}",
		Short:     "Run one of the worked example puzzles",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"distinct-triple", "bridge-sum"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(*verbosity)
			return runSolve(cmd.Context(), logger, args[0], maxValue, maxSolutions)
		},
	}
	cmd.Flags().IntVar(&maxValue, "max", 9, "upper bound of each finite-domain variable")
	cmd.Flags().IntVar(&maxSolutions, "max-solutions", 1, "stop after this many solutions")
	return cmd
}

func newLogger(verbosity int) hclog.Logger {
	level := hclog.Info
	switch {
	case verbosity >= 2:
		level = hclog.Trace
	case verbosity == 1:
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:  "fdkanren",
		Level: level,
	})
}

func runSolve(ctx context.Context, logger hclog.Logger, name string, maxValue, maxSolutions int) error {
	s := kernel.NewState()
	s.SetLogger(logger.Named("kernel"))

	var vars []kernel.Var[fd.Fd]
	var chooser func(*kernel.State) []*kernel.State

	switch name {
	case "distinct-triple":
		p := puzzle.NewDistinctTriple(s, maxValue)
		vars, chooser = p.Vars(), p.Chooser()
	case "bridge-sum":
		p := puzzle.NewBridgeSum(s, maxValue)
		vars, chooser = p.Vars(), p.Chooser()
	default:
		return errors.Errorf("unknown puzzle %q", name)
	}

	if !s.Ok() {
		logger.Warn("puzzle is unsatisfiable after initial propagation", "puzzle", name)
		fmt.Println("no solutions (unsatisfiable)")
		return nil
	}

	logger.Debug("starting search", "puzzle", name, "max", maxValue, "max_solutions", maxSolutions)
	solutions := search.Solve(ctx, s, chooser, maxSolutions)
	logger.Info("search finished", "puzzle", name, "solutions_found", len(solutions))

	if len(solutions) == 0 {
		logger.Warn("search found no solutions", "puzzle", name)
		fmt.Println("no solutions")
		return nil
	}
	for i, sol := range solutions {
		fmt.Printf("solution %d:\n", i+1)
		for j, v := range vars {
			val, ok := kernel.GetValue(sol, v)
			if !ok {
				return errors.Errorf("internal error: variable %d unbound in a reported solution", j)
			}
			fmt.Printf("  var[%d] = %s\n", j, val)
		}
	}
	return nil
}
