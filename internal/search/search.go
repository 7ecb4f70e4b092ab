// Package search drives branch-and-bound exploration over a kernel.State.
// It is the Go-native replacement for the lazy search-iterator
// combinators the core treats as an external collaborator: a single
// depth-first driver that propagates each branch to quiescence, discards
// failed branches, and asks the caller to fork whatever remains.
package search

import (
	"context"

	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// Chooser forks a propagated, still-live state into its next set of
// alternatives. An empty return means s has no remaining choice points and
// is itself a candidate solution. A puzzle supplies its own Chooser; the
// search driver has no notion of what a "choice" means for a given problem.
type Chooser func(s *kernel.State) []*kernel.State

// Solve explores s depth-first until maxSolutions solved states have been
// collected or the tree is exhausted, whichever comes first. It propagates
// every branch to a fixed point before consulting choose, so choose never
// sees a state with pending dirty variables.
//
// ctx bounds wall-clock search time: Solve checks ctx.Err() before forking
// each branch and returns whatever solutions it has collected so far once
// the context is done.
func Solve(ctx context.Context, s *kernel.State, choose Chooser, maxSolutions int) []*kernel.State {
	var solutions []*kernel.State
	solve(ctx, s, choose, maxSolutions, &solutions)
	return solutions
}

func solve(ctx context.Context, s *kernel.State, choose Chooser, maxSolutions int, solutions *[]*kernel.State) {
	if len(*solutions) >= maxSolutions {
		return
	}
	if ctx.Err() != nil {
		return
	}

	s.PropagateToFixpoint()
	if !s.Ok() {
		return
	}

	branches := choose(s)
	if len(branches) == 0 {
		*solutions = append(*solutions, s)
		return
	}

	for _, b := range branches {
		if len(*solutions) >= maxSolutions {
			return
		}
		if ctx.Err() != nil {
			return
		}
		solve(ctx, b, choose, maxSolutions, solutions)
	}
}
