package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// branchInts returns a Chooser that forks once per candidate for v until v
// is bound, which is all the structure these tests need.
func branchInts(v kernel.Var[int], candidates []int) Chooser {
	return func(s *kernel.State) []*kernel.State {
		if _, ok := kernel.GetValue(s, v); ok {
			return nil
		}
		branches := make([]*kernel.State, 0, len(candidates))
		for _, c := range candidates {
			b := s.Fork()
			kernel.Unify(b, c, v)
			branches = append(branches, b)
		}
		return branches
	}
}

func TestSolveEnumeratesAllBranches(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[int](s)
	solutions := Solve(context.Background(), s, branchInts(v, []int{1, 2, 3}), 10)
	require.Len(t, solutions, 3)
	for i, sol := range solutions {
		got, ok := kernel.GetValue(sol, v)
		require.True(t, ok)
		require.Equal(t, i+1, got, "expected solutions in candidate order")
	}
}

func TestSolveStopsAtMaxSolutions(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[int](s)
	solutions := Solve(context.Background(), s, branchInts(v, []int{1, 2, 3}), 2)
	require.Len(t, solutions, 2)
}

func TestSolvePrunesFailedBranches(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[int](s)
	w := kernel.StoreValue(s, 5)
	choose := func(st *kernel.State) []*kernel.State {
		if _, ok := kernel.GetValue(st, v); ok {
			return nil
		}
		var branches []*kernel.State
		for _, c := range []int{4, 5, 6} {
			b := st.Fork()
			kernel.Unify(b, c, v)
			kernel.Unify(b, c, w)
			branches = append(branches, b)
		}
		return branches
	}
	solutions := Solve(context.Background(), s, choose, 10)
	require.Len(t, solutions, 1, "only the branch agreeing with w=5 should survive")
	got, ok := kernel.GetValue(solutions[0], v)
	require.True(t, ok)
	require.Equal(t, 5, got)
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[int](s)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	solutions := Solve(ctx, s, branchInts(v, []int{1, 2, 3}), 10)
	require.Empty(t, solutions, "a cancelled context must stop search before any fork")
}
