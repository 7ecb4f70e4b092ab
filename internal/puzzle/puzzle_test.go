package puzzle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/internal/search"
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func singleOf(t *testing.T, s *kernel.State, v kernel.Var[fd.Fd]) int {
	t.Helper()
	dom, ok := kernel.GetValue(s, v)
	require.True(t, ok, "expected variable bound in a solution")
	val, ok := dom.SingleValue()
	require.True(t, ok, "expected a singleton domain in a solution, got %v", dom)
	return val
}

func TestDistinctTripleSolutionsSatisfyAllConstraints(t *testing.T) {
	s := kernel.NewState()
	p := NewDistinctTriple(s, 5)
	require.True(t, s.Ok(), "expected the puzzle to survive initial propagation")

	solutions := search.Solve(context.Background(), s, p.Chooser(), 5)
	require.NotEmpty(t, solutions)
	for _, sol := range solutions {
		a := singleOf(t, sol, p.A)
		b := singleOf(t, sol, p.B)
		c := singleOf(t, sol, p.C)
		require.LessOrEqual(t, a, b)
		require.Equal(t, c, a+b)
		require.NotEqual(t, a, b)
		require.NotEqual(t, a, c)
		require.NotEqual(t, b, c)
	}
}

func TestDistinctTripleUnsatisfiableRange(t *testing.T) {
	// With max = 2 there is no room for a+b = c inside [1,2] with all three
	// distinct, so search must come back empty.
	s := kernel.NewState()
	p := NewDistinctTriple(s, 2)
	solutions := search.Solve(context.Background(), s, p.Chooser(), 1)
	require.Empty(t, solutions)
}

func TestBridgeSumSolutionsKeepIntsDistinct(t *testing.T) {
	s := kernel.NewState()
	b := NewBridgeSum(s, 3)
	require.True(t, s.Ok(), "expected the puzzle to survive initial propagation")

	solutions := search.Solve(context.Background(), s, b.Chooser(), 8)
	require.NotEmpty(t, solutions)
	for _, sol := range solutions {
		fa := singleOf(t, sol, b.FA)
		fb := singleOf(t, sol, b.FB)
		ua, ok := kernel.GetValue(sol, b.UA)
		require.True(t, ok, "expected the bridged int for FA to be bound")
		ub, ok := kernel.GetValue(sol, b.UB)
		require.True(t, ok, "expected the bridged int for FB to be bound")
		result, ok := kernel.GetValue(sol, b.Result)
		require.True(t, ok, "expected the sum to be derived")

		require.Equal(t, fa, ua)
		require.Equal(t, fb, ub)
		require.Equal(t, ua+ub, result)
		require.NotEqual(t, ua, ub)
	}
}
