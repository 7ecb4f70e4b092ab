package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func TestAllDiffNarrowsThirdVariable(t *testing.T) {
	s := kernel.NewState()
	a := kernel.MakeVar[fd.Fd](s)
	b := kernel.MakeVar[fd.Fd](s)
	c := kernel.MakeVar[fd.Fd](s)
	kernel.Unify(s, fd.Values([]int{1, 2}), a)
	kernel.Unify(s, fd.Values([]int{1, 2}), b)
	kernel.Unify(s, fd.Values([]int{1, 2, 3}), c)
	s.AddConstraint(AllDiff{Vars: []any{a, b, c}})
	s.PropagateToFixpoint()
	require.True(t, s.Ok(), "expected propagation to succeed before any forcing")

	kernel.Unify(s, fd.Single(1), a)
	s.PropagateToFixpoint()
	kernel.Unify(s, fd.Single(2), b)
	s.PropagateToFixpoint()

	require.True(t, s.Ok())
	got, ok := kernel.GetValue(s, c)
	require.True(t, ok)
	require.True(t, got.Equal(fd.Single(3)), "c = %v", got)
}

func TestAllDiffDuplicateSingletonsFail(t *testing.T) {
	s := kernel.NewState()
	a := kernel.MakeVar[fd.Fd](s)
	b := kernel.MakeVar[fd.Fd](s)
	c := kernel.MakeVar[fd.Fd](s)
	kernel.Unify(s, fd.Values([]int{1, 2}), a)
	kernel.Unify(s, fd.Values([]int{1, 2}), b)
	kernel.Unify(s, fd.Values([]int{1, 2, 3}), c)
	s.AddConstraint(AllDiff{Vars: []any{a, b, c}})
	s.PropagateToFixpoint()

	kernel.Unify(s, fd.Single(1), a)
	s.PropagateToFixpoint()
	kernel.Unify(s, fd.Single(1), b)
	s.PropagateToFixpoint()

	require.False(t, s.Ok(), "expected two variables forced to the same value to fail")
}
