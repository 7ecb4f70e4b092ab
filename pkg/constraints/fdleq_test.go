package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func TestFdLessOrEqualNarrows(t *testing.T) {
	s := kernel.NewState()
	l := kernel.MakeVar[fd.Fd](s)
	r := kernel.MakeVar[fd.Fd](s)
	kernel.Unify(s, fd.Values([]int{1, 2, 3, 4, 5}), l)
	kernel.Unify(s, fd.Values([]int{2, 3}), r)
	s.AddConstraint(FdLessOrEqual{Lo: l, Hi: r})
	s.PropagateToFixpoint()
	require.True(t, s.Ok())
	gotL, _ := kernel.GetValue(s, l)
	gotR, _ := kernel.GetValue(s, r)
	require.True(t, gotL.Equal(fd.Values([]int{1, 2, 3})), "l = %v", gotL)
	require.True(t, gotR.Equal(fd.Values([]int{2, 3})), "r = %v", gotR)
}

func TestFdLessOrEqualSingletonsFail(t *testing.T) {
	s := kernel.NewState()
	l := kernel.MakeVar[fd.Fd](s)
	r := kernel.MakeVar[fd.Fd](s)
	kernel.Unify(s, fd.Single(5), l)
	kernel.Unify(s, fd.Single(2), r)
	s.AddConstraint(FdLessOrEqual{Lo: l, Hi: r})
	s.PropagateToFixpoint()
	require.False(t, s.Ok(), "expected 5 <= 2 to fail")
}

func TestFdLessOrEqualSingletonsSucceed(t *testing.T) {
	s := kernel.NewState()
	l := kernel.MakeVar[fd.Fd](s)
	r := kernel.MakeVar[fd.Fd](s)
	kernel.Unify(s, fd.Single(2), l)
	kernel.Unify(s, fd.Single(5), r)
	s.AddConstraint(FdLessOrEqual{Lo: l, Hi: r})
	s.PropagateToFixpoint()
	require.True(t, s.Ok(), "expected 2 <= 5 to succeed")
}
