package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func TestFdSumForward(t *testing.T) {
	s := kernel.NewState()
	result := kernel.MakeVar[fd.Fd](s)
	s.AddConstraint(FdSum{L: fd.Single(3), R: fd.Single(4), Result: result})
	s.PropagateToFixpoint()
	require.True(t, s.Ok())
	got, ok := kernel.GetValue(s, result)
	require.True(t, ok)
	require.True(t, got.Equal(fd.Single(7)))
}

func TestFdSumBackward(t *testing.T) {
	s := kernel.NewState()
	r := kernel.MakeVar[fd.Fd](s)
	s.AddConstraint(FdSum{L: fd.Single(3), R: r, Result: fd.Single(10)})
	s.PropagateToFixpoint()
	require.True(t, s.Ok())
	got, ok := kernel.GetValue(s, r)
	require.True(t, ok)
	require.True(t, got.Equal(fd.Single(7)))
}

func TestFdSumUnderflowFails(t *testing.T) {
	s := kernel.NewState()
	r := kernel.MakeVar[fd.Fd](s)
	s.AddConstraint(FdSum{L: fd.Single(10), R: r, Result: fd.Single(3)})
	s.PropagateToFixpoint()
	require.False(t, s.Ok(), "expected l=10 > result=3 to fail rather than underflow")
}
