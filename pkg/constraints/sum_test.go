package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func TestSumDerivesResult(t *testing.T) {
	s := kernel.NewState()
	result := kernel.MakeVar[int](s)
	s.AddConstraint(Sum[int]{L: 3, R: 4, Result: result})
	s.PropagateToFixpoint()
	require.True(t, s.Ok())
	got, ok := kernel.GetValue(s, result)
	require.True(t, ok)
	require.Equal(t, 7, got)
}

func TestSumDerivesMissingAddend(t *testing.T) {
	s := kernel.NewState()
	r := kernel.MakeVar[float64](s)
	s.AddConstraint(Sum[float64]{L: 1.5, R: r, Result: 4.0})
	s.PropagateToFixpoint()
	require.True(t, s.Ok())
	got, ok := kernel.GetValue(s, r)
	require.True(t, ok)
	require.Equal(t, 2.5, got)
}

func TestSumConflictFails(t *testing.T) {
	s := kernel.NewState()
	s.AddConstraint(Sum[int]{L: 3, R: 4, Result: 100})
	s.PropagateToFixpoint()
	require.False(t, s.Ok(), "expected 3 + 4 = 100 to fail")
}
