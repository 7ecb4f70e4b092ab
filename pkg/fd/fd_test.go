package fd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/fdkanren/pkg/kernel"
)

func TestValuesCollapsesToSingle(t *testing.T) {
	got := Values([]int{5, 5, 5})
	require.True(t, got.IsSingle())
	v, ok := got.SingleValue()
	require.True(t, ok)
	require.Equal(t, 5, v)
}

func TestValuesEmptyIsInvalid(t *testing.T) {
	require.False(t, Values(nil).IsValid())
}

func TestValuesSortsAndDedupes(t *testing.T) {
	got := Values([]int{3, 1, 2, 1, 3})
	if diff := cmp.Diff([]int{1, 2, 3}, got.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersect(t *testing.T) {
	a := Values([]int{1, 2, 3, 4, 5})
	b := Values([]int{2, 3, 6})
	if diff := cmp.Diff([]int{2, 3}, a.Intersect(b).Values()); diff != "" {
		t.Errorf("Intersect() mismatch (-want +got):\n%s", diff)
	}
}

func TestIntersectDisjointIsInvalid(t *testing.T) {
	a := Values([]int{1, 2})
	b := Values([]int{3, 4})
	require.False(t, a.Intersect(b).IsValid())
}

func TestRemoveValuesCollapse(t *testing.T) {
	d := Values([]int{1, 2, 3})
	got := d.RemoveValues(map[int]bool{1: true, 2: true})
	require.True(t, got.IsSingle())
	v, ok := got.SingleValue()
	require.True(t, ok)
	require.Equal(t, 3, v)
}

func TestRemoveValuesInvalidatesWhenExhausted(t *testing.T) {
	d := Values([]int{1, 2})
	require.False(t, d.RemoveValues(map[int]bool{1: true, 2: true}).IsValid())
}

func TestConstrainRangeBothBounds(t *testing.T) {
	d := Values([]int{1, 2, 3, 4, 5})
	lo, hi := 2, 4
	if diff := cmp.Diff([]int{2, 3, 4}, d.ConstrainRange(&lo, &hi).Values()); diff != "" {
		t.Errorf("ConstrainRange() mismatch (-want +got):\n%s", diff)
	}
}

func TestConstrainRangeNoBoundsIsNoop(t *testing.T) {
	d := Values([]int{1, 2, 3})
	require.True(t, d.ConstrainRange(nil, nil).Equal(d))
}

func TestEqual(t *testing.T) {
	a := Values([]int{1, 2, 3})
	b := Values([]int{3, 2, 1})
	require.True(t, a.Equal(b), "expected equal domains to compare equal regardless of input order")
	require.False(t, Single(1).Equal(Values([]int{1, 2})))
}

// TestUnifyingTwoBoundFdsNarrowsRatherThanFails exercises kernel.Unify
// against an already-bound Fd variable, the path branchOnFirstUnbound
// (internal/puzzle) relies on to commit a search choice: unifying a
// variable holding Values([1,2,3]) with Single(2) must narrow to Single(2)
// (2 is a member), not fail outright the way plain value-set equality
// would.
func TestUnifyingTwoBoundFdsNarrowsRatherThanFails(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[Fd](s)
	kernel.Unify(s, Values([]int{1, 2, 3}), v)
	kernel.Unify(s, Single(2), v)
	require.True(t, s.Ok(), "expected Single(2) to narrow a member of Values([1,2,3]), not fail")
	got, ok := kernel.GetValue(s, v)
	require.True(t, ok)
	require.True(t, got.Equal(Single(2)), "v = %v", got)
}

// TestUnifyingTwoBoundFdsFailsOnEmptyIntersection covers the complementary
// case: narrowing against a value the domain doesn't contain must still
// fail the state.
func TestUnifyingTwoBoundFdsFailsOnEmptyIntersection(t *testing.T) {
	s := kernel.NewState()
	v := kernel.MakeVar[Fd](s)
	kernel.Unify(s, Values([]int{1, 2, 3}), v)
	kernel.Unify(s, Single(9), v)
	require.False(t, s.Ok(), "expected Single(9) (not a member of Values([1,2,3])) to fail")
}

// TestUnifyVarsNarrowsBothFdCells covers UnifyVars (rather than Unify
// against a literal), narrowing two distinct bound Fd variables against
// each other.
func TestUnifyVarsNarrowsBothFdCells(t *testing.T) {
	s := kernel.NewState()
	a := kernel.MakeVar[Fd](s)
	b := kernel.MakeVar[Fd](s)
	kernel.Unify(s, Values([]int{1, 2, 3}), a)
	kernel.Unify(s, Values([]int{2, 3, 4}), b)
	kernel.UnifyVars(s, a, b)
	require.True(t, s.Ok())
	gotA, _ := kernel.GetValue(s, a)
	gotB, _ := kernel.GetValue(s, b)
	require.True(t, gotA.Equal(Values([]int{2, 3})), "a = %v", gotA)
	require.True(t, gotB.Equal(Values([]int{2, 3})), "b = %v", gotB)
}
