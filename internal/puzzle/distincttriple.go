package puzzle

import (
	"github.com/gitrdm/fdkanren/pkg/constraints"
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// DistinctTriple holds three finite-domain variables drawn from [1, max],
// constrained pairwise distinct, with A <= B and A + B = C. It composes
// AllDiff, FdLessOrEqual, and FdSum over one shared variable set.
type DistinctTriple struct {
	A, B, C kernel.Var[fd.Fd]
}

// NewDistinctTriple builds the puzzle against s, registering all three
// constraints up front, and narrows once before returning.
func NewDistinctTriple(s *kernel.State, max int) DistinctTriple {
	t := DistinctTriple{
		A: kernel.MakeVar[fd.Fd](s),
		B: kernel.MakeVar[fd.Fd](s),
		C: kernel.MakeVar[fd.Fd](s),
	}
	kernel.Unify(s, fd.Range(1, max), t.A)
	kernel.Unify(s, fd.Range(1, max), t.B)
	kernel.Unify(s, fd.Range(1, max), t.C)

	s.AddConstraint(constraints.AllDiff{Vars: []any{t.A, t.B, t.C}})
	s.AddConstraint(constraints.FdLessOrEqual{Lo: t.A, Hi: t.B})
	s.AddConstraint(constraints.FdSum{L: t.A, R: t.B, Result: t.C})

	s.PropagateToFixpoint()
	return t
}

// Vars returns the puzzle's variables in the order the chooser should
// branch on them.
func (t DistinctTriple) Vars() []kernel.Var[fd.Fd] {
	return []kernel.Var[fd.Fd]{t.A, t.B, t.C}
}

// Chooser returns a search.Chooser-compatible function for this puzzle.
func (t DistinctTriple) Chooser() func(s *kernel.State) []*kernel.State {
	return branchOnFirstUnbound(t.Vars())
}
