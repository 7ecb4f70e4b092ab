package puzzle

import (
	"github.com/gitrdm/fdkanren/pkg/constraints"
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// BridgeSum holds two finite-domain variables bridged into plain ints via
// FdUsize, combined through the generic Sum[int] propagator, with a
// Disequal obligation keeping the two bridged ints apart. It composes
// FdUsize, Sum, and Disequal, none of which DistinctTriple exercises.
type BridgeSum struct {
	FA, FB kernel.Var[fd.Fd]
	UA, UB kernel.Var[int]
	Result kernel.Var[int]
}

// NewBridgeSum builds the puzzle against s: FA and FB range over [0, max],
// each bridged to an int via FdUsize, summed into Result, and constrained
// UA != UB.
func NewBridgeSum(s *kernel.State, max int) BridgeSum {
	b := BridgeSum{
		FA:     kernel.MakeVar[fd.Fd](s),
		FB:     kernel.MakeVar[fd.Fd](s),
		UA:     kernel.MakeVar[int](s),
		UB:     kernel.MakeVar[int](s),
		Result: kernel.MakeVar[int](s),
	}
	kernel.Unify(s, fd.Range(0, max), b.FA)
	kernel.Unify(s, fd.Range(0, max), b.FB)

	s.AddConstraint(constraints.FdUsize{Fd: b.FA, U: b.UA})
	s.AddConstraint(constraints.FdUsize{Fd: b.FB, U: b.UB})
	s.AddConstraint(constraints.Sum[int]{L: b.UA, R: b.UB, Result: b.Result})
	s.AddConstraint(constraints.Disequal{Pairs: [][2]kernel.UntypedVar{{b.UA.Untyped(), b.UB.Untyped()}}})

	s.PropagateToFixpoint()
	return b
}

// Vars returns the finite-domain variables the chooser should branch on;
// UA, UB, and Result are derived from them via FdUsize and Sum, not chosen
// directly.
func (b BridgeSum) Vars() []kernel.Var[fd.Fd] {
	return []kernel.Var[fd.Fd]{b.FA, b.FB}
}

// Chooser returns a search.Chooser-compatible function for this puzzle.
func (b BridgeSum) Chooser() func(s *kernel.State) []*kernel.State {
	return branchOnFirstUnbound(b.Vars())
}
