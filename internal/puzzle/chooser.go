// Package puzzle contains small worked problems that exercise the full
// built-in propagator set end to end: DistinctTriple (AllDiff, FdLessOrEqual,
// and FdSum over one shared variable set) and BridgeSum (FdUsize bridging
// finite-domain variables into plain ints, a generic Sum, and Disequal).
// Each puzzle exposes its variables and a search.Chooser so cmd/fdkanren can
// drive it through internal/search without knowing its internals.
package puzzle

import (
	"sort"

	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// branchOnFirstUnbound returns a search.Chooser-compatible function that
// forks s once per remaining candidate value of the first bound variable in
// vars not yet narrowed to a single value, binding that variable to each
// candidate in turn. Variables already singletons, and unbound variables,
// are skipped entirely, so once no bound multi-value domain remains the
// chooser reports no further branches and the caller treats s as a
// solution.
func branchOnFirstUnbound(vars []kernel.Var[fd.Fd]) func(s *kernel.State) []*kernel.State {
	return func(s *kernel.State) []*kernel.State {
		for _, v := range vars {
			dom, ok := kernel.GetValue(s, v)
			if !ok || dom.IsSingle() {
				continue
			}
			values := append([]int(nil), dom.Values()...)
			sort.Ints(values)

			branches := make([]*kernel.State, 0, len(values))
			for _, val := range values {
				b := s.Fork()
				kernel.Unify(b, fd.Single(val), v)
				branches = append(branches, b)
			}
			return branches
		}
		return nil
	}
}
