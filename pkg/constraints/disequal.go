package constraints

import "github.com/gitrdm/fdkanren/pkg/kernel"

// pairEntry is one (a, b) obligation a Disequal constraint must keep at
// least one of disjoint.
type pairEntry struct {
	a, b kernel.UntypedVar
}

// Disequal is satisfied so long as at least one of its pairs cannot be
// unified; it fails once a trial unification of every pair records no new
// entry at all. Each Update tests the pairs against a scratch proxy:
//
//   - Unifying every pair against a scratch proxy and hitting a conflict on
//     any of them means the pairs can never all be simultaneously equal:
//     the constraint is trivially satisfied forever and is dropped
//     (Irrelevant).
//   - If the trial unification needed no new bindings at all, every pair
//     was already fully equal: the constraint is violated (Failed).
//   - Otherwise, the proxy recorded some new entries and the constraint
//     remains Unchanged (still watching, not yet violated, not yet provably
//     satisfied). Every entry counts here, whether a unification-forced
//     merge or a direct value overwrite such as an Fd narrowing; the
//     overwrite-vs-merge distinction is not consulted.
//
// The propagator loop's per-round Rebind keeps the stored pairs pointed at
// current representative ids, so no replacement propagator is ever
// constructed.
//
// Disequal takes its pairs already bound to variables (via Var[T].Untyped())
// rather than value-or-variable arguments: unlike the arithmetic
// propagators, there is no meaningful "bare value" form of a disequality
// obligation between two heterogeneous, possibly differently-typed terms.
type Disequal struct {
	Pairs [][2]kernel.UntypedVar
}

// NewDisequalTerms builds a Disequal from two structurally unifiable terms
// of the same type by zipping their VarIter output positionally, so a
// whole structural term (a Tuple2, say) can be posted disequal to another
// in one call instead of the caller hand-listing each field pair. It
// panics if a and b disagree in their variable count, which should be
// impossible for two values of the same concrete Unifiable type.
func NewDisequalTerms[T kernel.Unifiable](a, b T) Disequal {
	av, bv := a.VarIter(), b.VarIter()
	if len(av) != len(bv) {
		panic("constraints: NewDisequalTerms given terms with mismatched variable counts")
	}
	pairs := make([][2]kernel.UntypedVar, len(av))
	for i := range av {
		pairs[i] = [2]kernel.UntypedVar{av[i], bv[i]}
	}
	return Disequal{Pairs: pairs}
}

func (b Disequal) Build(s *kernel.State) kernel.Propagator {
	pairs := make([]pairEntry, len(b.Pairs))
	for i, pr := range b.Pairs {
		pairs[i] = pairEntry{a: pr[0], b: pr[1]}
	}
	return &disequalProp{pairs: pairs}
}

type disequalProp struct {
	pairs []pairEntry
}

func (p *disequalProp) Watch() []kernel.UntypedVar {
	out := make([]kernel.UntypedVar, 0, len(p.pairs)*2)
	for _, pr := range p.pairs {
		out = append(out, pr.a, pr.b)
	}
	return out
}

func (p *disequalProp) Rebind(s *kernel.State) {
	for i, pr := range p.pairs {
		p.pairs[i] = pairEntry{a: s.FollowID(pr.a), b: s.FollowID(pr.b)}
	}
}

func (p *disequalProp) Clone() kernel.Propagator {
	pairs := make([]pairEntry, len(p.pairs))
	copy(pairs, p.pairs)
	return &disequalProp{pairs: pairs}
}

func (p *disequalProp) Update(proxy *kernel.StateProxy) kernel.Outcome {
	trial := kernel.NewTrialProxy(proxy)
	for _, pr := range p.pairs {
		trial.UnifyVars(pr.a, pr.b)
		if !trial.Ok() {
			return kernel.IrrelevantOutcome()
		}
	}

	if trial.Changes() == 0 {
		return kernel.FailedOutcome()
	}

	// The trial needed some new binding to make every pair equal, so the
	// pairs are not all equal yet: stays Unchanged. Whether a given new
	// equality was a direct overwrite, a re-merge of this constraint's own
	// endpoints, or a genuine outside binding would only matter for
	// producing a replacement propagator with re-derived pairs; none is
	// needed, since Rebind already keeps pairs pointed at current
	// representatives every round, and eventual full equality is what
	// drives trial.Changes() to 0 above.
	return kernel.UnchangedOutcome()
}
