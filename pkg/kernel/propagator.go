package kernel

import "fmt"

// VerdictKind is one of the four outcomes a propagator invocation can
// produce.
type VerdictKind int

const (
	// Unchanged means the propagator stays registered as-is: it has neither
	// retired nor failed nor produced a successor. Narrowings it recorded in
	// its proxy are still committed (FdLessOrEqual and AllDiff overwrite
	// domains and report Unchanged).
	Unchanged VerdictKind = iota
	// Irrelevant means the propagator has contributed everything it can
	// and should be dropped from the live set; its proxy is committed.
	Irrelevant
	// Failed means the propagator detected an inconsistency; the enclosing
	// state is marked failed and the branch must be abandoned.
	Failed
	// Updated means the propagator narrowed the state and should be
	// replaced by a (possibly stronger) successor; its proxy is committed
	// and the successor's Rebind is called against the post-commit state.
	Updated
)

func (k VerdictKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Irrelevant:
		return "irrelevant"
	case Failed:
		return "failed"
	case Updated:
		return "updated"
	}
	return fmt.Sprintf("verdict(%d)", int(k))
}

// Outcome is the verdict a Propagator.Update returns. Next is only
// meaningful when Kind is Updated.
type Outcome struct {
	Kind VerdictKind
	Next Propagator
}

var (
	outcomeUnchanged  = Outcome{Kind: Unchanged}
	outcomeIrrelevant = Outcome{Kind: Irrelevant}
	outcomeFailed     = Outcome{Kind: Failed}
)

// UnchangedOutcome reports that a propagator could not narrow anything
// this round.
func UnchangedOutcome() Outcome { return outcomeUnchanged }

// IrrelevantOutcome reports that a propagator has nothing further to
// contribute and should be retired.
func IrrelevantOutcome() Outcome { return outcomeIrrelevant }

// FailedOutcome reports that a propagator proved the branch inconsistent.
func FailedOutcome() Outcome { return outcomeFailed }

// UpdatedOutcome reports that a propagator should be replaced by next.
func UpdatedOutcome(next Propagator) Outcome { return Outcome{Kind: Updated, Next: next} }

// Propagator is a runtime-polymorphic constraint instance bound to
// concrete variables. The state owns the live list of propagators, but
// each propagator owns its own parameter tuple by value.
type Propagator interface {
	// Watch returns the variables whose change should wake this
	// propagator up. The loop re-invokes a propagator only when at least
	// one watched variable's representative id is in the dirty set.
	Watch() []UntypedVar

	// Update inspects and possibly narrows proxy, returning the verdict.
	// Update must be idempotent at quiescence: invoked again with an
	// empty dirty set (hence no new information), it must return
	// Unchanged.
	Update(proxy *StateProxy) Outcome

	// Rebind rewrites the propagator's own stored variable ids to their
	// current representatives after an equivalence merge. Called on every
	// live propagator at the start of each round, and on a freshly Updated
	// successor once its narrowing proxy has been committed.
	Rebind(s *State)

	// Clone deep-copies the propagator so that forking a State does not
	// let two branches share (and corrupt each other's) mutable state.
	Clone() Propagator
}

// Builder is the unbound form of a constraint: it accepts arbitrary
// value-or-variable arguments and lowers them, via MakeVarOf, into a bound
// Propagator against a State.
type Builder interface {
	Build(s *State) Propagator
}

// needsUpdate reports whether any of p's watched variables (by current
// representative id) appears in the dirty set.
func needsUpdate(p Propagator, dirty map[uint64]bool) bool {
	for _, w := range p.Watch() {
		if dirty[w.id] {
			return true
		}
	}
	return false
}

// PropagateToFixpoint repeatedly runs every propagator whose watch set
// intersects the current dirty set until no propagator can make further
// progress or the state fails.
func (s *State) PropagateToFixpoint() {
	rounds := 0
	defer func() {
		if rounds > 0 {
			s.logger.Debug("propagation finished", "rounds", rounds, "ok", !s.failed, "live_propagators", len(s.props))
		}
	}()
	for {
		if s.failed {
			return
		}
		if len(s.dirty) == 0 {
			return
		}
		rounds++
		round := s.dirty
		s.dirty = make(map[uint64]bool)

		// Every propagator is re-synced to current representative ids
		// before its watch set is tested: a dirty mark is recorded
		// against the id whose cell actually changed, which may be a
		// different id than the one a propagator last watched if an
		// unrelated unification merged them in between rounds.
		for _, prop := range s.props {
			prop.Rebind(s)
		}

		// While the round runs, GetChangedValue resolves "changed" against
		// the round's snapshot, not the next round's accumulating set.
		s.round = round
		remaining := make([]Propagator, 0, len(s.props))
		for _, prop := range s.props {
			if s.failed {
				break
			}
			if !needsUpdate(prop, round) {
				remaining = append(remaining, prop)
				continue
			}
			proxy := newProxy(s)
			outcome := prop.Update(proxy)
			if s.logger.IsTrace() {
				s.logger.Trace("propagator ran", "round", rounds, "propagator", fmt.Sprintf("%T", prop), "verdict", outcome.Kind.String())
			}
			switch outcome.Kind {
			case Unchanged:
				s.commit(proxy)
				remaining = append(remaining, prop)
			case Irrelevant:
				s.commit(proxy)
			case Failed:
				s.failed = true
			case Updated:
				s.commit(proxy)
				if !s.failed {
					outcome.Next.Rebind(s)
					remaining = append(remaining, outcome.Next)
				}
			}
		}
		s.round = nil
		s.props = remaining
		if s.failed {
			return
		}
	}
}
