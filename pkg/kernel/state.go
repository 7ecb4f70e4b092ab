package kernel

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"
)

// refKind distinguishes the two states a cell can be in: bound to a concrete
// value, or merged into another cell's chain.
type refKind uint8

const (
	refExactly refKind = iota
	refEqualTo
)

// varRef is the payload of a single cell in the variable table. An
// EqualTo cell carries no payload of its own; lookups must follow "other"
// to reach the representative.
type varRef struct {
	kind  refKind
	value any
	typ   reflect.Type
	other uint64
}

// varTable is the read surface shared by State and StateProxy, letting
// propagators and unification code work uniformly against either one.
type varTable interface {
	getRef(id uint64) (varRef, bool)
	isDirty(id uint64) bool
	followID(id uint64) uint64
}

// State holds the live variable table, the set of registered propagators,
// and the set of variables whose binding changed since the propagators last
// ran to quiescence. Variable identifiers are monotonic and are never
// reused or removed; only EqualTo/Exactly payloads come and go.
type State struct {
	eqs    map[uint64]varRef
	dirty  map[uint64]bool
	round  map[uint64]bool // the in-flight propagation round's dirty snapshot; nil between rounds
	props  []Propagator
	nextID uint64
	failed bool
	logger hclog.Logger
}

// NewState constructs an empty state with no variables and no propagators.
func NewState() *State {
	return &State{
		eqs:    make(map[uint64]varRef),
		dirty:  make(map[uint64]bool),
		logger: hclog.NewNullLogger(),
	}
}

// SetLogger routes the propagation loop's tracing (which propagator ran,
// what verdict it returned, how many rounds a fixpoint took) to l. The
// default is a null logger; passing nil restores it. Forks inherit the
// logger.
func (s *State) SetLogger(l hclog.Logger) {
	if l == nil {
		l = hclog.NewNullLogger()
	}
	s.logger = l
}

func (s *State) freshID() uint64 {
	s.nextID++
	return s.nextID
}

func (s *State) getRef(id uint64) (varRef, bool) {
	r, ok := s.eqs[id]
	return r, ok
}

// isDirty answers against the running round's snapshot while propagation is
// in flight, so GetChangedValue inside a propagator sees the changes that
// woke it rather than the next round's still-accumulating set.
func (s *State) isDirty(id uint64) bool {
	if s.round != nil {
		return s.round[id]
	}
	return s.dirty[id]
}

func (s *State) followID(id uint64) uint64 {
	for {
		ref, ok := s.eqs[id]
		if !ok || ref.kind != refEqualTo {
			return id
		}
		id = ref.other
	}
}

// FollowID walks EqualTo chains to the representative id for v.
func (s *State) FollowID(v UntypedVar) UntypedVar {
	return UntypedVar{id: s.followID(v.id), typ: v.typ}
}

// Ok reports whether any unification or propagator has failed this state.
func (s *State) Ok() bool { return !s.failed }

// MakeVar allocates a fresh, unbound variable of type T.
func MakeVar[T any](s *State) Var[T] {
	return wrapUntyped[T](s.freshID())
}

// StoreValue allocates a variable already bound to v.
func StoreValue[T any](s *State, v T) Var[T] {
	vr := wrapUntyped[T](s.freshID())
	s.eqs[vr.U.id] = varRef{kind: refExactly, value: v, typ: vr.U.typ}
	s.dirty[vr.U.id] = true
	return vr
}

// MakeVarOf lowers a value-or-variable argument to a Var[T]: an existing
// Var[T] passes through untouched, a bare T is stored as a fresh bound
// variable. This is the builder contract every constraint builder relies
// on to normalize its arguments against a State.
func MakeVarOf[T any](s *State, x any) Var[T] {
	if v, ok := x.(Var[T]); ok {
		return v
	}
	if v, ok := x.(T); ok {
		return StoreValue(s, v)
	}
	panic(fmt.Sprintf("kernel: cannot lower %T into Var[%s]", x, typeOf[T]()))
}

// GetValue resolves v to its bound payload, following EqualTo chains.
// It returns false for an unbound representative.
func GetValue[T any](vt varTable, v Var[T]) (T, bool) {
	var zero T
	id := vt.followID(v.U.id)
	ref, ok := vt.getRef(id)
	if !ok || ref.kind != refExactly {
		return zero, false
	}
	val, ok := ref.value.(T)
	if !ok {
		panic(fmt.Sprintf("kernel: variable %d holds %T, requested %s", id, ref.value, typeOf[T]()))
	}
	return val, true
}

// GetChangedValue is like GetValue but additionally returns false if the
// representative was not touched since the last propagation round. It lets
// a propagator cheaply test whether it needs to look any closer.
func GetChangedValue[T any](vt varTable, v Var[T]) (T, bool) {
	var zero T
	id := vt.followID(v.U.id)
	if !vt.isDirty(id) {
		return zero, false
	}
	return GetValue(vt, v)
}

// Unify binds v to value, failing the state on conflict.
func Unify[T any](s *State, value T, v Var[T]) {
	p := newProxy(s)
	tmpID := s.freshID()
	p.setOverlay(tmpID, varRef{kind: refExactly, value: value, typ: v.U.typ})
	p.unifyIDs(tmpID, v.U.id, v.U.typ)
	s.commit(p)
}

// UnifyVars unifies two variables of the same type, failing the state on
// conflict.
func UnifyVars[T any](s *State, a, b Var[T]) {
	p := newProxy(s)
	p.unifyIDs(a.U.id, b.U.id, a.U.typ)
	s.commit(p)
}

// UnifyUntyped is the dynamically typed entry point for callers that only
// hold UntypedVar handles. It unifies directly against the State; inside a
// propagator, StateProxy.UnifyVars is used instead.
func UnifyUntyped(s *State, a, b UntypedVar) {
	p := newProxy(s)
	p.unifyIDs(a.id, b.id, a.typ)
	s.commit(p)
}

// AddConstraint lowers a builder into a bound propagator, registers it, and
// marks its watched variables dirty so the next PropagateToFixpoint call
// gives it at least one chance to run even if nothing else changed since.
func (s *State) AddConstraint(b Builder) {
	prop := b.Build(s)
	s.props = append(s.props, prop)
	for _, w := range prop.Watch() {
		s.dirty[s.followID(w.id)] = true
	}
}

// EachPropagator calls f once for every propagator currently live on s, in
// registration order. It exists for introspection (tests, debugging
// tools); ordinary constraint code has no need to enumerate the live set.
func (s *State) EachPropagator(f func(Propagator)) {
	for _, p := range s.props {
		f(p)
	}
}

// Fork deep-clones the state so a search collaborator can explore two
// branches independently. Bound values are treated as immutable (never
// mutated in place, only replaced), so copying the table and propagator
// list is sufficient; no value payload needs a deep copy of its own.
func (s *State) Fork() *State {
	eqs2 := make(map[uint64]varRef, len(s.eqs))
	for k, v := range s.eqs {
		eqs2[k] = v
	}
	dirty2 := make(map[uint64]bool, len(s.dirty))
	for k := range s.dirty {
		dirty2[k] = true
	}
	props2 := make([]Propagator, len(s.props))
	for i, p := range s.props {
		props2[i] = p.Clone()
	}
	return &State{
		eqs:    eqs2,
		dirty:  dirty2,
		props:  props2,
		nextID: s.nextID,
		failed: s.failed,
		logger: s.logger,
	}
}

// commit folds a proxy's overlay into the parent state, or marks the state
// failed and discards the overlay if the proxy recorded a conflict.
func (s *State) commit(p *StateProxy) {
	if !p.okFlag {
		s.failed = true
		return
	}
	for _, id := range p.order {
		ref := p.overlay[id]
		s.eqs[id] = ref
		s.dirty[id] = true
		// A merge changes what both endpoints resolve to, but only the
		// losing cell gets an overlay entry; mark the representative too so
		// a propagator rebound onto it still wakes up.
		if ref.kind == refEqualTo {
			s.dirty[ref.other] = true
		}
	}
}
