package kernel

import "reflect"

// StateProxy is a speculative child of a State. It is the sole write path
// available inside a propagator: every binding a propagator wants to make
// is recorded in the proxy's own overlay first. If the propagator's verdict
// calls for discarding the attempt, the proxy is simply dropped; nothing in
// the parent was ever touched. There is no journal to unwind because
// nothing was written in place.
//
// A propagator receives exactly one fresh StateProxy per invocation, built
// directly against the live State. The only proxy layered on another proxy
// is a NewTrialProxy scratch workspace, which is never committed.
type StateProxy struct {
	parent  varTable
	overlay map[uint64]varRef
	order   []uint64 // overlay keys in insertion order, for deterministic commit/iteration
	okFlag  bool
}

func newProxy(parent varTable) *StateProxy {
	return &StateProxy{parent: parent, overlay: make(map[uint64]varRef), okFlag: true}
}

// NewProxy is the entry point the propagator loop uses to hand a fresh
// scratch proxy to a propagator's Update method.
func NewProxy(parent *State) *StateProxy { return newProxy(parent) }

// NewTrialProxy builds a scratch proxy reading through an in-flight
// StateProxy, for a propagator that needs to speculatively test a
// unification without letting the attempt's bindings reach the proxy it
// was actually handed. The trial proxy is never committed; a caller
// inspects its Ok/Changes/NewEqualities and then discards it.
func NewTrialProxy(parent *StateProxy) *StateProxy { return newProxy(parent) }

func (p *StateProxy) getRef(id uint64) (varRef, bool) {
	if r, ok := p.overlay[id]; ok {
		return r, true
	}
	return p.parent.getRef(id)
}

func (p *StateProxy) isDirty(id uint64) bool {
	if _, ok := p.overlay[id]; ok {
		return true
	}
	return p.parent.isDirty(id)
}

func (p *StateProxy) followID(id uint64) uint64 {
	for {
		ref, ok := p.getRef(id)
		if !ok || ref.kind != refEqualTo {
			return id
		}
		id = ref.other
	}
}

// FollowID walks EqualTo chains (through the overlay, then the parent) to
// the representative id for v.
func (p *StateProxy) FollowID(v UntypedVar) UntypedVar {
	return UntypedVar{id: p.followID(v.id), typ: v.typ}
}

// Ok reports whether this proxy has recorded a conflict.
func (p *StateProxy) Ok() bool { return p.okFlag }

// Changes reports the number of new bindings this proxy has accumulated.
// Disequal uses it to detect "unification succeeded without needing to add
// anything", i.e. that the two sides were already equal.
func (p *StateProxy) Changes() int { return len(p.order) }

// NewEqualities exposes the overlay's (key, representative) pairs in
// insertion order, distinguishing a direct value overwrite (refExactly,
// produced by OverwriteVar during speculative narrowing) from a genuine
// variable merge (refEqualTo, produced by unification). An overwrite is
// bookkeeping that vanishes on rollback, not evidence that two terms were
// forced equal. No built-in propagator calls it; Disequal decides from
// Changes alone.
func (p *StateProxy) NewEqualities(f func(k uint64, eqVar uint64, isOverwrite bool)) {
	for _, id := range p.order {
		ref := p.overlay[id]
		if ref.kind == refExactly {
			f(id, 0, true)
			continue
		}
		f(id, ref.other, false)
	}
}

func (p *StateProxy) setOverlay(id uint64, r varRef) {
	if _, exists := p.overlay[id]; !exists {
		p.order = append(p.order, id)
	}
	p.overlay[id] = r
}

// OverwriteVar directly replaces v's stored value, bypassing unification.
// Propagators use it to install a narrowed domain they have already
// computed (e.g. an intersected Fd) without re-deriving it through
// unify_with.
func OverwriteVar[T any](p *StateProxy, v Var[T], newVal T) {
	id := p.followID(v.U.id)
	p.setOverlay(id, varRef{kind: refExactly, value: newVal, typ: v.U.typ})
}

// unifyIDs is the untyped core of unification: resolve both sides to their
// representatives, then bind, merge, or narrow depending on which are bound.
func (p *StateProxy) unifyIDs(aID, bID uint64, typ reflect.Type) {
	if !p.okFlag {
		return
	}
	ra := p.followID(aID)
	rb := p.followID(bID)
	if ra == rb {
		return
	}
	refA, okA := p.getRef(ra)
	refB, okB := p.getRef(rb)
	boundA := okA && refA.kind == refExactly
	boundB := okB && refB.kind == refExactly

	switch {
	case boundA && boundB:
		if narrowed, valid, used := narrowValues(refA.value, refB.value); used {
			if !valid {
				p.okFlag = false
				return
			}
			p.setOverlay(ra, varRef{kind: refExactly, value: narrowed, typ: typ})
			p.setOverlay(rb, varRef{kind: refExactly, value: narrowed, typ: typ})
			return
		}
		if !unifyValues(p, refA.value, refB.value) {
			p.okFlag = false
		}
	case boundA && !boundB:
		p.bindFree(rb, ra, typ)
	case !boundA && boundB:
		p.bindFree(ra, rb, typ)
	default:
		// Both free: deterministic tie-break, lower id becomes the
		// representative.
		if ra < rb {
			p.bindFree(rb, ra, typ)
		} else {
			p.bindFree(ra, rb, typ)
		}
	}
}

// UnifyVars is the untyped unification entry point used by compound term
// unify_with hooks (tuples, Option, Result, List) and by Disequal.
func (p *StateProxy) UnifyVars(a, b UntypedVar) {
	p.unifyIDs(a.id, b.id, a.typ)
}

func (p *StateProxy) bindFree(freeID, targetID uint64, typ reflect.Type) {
	needle := UntypedVar{id: freeID, typ: typ}
	root := UntypedVar{id: targetID, typ: typ}
	if occursCheck(p, needle, root) {
		p.okFlag = false
		return
	}
	p.setOverlay(freeID, varRef{kind: refEqualTo, other: targetID})
}

// unifyValues dispatches to a compound type's UnifyWith hook, falling back
// to plain equality for scalars, strings, and any other leaf type that does
// not implement Unifiable.
func unifyValues(p *StateProxy, a, b any) bool {
	if ua, ok := a.(Unifiable); ok {
		return ua.UnifyWith(p, b)
	}
	return a == b
}

// occursCheck reports whether needle is reachable from root's current
// value, walking through bound compound terms via their VarIter. This
// guards against building a cyclic EqualTo chain.
func occursCheck(vt varTable, needle, root UntypedVar) bool {
	if root.id == needle.id {
		return true
	}
	ref, ok := vt.getRef(vt.followID(root.id))
	if !ok || ref.kind != refExactly {
		return false
	}
	u, ok := ref.value.(Unifiable)
	if !ok {
		return false
	}
	for _, child := range u.VarIter() {
		if !canContainType(child.typ, needle.typ) {
			continue
		}
		if occursCheck(vt, needle, child) {
			return true
		}
	}
	return false
}
