package kernel

import "reflect"

// Unifiable is the contract a compound value type supplies to participate
// in structural unification: how to unify itself against another value of
// the same type, which child variables it is built from (for occurs-check
// and rebinding), and whether its type can transitively embed a given
// variable's type (a cheap static filter that lets occurs-check skip
// subtrees that provably cannot contain the needle).
//
// Scalars, strings, and any other leaf type need not implement this
// interface at all: unifyValues falls back to plain == for anything that
// isn't Unifiable.
type Unifiable interface {
	// UnifyWith attempts to unify the receiver against other (which must be
	// the same concrete type) inside proxy, recording any sub-term
	// equalities it needs. It reports whether unification is still
	// possible; the caller checks proxy.Ok() for the definitive answer
	// after recursive sub-unifications have run.
	UnifyWith(proxy *StateProxy, other any) bool

	// VarIter returns the variables this value is directly built from.
	// Leaf compounds (e.g. a None Option) may return nil.
	VarIter() []UntypedVar

	// CanContainType reports whether a value of the receiver's type could
	// ever transitively hold a variable of type needle. seen guards
	// against infinite recursion through self-referential type graphs.
	CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool
}

// Narrowable is an optional refinement of the unification contract for
// value types whose two bound cells should narrow to their intersection
// rather than merely check equality, the way fd.Fd does. A type that
// doesn't implement Narrowable falls back to unifyValues' plain-equality
// (or Unifiable.UnifyWith) behavior.
type Narrowable interface {
	// Narrow returns the intersection of the receiver and other (which must
	// be the same concrete type) and whether that intersection still admits
	// at least one value. A false result means the two cells can never be
	// made equal and unification must fail.
	Narrow(other any) (result any, ok bool)
}

// narrowValues reports whether a implements Narrowable and, if so, the
// outcome of narrowing it against b: narrowed is the value both cells
// should be overwritten with, and valid is false iff the intersection is
// empty and unification must fail. used is false when a doesn't
// participate in narrowing at all, telling the caller to fall back to
// unifyValues.
func narrowValues(a, b any) (narrowed any, valid, used bool) {
	na, ok := a.(Narrowable)
	if !ok {
		return nil, false, false
	}
	n, ok := na.Narrow(b)
	return n, ok, true
}

// canContainType answers CanContainType for an arbitrary (childType,
// needle) pair without requiring a live value: it instantiates a zero
// value of childType via reflection and, if that value is Unifiable, asks
// it directly. Leaf types (for which the zero value isn't Unifiable) can
// never contain anything but themselves.
func canContainType(childType, needle reflect.Type) bool {
	if childType == nil || needle == nil {
		return childType == needle
	}
	if childType == needle {
		return true
	}
	zero := reflect.New(childType).Elem().Interface()
	if u, ok := zero.(Unifiable); ok {
		return u.CanContainType(map[reflect.Type]bool{}, needle)
	}
	return false
}

// extendSeen returns a copy of seen with t added, leaving seen untouched.
func extendSeen(seen map[reflect.Type]bool, t reflect.Type) map[reflect.Type]bool {
	out := make(map[reflect.Type]bool, len(seen)+1)
	for k := range seen {
		out[k] = true
	}
	out[t] = true
	return out
}
