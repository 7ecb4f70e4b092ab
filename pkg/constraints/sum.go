// Package constraints provides the built-in propagators: a generic additive
// Sum usable over any type with Add/Sub, and a family of finite-domain
// propagators (FdSum, FdLessOrEqual, AllDiff, FdUsize, Disequal) built on
// top of package fd and package kernel.
package constraints

import (
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// Addable is the numeric contract Sum requires of its type parameter: it
// must support addition and subtraction so the constraint can run in both
// directions (deriving the result from the addends, or an addend from the
// result and its sibling).
type Addable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum builds l + r = result over any Addable type. It is bidirectional:
// given any two of the three bound, it derives the third.
type Sum[T Addable] struct {
	L, R, Result any
}

// Build lowers L, R, and Result into bound variables and returns the
// propagator.
func (b Sum[T]) Build(s *kernel.State) kernel.Propagator {
	return &sumProp[T]{
		l:      kernel.MakeVarOf[T](s, b.L),
		r:      kernel.MakeVarOf[T](s, b.R),
		result: kernel.MakeVarOf[T](s, b.Result),
	}
}

type sumProp[T Addable] struct {
	l, r, result kernel.Var[T]
}

func (p *sumProp[T]) Watch() []kernel.UntypedVar {
	return []kernel.UntypedVar{p.l.U, p.r.U, p.result.U}
}

func (p *sumProp[T]) Rebind(s *kernel.State) {
	p.l = kernel.Var[T]{U: s.FollowID(p.l.U)}
	p.r = kernel.Var[T]{U: s.FollowID(p.r.U)}
	p.result = kernel.Var[T]{U: s.FollowID(p.result.U)}
}

func (p *sumProp[T]) Clone() kernel.Propagator {
	cp := *p
	return &cp
}

// Update implements the three-way case split: whichever single unknown
// remains among l, r, result is derived from the other two; if all three
// are already known, the propagator has nothing further to contribute.
func (p *sumProp[T]) Update(proxy *kernel.StateProxy) kernel.Outcome {
	l, lok := kernel.GetValue(proxy, p.l)
	r, rok := kernel.GetValue(proxy, p.r)
	result, resok := kernel.GetValue(proxy, p.result)

	switch {
	case lok && rok && resok:
		if l+r != result {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case lok && rok && !resok:
		kernel.UnifyValue(proxy, p.result, l+r)
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case lok && !rok && resok:
		kernel.UnifyValue(proxy, p.r, result-l)
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case !lok && rok && resok:
		kernel.UnifyValue(proxy, p.l, result-r)
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	default:
		return kernel.UnchangedOutcome()
	}
}
