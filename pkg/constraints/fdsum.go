package constraints

import (
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// FdSum builds l + r = result over finite-domain variables. It mirrors
// Sum's three-way case split but additionally guards against the
// underflow a plain subtraction would hit when deriving one addend from
// a result smaller than its sibling: an FD value is non-negative, so
// result - l (or result - r) producing a negative number means no value
// in the domain can satisfy the constraint and the branch must fail
// rather than wrap.
type FdSum struct {
	L, R, Result any
}

func (b FdSum) Build(s *kernel.State) kernel.Propagator {
	return &fdSumProp{
		l:      kernel.MakeVarOf[fd.Fd](s, b.L),
		r:      kernel.MakeVarOf[fd.Fd](s, b.R),
		result: kernel.MakeVarOf[fd.Fd](s, b.Result),
	}
}

type fdSumProp struct {
	l, r, result kernel.Var[fd.Fd]
}

func (p *fdSumProp) Watch() []kernel.UntypedVar {
	return []kernel.UntypedVar{p.l.U, p.r.U, p.result.U}
}

func (p *fdSumProp) Rebind(s *kernel.State) {
	p.l = kernel.Var[fd.Fd]{U: s.FollowID(p.l.U)}
	p.r = kernel.Var[fd.Fd]{U: s.FollowID(p.r.U)}
	p.result = kernel.Var[fd.Fd]{U: s.FollowID(p.result.U)}
}

func (p *fdSumProp) Clone() kernel.Propagator {
	cp := *p
	return &cp
}

func (p *fdSumProp) Update(proxy *kernel.StateProxy) kernel.Outcome {
	lFd, lok := kernel.GetValue(proxy, p.l)
	rFd, rok := kernel.GetValue(proxy, p.r)
	resFd, resok := kernel.GetValue(proxy, p.result)

	l, lSingle := singleOf(lFd, lok)
	r, rSingle := singleOf(rFd, rok)
	result, resSingle := singleOf(resFd, resok)

	switch {
	case lSingle && rSingle && resSingle:
		if l+r != result {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case lSingle && rSingle && !resSingle:
		kernel.UnifyValue(proxy, p.result, fd.Single(l+r))
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case lSingle && !rSingle && resSingle:
		if l > result {
			return kernel.FailedOutcome()
		}
		kernel.UnifyValue(proxy, p.r, fd.Single(result-l))
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	case !lSingle && rSingle && resSingle:
		if r > result {
			return kernel.FailedOutcome()
		}
		kernel.UnifyValue(proxy, p.l, fd.Single(result-r))
		if !proxy.Ok() {
			return kernel.FailedOutcome()
		}
		return kernel.IrrelevantOutcome()
	default:
		return kernel.UnchangedOutcome()
	}
}

func singleOf(f fd.Fd, bound bool) (int, bool) {
	if !bound {
		return 0, false
	}
	return f.SingleValue()
}
