package constraints

import (
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// FdLessOrEqual builds Lo <= Hi over two finite-domain variables, narrowing
// each side's domain to the range the other side still permits. Both sides
// are narrowed by constraining against the other's current min/max, the
// four Single/Values combinations are handled uniformly through
// ConstrainRange, and the propagator overwrites (rather than unifies) the
// narrowed domain since it is deriving a subset of an already-known
// domain, not forcing a fresh equality.
type FdLessOrEqual struct {
	Lo, Hi any
}

func (b FdLessOrEqual) Build(s *kernel.State) kernel.Propagator {
	return &fdLeqProp{
		lo: kernel.MakeVarOf[fd.Fd](s, b.Lo),
		hi: kernel.MakeVarOf[fd.Fd](s, b.Hi),
	}
}

type fdLeqProp struct {
	lo, hi kernel.Var[fd.Fd]
}

func (p *fdLeqProp) Watch() []kernel.UntypedVar {
	return []kernel.UntypedVar{p.lo.U, p.hi.U}
}

func (p *fdLeqProp) Rebind(s *kernel.State) {
	p.lo = kernel.Var[fd.Fd]{U: s.FollowID(p.lo.U)}
	p.hi = kernel.Var[fd.Fd]{U: s.FollowID(p.hi.U)}
}

func (p *fdLeqProp) Clone() kernel.Propagator {
	cp := *p
	return &cp
}

func (p *fdLeqProp) Update(proxy *kernel.StateProxy) kernel.Outcome {
	loFd, ok := kernel.GetValue(proxy, p.lo)
	if !ok {
		return kernel.UnchangedOutcome()
	}
	hiFd, ok := kernel.GetValue(proxy, p.hi)
	if !ok {
		return kernel.UnchangedOutcome()
	}

	hiMax := hiFd.Max()
	loMin := loFd.Min()

	newLo := loFd.ConstrainRange(nil, &hiMax)
	newHi := hiFd.ConstrainRange(&loMin, nil)

	if !newLo.IsValid() || !newHi.IsValid() {
		return kernel.FailedOutcome()
	}

	if !newLo.Equal(loFd) {
		kernel.OverwriteVar(proxy, p.lo, newLo)
	}
	if !newHi.Equal(hiFd) {
		kernel.OverwriteVar(proxy, p.hi, newHi)
	}

	// The verdict depends only on whether the final domains are singleton,
	// not on whether this call changed anything: an already-consistent
	// Single/Single pair retires just as much as one that only just
	// collapsed.
	if newLo.IsSingle() || newHi.IsSingle() {
		return kernel.IrrelevantOutcome()
	}
	return kernel.UnchangedOutcome()
}
