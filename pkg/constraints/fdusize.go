package constraints

import (
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// FdUsize bridges a finite-domain variable and a plain non-negative int
// variable, keeping the two in lockstep: whichever side narrows first
// propagates to the other. Rebind re-canonicalizes each side exactly once.
type FdUsize struct {
	Fd any
	U  any
}

func (b FdUsize) Build(s *kernel.State) kernel.Propagator {
	return &fdUsizeProp{
		fd: kernel.MakeVarOf[fd.Fd](s, b.Fd),
		u:  kernel.MakeVarOf[int](s, b.U),
	}
}

type fdUsizeProp struct {
	fd kernel.Var[fd.Fd]
	u  kernel.Var[int]
}

func (p *fdUsizeProp) Watch() []kernel.UntypedVar {
	return []kernel.UntypedVar{p.fd.U, p.u.U}
}

func (p *fdUsizeProp) Rebind(s *kernel.State) {
	p.fd = kernel.Var[fd.Fd]{U: s.FollowID(p.fd.U)}
	p.u = kernel.Var[int]{U: s.FollowID(p.u.U)}
}

func (p *fdUsizeProp) Clone() kernel.Propagator {
	cp := *p
	return &cp
}

// Update resolves the bridge as soon as either side pins down a concrete
// integer: directly from the int side, or via the Fd side's singleton.
// Unifying that integer back into both sides narrows a still-multi-valued
// Fd to the singleton (or fails on a non-member) and binds a free int, so
// the constraint always retires in one shot once an integer is known.
func (p *fdUsizeProp) Update(proxy *kernel.StateProxy) kernel.Outcome {
	single, known := 0, false
	if u, ok := kernel.GetValue(proxy, p.u); ok {
		single, known = u, true
	} else if fdVal, ok := kernel.GetValue(proxy, p.fd); ok {
		single, known = fdVal.SingleValue()
	}
	if !known {
		return kernel.UnchangedOutcome()
	}
	if single < 0 {
		return kernel.FailedOutcome()
	}
	kernel.UnifyValue(proxy, p.fd, fd.Single(single))
	kernel.UnifyValue(proxy, p.u, single)
	if !proxy.Ok() {
		return kernel.FailedOutcome()
	}
	return kernel.IrrelevantOutcome()
}
