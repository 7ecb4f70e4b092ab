package constraints

import (
	"github.com/gitrdm/fdkanren/pkg/fd"
	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// AllDiff constrains every variable in Vars to a pairwise distinct value.
// It repeatedly extracts any variable already narrowed to a single value,
// removes that value from every other variable's domain, and loops until
// no new singleton appears in a pass. A duplicate singleton is an
// immediate failure; the propagator reports Irrelevant once every variable
// has collapsed to a single value.
type AllDiff struct {
	Vars []any
}

func (b AllDiff) Build(s *kernel.State) kernel.Propagator {
	vars := make([]kernel.Var[fd.Fd], len(b.Vars))
	for i, v := range b.Vars {
		vars[i] = kernel.MakeVarOf[fd.Fd](s, v)
	}
	return &allDiffProp{vars: vars}
}

type allDiffProp struct {
	vars []kernel.Var[fd.Fd]
}

func (p *allDiffProp) Watch() []kernel.UntypedVar {
	out := make([]kernel.UntypedVar, len(p.vars))
	for i, v := range p.vars {
		out[i] = v.U
	}
	return out
}

func (p *allDiffProp) Rebind(s *kernel.State) {
	for i, v := range p.vars {
		p.vars[i] = kernel.Var[fd.Fd]{U: s.FollowID(v.U)}
	}
}

func (p *allDiffProp) Clone() kernel.Propagator {
	vars := make([]kernel.Var[fd.Fd], len(p.vars))
	copy(vars, p.vars)
	return &allDiffProp{vars: vars}
}

// Update runs removeSingles to a local fixed point, overwriting every
// variable whose domain shrank: Failed on a duplicate singleton,
// Irrelevant once every variable has collapsed to a single value, else
// Unchanged (the narrowing itself still commits via the overwrites; no
// replacement propagator is needed since the parameter list never changes
// shape).
func (p *allDiffProp) Update(proxy *kernel.StateProxy) kernel.Outcome {
	// Only a newly singleton domain gives this constraint anything to
	// remove; a watched variable that merely shrank to a smaller
	// multi-value domain can be ignored until it collapses.
	woke := false
	for _, v := range p.vars {
		if d, ok := kernel.GetChangedValue(proxy, v); ok {
			if _, isSingle := d.SingleValue(); isSingle {
				woke = true
				break
			}
		}
	}
	if !woke {
		return kernel.UnchangedOutcome()
	}

	bound := make([]bool, len(p.vars))
	domains := make([]fd.Fd, len(p.vars))
	for i, v := range p.vars {
		d, ok := kernel.GetValue(proxy, v)
		bound[i] = ok
		if ok {
			domains[i] = d
		}
	}

	changed, failed := removeSingles(domains, bound)
	if failed {
		return kernel.FailedOutcome()
	}

	for i := range p.vars {
		if changed[i] {
			kernel.OverwriteVar(proxy, p.vars[i], domains[i])
		}
	}

	allSingle := true
	for i := range p.vars {
		if !bound[i] && !changed[i] {
			allSingle = false
			continue
		}
		if !domains[i].IsSingle() {
			allSingle = false
		}
	}
	if allSingle {
		return kernel.IrrelevantOutcome()
	}
	return kernel.UnchangedOutcome()
}

// removeSingles collects every domain already narrowed to one value into a
// set, failing immediately if two distinct variables already share a
// singleton, then removes those values from every other bound domain
// (skipping the singleton's own contributor). Newly created singletons
// from that removal feed back into the next pass. It returns, per index,
// whether that domain was narrowed, and whether a duplicate singleton was
// found.
func removeSingles(domains []fd.Fd, bound []bool) ([]bool, bool) {
	changed := make([]bool, len(domains))
	for {
		owner := map[int]int{}
		for i, d := range domains {
			if !bound[i] {
				continue
			}
			v, ok := d.SingleValue()
			if !ok {
				continue
			}
			if _, dup := owner[v]; dup {
				return changed, true
			}
			owner[v] = i
		}
		if len(owner) == 0 {
			return changed, false
		}
		remove := make(map[int]bool, len(owner))
		for v := range owner {
			remove[v] = true
		}
		progressed := false
		for i, d := range domains {
			if !bound[i] {
				continue
			}
			if v, ok := d.SingleValue(); ok && owner[v] == i {
				continue
			}
			narrowed := d.RemoveValues(remove)
			if !narrowed.IsValid() {
				return changed, true
			}
			if !narrowed.Equal(d) {
				domains[i] = narrowed
				changed[i] = true
				progressed = true
			}
		}
		if !progressed {
			return changed, false
		}
	}
}
