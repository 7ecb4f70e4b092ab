package kernel

// UnifyValue unifies v against value inside proxy. Propagators use this
// (never a fresh top-level Unify against the State) so every binding they
// make is staged in the proxy they were handed and vanishes along with it
// if their verdict is discarded.
//
// Unlike OverwriteVar, UnifyValue checks an already-bound cell for
// consistency with value rather than silently replacing it; a Narrowable
// cell (fd.Fd) is overwritten with the intersection instead, so unifying a
// multi-value domain against a singleton narrows rather than fails.
func UnifyValue[T any](p *StateProxy, v Var[T], value T) {
	if !p.okFlag {
		return
	}
	id := p.followID(v.U.id)
	ref, ok := p.getRef(id)
	if ok && ref.kind == refExactly {
		if narrowed, valid, used := narrowValues(ref.value, value); used {
			if !valid {
				p.okFlag = false
				return
			}
			p.setOverlay(id, varRef{kind: refExactly, value: narrowed, typ: v.U.typ})
			return
		}
		if !unifyValues(p, ref.value, value) {
			p.okFlag = false
		}
		return
	}
	p.setOverlay(id, varRef{kind: refExactly, value: value, typ: v.U.typ})
}
