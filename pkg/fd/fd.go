// Package fd implements the finite-domain value algebra used by the
// domain-specific propagators in package constraints: a domain is either a
// single concrete value or a sorted, de-duplicated slice of candidate
// values, and every narrowing operation collapses or invalidates itself
// rather than mutating a shared slice in place.
package fd

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/gitrdm/fdkanren/pkg/kernel"
)

// Fd is an immutable finite-domain value. The zero Fd is invalid and must
// never be constructed directly; use Single or Values.
type Fd struct {
	single  bool
	value   int
	values  []int // sorted, deduplicated, len >= 1 when valid and !single
	invalid bool
}

// Single builds a domain already narrowed to exactly one value.
func Single(v int) Fd { return Fd{single: true, value: v} }

// Values builds a domain from an arbitrary, possibly unsorted slice of
// candidate values. An empty slice yields an invalid domain. A slice that
// collapses to one distinct value after deduplication yields a Single.
func Values(vs []int) Fd {
	if len(vs) == 0 {
		return Fd{invalid: true}
	}
	sorted := append([]int(nil), vs...)
	sort.Ints(sorted)
	deduped := sorted[:1]
	for _, v := range sorted[1:] {
		if v != deduped[len(deduped)-1] {
			deduped = append(deduped, v)
		}
	}
	if len(deduped) == 1 {
		return Single(deduped[0])
	}
	return Fd{values: deduped}
}

// Invalid returns the canonical invalid/empty domain.
func Invalid() Fd { return Fd{invalid: true} }

// Range builds the domain of every integer in [lo, hi], inclusive.
func Range(lo, hi int) Fd {
	if lo > hi {
		return Invalid()
	}
	vs := make([]int, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		vs = append(vs, v)
	}
	return Values(vs)
}

// IsValid reports whether the domain still admits at least one value.
func (f Fd) IsValid() bool { return !f.invalid && (f.single || len(f.values) > 0) }

// IsSingle reports whether the domain has collapsed to one concrete value.
func (f Fd) IsSingle() bool { return f.single }

// SingleValue returns the domain's sole value and true, iff IsSingle.
func (f Fd) SingleValue() (int, bool) {
	if !f.single {
		return 0, false
	}
	return f.value, true
}

// Values returns the domain's candidate values in ascending order. For a
// Single domain this is a one-element slice; for an invalid domain, nil.
func (f Fd) Values() []int {
	if f.invalid {
		return nil
	}
	if f.single {
		return []int{f.value}
	}
	return f.values
}

// Min and Max return the domain's smallest and largest admissible value.
// Both panic if the domain is invalid; callers must check IsValid first.
func (f Fd) Min() int {
	vs := f.Values()
	if len(vs) == 0 {
		panic("fd: Min of invalid domain")
	}
	return vs[0]
}

func (f Fd) Max() int {
	vs := f.Values()
	if len(vs) == 0 {
		panic("fd: Max of invalid domain")
	}
	return vs[len(vs)-1]
}

func (f Fd) String() string {
	if f.invalid {
		return "fd:{}"
	}
	if f.single {
		return fmt.Sprintf("fd:%d", f.value)
	}
	return fmt.Sprintf("fd:%v", f.values)
}

// Equal reports whether two domains admit exactly the same values.
func (f Fd) Equal(other Fd) bool {
	if f.invalid != other.invalid {
		return false
	}
	if f.invalid {
		return true
	}
	a, b := f.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// UnifyWith implements kernel.Unifiable. Two bound Fd cells are actually
// narrowed via Narrow/Intersect before this is ever consulted; UnifyWith
// exists to satisfy the interface (occurs-check and nested compound terms
// such as a Tuple2[Fd, Fd] still type-assert on Unifiable) and falls back
// to the same non-empty-intersection test Narrow uses.
func (f Fd) UnifyWith(_ *kernel.StateProxy, other any) bool {
	_, ok := f.Narrow(other)
	return ok
}

// Narrow implements kernel.Narrowable: two bound Fd domains unify by
// narrowing to their intersection, not by equality, so that unifying a
// variable already holding Values([1,2,3]) against Single(2) succeeds and
// narrows to Single(2) instead of failing outright.
func (f Fd) Narrow(other any) (any, bool) {
	o, ok := other.(Fd)
	if !ok {
		return nil, false
	}
	n := f.Intersect(o)
	if !n.IsValid() {
		return nil, false
	}
	return n, true
}

// VarIter reports no child variables: Fd is a leaf value for occurs-check
// purposes, never itself embedding a Var.
func (f Fd) VarIter() []kernel.UntypedVar { return nil }

// CanContainType reports false unconditionally: no Fd ever transitively
// embeds a variable.
func (f Fd) CanContainType(map[reflect.Type]bool, reflect.Type) bool { return false }

// Intersect narrows f to the values it shares with other, collapsing to
// Single or Invalid as appropriate.
func (f Fd) Intersect(other Fd) Fd {
	if !f.IsValid() || !other.IsValid() {
		return Invalid()
	}
	a, b := f.Values(), other.Values()
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	if len(out) == 0 {
		return Invalid()
	}
	return Values(out)
}

// RemoveValues returns a domain with every value in remove excluded.
func (f Fd) RemoveValues(remove map[int]bool) Fd {
	if !f.IsValid() {
		return f
	}
	kept := make([]int, 0, len(f.Values()))
	for _, v := range f.Values() {
		if !remove[v] {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return Invalid()
	}
	return Values(kept)
}

// ConstrainRange narrows f's values to those within [min, max] when the
// corresponding bound is non-nil. Values are already sorted, so both
// bounds are applied via binary search rather than a linear scan.
func (f Fd) ConstrainRange(lo, hi *int) Fd {
	if !f.IsValid() {
		return f
	}
	vs := f.Values()
	start, end := 0, len(vs)
	if lo != nil {
		start = sort.SearchInts(vs, *lo)
	}
	if hi != nil {
		end = sort.SearchInts(vs, *hi+1)
	}
	if start >= end {
		return Invalid()
	}
	return Values(append([]int(nil), vs[start:end]...))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
