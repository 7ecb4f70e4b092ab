package kernel

import "reflect"

// Tuple2 through Tuple5 are generic structural terms whose fields may each
// independently hold a variable or a bound value. Each arity gives
// UnifyWith, VarIter, and CanContainType the same pairwise treatment.

// Tuple2 pairs two typed variables.
type Tuple2[A, B any] struct {
	First  Var[A]
	Second Var[B]
}

// NewTuple2 builds a Tuple2 from value-or-variable arguments, lowering each
// through MakeVarOf.
func NewTuple2[A, B any](s *State, a, b any) Tuple2[A, B] {
	return Tuple2[A, B]{First: MakeVarOf[A](s, a), Second: MakeVarOf[B](s, b)}
}

func (t Tuple2[A, B]) UnifyWith(proxy *StateProxy, other any) bool {
	o, ok := other.(Tuple2[A, B])
	if !ok {
		return false
	}
	proxy.UnifyVars(t.First.U, o.First.U)
	proxy.UnifyVars(t.Second.U, o.Second.U)
	return proxy.Ok()
}

func (t Tuple2[A, B]) VarIter() []UntypedVar {
	return []UntypedVar{t.First.U, t.Second.U}
}

func (t Tuple2[A, B]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(t)
	if seen[self] {
		return false
	}
	seen = extendSeen(seen, self)
	return canContainTypeSeen(seen, typeOf[A](), needle) || canContainTypeSeen(seen, typeOf[B](), needle)
}

// Tuple3 holds three typed variables.
type Tuple3[A, B, C any] struct {
	First  Var[A]
	Second Var[B]
	Third  Var[C]
}

func NewTuple3[A, B, C any](s *State, a, b, c any) Tuple3[A, B, C] {
	return Tuple3[A, B, C]{First: MakeVarOf[A](s, a), Second: MakeVarOf[B](s, b), Third: MakeVarOf[C](s, c)}
}

func (t Tuple3[A, B, C]) UnifyWith(proxy *StateProxy, other any) bool {
	o, ok := other.(Tuple3[A, B, C])
	if !ok {
		return false
	}
	proxy.UnifyVars(t.First.U, o.First.U)
	proxy.UnifyVars(t.Second.U, o.Second.U)
	proxy.UnifyVars(t.Third.U, o.Third.U)
	return proxy.Ok()
}

func (t Tuple3[A, B, C]) VarIter() []UntypedVar {
	return []UntypedVar{t.First.U, t.Second.U, t.Third.U}
}

func (t Tuple3[A, B, C]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(t)
	if seen[self] {
		return false
	}
	seen = extendSeen(seen, self)
	return canContainTypeSeen(seen, typeOf[A](), needle) ||
		canContainTypeSeen(seen, typeOf[B](), needle) ||
		canContainTypeSeen(seen, typeOf[C](), needle)
}

// Tuple4 holds four typed variables.
type Tuple4[A, B, C, D any] struct {
	First  Var[A]
	Second Var[B]
	Third  Var[C]
	Fourth Var[D]
}

func NewTuple4[A, B, C, D any](s *State, a, b, c, d any) Tuple4[A, B, C, D] {
	return Tuple4[A, B, C, D]{
		First: MakeVarOf[A](s, a), Second: MakeVarOf[B](s, b),
		Third: MakeVarOf[C](s, c), Fourth: MakeVarOf[D](s, d),
	}
}

func (t Tuple4[A, B, C, D]) UnifyWith(proxy *StateProxy, other any) bool {
	o, ok := other.(Tuple4[A, B, C, D])
	if !ok {
		return false
	}
	proxy.UnifyVars(t.First.U, o.First.U)
	proxy.UnifyVars(t.Second.U, o.Second.U)
	proxy.UnifyVars(t.Third.U, o.Third.U)
	proxy.UnifyVars(t.Fourth.U, o.Fourth.U)
	return proxy.Ok()
}

func (t Tuple4[A, B, C, D]) VarIter() []UntypedVar {
	return []UntypedVar{t.First.U, t.Second.U, t.Third.U, t.Fourth.U}
}

func (t Tuple4[A, B, C, D]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(t)
	if seen[self] {
		return false
	}
	seen = extendSeen(seen, self)
	return canContainTypeSeen(seen, typeOf[A](), needle) ||
		canContainTypeSeen(seen, typeOf[B](), needle) ||
		canContainTypeSeen(seen, typeOf[C](), needle) ||
		canContainTypeSeen(seen, typeOf[D](), needle)
}

// Tuple5 holds five typed variables.
type Tuple5[A, B, C, D, E any] struct {
	First  Var[A]
	Second Var[B]
	Third  Var[C]
	Fourth Var[D]
	Fifth  Var[E]
}

func NewTuple5[A, B, C, D, E any](s *State, a, b, c, d, e any) Tuple5[A, B, C, D, E] {
	return Tuple5[A, B, C, D, E]{
		First: MakeVarOf[A](s, a), Second: MakeVarOf[B](s, b),
		Third: MakeVarOf[C](s, c), Fourth: MakeVarOf[D](s, d),
		Fifth: MakeVarOf[E](s, e),
	}
}

func (t Tuple5[A, B, C, D, E]) UnifyWith(proxy *StateProxy, other any) bool {
	o, ok := other.(Tuple5[A, B, C, D, E])
	if !ok {
		return false
	}
	proxy.UnifyVars(t.First.U, o.First.U)
	proxy.UnifyVars(t.Second.U, o.Second.U)
	proxy.UnifyVars(t.Third.U, o.Third.U)
	proxy.UnifyVars(t.Fourth.U, o.Fourth.U)
	proxy.UnifyVars(t.Fifth.U, o.Fifth.U)
	return proxy.Ok()
}

func (t Tuple5[A, B, C, D, E]) VarIter() []UntypedVar {
	return []UntypedVar{t.First.U, t.Second.U, t.Third.U, t.Fourth.U, t.Fifth.U}
}

func (t Tuple5[A, B, C, D, E]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(t)
	if seen[self] {
		return false
	}
	seen = extendSeen(seen, self)
	return canContainTypeSeen(seen, typeOf[A](), needle) ||
		canContainTypeSeen(seen, typeOf[B](), needle) ||
		canContainTypeSeen(seen, typeOf[C](), needle) ||
		canContainTypeSeen(seen, typeOf[D](), needle) ||
		canContainTypeSeen(seen, typeOf[E](), needle)
}

// canContainTypeSeen is canContainType but threading an already-extended
// seen set through to the child's own CanContainType, so a cycle through
// several distinct compound types terminates rather than recursing forever.
func canContainTypeSeen(seen map[reflect.Type]bool, childType, needle reflect.Type) bool {
	if childType == nil || needle == nil {
		return childType == needle
	}
	if childType == needle {
		return true
	}
	if seen[childType] {
		return false
	}
	zero := reflect.New(childType).Elem().Interface()
	if u, ok := zero.(Unifiable); ok {
		return u.CanContainType(seen, needle)
	}
	return false
}

// Option mirrors Rust's Option<Var<A>>: either empty (None) or holding
// exactly one variable (Some).
type Option[A any] struct {
	some  bool
	value Var[A]
}

// Some builds a populated Option.
func Some[A any](v Var[A]) Option[A] { return Option[A]{some: true, value: v} }

// None builds an empty Option.
func None[A any]() Option[A] { return Option[A]{} }

// IsSome reports whether the option holds a variable.
func (o Option[A]) IsSome() bool { return o.some }

// Value returns the held variable and true, or the zero Var and false.
func (o Option[A]) Value() (Var[A], bool) { return o.value, o.some }

func (o Option[A]) UnifyWith(proxy *StateProxy, other any) bool {
	t, ok := other.(Option[A])
	if !ok {
		return false
	}
	if o.some != t.some {
		return false
	}
	if !o.some {
		return true
	}
	proxy.UnifyVars(o.value.U, t.value.U)
	return proxy.Ok()
}

func (o Option[A]) VarIter() []UntypedVar {
	if !o.some {
		return nil
	}
	return []UntypedVar{o.value.U}
}

func (o Option[A]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(o)
	if seen[self] {
		return false
	}
	return canContainTypeSeen(extendSeen(seen, self), typeOf[A](), needle)
}

// Result mirrors Rust's Result<Var<A>, Var<B>>: exactly one of Ok/Err holds.
type Result[A, B any] struct {
	ok     bool
	okVal  Var[A]
	errVal Var[B]
}

// Ok builds a Result in the Ok state.
func Ok[A, B any](v Var[A]) Result[A, B] { return Result[A, B]{ok: true, okVal: v} }

// Err builds a Result in the Err state.
func Err[A, B any](v Var[B]) Result[A, B] { return Result[A, B]{errVal: v} }

// IsOk reports whether the result is in the Ok state.
func (r Result[A, B]) IsOk() bool { return r.ok }

// OkValue returns the Ok variable and true, or zero/false if this is Err.
func (r Result[A, B]) OkValue() (Var[A], bool) { return r.okVal, r.ok }

// ErrValue returns the Err variable and true, or zero/false if this is Ok.
func (r Result[A, B]) ErrValue() (Var[B], bool) { return r.errVal, !r.ok }

func (r Result[A, B]) UnifyWith(proxy *StateProxy, other any) bool {
	t, ok := other.(Result[A, B])
	if !ok {
		return false
	}
	if r.ok != t.ok {
		return false
	}
	if r.ok {
		proxy.UnifyVars(r.okVal.U, t.okVal.U)
	} else {
		proxy.UnifyVars(r.errVal.U, t.errVal.U)
	}
	return proxy.Ok()
}

func (r Result[A, B]) VarIter() []UntypedVar {
	if r.ok {
		return []UntypedVar{r.okVal.U}
	}
	return []UntypedVar{r.errVal.U}
}

func (r Result[A, B]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(r)
	if seen[self] {
		return false
	}
	seen = extendSeen(seen, self)
	return canContainTypeSeen(seen, typeOf[A](), needle) || canContainTypeSeen(seen, typeOf[B](), needle)
}

// List is a cons-style singly linked list of Var[A], unified element by
// element: same length, each element pairwise unified.
type List[A any] struct {
	head  Var[A]
	tail  *List[A]
	isNil bool
}

// Nil builds the empty list.
func Nil[A any]() List[A] { return List[A]{isNil: true} }

// Cons prepends head onto tail.
func Cons[A any](head Var[A], tail List[A]) List[A] {
	return List[A]{head: head, tail: &tail}
}

// IsNil reports whether the list is empty.
func (l List[A]) IsNil() bool { return l.isNil }

// Head and Tail decompose a non-empty list; callers must check IsNil first.
func (l List[A]) Head() Var[A] { return l.head }
func (l List[A]) Tail() List[A] {
	if l.tail == nil {
		return Nil[A]()
	}
	return *l.tail
}

func (l List[A]) UnifyWith(proxy *StateProxy, other any) bool {
	t, ok := other.(List[A])
	if !ok {
		return false
	}
	if l.isNil != t.isNil {
		return false
	}
	if l.isNil {
		return true
	}
	proxy.UnifyVars(l.head.U, t.head.U)
	if !proxy.Ok() {
		return false
	}
	return l.Tail().UnifyWith(proxy, t.Tail())
}

func (l List[A]) VarIter() []UntypedVar {
	if l.isNil {
		return nil
	}
	out := []UntypedVar{l.head.U}
	return append(out, l.Tail().VarIter()...)
}

func (l List[A]) CanContainType(seen map[reflect.Type]bool, needle reflect.Type) bool {
	self := reflect.TypeOf(l)
	if seen[self] {
		return false
	}
	return canContainTypeSeen(extendSeen(seen, self), typeOf[A](), needle)
}
