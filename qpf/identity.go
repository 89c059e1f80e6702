package qpf

import (
	"iter"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/alexkeizer/qpf4/util"
)

// IdentityInstance is the base instance: any shape description represents
// itself, with Abs and Repr both the identity. It satisfies the two laws
// trivially, is uniform (every value has exactly one representation), and
// seeds every composite construction.
type IdentityInstance[V any] struct {
	f *poly.Functor
}

var _ Enumerable[int, poly.Obj[int]] = &IdentityInstance[int]{}

func Identity[V any](f *poly.Functor) *IdentityInstance[V] {
	return &IdentityInstance[V]{f: f}
}

func (q *IdentityInstance[V]) Functor() *poly.Functor { return q.f }

func (q *IdentityInstance[V]) Arity() int { return q.f.Arity() }

func (q *IdentityInstance[V]) Map(g poly.Arrow[V], x poly.Obj[V]) poly.Obj[V] {
	return poly.Map(g, x)
}

func (q *IdentityInstance[V]) Abs(o Obj[V]) poly.Obj[V] {
	concrete, ok := o.(poly.Obj[V])
	if !ok {
		panic("qpf: identity instance handed an object of a foreign description")
	}
	return concrete
}

func (q *IdentityInstance[V]) Repr(x poly.Obj[V]) Obj[V] { return x }

func (q *IdentityInstance[V]) MapObj(g poly.Arrow[V], o Obj[V]) Obj[V] {
	return poly.Map(g, q.Abs(o))
}

func (q *IdentityInstance[V]) Representations(x poly.Obj[V]) iter.Seq[Obj[V]] {
	return util.SingleIter[Obj[V]](x)
}
