package qpf

import (
	"iter"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/alexkeizer/qpf4/util"
	"github.com/alexkeizer/qpf4/wtype"
)

// FixInstance is the fixpoint instance: the family of well-founded trees
// over a shape description, declared as an instance of its own polynomial
// tree functor. The representation objects are wtype.Obj values (skeleton
// plus position lookup); Abs and Repr are the two interconvertible tree
// views, so the round trip is exact by construction. The instance's
// parameter indices are the description's dropped indices.
//
// Trees have a unique representation, so the instance is uniform and its
// support sets collapse to path-value images.
type FixInstance[V any] struct {
	f *poly.Functor
}

var _ Enumerable[int, *wtype.Tree[int]] = &FixInstance[int]{}

func Fix[V any](f *poly.Functor) *FixInstance[V] {
	return &FixInstance[V]{f: f}
}

func (q *FixInstance[V]) Functor() *poly.Functor { return q.f }

func (q *FixInstance[V]) Arity() int { return q.f.LastIndex() }

func (q *FixInstance[V]) Map(g poly.Arrow[V], t *wtype.Tree[V]) *wtype.Tree[V] {
	return wtype.Map(g, t)
}

func (q *FixInstance[V]) Abs(o Obj[V]) *wtype.Tree[V] {
	concrete, ok := o.(wtype.Obj[V])
	if !ok {
		panic("qpf: fixpoint instance handed an object of a foreign description")
	}
	return wtype.MustFromObj(concrete)
}

func (q *FixInstance[V]) Repr(t *wtype.Tree[V]) Obj[V] { return t.AsObj() }

func (q *FixInstance[V]) MapObj(g poly.Arrow[V], o Obj[V]) Obj[V] {
	concrete, ok := o.(wtype.Obj[V])
	if !ok {
		panic("qpf: fixpoint instance handed an object of a foreign description")
	}
	return concrete.Map(g)
}

func (q *FixInstance[V]) Representations(t *wtype.Tree[V]) iter.Seq[Obj[V]] {
	return util.SingleIter[Obj[V]](t.AsObj())
}
