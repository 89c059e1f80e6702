// Package qpf implements the shape-description abstraction layer: it lets a
// family of types declare itself representable by a shape description via
// two convertible views, an abstract value and a concrete shape-indexed
// object, and derives structural machinery (map, predicate and relation
// lifting, support sets, uniformity) once, generically, for every
// conforming instance.
package qpf

import (
	"slices"

	"github.com/alexkeizer/qpf4/internal/log"
	"github.com/alexkeizer/qpf4/poly"
	"github.com/alexkeizer/qpf4/util"
	"github.com/hashicorp/go-set/v3"
)

var logger = log.DefaultLogger.With("section", "qpf")

// Obj is a concrete representation of an abstract value: a shape plus the
// values occupying its slots per parameter index. poly.Obj is the
// representation for finite shape descriptions; wtype.Obj is the
// representation for the polynomial tree functor.
//
// SlotValues must be deterministic: the same object always reports its slot
// values in the same order. Two objects of the same description share a
// shape iff their ShapeHash values are equal.
type Obj[V any] interface {
	ShapeHash() uint64
	SlotValues(index int) []V
}

// Instance declares a target family representable by a shape description.
//
// Laws every instance must satisfy (these are preconditions, checked by
// VerifyInstance rather than at runtime; a violating instance is an invalid
// declaration, not bad input):
//
//	round trip:        Abs(Repr(x)) == x
//	map compatibility: Abs(MapObj(g, o)) == Map(g, Abs(o))
//
// From these two alone the derived operations below obtain the identity and
// composition laws for Map, predicate and relation lifting, and support
// sets, for any conforming instance.
//
// Abs and Repr are total. Abs only accepts objects of the instance's own
// shape description; handing it a foreign object is a contract breach and
// panics.
type Instance[V, F any] interface {
	// Arity is the number of parameter indices of the target family.
	Arity() int
	// Map is the structural map the target family is equipped with.
	Map(g poly.Arrow[V], x F) F
	// Abs converts a shape-indexed object to an abstract value.
	Abs(o Obj[V]) F
	// Repr converts an abstract value to its canonical representation.
	Repr(x F) Obj[V]
	// MapObj is the structural map of the underlying shape description.
	MapObj(g poly.Arrow[V], o Obj[V]) Obj[V]
}

// Map is the derived structural map: convert to the representation, map
// there, convert back. By map compatibility it agrees with the instance's
// own Map, and it inherits the identity and composition laws from the
// substrate.
func Map[V, F any](q Instance[V, F], g poly.Arrow[V], x F) F {
	return q.Abs(q.MapObj(g, q.Repr(x)))
}

// Pred is an index-wise predicate: one component per parameter index.
type Pred[V any] []func(V) bool

// Rel is an index-wise binary relation: one component per parameter index.
type Rel[V any] []func(a, b V) bool

// TruePred is the everywhere-true predicate at the given arity.
func TruePred[V any](arity int) Pred[V] {
	p := make(Pred[V], arity)
	for i := range p {
		p[i] = func(V) bool { return true }
	}
	return p
}

// Excluding is the predicate that holds everywhere except at value u of one
// index. It is the discriminating family behind support sets: u is in the
// support of x iff Excluding(u) cannot be lifted to hold of x.
func Excluding[V comparable](arity, index int, u V) Pred[V] {
	p := TruePred[V](arity)
	p[index] = func(v V) bool { return v != u }
	return p
}

// LiftP lifts an index-wise predicate through the abstraction: it holds of
// x iff every value stored in x's canonical representation satisfies the
// predicate at its index.
//
// This is the closed form for uniform instances, where all representations
// of x occupy the same values and checking the canonical one suffices. The
// general existential formulation is LiftPOracle.
func LiftP[V, F any](q Instance[V, F], p Pred[V], x F) bool {
	return slotsSatisfy(q.Arity(), q.Repr(x), p)
}

func slotsSatisfy[V any](arity int, o Obj[V], p Pred[V]) bool {
	if len(p) != arity {
		panic("qpf: lifting a predicate of wrong arity")
	}
	for index := 0; index < arity; index++ {
		for _, v := range o.SlotValues(index) {
			if !p[index](v) {
				return false
			}
		}
	}
	return true
}

// LiftR lifts an index-wise relation through the abstraction: x and y are
// related iff they share one shape with slot values related pairwise. For a
// uniform instance the canonical representations of related values already
// share a shape, so LiftR compares Repr(x) and Repr(y) directly and is
// false on a shape mismatch. The general existential formulation is
// LiftROracle.
func LiftR[V, F any](q Instance[V, F], r Rel[V], x, y F) bool {
	rx, ry := q.Repr(x), q.Repr(y)
	if rx.ShapeHash() != ry.ShapeHash() {
		return false
	}
	return slotsRelated(q.Arity(), rx, ry, r)
}

func slotsRelated[V any](arity int, a, b Obj[V], r Rel[V]) bool {
	if len(r) != arity {
		panic("qpf: lifting a relation of wrong arity")
	}
	for index := 0; index < arity; index++ {
		as, bs := a.SlotValues(index), b.SlotValues(index)
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !r[index](as[i], bs[i]) {
				return false
			}
		}
	}
	return true
}

// Supp is the support set of x at one parameter index: the values present
// in every representation of x. This is the uniform closed form, the image
// of the canonical representation's slot vector; under uniformity it agrees
// with the existential SuppOracle.
func Supp[V comparable, F any](q Instance[V, F], x F, index int) *set.Set[V] {
	return image(q.Repr(x), index)
}

func image[V comparable](o Obj[V], index int) *set.Set[V] {
	vals := o.SlotValues(index)
	return util.SetFromSeq(slices.Values(vals), len(vals))
}
