package poly

import (
	"hash/fnv"
	"strconv"

	"github.com/pkg/errors"
)

// Obj is one application of a Functor at element type V: a tag plus the
// values occupying its slots, per parameter index. Objects are immutable;
// NewObj copies its input and accessors copy out.
type Obj[V any] struct {
	tag  TagID
	data [][]V
}

// NewObj builds an object of f. data must hold, for every parameter index i,
// exactly f.Slots(tag, i) values.
func NewObj[V any](f *Functor, tag TagID, data [][]V) (Obj[V], error) {
	if !f.validTag(tag) {
		return Obj[V]{}, errors.Errorf("functor %s: no tag with id %d", f.name, tag)
	}
	if len(data) != f.arity {
		return Obj[V]{}, errors.Errorf("functor %s: object of tag %s has %d slot vectors, expected %d", f.name, f.tags[tag].Name, len(data), f.arity)
	}
	copied := make([][]V, f.arity)
	for index := range data {
		if len(data[index]) != f.Slots(tag, index) {
			return Obj[V]{}, errors.Errorf(
				"functor %s: object of tag %s has %d values at index %d, expected %d",
				f.name, f.tags[tag].Name, len(data[index]), index, f.Slots(tag, index),
			)
		}
		copied[index] = append([]V(nil), data[index]...)
	}
	return Obj[V]{tag: tag, data: copied}, nil
}

// MustNewObj is NewObj, panicking on shape mismatches.
func MustNewObj[V any](f *Functor, tag TagID, data [][]V) Obj[V] {
	o, err := NewObj(f, tag, data)
	if err != nil {
		panic(err)
	}
	return o
}

func (o Obj[V]) Tag() TagID { return o.tag }

// SlotValues is the slot vector at one parameter index, in slot order.
func (o Obj[V]) SlotValues(index int) []V {
	return append([]V(nil), o.data[index]...)
}

// Get is the value stored at (index, slot).
func (o Obj[V]) Get(index, slot int) V {
	return o.data[index][slot]
}

// ShapeHash identifies the shape (the tag) of the object: two objects of the
// same functor share a shape iff their ShapeHash values are equal.
func (o Obj[V]) ShapeHash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strconv.Itoa(int(o.tag))))
	return h.Sum64()
}

// Arrow is an index-wise transformation between two applications of the same
// functor: one component per parameter index, applied across all indices at
// once.
type Arrow[V any] []func(V) V

// IdentityArrow is the identity transformation at the given arity.
func IdentityArrow[V any](arity int) Arrow[V] {
	g := make(Arrow[V], arity)
	for i := range g {
		g[i] = func(v V) V { return v }
	}
	return g
}

// ComposeArrows is the composite applying g1 first, then g2, index-wise.
// Both arrows must have the same arity.
func ComposeArrows[V any](g2, g1 Arrow[V]) Arrow[V] {
	if len(g2) != len(g1) {
		panic("poly: composing arrows of different arity")
	}
	g := make(Arrow[V], len(g1))
	for i := range g {
		first, second := g1[i], g2[i]
		g[i] = func(v V) V { return second(first(v)) }
	}
	return g
}

// Map is the structural map of the functor: applies g index-wise to every
// stored value, leaving the tag untouched. Satisfies the functor laws:
// Map(IdentityArrow, o) == o and Map(g2, Map(g1, o)) == Map(ComposeArrows(g2, g1), o).
func Map[V any](g Arrow[V], o Obj[V]) Obj[V] {
	if len(g) != len(o.data) {
		panic("poly: mapping an arrow of wrong arity over an object")
	}
	mapped := make([][]V, len(o.data))
	for index := range o.data {
		mapped[index] = make([]V, len(o.data[index]))
		for slot, v := range o.data[index] {
			mapped[index][slot] = g[index](v)
		}
	}
	return Obj[V]{tag: o.tag, data: mapped}
}

// Equal compares two objects of the same functor for exact equality.
func Equal[V comparable](a, b Obj[V]) bool {
	if a.tag != b.tag || len(a.data) != len(b.data) {
		return false
	}
	for index := range a.data {
		if len(a.data[index]) != len(b.data[index]) {
			return false
		}
		for slot := range a.data[index] {
			if a.data[index][slot] != b.data[index][slot] {
				return false
			}
		}
	}
	return true
}

// Validate checks that o is a well-shaped object of f.
func (f *Functor) Validate(tag TagID, lengths []int) error {
	if !f.validTag(tag) {
		return errors.Errorf("functor %s: no tag with id %d", f.name, tag)
	}
	if len(lengths) != f.arity {
		return errors.Errorf("functor %s: got %d slot vectors, expected %d", f.name, len(lengths), f.arity)
	}
	for index, length := range lengths {
		if length != f.Slots(tag, index) {
			return errors.Errorf(
				"functor %s: tag %s expects %d slots at index %d, got %d",
				f.name, f.tags[tag].Name, f.Slots(tag, index), index, length,
			)
		}
	}
	return nil
}
