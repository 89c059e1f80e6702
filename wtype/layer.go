package wtype

import (
	"github.com/alexkeizer/qpf4/poly"
)

// Layer is one application of the shape description to (stored data,
// subtrees): the components of a tree before they are tied into the
// recursive knot. It witnesses that the tree type is a fixpoint: Tree is
// isomorphic to one layer of the description applied to (V, Tree).
type Layer[V any] struct {
	Tag     poly.TagID
	Dropped [][]V
	Sub     []*Tree[V]
}

// FromLayer ties one layer into a tree. Round trip with Tree.Layer is
// exact: destructing a tree built from a layer returns the original
// components.
func FromLayer[V any](f *poly.Functor, l Layer[V]) (*Tree[V], error) {
	return Mk(f, l.Tag, l.Dropped, l.Sub)
}

// MustFromLayer is FromLayer, panicking on shape mismatches.
func MustFromLayer[V any](f *poly.Functor, l Layer[V]) *Tree[V] {
	return MustMk(f, l.Tag, l.Dropped, l.Sub)
}

// Layer unties the top of the tree into one polynomial layer.
func (t *Tree[V]) Layer() Layer[V] {
	tag, dropped, children := t.Dest()
	return Layer[V]{Tag: tag, Dropped: dropped, Sub: children}
}

// MapLayer applies an index-wise transformation to one layer: g transforms
// the stored values of the layer itself and every subtree recursively. It
// commutes with FromLayer the same way Map commutes with Mk.
func MapLayer[V any](g poly.Arrow[V], l Layer[V]) Layer[V] {
	dropped := make([][]V, len(l.Dropped))
	for index := range l.Dropped {
		dropped[index] = make([]V, len(l.Dropped[index]))
		for slot, v := range l.Dropped[index] {
			dropped[index][slot] = g[index](v)
		}
	}
	sub := make([]*Tree[V], len(l.Sub))
	for slot, child := range l.Sub {
		sub[slot] = Map(g, child)
	}
	return Layer[V]{Tag: l.Tag, Dropped: dropped, Sub: sub}
}
