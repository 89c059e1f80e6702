package wtype

import (
	"github.com/alexkeizer/qpf4/poly"
)

// Step is one layer of a fold: it receives the tag, the stored values, the
// child subtrees, and the already-computed fold results, one per child slot.
type Step[V, R any] func(tag poly.TagID, dropped [][]V, children []*Tree[V], sub []R) R

// Rec is the fold (recursion) operator. The defining equation holds by
// construction: folding Mk(tag, dropped, children) computes
// step(tag, dropped, children, foldedChildren), with foldedChildren the
// folds of each child. Termination is guaranteed by well-foundedness: every
// descent strictly shrinks the tree.
//
// A tag with no last-index slots is the base case, reached with sub empty.
func Rec[V, R any](t *Tree[V], step Step[V, R]) R {
	sub := make([]R, len(t.children))
	for slot, child := range t.children {
		sub[slot] = Rec(child, step)
	}
	return step(t.tag, t.copyDropped(), append([]*Tree[V](nil), t.children...), sub)
}

// Induct is structural induction, derived from Rec with a boolean motive:
// to establish a property for every tree it suffices to establish it for
// Mk(tag, dropped, children) under the hypothesis that it already holds for
// every child.
func Induct[V any](t *Tree[V], step Step[V, bool]) bool {
	return Rec(t, step)
}

// Map applies an index-wise transformation to every stored value of the
// tree, at every node, leaving the shape untouched. g must have one
// component per dropped index (arity f.LastIndex()).
//
// Map satisfies the functor laws, and commutes with Mk: mapping
// Mk(tag, dropped, children) equals Mk of the tag, the transformed dropped
// values, and the mapped children.
func Map[V any](g poly.Arrow[V], t *Tree[V]) *Tree[V] {
	if len(g) != t.f.LastIndex() {
		panic("wtype: mapping an arrow of wrong arity over a tree")
	}
	dropped := make([][]V, len(t.dropped))
	for index := range t.dropped {
		dropped[index] = make([]V, len(t.dropped[index]))
		for slot, v := range t.dropped[index] {
			dropped[index][slot] = g[index](v)
		}
	}
	children := make([]*Tree[V], len(t.children))
	for slot, child := range t.children {
		children[slot] = Map(g, child)
	}
	return &Tree[V]{f: t.f, tag: t.tag, dropped: dropped, children: children}
}
