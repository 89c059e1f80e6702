package wtype

import (
	"iter"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/pkg/errors"
)

// Tree is a well-founded tree over a shape description at element type V:
// a tag, a value of V for every dropped slot of the tag, and a full subtree
// for every last-index slot. This is the inductive view; AsObj exposes the
// equivalent polynomial view (skeleton plus position lookup) and the two are
// interconvertible.
type Tree[V any] struct {
	f        *poly.Functor
	tag      poly.TagID
	dropped  [][]V
	children []*Tree[V]
}

// Mk builds a tree of f with the given top tag. dropped must hold, for every
// dropped index i, exactly f.Slots(tag, i) values; children must hold one
// subtree of the same functor per last-index slot. Construction is total on
// well-shaped input; a shape mismatch is a caller contract breach reported
// as an error.
func Mk[V any](f *poly.Functor, tag poly.TagID, dropped [][]V, children []*Tree[V]) (*Tree[V], error) {
	if tag < 0 || int(tag) >= f.NumTags() {
		return nil, errors.Errorf("functor %s: no tag with id %d", f.Name(), tag)
	}
	last := f.LastIndex()
	if len(dropped) != last {
		return nil, errors.Errorf("functor %s: got %d dropped-data vectors, expected %d", f.Name(), len(dropped), last)
	}
	copied := make([][]V, last)
	for index := range dropped {
		if len(dropped[index]) != f.Slots(tag, index) {
			return nil, errors.Errorf(
				"functor %s: tag %s expects %d values at index %d, got %d",
				f.Name(), f.Tag(tag).Name, f.Slots(tag, index), index, len(dropped[index]),
			)
		}
		copied[index] = append([]V(nil), dropped[index]...)
	}
	if want := f.Slots(tag, last); len(children) != want {
		return nil, errors.Errorf("functor %s: tag %s expects %d children, got %d", f.Name(), f.Tag(tag).Name, want, len(children))
	}
	for slot, child := range children {
		if child == nil {
			return nil, errors.Errorf("functor %s: nil child at slot %d", f.Name(), slot)
		}
		if child.f != f {
			return nil, errors.Errorf("functor %s: child at slot %d belongs to functor %s", f.Name(), slot, child.f.Name())
		}
	}
	return &Tree[V]{
		f:        f,
		tag:      tag,
		dropped:  copied,
		children: append([]*Tree[V](nil), children...),
	}, nil
}

// MustMk is Mk, panicking on shape mismatches.
func MustMk[V any](f *poly.Functor, tag poly.TagID, dropped [][]V, children []*Tree[V]) *Tree[V] {
	t, err := Mk(f, tag, dropped, children)
	if err != nil {
		panic(err)
	}
	return t
}

// Leaf builds a tree from a tag with no last-index slots and no dropped
// slots. It is Mk specialised to the base case.
func Leaf[V any](f *poly.Functor, tag poly.TagID) (*Tree[V], error) {
	dropped := make([][]V, f.LastIndex())
	for index := range dropped {
		dropped[index] = []V{}
	}
	return Mk(f, tag, dropped, nil)
}

func (t *Tree[V]) Functor() *poly.Functor { return t.f }

func (t *Tree[V]) Tag() poly.TagID { return t.tag }

// Dest is the exact decomposition of the tree into the components Mk was
// given: Mk after Dest rebuilds an equal tree, Dest after Mk returns the
// components unchanged. This is the governing invariant of the
// representation.
func (t *Tree[V]) Dest() (poly.TagID, [][]V, []*Tree[V]) {
	return t.tag, t.copyDropped(), append([]*Tree[V](nil), t.children...)
}

func (t *Tree[V]) copyDropped() [][]V {
	dropped := make([][]V, len(t.dropped))
	for index := range t.dropped {
		dropped[index] = append([]V(nil), t.dropped[index]...)
	}
	return dropped
}

// Dropped is the stored-value vector at one dropped index.
func (t *Tree[V]) Dropped(index int) []V {
	return append([]V(nil), t.dropped[index]...)
}

// DroppedAt is the value stored at (index, slot) of the top tag.
func (t *Tree[V]) DroppedAt(index, slot int) V {
	return t.dropped[index][slot]
}

func (t *Tree[V]) NumChildren() int { return len(t.children) }

func (t *Tree[V]) Child(slot int) *Tree[V] { return t.children[slot] }

func (t *Tree[V]) Children() iter.Seq2[int, *Tree[V]] {
	return func(yield func(int, *Tree[V]) bool) {
		for slot, child := range t.children {
			if !yield(slot, child) {
				return
			}
		}
	}
}

// Skeleton is the tree with all stored values dropped.
func (t *Tree[V]) Skeleton() *Skeleton {
	children := make([]*Skeleton, len(t.children))
	for slot, child := range t.children {
		children[slot] = child.Skeleton()
	}
	return &Skeleton{tag: t.tag, children: children}
}

// At resolves a position by replaying its child steps against the tree and
// reading the addressed dropped slot.
func (t *Tree[V]) At(p Path) (V, error) {
	node := t
	for _, step := range p.steps {
		if step < 0 || step >= len(node.children) {
			var zero V
			return zero, errors.Errorf("path %s: no child at step %d", p, step)
		}
		node = node.children[step]
	}
	if p.index < 0 || p.index >= len(node.dropped) || p.slot < 0 || p.slot >= len(node.dropped[p.index]) {
		var zero V
		return zero, errors.Errorf("path %s: no slot %d at index %d under tag %s", p, p.slot, p.index, t.f.Tag(node.tag).Name)
	}
	return node.dropped[p.index][p.slot], nil
}

// Equal compares two trees of the same functor for exact structural and
// stored-value equality.
func Equal[V comparable](a, b *Tree[V]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.tag != b.tag || len(a.children) != len(b.children) {
		return false
	}
	for index := range a.dropped {
		if len(a.dropped[index]) != len(b.dropped[index]) {
			return false
		}
		for slot := range a.dropped[index] {
			if a.dropped[index][slot] != b.dropped[index][slot] {
				return false
			}
		}
	}
	for slot, child := range a.children {
		if !Equal(child, b.children[slot]) {
			return false
		}
	}
	return true
}
