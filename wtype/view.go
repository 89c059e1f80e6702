package wtype

import (
	"iter"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/alexkeizer/qpf4/util"
	"github.com/pkg/errors"
)

// PathsOf enumerates every position inside a skeleton, in a fixed order:
// the root positions of the node first (dropped indices ascending, slots
// ascending within each index), then the positions of each child subtree in
// slot order. The enumeration is finite because skeletons are.
//
// This order is the contract between the two tree views: Obj stores its
// slot values in it, and FromObj consumes them in it.
func PathsOf(f *poly.Functor, s *Skeleton) iter.Seq[Path] {
	seqs := make([]iter.Seq[Path], 0, 1+len(s.children))
	seqs = append(seqs, rootPaths(f, s))
	for slot, child := range s.children {
		slot, child := slot, child
		seqs = append(seqs, util.MapIter(PathsOf(f, child), func(p Path) Path {
			return Child(slot, p)
		}))
	}
	return util.ConcatIter(seqs...)
}

func rootPaths(f *poly.Functor, s *Skeleton) iter.Seq[Path] {
	return func(yield func(Path) bool) {
		for index := 0; index < f.LastIndex(); index++ {
			for slot := range f.SlotSeq(s.tag, index) {
				if !yield(Root(index, slot)) {
					return
				}
			}
		}
	}
}

// CountPaths is the number of positions at one dropped index inside a
// skeleton.
func CountPaths(f *poly.Functor, s *Skeleton, index int) int {
	count := f.Slots(s.tag, index)
	for _, child := range s.children {
		count += CountPaths(f, child, index)
	}
	return count
}

// Paths enumerates every position of the tree.
func (t *Tree[V]) Paths() iter.Seq[Path] {
	return PathsOf(t.f, t.Skeleton())
}

// Obj is the polynomial view of a tree: an object of the polynomial tree
// functor, whose tags are skeletons and whose slot sets are the position
// family. It pairs a skeleton with the values occupying its positions, per
// dropped index, in PathsOf order.
type Obj[V any] struct {
	f        *poly.Functor
	skel     *Skeleton
	perIndex [][]V
}

// NewObj builds a polynomial-view object. perIndex must hold, for every
// dropped index i, exactly CountPaths(f, skel, i) values, in PathsOf order.
func NewObj[V any](f *poly.Functor, skel *Skeleton, perIndex [][]V) (Obj[V], error) {
	if skel == nil {
		return Obj[V]{}, errors.Errorf("functor %s: nil skeleton", f.Name())
	}
	if len(perIndex) != f.LastIndex() {
		return Obj[V]{}, errors.Errorf("functor %s: got %d position vectors, expected %d", f.Name(), len(perIndex), f.LastIndex())
	}
	copied := make([][]V, len(perIndex))
	for index := range perIndex {
		if want := CountPaths(f, skel, index); len(perIndex[index]) != want {
			return Obj[V]{}, errors.Errorf(
				"functor %s: skeleton %s has %d positions at index %d, got %d values",
				f.Name(), skel, want, index, len(perIndex[index]),
			)
		}
		copied[index] = append([]V(nil), perIndex[index]...)
	}
	return Obj[V]{f: f, skel: skel, perIndex: copied}, nil
}

func (o Obj[V]) Functor() *poly.Functor { return o.f }

func (o Obj[V]) Skeleton() *Skeleton { return o.skel }

// ShapeHash identifies the shape of the object, which for the polynomial
// tree functor is the whole skeleton.
func (o Obj[V]) ShapeHash() uint64 { return o.skel.Hash() }

// SlotValues is the vector of values at every position of one dropped
// index, in PathsOf order.
func (o Obj[V]) SlotValues(index int) []V {
	return append([]V(nil), o.perIndex[index]...)
}

// At resolves one position of the object.
func (o Obj[V]) At(p Path) (V, error) {
	if !p.ValidIn(o.f, o.skel) {
		var zero V
		return zero, errors.Errorf("path %s: not a position of skeleton %s", p, o.skel)
	}
	return o.perIndex[p.index][pathOffset(o.f, o.skel, p)], nil
}

// pathOffset is the rank of a valid path among the paths of its index, in
// PathsOf order.
func pathOffset(f *poly.Functor, s *Skeleton, p Path) int {
	if p.Depth() == 0 {
		return p.slot
	}
	offset := f.Slots(s.tag, p.index)
	step := p.steps[0]
	for slot := 0; slot < step; slot++ {
		offset += CountPaths(f, s.children[slot], p.index)
	}
	return offset + pathOffset(f, s.children[step], p.Inner())
}

// Map applies an index-wise transformation to every position value, leaving
// the skeleton untouched. This is the structural map of the polynomial tree
// functor.
func (o Obj[V]) Map(g poly.Arrow[V]) Obj[V] {
	if len(g) != o.f.LastIndex() {
		panic("wtype: mapping an arrow of wrong arity over a polynomial-view object")
	}
	mapped := make([][]V, len(o.perIndex))
	for index := range o.perIndex {
		mapped[index] = make([]V, len(o.perIndex[index]))
		for i, v := range o.perIndex[index] {
			mapped[index][i] = g[index](v)
		}
	}
	return Obj[V]{f: o.f, skel: o.skel, perIndex: mapped}
}

// AsObj converts the tree to its polynomial view. The conversion is exact:
// FromObj(t.AsObj()) rebuilds an equal tree.
func (t *Tree[V]) AsObj() Obj[V] {
	perIndex := make([][]V, t.f.LastIndex())
	for index := range perIndex {
		perIndex[index] = make([]V, 0, CountPaths(t.f, t.Skeleton(), index))
	}
	t.collectPreorder(perIndex)
	return Obj[V]{f: t.f, skel: t.Skeleton(), perIndex: perIndex}
}

func (t *Tree[V]) collectPreorder(perIndex [][]V) {
	for index := range t.dropped {
		perIndex[index] = append(perIndex[index], t.dropped[index]...)
	}
	for _, child := range t.children {
		child.collectPreorder(perIndex)
	}
}

// FromObj converts a polynomial-view object back to the inductive view.
func FromObj[V any](o Obj[V]) (*Tree[V], error) {
	cursors := make([]int, len(o.perIndex))
	t, err := buildFromObj(o.f, o.skel, o.perIndex, cursors)
	if err != nil {
		return nil, err
	}
	for index, cursor := range cursors {
		if cursor != len(o.perIndex[index]) {
			return nil, errors.Errorf(
				"functor %s: %d leftover values at index %d after rebuilding %s",
				o.f.Name(), len(o.perIndex[index])-cursor, index, o.skel,
			)
		}
	}
	return t, nil
}

// MustFromObj is FromObj, panicking on malformed objects. Objects built by
// NewObj or AsObj are always well-formed.
func MustFromObj[V any](o Obj[V]) *Tree[V] {
	t, err := FromObj(o)
	if err != nil {
		panic(err)
	}
	return t
}

func buildFromObj[V any](f *poly.Functor, s *Skeleton, perIndex [][]V, cursors []int) (*Tree[V], error) {
	dropped := make([][]V, f.LastIndex())
	for index := range dropped {
		want := f.Slots(s.tag, index)
		if cursors[index]+want > len(perIndex[index]) {
			return nil, errors.Errorf("functor %s: ran out of values at index %d while rebuilding %s", f.Name(), index, s)
		}
		dropped[index] = append([]V(nil), perIndex[index][cursors[index]:cursors[index]+want]...)
		cursors[index] += want
	}
	children := make([]*Tree[V], len(s.children))
	for slot, child := range s.children {
		built, err := buildFromObj(f, child, perIndex, cursors)
		if err != nil {
			return nil, err
		}
		children[slot] = built
	}
	return &Tree[V]{f: f, tag: s.tag, dropped: dropped, children: children}, nil
}

// FromSkeleton builds a tree by resolving every position of the skeleton
// through a lookup function. It is the other direction of the polynomial
// view: a tree is exactly a skeleton plus a total function on its positions.
func FromSkeleton[V any](f *poly.Functor, s *Skeleton, lookup func(Path) V) *Tree[V] {
	dropped := make([][]V, f.LastIndex())
	for index := range dropped {
		dropped[index] = make([]V, f.Slots(s.tag, index))
		for slot := range dropped[index] {
			dropped[index][slot] = lookup(Root(index, slot))
		}
	}
	children := make([]*Tree[V], len(s.children))
	for slot, child := range s.children {
		slot := slot
		children[slot] = FromSkeleton(f, child, func(p Path) V {
			return lookup(Child(slot, p))
		})
	}
	return &Tree[V]{f: f, tag: s.tag, dropped: dropped, children: children}
}

// ObjEqual compares two polynomial-view objects for exact equality.
func ObjEqual[V comparable](a, b Obj[V]) bool {
	if !a.skel.Equal(b.skel) || len(a.perIndex) != len(b.perIndex) {
		return false
	}
	for index := range a.perIndex {
		if len(a.perIndex[index]) != len(b.perIndex[index]) {
			return false
		}
		for i := range a.perIndex[index] {
			if a.perIndex[index][i] != b.perIndex[index][i] {
				return false
			}
		}
	}
	return true
}
