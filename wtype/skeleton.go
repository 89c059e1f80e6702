// Package wtype implements the family of well-founded trees over a shape
// description: path-indexed positions, constructors and exact decomposition,
// a fold operator with its induction principle, a structure-preserving map,
// and the bridge between one polynomial layer and the tree type itself.
//
// Trees are pure immutable values. Every constructor copies its input and
// every accessor copies out, so a tree can never be mutated after Mk.
package wtype

import (
	"encoding/binary"
	"hash/fnv"
	"iter"
	"strconv"
	"strings"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/pkg/errors"
)

// Skeleton is a tree without data: a tag plus one child skeleton per slot of
// the tag's last (recursion) index. It is what remains of a Tree after all
// stored values are dropped, and it serves as the "tag" of the polynomial
// tree functor (see Obj).
type Skeleton struct {
	tag      poly.TagID
	children []*Skeleton
}

// NewSkeleton builds a dataless tree of f with the given tag. children must
// hold exactly f.Slots(tag, f.LastIndex()) skeletons.
func NewSkeleton(f *poly.Functor, tag poly.TagID, children ...*Skeleton) (*Skeleton, error) {
	if tag < 0 || int(tag) >= f.NumTags() {
		return nil, errors.Errorf("functor %s: no tag with id %d", f.Name(), tag)
	}
	if want := f.Slots(tag, f.LastIndex()); len(children) != want {
		return nil, errors.Errorf("functor %s: tag %s expects %d children, got %d", f.Name(), f.Tag(tag).Name, want, len(children))
	}
	for slot, child := range children {
		if child == nil {
			return nil, errors.Errorf("functor %s: nil child skeleton at slot %d", f.Name(), slot)
		}
	}
	return &Skeleton{tag: tag, children: append([]*Skeleton(nil), children...)}, nil
}

// MustNewSkeleton is NewSkeleton, panicking on shape mismatches.
func MustNewSkeleton(f *poly.Functor, tag poly.TagID, children ...*Skeleton) *Skeleton {
	s, err := NewSkeleton(f, tag, children...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Skeleton) Tag() poly.TagID { return s.tag }

func (s *Skeleton) NumChildren() int { return len(s.children) }

func (s *Skeleton) Child(slot int) *Skeleton { return s.children[slot] }

func (s *Skeleton) Children() iter.Seq2[int, *Skeleton] {
	return func(yield func(int, *Skeleton) bool) {
		for slot, child := range s.children {
			if !yield(slot, child) {
				return
			}
		}
	}
}

// Hash identifies the skeleton up to structural equality: two skeletons of
// the same functor are Equal iff their hashes coincide.
func (s *Skeleton) Hash() uint64 {
	h := fnv.New64a()
	s.hashInto(h.Write)
	return h.Sum64()
}

func (s *Skeleton) hashInto(write func([]byte) (int, error)) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(s.tag))
	_, _ = write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s.children)))
	_, _ = write(buf[:])
	for _, child := range s.children {
		child.hashInto(write)
	}
}

func (s *Skeleton) Equal(other *Skeleton) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || s.tag != other.tag || len(s.children) != len(other.children) {
		return false
	}
	for slot, child := range s.children {
		if !child.Equal(other.children[slot]) {
			return false
		}
	}
	return true
}

// Size counts the nodes of the skeleton.
func (s *Skeleton) Size() int {
	size := 1
	for _, child := range s.children {
		size += child.Size()
	}
	return size
}

func (s *Skeleton) String() string {
	var b strings.Builder
	s.stringInto(&b)
	return b.String()
}

func (s *Skeleton) stringInto(b *strings.Builder) {
	b.WriteString("t")
	b.WriteString(strconv.Itoa(int(s.tag)))
	if len(s.children) > 0 {
		b.WriteString("(")
		for slot, child := range s.children {
			if slot > 0 {
				b.WriteString(" ")
			}
			child.stringInto(b)
		}
		b.WriteString(")")
	}
}
