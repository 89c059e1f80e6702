package wtype

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/alexkeizer/qpf4/poly"
)

// Path is a position inside a tree: a finite sequence of child-slot
// selections terminating in a root-slot selection at one dropped parameter
// index. The index is carried explicitly as data, so a single Path type
// covers the whole position family.
//
// Finiteness is structural: steps is a slice, so every Path denotes a
// bounded descent followed by exactly one root selection. This is the
// well-foundedness invariant of the tree family.
type Path struct {
	steps []int
	index int
	slot  int
}

// Root is a position directly in the top tag's slot set, at the given
// dropped index.
func Root(index, slot int) Path {
	return Path{index: index, slot: slot}
}

// Child is a position reached by first descending into the subtree at the
// given last-index slot, then following p inside it.
func Child(step int, p Path) Path {
	steps := make([]int, 0, len(p.steps)+1)
	steps = append(steps, step)
	steps = append(steps, p.steps...)
	return Path{steps: steps, index: p.index, slot: p.slot}
}

// Index is the dropped parameter index the position addresses.
func (p Path) Index() int { return p.index }

// Slot is the terminal root-slot selection.
func (p Path) Slot() int { return p.slot }

// Steps is the child-slot descent, outermost first.
func (p Path) Steps() []int { return append([]int(nil), p.steps...) }

// Depth is the number of child steps before the terminal root selection.
func (p Path) Depth() int { return len(p.steps) }

// Inner strips the outermost child step. Only valid when Depth() > 0.
func (p Path) Inner() Path {
	return Path{steps: append([]int(nil), p.steps[1:]...), index: p.index, slot: p.slot}
}

// ValidIn reports whether the position exists inside the given skeleton:
// every step selects an existing child and the terminal selection addresses
// an existing dropped slot of the node it lands on.
func (p Path) ValidIn(f *poly.Functor, s *Skeleton) bool {
	if s == nil {
		return false
	}
	node := s
	for _, step := range p.steps {
		if step < 0 || step >= len(node.children) {
			return false
		}
		node = node.children[step]
	}
	if p.index < 0 || p.index >= f.LastIndex() {
		return false
	}
	return p.slot >= 0 && p.slot < f.Slots(node.tag, p.index)
}

func (p Path) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, step := range p.steps {
		binary.LittleEndian.PutUint64(buf[:], uint64(step))
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint64(buf[:], uint64(p.index))
	_, _ = h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(p.slot))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

func (p Path) Equal(other Path) bool {
	if p.index != other.index || p.slot != other.slot || len(p.steps) != len(other.steps) {
		return false
	}
	for i, step := range p.steps {
		if step != other.steps[i] {
			return false
		}
	}
	return true
}

func (p Path) String() string {
	var b strings.Builder
	for _, step := range p.steps {
		fmt.Fprintf(&b, "%d/", step)
	}
	fmt.Fprintf(&b, "i%d.s%d", p.index, p.slot)
	return b.String()
}
