// Package poly implements finite shape descriptions (polynomial functors):
// a set of dataless tags together with, per tag and per parameter index, a
// finite slot set. It is the non-recursive substrate that wtype builds
// well-founded trees from and that qpf instances are declared over.
//
// A Functor has arity n+1: index n (the "last" index) is reserved for
// recursive occurrences, indices 0..n-1 (the "dropped" indices) hold stored
// data. Slot sets are the ranges 0..count-1.
package poly

import (
	"iter"
	"slices"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// TagID identifies one case of a shape description within its Functor.
type TagID int

// Tag is a dataless shape identifier plus its slot counts, one count per
// parameter index.
type Tag struct {
	Name  string
	Slots []int
}

// NewTag is a convenience constructor for tag literals in table-driven code.
func NewTag(name string, slots ...int) Tag {
	return Tag{Name: name, Slots: slots}
}

type Functor struct {
	name     string
	arity    int
	tags     []Tag
	tagIndex map[string]TagID
}

// New builds a shape description with the given parameter arity. Every tag
// must carry exactly arity slot counts, all non-negative, and tag names must
// be unique.
func New(name string, arity int, tags ...Tag) (*Functor, error) {
	if arity < 1 {
		return nil, errors.Errorf("functor %s: arity must be at least 1, got %d", name, arity)
	}
	if len(tags) == 0 {
		return nil, errors.Errorf("functor %s: at least one tag is required", name)
	}
	tagIndex := make(map[string]TagID, len(tags))
	for i, tag := range tags {
		if len(tag.Slots) != arity {
			return nil, errors.Errorf("functor %s: tag %s has %d slot counts, expected %d", name, tag.Name, len(tag.Slots), arity)
		}
		for index, count := range tag.Slots {
			if count < 0 {
				return nil, errors.Errorf("functor %s: tag %s has negative slot count %d at index %d", name, tag.Name, count, index)
			}
		}
		if _, duplicate := tagIndex[tag.Name]; duplicate {
			return nil, errors.Errorf("functor %s: duplicate tag name %s", name, tag.Name)
		}
		tagIndex[tag.Name] = TagID(i)
	}
	return &Functor{
		name:     name,
		arity:    arity,
		tags:     slices.Clone(tags),
		tagIndex: tagIndex,
	}, nil
}

// MustNew is New, panicking on invalid descriptions. Meant for statically
// known shapes, where a bad description is a bug rather than bad input.
func MustNew(name string, arity int, tags ...Tag) *Functor {
	f, err := New(name, arity, tags...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Functor) Name() string { return f.name }

// Arity is the total number of parameter indices, dropped indices plus the
// last (recursion) index.
func (f *Functor) Arity() int { return f.arity }

// LastIndex is the parameter index used for recursive occurrences.
func (f *Functor) LastIndex() int { return f.arity - 1 }

func (f *Functor) NumTags() int { return len(f.tags) }

func (f *Functor) Tag(id TagID) Tag {
	return Tag{Name: f.tags[id].Name, Slots: slices.Clone(f.tags[id].Slots)}
}

// TagByName resolves a tag name declared in New.
func (f *Functor) TagByName(name string) (TagID, bool) {
	id, ok := f.tagIndex[name]
	return id, ok
}

func (f *Functor) TagNames() []string {
	names := maps.Keys(f.tagIndex)
	sort.Strings(names)
	return names
}

// Tags enumerates every tag of the description.
func (f *Functor) Tags() iter.Seq[TagID] {
	return func(yield func(TagID) bool) {
		for i := range f.tags {
			if !yield(TagID(i)) {
				return
			}
		}
	}
}

// Slots is the size of the slot set of tag at the given parameter index.
func (f *Functor) Slots(tag TagID, index int) int {
	return f.tags[tag].Slots[index]
}

// SlotSeq enumerates the slot set of tag at the given parameter index.
func (f *Functor) SlotSeq(tag TagID, index int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := 0; slot < f.Slots(tag, index); slot++ {
			if !yield(slot) {
				return
			}
		}
	}
}

func (f *Functor) validTag(tag TagID) bool {
	return tag >= 0 && int(tag) < len(f.tags)
}
