package qpf

import (
	"iter"

	"github.com/alexkeizer/qpf4/util"
	"github.com/hashicorp/go-set/v3"
)

// Enumerable extends an instance with the ability to list every
// representation of a value. The existential characterisations of lifting
// and support quantify over all representations, so they are only
// computable for instances whose representation sets are finitely
// enumerable; they serve as test oracles for the closed forms in LiftP,
// LiftR and Supp.
type Enumerable[V, F any] interface {
	Instance[V, F]
	// Representations enumerates every object o with Abs(o) == x. The
	// sequence must be re-iterable, finite, and non-empty (Repr(x) is
	// always a member).
	Representations(x F) iter.Seq[Obj[V]]
}

// LiftPOracle is the existential form of predicate lifting: the predicate
// holds of x iff some representation of x has every slot value satisfying
// it at its index.
func LiftPOracle[V, F any](q Enumerable[V, F], p Pred[V], x F) bool {
	for o := range q.Representations(x) {
		if slotsSatisfy(q.Arity(), o, p) {
			return true
		}
	}
	return false
}

// LiftROracle is the existential form of relation lifting: x and y are
// related iff some pair of representations shares one shape and relates
// slot values pairwise.
func LiftROracle[V, F any](q Enumerable[V, F], r Rel[V], x, y F) bool {
	for pair := range util.ProductIter(q.Representations(x), q.Representations(y)) {
		if pair.Fst.ShapeHash() != pair.Snd.ShapeHash() {
			continue
		}
		if slotsRelated(q.Arity(), pair.Fst, pair.Snd, r) {
			return true
		}
	}
	return false
}

// SuppOracle is the existential form of the support set: a value is in the
// support of x at an index iff every representation of x stores it at that
// index, i.e. the intersection of the slot images over all representations.
// Equivalently, u is in the support iff Excluding(u) cannot be lifted
// (no representation avoids u).
func SuppOracle[V comparable, F any](q Enumerable[V, F], x F, index int) *set.Set[V] {
	var result *set.Set[V]
	for o := range q.Representations(x) {
		img := image(o, index)
		if result == nil {
			result = img
			continue
		}
		kept := set.New[V](result.Size())
		for _, v := range result.Slice() {
			if img.Contains(v) {
				kept.Insert(v)
			}
		}
		result = kept
	}
	if result == nil {
		result = set.New[V](0)
	}
	return result
}

// IsUniform reports whether the instance behaves uniformly on the given
// sample values: any two representations of the same value occupy the same
// value sets at every index. Under uniformity the support collapses to the
// image of any single representation and LiftP/LiftR agree with their
// oracles.
func IsUniform[V comparable, F any](q Enumerable[V, F], samples iter.Seq[F]) bool {
	for x := range samples {
		for index := 0; index < q.Arity(); index++ {
			var first *set.Set[V]
			for o := range q.Representations(x) {
				img := image(o, index)
				if first == nil {
					first = img
					continue
				}
				if !first.Equal(img) {
					return false
				}
			}
		}
	}
	return true
}

// PreservesSupp reports whether Abs preserves support on the given sample
// objects: the support of the abstract value equals the slot image of the
// object it came from, at every index. One leg of the three-way
// equivalence with IsUniform and PreservesLiftP.
func PreservesSupp[V comparable, F any](q Enumerable[V, F], objs iter.Seq[Obj[V]]) bool {
	for o := range objs {
		x := q.Abs(o)
		for index := 0; index < q.Arity(); index++ {
			if !SuppOracle(q, x, index).Equal(image(o, index)) {
				return false
			}
		}
	}
	return true
}

// PreservesLiftP reports whether Abs preserves predicate lifting on the
// given sample objects: lifting a predicate to the abstract value agrees
// with checking it on the object directly. Quantifying over every predicate
// is not possible; the single-exclusion family Excluding(u) is the
// discriminating one (it is what defines support), so the check runs over
// it, with u drawn from every value observed at the index across the
// object and all representations of its image.
func PreservesLiftP[V comparable, F any](q Enumerable[V, F], objs iter.Seq[Obj[V]]) bool {
	for o := range objs {
		x := q.Abs(o)
		for index := 0; index < q.Arity(); index++ {
			universe := util.NewSetOf(o.SlotValues(index))
			for rep := range q.Representations(x) {
				universe.Add(rep.SlotValues(index)...)
			}
			for u := range universe.All() {
				excl := Excluding(q.Arity(), index, u)
				direct := slotsSatisfy(q.Arity(), o, excl)
				lifted := LiftPOracle(q, excl, x)
				if direct != lifted {
					return false
				}
			}
		}
	}
	return true
}
