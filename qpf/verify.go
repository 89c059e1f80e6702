package qpf

import (
	"github.com/alexkeizer/qpf4/poly"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// VerifyInstance checks the two primitive laws of an instance, and the
// functor laws they entail, over caller-supplied samples: abstract values,
// shape objects, and arrows. eq decides equality of abstract values.
//
// A non-nil result means the declaration itself is invalid, a contract
// breach rather than a recoverable runtime error; every violation found is
// included, so a broken instance reports all of its failures at once.
func VerifyInstance[V, F any](q Instance[V, F], eq func(F, F) bool, samples []F, objs []Obj[V], arrows []poly.Arrow[V]) error {
	var errs error
	report := func(err error) {
		logger.Warn("instance law violation", "err", err)
		errs = multierr.Append(errs, err)
	}

	identity := poly.IdentityArrow[V](q.Arity())
	for i, x := range samples {
		if !eq(q.Abs(q.Repr(x)), x) {
			report(errors.Errorf("round trip: Abs(Repr(x)) != x for sample %d", i))
		}
		if !eq(q.Map(identity, x), x) {
			report(errors.Errorf("identity law: Map(id, x) != x for sample %d", i))
		}
		if !eq(Map(q, identity, x), x) {
			report(errors.Errorf("identity law: derived map of id != x for sample %d", i))
		}
		for j, g1 := range arrows {
			for k, g2 := range arrows {
				composed := q.Map(poly.ComposeArrows(g2, g1), x)
				stepped := q.Map(g2, q.Map(g1, x))
				if !eq(composed, stepped) {
					report(errors.Errorf("composition law: Map(g%d . g%d, x) != Map(g%d, Map(g%d, x)) for sample %d", k, j, k, j, i))
				}
			}
		}
	}

	for i, o := range objs {
		for j, g := range arrows {
			if !eq(q.Abs(q.MapObj(g, o)), q.Map(g, q.Abs(o))) {
				report(errors.Errorf("map compatibility: Abs(MapObj(g%d, o)) != Map(g%d, Abs(o)) for object %d", j, j, i))
			}
		}
	}

	return errs
}
