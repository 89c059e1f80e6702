package qpf

import (
	"slices"
	"sort"
	"sync"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/benbjohnson/immutable"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// The registry holds every declared instance for the life of the process.
// Declarations are immutable and never retracted, so the map is an
// immutable one swapped under a lock; readers get consistent snapshots.
var (
	registryMu sync.Mutex
	registry   = immutable.NewMap[string, any](nil)
)

// Register associates a name with a declared instance, process-wide.
// Instances are permanent: re-registering a name is an error.
func Register(name string, instance any) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, taken := registry.Get(name); taken {
		return errors.Errorf("instance %q is already declared", name)
	}
	registry = registry.Set(name, instance)
	logger.Debug("declared instance", "name", name)
	return nil
}

// Lookup retrieves a previously declared instance by name. Callers assert
// back to the Instance type they declared it at.
func Lookup(name string) (any, bool) {
	registryMu.Lock()
	snapshot := registry
	registryMu.Unlock()
	return snapshot.Get(name)
}

// Names lists every declared instance, sorted.
func Names() []string {
	registryMu.Lock()
	snapshot := registry
	registryMu.Unlock()
	names := make([]string, 0, snapshot.Len())
	itr := snapshot.Iterator()
	for !itr.Done() {
		name, _, _ := itr.Next()
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeclareUniform verifies an instance and registers it. It is the gate the
// abstraction API puts on support-set and lifting use: the instance must
// satisfy the two primitive laws and behave uniformly on the supplied
// evidence (sample values, sample objects, arrows), checked through all
// three legs of the uniformity equivalence. Any violation aborts the
// declaration with every failure aggregated.
func DeclareUniform[V comparable, F any](
	name string,
	q Enumerable[V, F],
	eq func(F, F) bool,
	samples []F,
	objs []Obj[V],
	arrows []poly.Arrow[V],
) error {
	errs := VerifyInstance[V, F](q, eq, samples, objs, arrows)
	if !IsUniform(q, slices.Values(samples)) {
		errs = multierr.Append(errs, errors.Errorf("instance %q is not uniform on the supplied samples", name))
	}
	if !PreservesSupp(q, slices.Values(objs)) {
		errs = multierr.Append(errs, errors.Errorf("instance %q does not preserve support sets", name))
	}
	if !PreservesLiftP(q, slices.Values(objs)) {
		errs = multierr.Append(errs, errors.Errorf("instance %q does not preserve predicate lifting", name))
	}
	if errs != nil {
		return errors.Wrapf(errs, "declaring %q", name)
	}
	return Register(name, q)
}
