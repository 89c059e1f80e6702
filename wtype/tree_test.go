package wtype_test

import (
	"fmt"
	"testing"

	"github.com/alexkeizer/qpf4/poly"
	"github.com/alexkeizer/qpf4/wtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listFunctor is the two-tag description of single-child-chain lists:
// leaf has no slots, node has one dropped slot and one child slot.
func listFunctor() *poly.Functor {
	return poly.MustNew("list", 2,
		poly.NewTag("leaf", 0, 0),
		poly.NewTag("node", 1, 1),
	)
}

// treeFunctor describes binary trees with a value at every node.
func treeFunctor() *poly.Functor {
	return poly.MustNew("btree", 2,
		poly.NewTag("tip", 0, 0),
		poly.NewTag("branch", 1, 2),
	)
}

func mustTags(t *testing.T, f *poly.Functor, names ...string) []poly.TagID {
	t.Helper()
	ids := make([]poly.TagID, len(names))
	for i, name := range names {
		id, ok := f.TagByName(name)
		require.True(t, ok, "tag %s", name)
		ids[i] = id
	}
	return ids
}

// buildList is the chain node(vals[0], node(vals[1], ... leaf)).
func buildList(t *testing.T, f *poly.Functor, vals ...int) *wtype.Tree[int] {
	t.Helper()
	tags := mustTags(t, f, "leaf", "node")
	list, err := wtype.Leaf[int](f, tags[0])
	require.NoError(t, err)
	for i := len(vals) - 1; i >= 0; i-- {
		list = wtype.MustMk(f, tags[1], [][]int{{vals[i]}}, []*wtype.Tree[int]{list})
	}
	return list
}

func sumStep(tag poly.TagID, dropped [][]int, children []*wtype.Tree[int], sub []int) int {
	total := 0
	for _, v := range dropped[0] {
		total += v
	}
	for _, s := range sub {
		total += s
	}
	return total
}

func TestMkValidation(t *testing.T) {
	f := listFunctor()
	tags := mustTags(t, f, "leaf", "node")
	leaf := wtype.MustMk[int](f, tags[0], [][]int{{}}, nil)

	testCases := []struct {
		name     string
		tag      poly.TagID
		dropped  [][]int
		children []*wtype.Tree[int]
	}{
		{"unknown tag", poly.TagID(9), [][]int{{}}, nil},
		{"missing dropped vector", tags[1], nil, []*wtype.Tree[int]{leaf}},
		{"wrong dropped length", tags[1], [][]int{{1, 2}}, []*wtype.Tree[int]{leaf}},
		{"missing child", tags[1], [][]int{{1}}, nil},
		{"nil child", tags[1], [][]int{{1}}, []*wtype.Tree[int]{nil}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := wtype.Mk(f, tc.tag, tc.dropped, tc.children)
			assert.Error(t, err)
		})
	}
}

func TestMkRejectsForeignChildren(t *testing.T) {
	list, btree := listFunctor(), treeFunctor()
	listTags := mustTags(t, list, "node")
	tip := mustTags(t, btree, "tip")

	foreign := wtype.MustMk[int](btree, tip[0], [][]int{{}}, nil)
	_, err := wtype.Mk(list, listTags[0], [][]int{{1}}, []*wtype.Tree[int]{foreign})
	assert.Error(t, err)
}

func TestDestIsExactDecomposition(t *testing.T) {
	f := listFunctor()
	tags := mustTags(t, f, "leaf", "node")
	leaf := wtype.MustMk[int](f, tags[0], [][]int{{}}, nil)

	dropped := [][]int{{5}}
	children := []*wtype.Tree[int]{leaf}
	built := wtype.MustMk(f, tags[1], dropped, children)

	gotTag, gotDropped, gotChildren := built.Dest()
	assert.Equal(t, tags[1], gotTag)
	assert.Equal(t, dropped, gotDropped)
	require.Len(t, gotChildren, 1)
	assert.Same(t, leaf, gotChildren[0])

	rebuilt := wtype.MustMk(f, gotTag, gotDropped, gotChildren)
	assert.True(t, wtype.Equal(built, rebuilt), "Mk after Dest rebuilds an equal tree")
}

func TestFoldSumsList(t *testing.T) {
	f := listFunctor()
	list := buildList(t, f, 3, 5)

	assert.Equal(t, 8, wtype.Rec(list, sumStep))

	inc := poly.Arrow[int]{func(v int) int { return v + 1 }}
	assert.Equal(t, 10, wtype.Rec(wtype.Map(inc, list), sumStep))
}

func TestFoldUnfoldingLaw(t *testing.T) {
	// folding Mk(tag, dropped, children) must equal one application of the
	// step to the folds of the children
	f := treeFunctor()
	tags := mustTags(t, f, "tip", "branch")
	tip := wtype.MustMk[int](f, tags[0], [][]int{{}}, nil)
	left := wtype.MustMk(f, tags[1], [][]int{{1}}, []*wtype.Tree[int]{tip, tip})
	right := wtype.MustMk(f, tags[1], [][]int{{2}}, []*wtype.Tree[int]{tip, tip})
	root := wtype.MustMk(f, tags[1], [][]int{{7}}, []*wtype.Tree[int]{left, right})

	show := func(tag poly.TagID, dropped [][]int, children []*wtype.Tree[int], sub []string) string {
		return fmt.Sprintf("%d%v%v", tag, dropped[0], sub)
	}

	folded := wtype.Rec(root, show)
	tag, dropped, children := root.Dest()
	oneStep := show(tag, dropped, children, []string{
		wtype.Rec(children[0], show),
		wtype.Rec(children[1], show),
	})
	assert.Equal(t, oneStep, folded)
}

func TestFoldOnLeafDegradesToBaseCase(t *testing.T) {
	f := listFunctor()
	tags := mustTags(t, f, "leaf")
	leaf, err := wtype.Leaf[int](f, tags[0])
	require.NoError(t, err)

	calls := 0
	got := wtype.Rec(leaf, func(tag poly.TagID, dropped [][]int, children []*wtype.Tree[int], sub []int) int {
		calls++
		assert.Empty(t, sub, "a leaf has no recursive results")
		assert.Empty(t, children)
		return 41
	})
	assert.Equal(t, 41, got)
	assert.Equal(t, 1, calls)
}

func TestInduct(t *testing.T) {
	f := listFunctor()
	allPositive := func(tag poly.TagID, dropped [][]int, children []*wtype.Tree[int], childHolds []bool) bool {
		for _, holds := range childHolds {
			if !holds {
				return false
			}
		}
		for _, v := range dropped[0] {
			if v <= 0 {
				return false
			}
		}
		return true
	}

	assert.True(t, wtype.Induct(buildList(t, f, 3, 5), allPositive))
	assert.False(t, wtype.Induct(buildList(t, f, 3, -5), allPositive))
}

func TestMapFunctorLaws(t *testing.T) {
	f := treeFunctor()
	tags := mustTags(t, f, "tip", "branch")
	tip := wtype.MustMk[int](f, tags[0], [][]int{{}}, nil)
	tree := wtype.MustMk(f, tags[1], [][]int{{7}}, []*wtype.Tree[int]{
		wtype.MustMk(f, tags[1], [][]int{{1}}, []*wtype.Tree[int]{tip, tip}),
		tip,
	})

	id := poly.IdentityArrow[int](f.LastIndex())
	inc := poly.Arrow[int]{func(v int) int { return v + 1 }}
	double := poly.Arrow[int]{func(v int) int { return v * 2 }}

	assert.True(t, wtype.Equal(wtype.Map(id, tree), tree), "identity law")
	assert.True(t, wtype.Equal(
		wtype.Map(double, wtype.Map(inc, tree)),
		wtype.Map(poly.ComposeArrows(double, inc), tree),
	), "composition law")
}

func TestMapCommutesWithMk(t *testing.T) {
	f := listFunctor()
	tags := mustTags(t, f, "leaf", "node")
	leaf := wtype.MustMk[int](f, tags[0], [][]int{{}}, nil)
	inner := wtype.MustMk(f, tags[1], [][]int{{5}}, []*wtype.Tree[int]{leaf})
	inc := poly.Arrow[int]{func(v int) int { return v + 1 }}

	mappedWhole := wtype.Map(inc, wtype.MustMk(f, tags[1], [][]int{{3}}, []*wtype.Tree[int]{inner}))
	mappedParts := wtype.MustMk(f, tags[1], [][]int{{4}}, []*wtype.Tree[int]{wtype.Map(inc, inner)})
	assert.True(t, wtype.Equal(mappedWhole, mappedParts))
}

func TestMapLeavesShapeUntouched(t *testing.T) {
	f := listFunctor()
	list := buildList(t, f, 3, 5)
	inc := poly.Arrow[int]{func(v int) int { return v + 1 }}

	assert.True(t, list.Skeleton().Equal(wtype.Map(inc, list).Skeleton()))
}

func TestSkeletonHashAndEqual(t *testing.T) {
	f := listFunctor()
	a := buildList(t, f, 3, 5).Skeleton()
	b := buildList(t, f, 1, 9).Skeleton()
	c := buildList(t, f, 1).Skeleton()

	assert.True(t, a.Equal(b), "skeletons ignore stored values")
	assert.Equal(t, a.Hash(), b.Hash())
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Hash(), c.Hash())
	assert.Equal(t, 3, a.Size())
}
