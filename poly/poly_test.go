package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDescription(t *testing.T) *Functor {
	t.Helper()
	f, err := New("list", 2, NewTag("leaf", 0, 0), NewTag("node", 1, 1))
	require.NoError(t, err)
	return f
}

func TestNewRejectsBadDescriptions(t *testing.T) {
	testCases := []struct {
		name  string
		arity int
		tags  []Tag
	}{
		{"zero arity", 0, []Tag{NewTag("only")}},
		{"no tags", 2, nil},
		{"wrong slot count arity", 2, []Tag{NewTag("bad", 1)}},
		{"negative slots", 2, []Tag{NewTag("bad", -1, 0)}},
		{"duplicate tag names", 2, []Tag{NewTag("dup", 0, 0), NewTag("dup", 1, 1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("broken", tc.arity, tc.tags...)
			assert.Error(t, err)
		})
	}
}

func TestFunctorAccessors(t *testing.T) {
	f := listDescription(t)

	assert.Equal(t, 2, f.Arity())
	assert.Equal(t, 1, f.LastIndex())
	assert.Equal(t, 2, f.NumTags())
	assert.Equal(t, []string{"leaf", "node"}, f.TagNames())

	node, ok := f.TagByName("node")
	require.True(t, ok)
	assert.Equal(t, 1, f.Slots(node, 0))
	assert.Equal(t, 1, f.Slots(node, 1))

	leaf, ok := f.TagByName("leaf")
	require.True(t, ok)
	assert.Equal(t, 0, f.Slots(leaf, 0))

	var tags []TagID
	for id := range f.Tags() {
		tags = append(tags, id)
	}
	assert.Equal(t, []TagID{leaf, node}, tags)

	var slots []int
	for slot := range f.SlotSeq(node, 0) {
		slots = append(slots, slot)
	}
	assert.Equal(t, []int{0}, slots)
}

func TestNewObjValidation(t *testing.T) {
	f := listDescription(t)
	node, _ := f.TagByName("node")

	_, err := NewObj(f, node, [][]int{{5}})
	assert.Error(t, err, "missing a slot vector")

	_, err = NewObj(f, node, [][]int{{5, 6}, {7}})
	assert.Error(t, err, "too many values at index 0")

	_, err = NewObj(f, TagID(99), [][]int{{5}, {7}})
	assert.Error(t, err, "unknown tag")

	o, err := NewObj(f, node, [][]int{{5}, {7}})
	require.NoError(t, err)
	assert.Equal(t, node, o.Tag())
	assert.Equal(t, []int{5}, o.SlotValues(0))
	assert.Equal(t, 7, o.Get(1, 0))
}

func TestObjImmutable(t *testing.T) {
	f := listDescription(t)
	node, _ := f.TagByName("node")
	data := [][]int{{5}, {7}}
	o := MustNewObj(f, node, data)

	data[0][0] = 99
	assert.Equal(t, []int{5}, o.SlotValues(0), "constructor must copy its input")

	out := o.SlotValues(0)
	out[0] = 42
	assert.Equal(t, 5, o.Get(0, 0), "accessors must copy out")
}

func TestMapFunctorLaws(t *testing.T) {
	f := listDescription(t)
	node, _ := f.TagByName("node")
	leaf, _ := f.TagByName("leaf")

	inc := func(v int) int { return v + 1 }
	double := func(v int) int { return v * 2 }
	g1 := Arrow[int]{inc, double}
	g2 := Arrow[int]{double, inc}

	objects := []Obj[int]{
		MustNewObj(f, node, [][]int{{5}, {7}}),
		MustNewObj(f, leaf, [][]int{{}, {}}),
	}
	for _, o := range objects {
		assert.True(t, Equal(Map(IdentityArrow[int](f.Arity()), o), o), "identity law")
		assert.True(t, Equal(Map(g2, Map(g1, o)), Map(ComposeArrows(g2, g1), o)), "composition law")
	}

	mapped := Map(g1, objects[0])
	assert.Equal(t, []int{6}, mapped.SlotValues(0))
	assert.Equal(t, []int{14}, mapped.SlotValues(1))
}

func TestShapeHashIdentifiesTags(t *testing.T) {
	f := listDescription(t)
	node, _ := f.TagByName("node")
	leaf, _ := f.TagByName("leaf")

	a := MustNewObj(f, node, [][]int{{5}, {7}})
	b := MustNewObj(f, node, [][]int{{3}, {1}})
	c := MustNewObj(f, leaf, [][]int{{}, {}})

	assert.Equal(t, a.ShapeHash(), b.ShapeHash(), "same tag, same shape")
	assert.NotEqual(t, a.ShapeHash(), c.ShapeHash(), "different tags, different shapes")
}

func TestValidate(t *testing.T) {
	f := listDescription(t)
	node, _ := f.TagByName("node")

	assert.NoError(t, f.Validate(node, []int{1, 1}))
	assert.Error(t, f.Validate(node, []int{2, 1}))
	assert.Error(t, f.Validate(node, []int{1}))
	assert.Error(t, f.Validate(TagID(5), []int{1, 1}))
}
