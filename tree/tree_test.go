package tree

import (
	"errors"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// humidTree returns Humid∈{true→Temp∈{50→0, 80→1}, false→1}, with Temp
// testing attribute 0 and Humid attribute 1.
func humidTree() *Node {
	temp := NewNode(0)
	temp.Name = "Temp"
	temp.AddBranch(50, Leaf(0)).AddBranch(80, Leaf(1))
	humid := NewNode(1)
	humid.Name = "Humid"
	humid.AddBranch(true, Internal(temp)).AddBranch(false, Leaf(1))
	return humid
}

func TestPredict(t *testing.T) {
	root := humidTree()
	testCases := []struct {
		example []interface{}
		label   interface{}
	}{
		{[]interface{}{50, true, nil}, 0},
		{[]interface{}{80, true, nil}, 1},
		{[]interface{}{50, false, nil}, 1},
		{[]interface{}{99, false, nil}, 1},
	}
	for _, tc := range testCases {
		label, err := root.Predict(tc.example)
		require.NoError(t, err)
		assert.Equal(t, tc.label, label, "predicting %v", tc.example)
	}
	label, err := Leaf("yes").Predict(nil)
	require.NoError(t, err)
	assert.Equal(t, "yes", label)
}

func TestPredictMissingBranch(t *testing.T) {
	_, err := humidTree().Predict([]interface{}{65, true, nil})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBranch))
	var mbe *MissingBranchError
	require.True(t, errors.As(err, &mbe))
	assert.Equal(t, 0, mbe.Feature)
	assert.Equal(t, "Temp", mbe.Name)
	assert.Equal(t, 65, mbe.Value)

	_, err = Internal(humidTree()).Predict([]interface{}{50})
	assert.True(t, errors.Is(err, ErrMissingBranch))
}

func TestAddBranchKeepsOrderAndIsIdempotent(t *testing.T) {
	n := NewNode(0)
	n.AddBranch("b", Leaf(1)).AddBranch("a", Leaf(2))
	n.AddBranch("b", Leaf(3))
	n.AddBranch("b", Leaf(3))
	assert.Equal(t, []interface{}{"b", "a"}, n.Values())
	assert.Equal(t, 2, n.Len())
	st, ok := n.Branch("b")
	require.True(t, ok)
	assert.Equal(t, 3, st.Label())
	_, ok = n.Branch("c")
	assert.False(t, ok)

	var zero Node
	zero.AddBranch(1, Leaf(1))
	assert.Equal(t, 1, zero.Len())
}

func TestSubtreeVariant(t *testing.T) {
	leaf := Leaf("x")
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, "x", leaf.Label())
	assert.Nil(t, leaf.Node())
	n := NewNode(2)
	internal := Internal(n)
	assert.False(t, internal.IsLeaf())
	assert.Nil(t, internal.Label())
	assert.Same(t, n, internal.Node())
}

func TestUniquifyNamesIsPostOrder(t *testing.T) {
	root := humidTree()
	names := root.UniquifyNames()
	assert.Equal(t, []string{"Node0", "Node1"}, names)
	assert.Equal(t, "Node1", root.Name)
	temp, ok := root.At(Path{true})
	require.True(t, ok)
	assert.Equal(t, "Node0", temp.Name)
}

func TestPaths(t *testing.T) {
	a := NewNode(0).AddBranch("x", Leaf(1))
	b := NewNode(1).AddBranch("y", Leaf(0))
	root := NewNode(2).AddBranch("l", Internal(a)).AddBranch("m", Leaf(0)).AddBranch("r", Internal(b))
	paths := root.Paths()
	require.Len(t, paths, 3)
	assert.Equal(t, Path{"l"}, paths[0])
	assert.Equal(t, Path{"r"}, paths[1])
	assert.Empty(t, paths[2])
	assert.Equal(t, "/l", paths[0].String())

	_, ok := root.At(Path{"m"})
	assert.False(t, ok)
	_, ok = root.At(Path{"z"})
	assert.False(t, ok)
}

func TestCopyExcludingByName(t *testing.T) {
	root := humidTree()
	examples := []dataset.Example{{50, true, 0}, {50, true, 0}, {50, true, 1}}
	st, ok := root.CopyExcluding("Temp", examples, 2)
	require.True(t, ok)
	expected := NewNode(1).AddBranch(true, Leaf(0)).AddBranch(false, Leaf(1))
	assert.True(t, st.Node().Equal(expected), "got\n%v", st)
	assert.True(t, root.EqualNamed(humidTree()), "original tree was modified")
}

func TestCopyExcludingFallsBackToLeafLabels(t *testing.T) {
	root := humidTree()
	temp, _ := root.At(Path{true})
	temp.AddBranch(90, Leaf(1))
	examples := []dataset.Example{{50, false, 0}}
	st, ok := root.CopyExcludingPath(Path{true}, examples, 2)
	require.True(t, ok)
	label, err := st.Predict([]interface{}{50, true, nil})
	require.NoError(t, err)
	assert.Equal(t, 1, label)
}

func TestCopyExcludingTiesGoToFirstEncountered(t *testing.T) {
	examples := []dataset.Example{{50, true, 1}, {80, true, 0}}
	st, ok := humidTree().CopyExcludingPath(Path{true}, examples, 2)
	require.True(t, ok)
	branch, _ := st.Node().Branch(true)
	assert.Equal(t, 1, branch.Label())
}

func TestCopyExcludingUnknownTarget(t *testing.T) {
	root := humidTree()
	st, ok := root.CopyExcluding("Pressure", nil, 2)
	assert.False(t, ok)
	assert.True(t, st.Node().EqualNamed(root))
	assert.NotSame(t, root, st.Node())

	st, ok = root.CopyExcludingPath(Path{false}, nil, 2)
	assert.False(t, ok)
	assert.True(t, st.Node().Equal(root))

	st, ok = root.CopyExcludingPath(nil, []dataset.Example{{50, true, 0}}, 2)
	assert.True(t, ok)
	assert.True(t, st.IsLeaf())
	assert.Equal(t, 0, st.Label())
}

func TestCopyIsDeep(t *testing.T) {
	root := humidTree()
	cp := root.Copy()
	require.True(t, cp.EqualNamed(root))
	temp, _ := cp.At(Path{true})
	temp.AddBranch(65, Leaf(0))
	temp.Name = "Other"
	assert.False(t, cp.Equal(root))
	orig, _ := root.At(Path{true})
	assert.Equal(t, 2, orig.Len())
	assert.Equal(t, "Temp", orig.Name)
}

func TestEqual(t *testing.T) {
	a := humidTree()
	b := humidTree()
	b.UniquifyNames()
	assert.True(t, a.Equal(b))
	assert.False(t, a.EqualNamed(b))
	c := NewNode(1).AddBranch(false, Leaf(1)).AddBranch(true, Leaf(0))
	assert.False(t, a.Equal(c))
	assert.True(t, Leaf(1).Equal(Leaf(1)))
	assert.False(t, Leaf(1).Equal(Internal(a)))
}

func TestSizeAndDepth(t *testing.T) {
	root := humidTree()
	assert.Equal(t, 2, root.Size())
	assert.Equal(t, 2, root.Depth())
	assert.Equal(t, 0, Leaf(1).Size())
	assert.Equal(t, 0, Leaf(1).Depth())
	assert.Equal(t, 2, Internal(root).Depth())
}

func TestRender(t *testing.T) {
	features := []*feature.DiscreteFeature{
		feature.NewDiscreteFeature("Temp", []interface{}{50, 80}),
		feature.NewDiscreteFeature("Humid", []interface{}{true, false}),
	}
	expected := `[Humid]
|
|__Humid is true
|  [Temp]
|  |
|  |__Temp is 50
|  |  { 0 }
|  |__Temp is 80
|     { 1 }
|__Humid is false
   { 1 }
`
	assert.Equal(t, expected, Internal(humidTree()).Render(features))
	assert.Contains(t, humidTree().String(), "#1 is true")
	assert.Equal(t, "{ yes }\n", Leaf("yes").String())
}
