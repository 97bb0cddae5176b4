package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weatherFeatures() []*feature.DiscreteFeature {
	return []*feature.DiscreteFeature{
		feature.NewDiscreteFeature("Temp", []interface{}{50, 80}),
		feature.NewDiscreteFeature("Humid", []interface{}{true, false}),
		feature.NewDiscreteFeature("Play", []interface{}{"no", "yes"}),
	}
}

func weatherTree() tree.Subtree {
	temp := tree.NewNode(0)
	temp.AddBranch(50, tree.Leaf("no")).AddBranch(80, tree.Leaf("yes"))
	humid := tree.NewNode(1)
	humid.AddBranch(true, tree.Internal(temp)).AddBranch(false, tree.Leaf("yes"))
	humid.UniquifyNames()
	return tree.Internal(humid)
}

func TestWriteThenReadJSONTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(&buf, weatherTree(), weatherFeatures(), 2))
	assert.Contains(t, buf.String(), `"target":"Play"`)
	st, target, err := ReadJSONTree(&buf, weatherFeatures())
	require.NoError(t, err)
	assert.Equal(t, 2, target)
	assert.True(t, st.Node().EqualNamed(weatherTree().Node()))
	label, err := st.Predict([]interface{}{80, true, nil})
	require.NoError(t, err)
	assert.Equal(t, "yes", label)
}

func TestLeafTree(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONTree(&buf, tree.Leaf("no"), weatherFeatures(), 2))
	st, _, err := ReadJSONTree(&buf, weatherFeatures())
	require.NoError(t, err)
	assert.True(t, st.IsLeaf())
	assert.Equal(t, "no", st.Label())
}

func TestWriteJSONTreeErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteJSONTree(&buf, weatherTree(), weatherFeatures(), 3))
	assert.Error(t, WriteJSONTree(&buf, weatherTree(), weatherFeatures()[:1], 0))
}

func TestReadJSONTreeErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"target":`},
		{"unknown target", `{"target":"Wind","tree":{"label":"no"}}`},
		{"missing tree", `{"target":"Play"}`},
		{"invalid label", `{"target":"Play","tree":{"label":"maybe"}}`},
		{"unknown feature", `{"target":"Play","tree":{"name":"Node0","feature":"Wind","branches":[]}}`},
		{"invalid value", `{"target":"Play","tree":{"name":"Node0","feature":"Temp","branches":[{"value":"65","subtree":{"label":"no"}}]}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ReadJSONTree(strings.NewReader(tc.doc), weatherFeatures())
			assert.Error(t, err)
		})
	}
}

func TestEncodeDecoder(t *testing.T) {
	ed := NewEncodeDecoder(weatherFeatures(), 2)
	data, err := ed.Encode(weatherTree())
	require.NoError(t, err)
	st, err := ed.Decode(data)
	require.NoError(t, err)
	assert.True(t, st.Equal(weatherTree()))

	other := NewEncodeDecoder(weatherFeatures(), 1)
	_, err = other.Decode(data)
	assert.Error(t, err)
}
