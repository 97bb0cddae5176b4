/*
Package json serializes decision trees as JSON documents.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
)

type jsonTree struct {
	Target string   `json:"target"`
	Tree   *subtree `json:"tree"`
}

/*
WriteJSONTree takes an io.Writer, a tree.Subtree, the features of the
attributes of the examples it predicts and the index of the target attribute
and serializes the tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "target": a string with the name of the feature the tree predicts
* "tree": the root of the tree, an object with a "label" string field for
  leaves, or "name", "feature" and "branches" fields for internal nodes.
  Each branch is an object with the "value" string for which it is
  followed and the "subtree" it leads to.
An error is returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func WriteJSONTree(w io.Writer, st tree.Subtree, features []*feature.DiscreteFeature, target int) error {
	jt, err := newJSONTree(st, features, target)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(jt)
}

/*
ReadJSONTree takes an io.Reader and the features of the attributes of the
examples a tree predicts and returns the tree read from the io.Reader and
the index of its target attribute, or an error.
Values and labels are restored to the available values of their features,
so the tree predicts values of the same types as the examples hold.
*/
func ReadJSONTree(r io.Reader, features []*feature.DiscreteFeature) (tree.Subtree, int, error) {
	jt := &jsonTree{}
	err := json.NewDecoder(r).Decode(jt)
	if err != nil {
		return tree.Subtree{}, -1, err
	}
	return jt.decode(features)
}

func newJSONTree(st tree.Subtree, features []*feature.DiscreteFeature, target int) (*jsonTree, error) {
	if target < 0 || target >= len(features) {
		return nil, fmt.Errorf("no feature for target attribute %d", target)
	}
	js, err := encodeSubtree(st, features)
	if err != nil {
		return nil, err
	}
	return &jsonTree{Target: features[target].Name(), Tree: js}, nil
}

func (jt *jsonTree) decode(features []*feature.DiscreteFeature) (tree.Subtree, int, error) {
	target := -1
	for i, f := range features {
		if f.Name() == jt.Target {
			target = i
			break
		}
	}
	if target < 0 {
		return tree.Subtree{}, -1, fmt.Errorf("no target feature defined")
	}
	st, err := decodeSubtree(jt.Tree, features, features[target])
	if err != nil {
		return tree.Subtree{}, -1, err
	}
	return st, target, nil
}
