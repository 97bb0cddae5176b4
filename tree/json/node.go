package json

import (
	"encoding/json"
	"fmt"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
)

/*
EncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type EncodeDecoder interface {

	//Encode receives a tree.Subtree
	//and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(tree.Subtree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a tree.Subtree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (tree.Subtree, error)
}

type subtree struct {
	Label    *string   `json:"label,omitempty"`
	Name     string    `json:"name,omitempty"`
	Feature  string    `json:"feature,omitempty"`
	Branches []*branch `json:"branches,omitempty"`
}

type branch struct {
	Value   string   `json:"value"`
	Subtree *subtree `json:"subtree"`
}

func encodeSubtree(st tree.Subtree, features []*feature.DiscreteFeature) (*subtree, error) {
	if st.IsLeaf() {
		label := fmt.Sprintf("%v", st.Label())
		return &subtree{Label: &label}, nil
	}
	n := st.Node()
	if n.Feature < 0 || n.Feature >= len(features) {
		return nil, fmt.Errorf("encoding node %q: no feature for attribute %d", n.Name, n.Feature)
	}
	js := &subtree{Name: n.Name, Feature: features[n.Feature].Name()}
	for _, v := range n.Values() {
		child, _ := n.Branch(v)
		jchild, err := encodeSubtree(child, features)
		if err != nil {
			return nil, err
		}
		js.Branches = append(js.Branches, &branch{Value: fmt.Sprintf("%v", v), Subtree: jchild})
	}
	return js, nil
}

func decodeSubtree(js *subtree, features []*feature.DiscreteFeature, target *feature.DiscreteFeature) (tree.Subtree, error) {
	if js == nil {
		return tree.Subtree{}, fmt.Errorf("missing subtree")
	}
	if js.Label != nil {
		label, ok := target.Lookup(*js.Label)
		if !ok {
			return tree.Subtree{}, fmt.Errorf("invalid label %q for feature %s", *js.Label, target.Name())
		}
		return tree.Leaf(label), nil
	}
	fi := -1
	for i, f := range features {
		if f.Name() == js.Feature {
			fi = i
			break
		}
	}
	if fi < 0 {
		return tree.Subtree{}, fmt.Errorf("unmarshalling node %q: unknown feature %q", js.Name, js.Feature)
	}
	n := tree.NewNode(fi)
	n.Name = js.Name
	for _, b := range js.Branches {
		v, ok := features[fi].Lookup(b.Value)
		if !ok {
			return tree.Subtree{}, fmt.Errorf("unmarshalling node %q: invalid value %q for feature %s", js.Name, b.Value, js.Feature)
		}
		child, err := decodeSubtree(b.Subtree, features, target)
		if err != nil {
			return tree.Subtree{}, err
		}
		n.AddBranch(v, child)
	}
	return tree.Internal(n), nil
}

type encodeDecoder struct {
	features []*feature.DiscreteFeature
	target   int
}

/*
NewEncodeDecoder returns an EncodeDecoder that encodes trees predicting the
target attribute of examples with the given features in the format of
WriteJSONTree.
*/
func NewEncodeDecoder(features []*feature.DiscreteFeature, target int) EncodeDecoder {
	return &encodeDecoder{features, target}
}

func (ed *encodeDecoder) Encode(st tree.Subtree) ([]byte, error) {
	jt, err := newJSONTree(st, ed.features, ed.target)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jt)
}

func (ed *encodeDecoder) Decode(data []byte) (tree.Subtree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return tree.Subtree{}, err
	}
	st, target, err := jt.decode(ed.features)
	if err != nil {
		return tree.Subtree{}, err
	}
	if target != ed.target {
		return tree.Subtree{}, fmt.Errorf("decoded tree predicts %s instead of %s", ed.features[target].Name(), ed.features[ed.target].Name())
	}
	return st, nil
}
