package tree

import (
	"fmt"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrMissingBranch is the error returned by the Predict methods when an example
holds a value for which the tree has no branch. Errors returned for that
reason are *MissingBranchError values wrapping it, so errors.Is can be used
to test for it.
*/
const ErrMissingBranch = PredictionError("no branch for the value of the example")

/*
ErrTreeNotFound is the error returned by a Store when asked for a tree it
does not hold.
*/
const ErrTreeNotFound = PredictionError("tree not found")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
MissingBranchError describes the node at which an example could not be
predicted: the index of the tested attribute, the name of the node and the
value of the example that no branch matches.
*/
type MissingBranchError struct {
	Feature int
	Name    string
	Value   interface{}
}

func (mbe *MissingBranchError) Error() string {
	return fmt.Sprintf("%v: node %q has no branch for value %v of attribute %d", ErrMissingBranch, mbe.Name, mbe.Value, mbe.Feature)
}

// Unwrap returns ErrMissingBranch
func (mbe *MissingBranchError) Unwrap() error {
	return ErrMissingBranch
}

/*
Predict takes an example and follows the branches matching its values from
the node down to a leaf, returning the label of the leaf. If the example holds
a value for which there is no branch a *MissingBranchError is returned.
*/
func (n *Node) Predict(example []interface{}) (interface{}, error) {
	cur := n
	for {
		var value interface{}
		if cur.Feature >= 0 && cur.Feature < len(example) {
			value = example[cur.Feature]
		}
		st, ok := cur.children[value]
		if !ok {
			return nil, &MissingBranchError{Feature: cur.Feature, Name: cur.Name, Value: value}
		}
		if st.IsLeaf() {
			return st.label, nil
		}
		cur = st.node
	}
}

/*
Predict takes an example and returns the label the subtree predicts for it:
the label of a leaf, or the prediction of the root node of an internal subtree.
*/
func (st Subtree) Predict(example []interface{}) (interface{}, error) {
	if st.IsLeaf() {
		return st.label, nil
	}
	return st.node.Predict(example)
}
