package arbor

import (
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

/*
MajorityValue takes a dataset and a slice of examples and returns the most
frequent target value among the examples. Ties go to the value that comes
first in the domain of the target, so for an empty slice of examples the
first value of the domain is returned.
*/
func MajorityValue(ds *dataset.Dataset, examples []dataset.Example) interface{} {
	var best interface{}
	bestCount := -1
	for _, v := range ds.Values(ds.Target) {
		c := dataset.Count(ds.Target, v, examples)
		if c > bestCount {
			best = v
			bestCount = c
		}
	}
	return best
}

/*
Split is the result of choosing an attribute to branch a node on: the
attribute, the partitions of the examples reaching the node by its values
and the information gain obtained.
*/
type Split struct {
	Attribute       int
	Partitions      []Partition
	InformationGain float64
}

func chooseAttribute(ds *dataset.Dataset, attrs []int, examples []dataset.Example) (int, float64) {
	best := attrs[0]
	bestGain := InformationGain(ds, best, examples)
	for _, a := range attrs[1:] {
		g := InformationGain(ds, a, examples)
		if g > bestGain {
			best = a
			bestGain = g
		}
	}
	return best, bestGain
}

func sameClass(ds *dataset.Dataset, examples []dataset.Example) (interface{}, bool) {
	class := examples[0][ds.Target]
	for _, e := range examples[1:] {
		if e[ds.Target] != class {
			return nil, false
		}
	}
	return class, true
}

func without(attrs []int, attr int) []int {
	result := make([]int, 0, len(attrs))
	for _, a := range attrs {
		if a != attr {
			result = append(result, a)
		}
	}
	return result
}

// induce grows a tree for the examples testing the given attributes, with
// def as the prediction when no examples are left.
func (l *DecisionTreeLearner) induce(ds *dataset.Dataset, examples []dataset.Example, attrs []int, def interface{}) tree.Subtree {
	if len(examples) == 0 {
		return tree.Leaf(def)
	}
	if class, ok := sameClass(ds, examples); ok {
		return tree.Leaf(class)
	}
	majority := MajorityValue(ds, examples)
	if len(attrs) == 0 {
		return tree.Leaf(majority)
	}
	best, gain := chooseAttribute(ds, attrs, examples)
	split := &Split{Attribute: best, Partitions: SplitBy(ds, best, examples), InformationGain: gain}
	if l.Pruner != nil && l.Pruner.Prune(ds, examples, split) {
		return tree.Leaf(majority)
	}
	n := tree.NewNode(best)
	n.Name = ds.AttributeName(best)
	rest := without(attrs, best)
	for _, p := range split.Partitions {
		n.AddBranch(p.Value, l.induce(ds, p.Examples, rest, majority))
	}
	return tree.Internal(n)
}
