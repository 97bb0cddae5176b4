package arbor

import (
	"math"

	"github.com/pbanos/arbor/dataset"
)

/*
Partition is a subset of examples that hold a given value for an attribute.
*/
type Partition struct {
	Value    interface{}
	Examples []dataset.Example
}

/*
Entropy takes a slice of partitions and returns the entropy in bits of the
distribution of examples among them: -Σ p·log2(p), with p being the
proportion of examples in each partition. Empty partitions contribute 0, and
so does a slice of partitions without examples.
*/
func Entropy(partitions []Partition) float64 {
	var total int
	for _, p := range partitions {
		total += len(p.Examples)
	}
	if total == 0 {
		return 0.0
	}
	var result float64
	for _, p := range partitions {
		if len(p.Examples) == 0 {
			continue
		}
		prop := float64(len(p.Examples)) / float64(total)
		result -= prop * math.Log2(prop)
	}
	return result
}

/*
SplitBy takes a dataset, an attribute and a slice of examples and returns a
partition of the examples for each value in the domain of the attribute, in
domain order.
*/
func SplitBy(ds *dataset.Dataset, attr int, examples []dataset.Example) []Partition {
	values := ds.Values(attr)
	subsets := ds.SplitBy(attr, examples)
	result := make([]Partition, len(values))
	for i, v := range values {
		result[i] = Partition{Value: v, Examples: subsets[i]}
	}
	return result
}

/*
InformationGain takes a dataset, an attribute and a slice of examples and
returns the information gain of splitting the examples by the attribute: the
entropy of their target values minus the weighted average of the entropies
of the target values in each of the resulting partitions.
*/
func InformationGain(ds *dataset.Dataset, attr int, examples []dataset.Example) float64 {
	if len(examples) == 0 {
		return 0.0
	}
	result := Entropy(SplitBy(ds, ds.Target, examples))
	size := float64(len(examples))
	for _, p := range SplitBy(ds, attr, examples) {
		if len(p.Examples) == 0 {
			continue
		}
		result -= Entropy(SplitBy(ds, ds.Target, p.Examples)) * float64(len(p.Examples)) / size
	}
	return result
}
