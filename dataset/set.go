package dataset

import (
	"fmt"

	"github.com/pbanos/arbor/feature"
)

/*
Dataset represents a collection of examples together with the metadata
needed to learn from them: a discrete feature for each attribute (whose
available values are the attribute's domain), the indices of the input
attributes and the index of the target attribute.

The metadata of a Dataset must not be modified once built. Its Examples may
be read freely; handles over other example subsets sharing the same metadata
are obtained with WithExamples.
*/
type Dataset struct {
	Name     string
	Features []*feature.DiscreteFeature
	Inputs   []int
	Target   int
	Examples []Example
}

/*
Option configures a Dataset built with New
*/
type Option func(*config)

type config struct {
	name     string
	target   int
	features []*feature.DiscreteFeature
	names    []string
	inputs   []int
	excluded []int
}

/*
WithName sets the name of the dataset.
*/
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

/*
WithTarget sets the index of the target attribute. Negative indices count
from the end, so -1 (the default) is the last attribute.
*/
func WithTarget(target int) Option {
	return func(c *config) { c.target = target }
}

/*
WithFeatures declares a feature for every attribute. The available values of
each feature become the domain of its attribute.
*/
func WithFeatures(features ...*feature.DiscreteFeature) Option {
	return func(c *config) { c.features = features }
}

/*
WithAttributeNames names the attributes whose domains are computed from the
examples. It is ignored when features are declared with WithFeatures.
*/
func WithAttributeNames(names ...string) Option {
	return func(c *config) { c.names = names }
}

/*
WithInputs sets the indices of the attributes to learn from. By default every
attribute but the target and the excluded ones is an input.
*/
func WithInputs(inputs ...int) Option {
	return func(c *config) { c.inputs = inputs }
}

/*
WithExcluded sets indices of attributes that must not be used as inputs.
*/
func WithExcluded(excluded ...int) Option {
	return func(c *config) { c.excluded = excluded }
}

/*
New takes a slice of examples and a set of options and returns a Dataset or
an error if the examples are not consistent with the resulting metadata.

When no features are declared, the domain of every attribute is made of the
values found in the examples in order of first appearance.
*/
func New(examples []Example, opts ...Option) (*Dataset, error) {
	c := &config{target: -1}
	for _, opt := range opts {
		opt(c)
	}
	features := c.features
	if features == nil {
		var err error
		features, err = featuresFromExamples(examples, c.names)
		if err != nil {
			return nil, err
		}
	}
	arity := len(features)
	target := c.target
	if target < 0 {
		target += arity
	}
	if target < 0 || target >= arity {
		return nil, fmt.Errorf("target index %d out of range for %d attributes", c.target, arity)
	}
	inputs := c.inputs
	if inputs == nil {
		excluded := make(map[int]bool, len(c.excluded)+1)
		for _, e := range c.excluded {
			excluded[e] = true
		}
		excluded[target] = true
		for i := 0; i < arity; i++ {
			if !excluded[i] {
				inputs = append(inputs, i)
			}
		}
	}
	for _, in := range inputs {
		if in < 0 || in >= arity {
			return nil, fmt.Errorf("input attribute %d out of range for %d attributes", in, arity)
		}
		if in == target {
			return nil, fmt.Errorf("target attribute %d cannot be an input", target)
		}
	}
	ds := &Dataset{
		Name:     c.name,
		Features: features,
		Inputs:   inputs,
		Target:   target,
	}
	for i, e := range examples {
		if err := ds.Check(e); err != nil {
			return nil, fmt.Errorf("example #%d: %v", i, err)
		}
	}
	ds.Examples = examples
	return ds, nil
}

func featuresFromExamples(examples []Example, names []string) ([]*feature.DiscreteFeature, error) {
	arity := len(names)
	if len(examples) > 0 {
		arity = len(examples[0])
	}
	if arity == 0 {
		return nil, fmt.Errorf("cannot infer attributes without examples or names")
	}
	if names != nil && len(names) != arity {
		return nil, fmt.Errorf("got %d attribute names for examples with %d attributes", len(names), arity)
	}
	values := make([][]interface{}, arity)
	for i, e := range examples {
		if len(e) != arity {
			return nil, fmt.Errorf("example #%d has %d attributes, expected %d", i, len(e), arity)
		}
		for a, v := range e {
			values[a] = append(values[a], v)
		}
	}
	features := make([]*feature.DiscreteFeature, arity)
	for a := range features {
		name := fmt.Sprintf("%d", a)
		if names != nil {
			name = names[a]
		}
		features[a] = feature.NewDiscreteFeature(name, values[a])
	}
	return features, nil
}

/*
Values returns the domain of the given attribute in its defined order.
*/
func (ds *Dataset) Values(attr int) []interface{} {
	return ds.Features[attr].AvailableValues()
}

/*
AttributeName returns the name of the given attribute.
*/
func (ds *Dataset) AttributeName(attr int) string {
	return ds.Features[attr].Name()
}

/*
Check returns an error if the example does not have a value for every
attribute or any of its values is outside the domain of its attribute.
*/
func (ds *Dataset) Check(e Example) error {
	if len(e) != len(ds.Features) {
		return fmt.Errorf("example has %d attributes, expected %d", len(e), len(ds.Features))
	}
	for a, f := range ds.Features {
		if _, err := f.Valid(e[a]); err != nil {
			return fmt.Errorf("attribute %d: %v", a, err)
		}
	}
	return nil
}

/*
Add checks the example and appends it to the examples of the dataset.
*/
func (ds *Dataset) Add(e Example) error {
	if err := ds.Check(e); err != nil {
		return err
	}
	ds.Examples = append(ds.Examples, e)
	return nil
}

/*
Sanitize returns a copy of the example in which every attribute that is not
an input is replaced by nil, so that predictions cannot look at the target.
*/
func (ds *Dataset) Sanitize(e Example) Example {
	result := make(Example, len(e))
	for _, in := range ds.Inputs {
		if in < len(e) {
			result[in] = e[in]
		}
	}
	return result
}

/*
WithExamples returns a new handle on the dataset that shares its metadata
and holds the given examples. The examples slice is copied, so reordering the
examples of either handle never affects the other.
*/
func (ds *Dataset) WithExamples(examples []Example) *Dataset {
	return &Dataset{
		Name:     ds.Name,
		Features: ds.Features,
		Inputs:   ds.Inputs,
		Target:   ds.Target,
		Examples: append([]Example(nil), examples...),
	}
}

/*
SubsetWith returns the examples among the given ones that satisfy the
criterion, keeping their order.
*/
func (ds *Dataset) SubsetWith(examples []Example, c feature.Criterion) []Example {
	var result []Example
	for _, e := range examples {
		if c.SatisfiedBy(e) {
			result = append(result, e)
		}
	}
	return result
}

/*
Criterion returns the criterion satisfied by examples holding the given value
for the given attribute.
*/
func (ds *Dataset) Criterion(attr int, value interface{}) feature.DiscreteCriterion {
	return feature.NewDiscreteCriterion(attr, ds.Features[attr], value)
}

func (ds *Dataset) String() string {
	return fmt.Sprintf("%s[ %d examples, %d inputs, target %s ]", ds.Name, len(ds.Examples), len(ds.Inputs), ds.AttributeName(ds.Target))
}

/*
SplitBy takes an attribute and a slice of examples and returns, for each value
in the domain of the attribute and in domain order, the examples holding that
value. Values no example holds get an empty slice.
*/
func (ds *Dataset) SplitBy(attr int, examples []Example) [][]Example {
	values := ds.Values(attr)
	result := make([][]Example, len(values))
	for i, v := range values {
		result[i] = ds.SubsetWith(examples, ds.Criterion(attr, v))
	}
	return result
}
