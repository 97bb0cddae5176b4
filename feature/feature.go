package feature

import "fmt"

/*
Feature represents a property that can be observed
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
DiscreteFeature represents a property that can be observed and that can only
take a value among a finite, ordered set.

The order of the available values is significant: it is the order in which
branches are enumerated when growing a tree and the order that breaks ties
when looking for the most frequent value of a feature.
*/
type DiscreteFeature struct {
	name            string
	availableValues []interface{}
}

/*
NewDiscreteFeature takes a name string and a slice of available values
and returns a discrete feature with the given name and available values.
Duplicated values are dropped, keeping the first occurrence.
*/
func NewDiscreteFeature(name string, availableValues []interface{}) *DiscreteFeature {
	values := make([]interface{}, 0, len(availableValues))
	seen := make(map[interface{}]bool, len(availableValues))
	for _, v := range availableValues {
		if seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return &DiscreteFeature{name, values}
}

/*
Name returns a string with the name of the feature
*/
func (df *DiscreteFeature) Name() string {
	return df.name
}

/*
Valid receives an interface value and returns a boolean and an error. When the
value parameter is included in the available values of the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (df *DiscreteFeature) Valid(value interface{}) (bool, error) {
	if df.Index(value) >= 0 {
		return true, nil
	}
	return false, fmt.Errorf("discrete feature %s got unknown value %v", df.Name(), value)
}

/*
Index returns the position of the given value among the available values of
the feature, or -1 if it is not one of them.
*/
func (df *DiscreteFeature) Index(value interface{}) int {
	for i, av := range df.availableValues {
		if av == value {
			return i
		}
	}
	return -1
}

/*
AvailableValues returns a slice with the values available for the feature
in their defined order
*/
func (df *DiscreteFeature) AvailableValues() []interface{} {
	return df.availableValues
}

/*
Lookup takes the textual representation of a value and returns the available
value whose representation matches it. It is used to restore typed values
read from text sources such as JSON documents or user input.
*/
func (df *DiscreteFeature) Lookup(text string) (interface{}, bool) {
	for _, av := range df.availableValues {
		if fmt.Sprintf("%v", av) == text {
			return av, true
		}
	}
	return nil, false
}

func (df *DiscreteFeature) String() string {
	return df.name
}
