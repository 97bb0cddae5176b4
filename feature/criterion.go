package feature

import "fmt"

/*
Criterion represents a constraint on a feature

Its SatisfiedBy method takes a sample and returns a boolean indicating if
the sample satisfies the feature criterion.

Its Feature method returns the feature on which the criterion is applied.
*/
type Criterion interface {
	Feature() Feature
	SatisfiedBy(sample []interface{}) bool
}

/*
DiscreteCriterion represents a constraint on a discrete feature, a
value it must take.

Its Index method returns the position of the feature in the samples and
its Value method returns the value to which the feature is constrained.
*/
type DiscreteCriterion interface {
	Criterion
	Index() int
	Value() interface{}
}

type discreteCriterion struct {
	index   int
	feature Feature
	value   interface{}
}

/*
NewDiscreteCriterion takes the position of a feature in samples, the
feature itself and a value, and returns a DiscreteCriterion satisfied
by samples holding that value at that position.
*/
func NewDiscreteCriterion(index int, f Feature, value interface{}) DiscreteCriterion {
	return &discreteCriterion{index, f, value}
}

/*
Feature returns the feature to which the constraint applies.
*/
func (dc *discreteCriterion) Feature() Feature {
	return dc.feature
}

/*
SatisfiedBy receives a sample and returns true if its value at the position
of the criterion equals the value of the criterion. Samples too short to hold
a value at that position never satisfy it.
*/
func (dc *discreteCriterion) SatisfiedBy(sample []interface{}) bool {
	if dc.index < 0 || dc.index >= len(sample) {
		return false
	}
	return sample[dc.index] == dc.value
}

func (dc *discreteCriterion) Index() int {
	return dc.index
}

func (dc *discreteCriterion) Value() interface{} {
	return dc.value
}

func (dc *discreteCriterion) String() string {
	name := fmt.Sprintf("#%d", dc.index)
	if dc.feature != nil {
		name = dc.feature.Name()
	}
	return fmt.Sprintf("%s is %v", name, dc.value)
}
