package arbor_test

import (
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/stretchr/testify/require"
)

var restaurantAttributes = []string{"Alt", "Bar", "Fri", "Hun", "Pat", "Price", "Rain", "Res", "Type", "Est", "WillWait"}

func restaurantExamples() []dataset.Example {
	return []dataset.Example{
		{"Yes", "No", "No", "Yes", "Some", "$$$", "No", "Yes", "French", "0-10", "Yes"},
		{"Yes", "No", "No", "Yes", "Full", "$", "No", "No", "Thai", "30-60", "No"},
		{"No", "Yes", "No", "No", "Some", "$", "No", "No", "Burger", "0-10", "Yes"},
		{"Yes", "No", "Yes", "Yes", "Full", "$", "Yes", "No", "Thai", "10-30", "Yes"},
		{"Yes", "No", "Yes", "No", "Full", "$$$", "No", "Yes", "French", ">60", "No"},
		{"No", "Yes", "No", "Yes", "Some", "$$", "Yes", "Yes", "Italian", "0-10", "Yes"},
		{"No", "Yes", "No", "No", "None", "$", "Yes", "No", "Burger", "0-10", "No"},
		{"No", "No", "No", "Yes", "Some", "$$", "Yes", "Yes", "Thai", "0-10", "Yes"},
		{"No", "Yes", "Yes", "No", "Full", "$", "Yes", "No", "Burger", ">60", "No"},
		{"Yes", "Yes", "Yes", "Yes", "Full", "$$$", "No", "Yes", "Italian", "10-30", "No"},
		{"No", "No", "No", "No", "None", "$", "No", "No", "Thai", "0-10", "No"},
		{"Yes", "Yes", "Yes", "Yes", "Full", "$", "No", "No", "Burger", "30-60", "Yes"},
	}
}

func restaurant(t *testing.T) *dataset.Dataset {
	ds, err := dataset.New(restaurantExamples(), dataset.WithAttributeNames(restaurantAttributes...), dataset.WithName("restaurant"))
	require.NoError(t, err)
	return ds
}

// simple is the dataset in which attribute 1 determines the target at
// index 0 and attribute 2 is noise.
func simple(t *testing.T) *dataset.Dataset {
	ds, err := dataset.New([]dataset.Example{{0, 0, 0}, {0, 0, 1}, {1, 1, 0}, {1, 1, 1}}, dataset.WithTarget(0))
	require.NoError(t, err)
	return ds
}

// equality has 40 examples whose target is whether their two attributes
// are equal, ten of each combination of values.
func equality(t *testing.T) *dataset.Dataset {
	var examples []dataset.Example
	for i := 0; i < 40; i++ {
		a, b := i%2, (i/2)%2
		target := "no"
		if a == b {
			target = "yes"
		}
		examples = append(examples, dataset.Example{a, b, target})
	}
	ds, err := dataset.New(examples, dataset.WithAttributeNames("A", "B", "Equal"))
	require.NoError(t, err)
	return ds
}

func snapshot(ds *dataset.Dataset) []dataset.Example {
	return append([]dataset.Example(nil), ds.Examples...)
}

func featureOf(name string, values ...interface{}) *feature.DiscreteFeature {
	return feature.NewDiscreteFeature(name, values)
}
