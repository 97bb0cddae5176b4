/*
Package yaml provides methods to parse feature.DiscreteFeature specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/arbor/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadFeatures takes a slice of bytes with a feature specification in YML and
returns a slice of features parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be an object with a property for each feature with its name and a list of
valid values for it.

Features are returned in the order they are declared, and so are their values.
Values are kept as strings, which is how they are read from CSV and SQL sources.
*/
func ReadFeatures(md []byte) ([]*feature.DiscreteFeature, error) {
	order := struct {
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &order)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: %v", err)
	}
	if order.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	// Decoding values into strings keeps their literal text: YAML would
	// otherwise turn values such as Yes or No into booleans.
	metadata := struct {
		Features map[string][]string
	}{}
	err = yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml features: invalid declaration: %v", err)
	}
	features := make([]*feature.DiscreteFeature, 0, len(order.Features))
	for _, item := range order.Features {
		fn, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("invalid feature name %v: names must be strings", item.Key)
		}
		values := metadata.Features[fn]
		if len(values) == 0 {
			return nil, fmt.Errorf("feature %s declares no values", fn)
		}
		vs := make([]interface{}, 0, len(values))
		for _, v := range values {
			vs = append(vs, v)
		}
		features = append(features, feature.NewDiscreteFeature(fn, vs))
	}
	return features, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return a slice of parsed features or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) ([]*feature.DiscreteFeature, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading features yml file %s: %v", filepath, err)
	}
	features, err := ReadFeatures(md)
	if err != nil {
		err = fmt.Errorf("parsing features yml file %s: %v", filepath, err)
	}
	return features, err
}
