/*
Package mongodataset loads datasets from and stores examples in MongoDB
collections, one document per example and one field per feature.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

/*
DefaultCollection is the name of the collection used when an empty collection
name is given.
*/
const DefaultCollection = "examples"

/*
Load takes a context, a MongoDB session, the name of a collection on the
default database of the session, a slice of features, the name of the target
feature and optionally some criteria. It returns a dataset.Dataset with an
example per document in the collection satisfying the criteria, with its
attributes in the order of the given features, or an error.

Documents missing a field for a feature or holding a value outside the
feature's domain make Load fail.
*/
func Load(ctx context.Context, session *mgo.Session, collection string, features []*feature.DiscreteFeature, target string, criteria ...feature.DiscreteCriterion) (*dataset.Dataset, error) {
	targetIndex := -1
	for i, f := range features {
		if f.Name() == target {
			targetIndex = i
		}
	}
	if targetIndex < 0 {
		return nil, fmt.Errorf("target feature %q is not among the features", target)
	}
	var examples []dataset.Example
	iter := samplesCollection(session, collection).Find(query(criteria)).Iter()
	defer iter.Close()
	var doc bson.M
	for n := 0; iter.Next(&doc); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e, err := ExampleFromDocument(doc, features)
		if err != nil {
			return nil, fmt.Errorf("document #%d: %v", n, err)
		}
		examples = append(examples, e)
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading examples from collection %s: %v", collection, err)
	}
	return dataset.New(examples, dataset.WithFeatures(features...), dataset.WithTarget(targetIndex), dataset.WithName(collection))
}

/*
Write takes a context, a MongoDB session, the name of a collection and a
dataset, ensures an index exists for every feature of the dataset and inserts
its examples into the collection. It returns the number of inserted examples
and an error if they could not be inserted.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, ds *dataset.Dataset) (int, error) {
	c := samplesCollection(session, collection)
	err := ensureIndexes(c, ds.Features)
	if err != nil {
		return 0, err
	}
	if err = ctx.Err(); err != nil {
		return 0, err
	}
	if len(ds.Examples) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(ds.Examples))
	for _, e := range ds.Examples {
		doc, err := DocumentFromExample(e, ds.Features)
		if err != nil {
			return 0, err
		}
		docs = append(docs, doc)
	}
	err = c.Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting examples into collection %s: %v", collection, err)
	}
	return len(docs), nil
}

/*
ExampleFromDocument takes a document and a slice of features and returns the
example holding the value of the document's field for each feature. Field
values are matched against the domain of their feature by their textual
representation.
*/
func ExampleFromDocument(doc bson.M, features []*feature.DiscreteFeature) (dataset.Example, error) {
	e := make(dataset.Example, len(features))
	for i, f := range features {
		raw, ok := doc[f.Name()]
		if !ok || raw == nil {
			return nil, fmt.Errorf("missing value for feature %s", f.Name())
		}
		value, ok := f.Lookup(fmt.Sprintf("%v", raw))
		if !ok {
			return nil, fmt.Errorf("invalid value %v for feature %s", raw, f.Name())
		}
		e[i] = value
	}
	return e, nil
}

/*
DocumentFromExample takes an example and the features of its attributes and
returns the document that stores it.
*/
func DocumentFromExample(e dataset.Example, features []*feature.DiscreteFeature) (bson.M, error) {
	if len(e) != len(features) {
		return nil, fmt.Errorf("example has %d attributes, expected %d", len(e), len(features))
	}
	doc := make(bson.M, len(features))
	for i, f := range features {
		if err := validFieldName(f.Name()); err != nil {
			return nil, err
		}
		doc[f.Name()] = e[i]
	}
	return doc, nil
}

func ensureIndexes(c *mgo.Collection, features []*feature.DiscreteFeature) error {
	for _, f := range features {
		fName := f.Name()
		if err := validFieldName(fName); err != nil {
			return err
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := c.EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func validFieldName(fName string) error {
	if fName == "_id" {
		return fmt.Errorf("invalid feature name %q: reserved collection field", "_id")
	}
	if strings.ContainsAny(fName, ".$") {
		return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
	}
	return nil
}

func samplesCollection(session *mgo.Session, collection string) *mgo.Collection {
	if collection == "" {
		collection = DefaultCollection
	}
	return session.DB("").C(collection)
}

func query(criteria []feature.DiscreteCriterion) bson.M {
	q := make(bson.M, len(criteria))
	for _, c := range criteria {
		q[c.Feature().Name()] = c.Value()
	}
	return q
}
