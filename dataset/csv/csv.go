/*
Package csv reads datasets from and writes examples to CSV streams.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

/*
Writer is an interface for a destination to which examples
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given examples and will
	// return the actually written number of examples and an error
	// (if not all examples could be written)
	Write([]dataset.Example) (int, error)
	// Count returns the total number of examples written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

type csvWriter struct {
	count    int
	features []*feature.DiscreteFeature
	w        *csv.Writer
}

/*
ReadDataset takes an io.Reader for a CSV stream, a slice of features and the
name of the target feature and returns a dataset.Dataset with the examples
parsed from the reader or an error.

The header or first row of the CSV content is expected to consist of names
of features in the given slice. The columns of the resulting dataset follow
the order of the header. The rest of the rows should consist of valid values
for those features.
*/
func ReadDataset(reader io.Reader, features []*feature.DiscreteFeature, target string, opts ...dataset.Option) (*dataset.Dataset, error) {
	var columns []*feature.DiscreteFeature
	var examples []dataset.Example
	err := ReadExamples(reader, features, func(header []*feature.DiscreteFeature) {
		columns = header
	}, func(_ int, e dataset.Example) (bool, error) {
		examples = append(examples, e)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	targetIndex := -1
	for i, f := range columns {
		if f.Name() == target {
			targetIndex = i
			break
		}
	}
	if targetIndex < 0 {
		return nil, fmt.Errorf("target feature %q is not a column of the CSV content", target)
	}
	opts = append([]dataset.Option{dataset.WithFeatures(columns...), dataset.WithTarget(targetIndex)}, opts...)
	return dataset.New(examples, opts...)
}

/*
ReadExamples takes an io.Reader for a CSV stream, a slice of features, a
function to receive the features in column order once the header has been
parsed, and a lambda function on an integer and a dataset.Example that returns
a boolean value. It parses the examples from the reader and for each it calls
the lambda function with the example and its index as parameters. If the lambda
function returns true, it will continue processing the next example, otherwise
it will stop. An error is returned if something goes wrong when reading the
stream or parsing an example.
*/
func ReadExamples(reader io.Reader, features []*feature.DiscreteFeature, onHeader func([]*feature.DiscreteFeature), lambda func(int, dataset.Example) (bool, error)) error {
	featuresByName := featureSliceToMap(features)
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("reading header: %v", err)
	}
	columns, err := parseFeaturesFromCSVHeader(header, featuresByName)
	if err != nil {
		return err
	}
	if onHeader != nil {
		onHeader(columns)
	}
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading body: %v", err)
		}
		example, err := parseExampleFromCSVRow(row, columns)
		if err != nil {
			return fmt.Errorf("parsing line %d: %v", l, err)
		}
		ok, err := lambda(l-2, example)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadDatasetFromFilePath takes a filepath string, a slice of features and the
name of the target feature, opens the file to which the filepath points to and
uses ReadDataset to return a dataset.Dataset or an error read from it. If the
filepath is "" os.Stdin is read instead.
*/
func ReadDatasetFromFilePath(filepath string, features []*feature.DiscreteFeature, target string, opts ...dataset.Option) (*dataset.Dataset, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("reading dataset: %v", err)
		}
		defer f.Close()
	}
	ds, err := ReadDataset(f, features, target, opts...)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return ds, err
}

/*
NewWriter takes an io.Writer and a slice of features and returns a Writer
that will write examples on the io.Writer, one column per feature.
*/
func NewWriter(writer io.Writer, features []*feature.DiscreteFeature) (Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, len(features))
	for i, f := range features {
		record[i] = f.Name()
	}
	err := w.Write(record)
	if err != nil {
		return nil, fmt.Errorf("writing CSV header: %v", err)
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteExamples takes a writer, the features of a dataset and a slice of its
examples and dumps the examples to the writer in CSV format, preceded by a
header row with the names of the features.
*/
func WriteExamples(writer io.Writer, features []*feature.DiscreteFeature, examples []dataset.Example) error {
	cw, err := NewWriter(writer, features)
	if err != nil {
		return err
	}
	_, err = cw.Write(examples)
	if err != nil {
		return err
	}
	return cw.Flush()
}

func parseFeaturesFromCSVHeader(header []string, features map[string]*feature.DiscreteFeature) ([]*feature.DiscreteFeature, error) {
	featureOrder := make([]*feature.DiscreteFeature, 0, len(header))
	for _, name := range header {
		f, ok := features[name]
		if !ok {
			return nil, fmt.Errorf("parsing header: reference to unknown feature %s", name)
		}
		featureOrder = append(featureOrder, f)
	}
	return featureOrder, nil
}

func parseExampleFromCSVRow(row []string, featureOrder []*feature.DiscreteFeature) (dataset.Example, error) {
	if len(row) != len(featureOrder) {
		return nil, fmt.Errorf("got %d values, expected %d", len(row), len(featureOrder))
	}
	example := make(dataset.Example, len(featureOrder))
	for i, f := range featureOrder {
		value, ok := f.Lookup(row[i])
		if !ok {
			return nil, fmt.Errorf("invalid value %q for feature %s", row[i], f.Name())
		}
		example[i] = value
	}
	return example, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(examples []dataset.Example) (int, error) {
	for n, e := range examples {
		err := cw.writeExample(e)
		if err != nil {
			return n, err
		}
	}
	return len(examples), nil
}

func (cw *csvWriter) writeExample(e dataset.Example) error {
	if len(e) != len(cw.features) {
		return fmt.Errorf("writing CSV row for example %d: got %d values, expected %d", cw.count+1, len(e), len(cw.features))
	}
	record := make([]string, len(cw.features))
	for j, v := range e {
		record[j] = fmt.Sprintf("%v", v)
	}
	err := cw.w.Write(record)
	if err != nil {
		return fmt.Errorf("writing CSV row for example %d: %v", cw.count+1, err)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}

func featureSliceToMap(features []*feature.DiscreteFeature) map[string]*feature.DiscreteFeature {
	result := make(map[string]*feature.DiscreteFeature)
	for _, f := range features {
		result[f.Name()] = f
	}
	return result
}
