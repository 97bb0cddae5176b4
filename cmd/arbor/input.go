package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/dataset/mongodataset"
	"github.com/pbanos/arbor/dataset/sqldataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"github.com/pbanos/arbor/tree/redisstore"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

const (
	csvInput      = "csv"
	sqlite3Input  = "sqlite3"
	postgresInput = "postgres"
	mongoInput    = "mongodb"
)

// defaultTable names the SQL table or MongoDB collection read by default
const defaultTable = mongodataset.DefaultCollection

// mongoDialTimeout bounds the time spent reaching a MongoDB server
const mongoDialTimeout = 10 * time.Second

/*
inputKind returns the kind of source an input flag points to: PostgreSQL and
MongoDB connection URLs, SQLite3 (.db) files and CSV files or STDIN otherwise.
*/
func inputKind(input string) string {
	switch {
	case strings.HasPrefix(input, "postgresql://"), strings.HasPrefix(input, "postgres://"):
		return postgresInput
	case strings.HasPrefix(input, "mongodb://"):
		return mongoInput
	case strings.HasSuffix(input, ".db"):
		return sqlite3Input
	}
	return csvInput
}

/*
dataConfig holds the flags shared by the commands that read examples: where
to read them from, the metadata describing their features and the feature
to predict.
*/
type dataConfig struct {
	dataInput     string
	metadataInput string
	classFeature  string
	table         string
}

func (dc *dataConfig) addFlags(cmd *cobra.Command, purpose string) {
	cmd.PersistentFlags().StringVarP(&(dc.dataInput), "input", "i", "", fmt.Sprintf("path to an input CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL with data to %s (defaults to STDIN, interpreted as CSV)", purpose))
	cmd.PersistentFlags().StringVarP(&(dc.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(dc.classFeature), "class-feature", "c", "", "name of the feature to predict (required)")
	cmd.PersistentFlags().StringVar(&(dc.table), "table", defaultTable, "name of the SQL table or MongoDB collection holding the examples")
}

func (dc *dataConfig) Validate() error {
	if dc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if dc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return nil
}

func (dc *dataConfig) features() ([]*feature.DiscreteFeature, error) {
	return readFeatures(dc.metadataInput)
}

func readFeatures(path string) ([]*feature.DiscreteFeature, error) {
	features, err := yaml.ReadFeaturesFromFile(path)
	if err != nil {
		return nil, err
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("metadata file %s declares no features", path)
	}
	return features, nil
}

/*
loadDataset reads the dataset at input, which may be any of the kinds recognized by
inputKind, with the given features and the class feature as target.
*/
func (dc *dataConfig) loadDataset(ctx context.Context, l logger, input string, features []*feature.DiscreteFeature) (*dataset.Dataset, error) {
	var ds *dataset.Dataset
	var err error
	switch inputKind(input) {
	case postgresInput, sqlite3Input:
		ds, err = dc.loadSQL(ctx, l, input, features)
	case mongoInput:
		ds, err = dc.loadMongo(ctx, l, input, features)
	default:
		if input == "" {
			l.Logf("Reading examples from STDIN...")
		} else {
			l.Logf("Reading examples from %s...", input)
		}
		ds, err = csv.ReadDatasetFromFilePath(input, features, dc.classFeature)
	}
	if err != nil {
		return nil, fmt.Errorf("reading examples: %v", err)
	}
	if input != "" {
		ds.Name = input
	}
	l.Logf("Read %d examples with %d features to predict %s", len(ds.Examples), len(ds.Features), dc.classFeature)
	return ds, nil
}

func (dc *dataConfig) loadSQL(ctx context.Context, l logger, input string, features []*feature.DiscreteFeature) (*dataset.Dataset, error) {
	l.Logf("Opening SQL database at %s...", input)
	db, err := sqldataset.OpenURL(input)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	l.Logf("Loading examples from table %s using %s driver...", dc.table, db.Driver())
	return sqldataset.Load(ctx, db, dc.table, features, dc.classFeature)
}

func (dc *dataConfig) loadMongo(ctx context.Context, l logger, input string, features []*feature.DiscreteFeature) (*dataset.Dataset, error) {
	l.Logf("Connecting to MongoDB at %s...", input)
	session, err := mgo.DialWithTimeout(input, mongoDialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", input, err)
	}
	defer session.Close()
	l.Logf("Loading examples from collection %s...", dc.table)
	return mongodataset.Load(ctx, session, dc.table, features, dc.classFeature)
}

/*
treeConfig holds the flags shared by the commands that read a tree: a JSON
file or the name of a tree in a redis store.
*/
type treeConfig struct {
	treeInput string
	store     string
	prefix    string
}

func (tc *treeConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tc.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON, or its name when a store is given (required)")
	tc.addStoreFlags(cmd)
}

func (tc *treeConfig) addStoreFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&(tc.store), "store", "", "URL of a redis DB (redis://[:password@]host:port/db) holding trees by name")
	cmd.PersistentFlags().StringVar(&(tc.prefix), "store-prefix", "arbor:trees", "prefix of the keys of the trees in the redis store")
}

func (tc *treeConfig) Validate() error {
	if tc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (tc *treeConfig) openStore(features []*feature.DiscreteFeature, target int) (tree.Store, error) {
	return redisstore.Open(tc.store, tc.prefix, json.NewEncodeDecoder(features, target))
}

/*
loadTree reads the tree named by the tree flag. The features must describe the
attributes of the examples the tree predicts, in their order. When the tree is
read from a store, target is the index of the feature it predicts; trees read
from files carry it themselves. The index of the target is returned along the
tree.
*/
func (tc *treeConfig) loadTree(ctx context.Context, l logger, features []*feature.DiscreteFeature, target int) (tree.Subtree, int, error) {
	if tc.store != "" {
		l.Logf("Loading tree %s from store at %s...", tc.treeInput, tc.store)
		store, err := tc.openStore(features, target)
		if err != nil {
			return tree.Subtree{}, -1, err
		}
		defer store.Close(ctx)
		st, err := store.Load(ctx, tc.treeInput)
		if err != nil {
			return tree.Subtree{}, -1, fmt.Errorf("loading tree %s: %v", tc.treeInput, err)
		}
		return st, target, nil
	}
	l.Logf("Reading tree from %s...", tc.treeInput)
	f, err := os.Open(tc.treeInput)
	if err != nil {
		return tree.Subtree{}, -1, fmt.Errorf("reading tree in JSON from %s: %v", tc.treeInput, err)
	}
	defer f.Close()
	st, t, err := json.ReadJSONTree(f, features)
	if err != nil {
		return tree.Subtree{}, -1, fmt.Errorf("parsing tree in JSON from %s: %v", tc.treeInput, err)
	}
	return st, t, nil
}

/*
featureIndex returns the index of the feature with the given name or an error
if there is none.
*/
func featureIndex(features []*feature.DiscreteFeature, name string) (int, error) {
	for i, f := range features {
		if f.Name() == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("class feature '%s' is not defined", name)
}

/*
cmdContext returns a context cancelled when the process receives an interrupt
along its cancel function.
*/
func cmdContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
