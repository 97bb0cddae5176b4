package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/dataset/csv"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/feature/yaml"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/require"
)

const metadata = `
features:
  A: [x, z]
  B: [p, q]
  Class: [Y, N]
`

const examplesCSV = `A,B,Class
x,p,Y
x,q,N
z,p,N
z,q,N
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testFeatures(t *testing.T) []*feature.DiscreteFeature {
	t.Helper()
	features, err := yaml.ReadFeatures([]byte(metadata))
	require.NoError(t, err)
	return features
}

func testDataset(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	ds, err := csv.ReadDataset(strings.NewReader(content), testFeatures(t), "Class")
	require.NoError(t, err)
	return ds
}

// fullTree returns A∈{x→B∈{p→Y, q→N}, z→N}
func fullTree() tree.Subtree {
	b := tree.NewNode(1)
	b.Name = "B"
	b.AddBranch("p", tree.Leaf("Y")).AddBranch("q", tree.Leaf("N"))
	a := tree.NewNode(0)
	a.Name = "A"
	a.AddBranch("x", tree.Internal(b)).AddBranch("z", tree.Leaf("N"))
	return tree.Internal(a)
}
