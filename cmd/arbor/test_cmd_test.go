package main

import (
	"testing"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLearner(t *testing.T) {
	ds := testDataset(t, examplesCSV)
	learner := &arbor.DecisionTreeLearner{}
	learner.SetModel(ds, fullTree())
	report, err := testLearner(learner, ds)
	require.NoError(t, err)
	assert.Equal(t, &testReport{Examples: 4, Accuracy: 1}, report)
}

func TestTestLearnerCountsMissingBranches(t *testing.T) {
	ds := testDataset(t, "A,B,Class\nx,p,Y\nx,q,N\nz,p,N\n")
	learner := &arbor.DecisionTreeLearner{}
	learner.SetModel(ds, tree.Internal(tree.NewNode(0).AddBranch("x", tree.Leaf("Y"))))
	report, err := testLearner(learner, ds)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Examples)
	assert.Equal(t, 1, report.Failed)
	assert.InDelta(t, 1.0/3, report.Accuracy, 1e-9)
	assert.InDelta(t, 2.0/3, report.MeanError, 1e-9)
}

func TestTestLearnerUntrained(t *testing.T) {
	_, err := testLearner(&arbor.DecisionTreeLearner{}, testDataset(t, examplesCSV))
	assert.ErrorIs(t, err, arbor.ErrUntrained)

	report, err := testLearner(&arbor.DecisionTreeLearner{}, testDataset(t, "A,B,Class\n"))
	require.NoError(t, err)
	assert.Equal(t, &testReport{}, report)
}
