package arbor_test

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// majorityLearner always predicts the most frequent target of its training
// examples.
type majorityLearner struct {
	label interface{}
}

func (ml *majorityLearner) Train(ds *dataset.Dataset) error {
	ml.label = arbor.MajorityValue(ds, ds.Examples)
	return nil
}

func (ml *majorityLearner) Predict(dataset.Example) (interface{}, error) {
	return ml.label, nil
}

func TestTestOnEmptyExamples(t *testing.T) {
	ds := simple(t)
	accuracy, err := arbor.Test(&arbor.DecisionTreeLearner{}, ds, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, accuracy)
	accuracy, err = arbor.Test(&majorityLearner{}, ds, []dataset.Example{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, accuracy)
}

func TestTestSanitizesExamples(t *testing.T) {
	ds := simple(t)
	l := &peekingLearner{}
	_, err := arbor.Test(l, ds, ds.Examples)
	require.NoError(t, err)
	for _, e := range l.seen {
		assert.Nil(t, e[ds.Target])
	}
}

type peekingLearner struct {
	seen []dataset.Example
}

func (pl *peekingLearner) Train(*dataset.Dataset) error { return nil }

func (pl *peekingLearner) Predict(e dataset.Example) (interface{}, error) {
	pl.seen = append(pl.seen, e)
	return e[0], nil
}

func TestTrainAndTest(t *testing.T) {
	ds := restaurant(t)
	before := snapshot(ds)
	l := &arbor.DecisionTreeLearner{}
	accuracy, err := arbor.TrainAndTest(l, ds, 0, 3)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, accuracy, 0.0)
	assert.LessOrEqual(t, accuracy, 1.0)
	assert.Len(t, l.Dataset().Examples, 9)
	assert.Equal(t, before, ds.Examples)

	accuracy, err = arbor.TrainAndTest(&majorityLearner{}, ds, 10, 12)
	require.NoError(t, err)
	assert.Equal(t, 0.5, accuracy)
	assert.Equal(t, before, ds.Examples)

	for _, r := range [][2]int{{-1, 2}, {3, 2}, {0, 13}} {
		_, err = arbor.TrainAndTest(l, ds, r[0], r[1])
		assert.Error(t, err)
		assert.Equal(t, before, ds.Examples)
	}
}

func TestTrainPruneAndTest(t *testing.T) {
	ds := equality(t)
	before := snapshot(ds)
	l := &arbor.DecisionTreeLearner{}
	accuracy, err := arbor.TrainPruneAndTest(l, ds, 0, 10, arbor.DefaultPruneRatio)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)
	assert.Len(t, l.Dataset().Examples, 19)
	assert.Equal(t, before, ds.Examples)

	_, err = arbor.TrainPruneAndTest(l, ds, 0, 10, 1.5)
	assert.Error(t, err)
	_, err = arbor.TrainPruneAndTest(l, ds, 10, 0, 0.5)
	assert.Error(t, err)
	assert.Equal(t, before, ds.Examples)
}

func TestCrossValidation(t *testing.T) {
	ds := equality(t)
	before := snapshot(ds)
	accuracy, err := arbor.CrossValidation(&arbor.DecisionTreeLearner{}, ds, false, 4, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, accuracy, 1e-12)
	assert.Equal(t, before, ds.Examples)

	accuracy, err = arbor.CrossValidation(&arbor.DecisionTreeLearner{}, ds, true, 4, 2, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, accuracy, 0.0)
	assert.LessOrEqual(t, accuracy, 1.0)
	assert.Equal(t, before, ds.Examples)
}

func TestCrossValidationScoresAreReproducible(t *testing.T) {
	ds := restaurant(t)
	first, err := arbor.CrossValidationScores(&arbor.DecisionTreeLearner{}, ds, false, 3, 4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	require.Len(t, first, 4)
	second, err := arbor.CrossValidationScores(&arbor.DecisionTreeLearner{}, ds, false, 3, 4, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCrossValidationErrors(t *testing.T) {
	ds := restaurant(t)
	before := snapshot(ds)
	testCases := []struct {
		name    string
		learner arbor.Learner
		prune   bool
		k       int
		trials  int
	}{
		{"no folds", &arbor.DecisionTreeLearner{}, false, 0, 1},
		{"no trials", &arbor.DecisionTreeLearner{}, false, 3, 0},
		{"too many folds", &arbor.DecisionTreeLearner{}, false, 13, 1},
		{"unprunable learner", &majorityLearner{}, true, 3, 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := arbor.CrossValidation(tc.learner, ds, tc.prune, tc.k, tc.trials, nil)
			assert.Error(t, err)
			assert.Equal(t, before, ds.Examples)
		})
	}
}

func TestConcurrentEvaluationsOnOneDataset(t *testing.T) {
	ds := equality(t)
	before := snapshot(ds)
	var wg sync.WaitGroup
	results := make([]float64, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			accuracy, err := arbor.CrossValidation(&arbor.DecisionTreeLearner{}, ds, false, 4, 1, rand.New(rand.NewSource(int64(i))))
			assert.NoError(t, err)
			results[i] = accuracy
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.InDelta(t, 1.0, r, 1e-12)
	}
	assert.Equal(t, before, ds.Examples)
}

func TestLearningCurve(t *testing.T) {
	ds := equality(t)
	before := snapshot(ds)
	points, err := arbor.LearningCurve(&arbor.DecisionTreeLearner{}, ds, 3, nil, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	require.Len(t, points, 14)
	for i, p := range points {
		assert.Equal(t, 2+2*i, p.Size)
		assert.GreaterOrEqual(t, p.Accuracy, 0.0)
		assert.LessOrEqual(t, p.Accuracy, 1.0)
		assert.GreaterOrEqual(t, p.StdDev, 0.0)
	}
	assert.Equal(t, before, ds.Examples)

	points, err = arbor.LearningCurve(&majorityLearner{}, ds, 1, []int{30, 10}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, 30, points[0].Size)
	assert.Equal(t, 10, points[1].Size)
	assert.Equal(t, 0.0, points[0].StdDev)

	_, err = arbor.LearningCurve(&majorityLearner{}, ds, 1, []int{41}, nil)
	assert.Error(t, err)
	_, err = arbor.LearningCurve(&majorityLearner{}, ds, 0, nil, nil)
	assert.Error(t, err)
	assert.Equal(t, before, ds.Examples)
}
