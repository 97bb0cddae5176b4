package arbor

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/arbor/dataset"
	"gonum.org/v1/gonum/stat"
)

/*
DefaultPruneRatio is the proportion of the non-test examples used to train a
learner in TrainPruneAndTest when pruning, the rest being used to validate it.
*/
const DefaultPruneRatio = 0.66

/*
CurvePoint is the accuracy of a learner trained with a number of examples,
averaged over several trials, together with its standard deviation.
*/
type CurvePoint struct {
	Size     int
	Accuracy float64
	StdDev   float64
}

/*
Test takes a trained learner, the dataset it was trained with and a slice of
examples and returns the proportion of the examples for which the learner
predicts the target value. Examples are sanitized by the dataset before being
predicted. An empty slice of examples yields 0.0. An error is returned if the
learner fails to predict an example.
*/
func Test(l Learner, ds *dataset.Dataset, examples []dataset.Example) (float64, error) {
	if len(examples) == 0 {
		return 0.0, nil
	}
	var right float64
	for i, e := range examples {
		output, err := l.Predict(ds.Sanitize(e))
		if err != nil {
			return 0.0, fmt.Errorf("predicting example #%d: %w", i, err)
		}
		if output == e[ds.Target] {
			right++
		}
	}
	return right / float64(len(examples)), nil
}

/*
TrainAndTest holds out the examples of the dataset in [start, end) for
testing, trains the learner with the rest and returns its accuracy on the
held out examples. The dataset is never modified: the learner is trained
with a separate dataset sharing its metadata.
*/
func TrainAndTest(l Learner, ds *dataset.Dataset, start, end int) (float64, error) {
	examples := ds.Examples
	if err := checkRange(start, end, len(examples)); err != nil {
		return 0.0, err
	}
	err := l.Train(ds.WithExamples(withoutRange(examples, start, end)))
	if err != nil {
		return 0.0, err
	}
	return Test(l, ds, examples[start:end])
}

/*
TrainPruneAndTest holds out the examples of the dataset in [start, end) for
testing and splits the rest in a training prefix with a ratio of them and a
validation suffix. It trains the learner with the training examples, prunes
it with the validation ones and returns its accuracy on the held out
examples. The dataset is never modified.
*/
func TrainPruneAndTest(l PrunableLearner, ds *dataset.Dataset, start, end int, ratio float64) (float64, error) {
	examples := ds.Examples
	if err := checkRange(start, end, len(examples)); err != nil {
		return 0.0, err
	}
	if ratio < 0 || ratio > 1 {
		return 0.0, fmt.Errorf("training ratio %v out of [0, 1]", ratio)
	}
	all := withoutRange(examples, start, end)
	numTraining := int(ratio * float64(len(all)))
	err := l.Train(ds.WithExamples(all[:numTraining]))
	if err != nil {
		return 0.0, err
	}
	err = l.Prune(all[numTraining:])
	if err != nil {
		return 0.0, err
	}
	return Test(l, ds, examples[start:end])
}

/*
CrossValidation runs trials of k-fold cross-validation of the learner on the
dataset and returns the mean accuracy over all trials. See
CrossValidationScores.
*/
func CrossValidation(l Learner, ds *dataset.Dataset, prune bool, k, trials int, rnd *rand.Rand) (float64, error) {
	scores, err := CrossValidationScores(l, ds, prune, k, trials, rnd)
	if err != nil {
		return 0.0, err
	}
	return stat.Mean(scores, nil), nil
}

/*
CrossValidationScores runs trials of k-fold cross-validation of the learner on
the dataset and returns the mean accuracy of each trial.

Every trial shuffles the examples with rnd and splits them in k contiguous
folds of len(examples)/k examples. Each fold is held out for testing once
while the learner is trained with the rest of the examples (the remainder of
the division always being used for training). When prune is true the learner
must be a PrunableLearner and is evaluated with TrainPruneAndTest and
DefaultPruneRatio.

A nil rnd uses a source seeded with the current time. The examples of the
dataset are never reordered: shuffling happens on a copy.
*/
func CrossValidationScores(l Learner, ds *dataset.Dataset, prune bool, k, trials int, rnd *rand.Rand) ([]float64, error) {
	var pl PrunableLearner
	if prune {
		var ok bool
		pl, ok = l.(PrunableLearner)
		if !ok {
			return nil, fmt.Errorf("learner %T cannot be pruned", l)
		}
	}
	if k < 1 {
		return nil, fmt.Errorf("invalid number of folds %d", k)
	}
	if trials < 1 {
		return nil, fmt.Errorf("invalid number of trials %d", trials)
	}
	numTesting := len(ds.Examples) / k
	if numTesting == 0 {
		return nil, fmt.Errorf("cannot split %d examples in %d folds", len(ds.Examples), k)
	}
	rnd = orSeeded(rnd)
	work := ds.WithExamples(ds.Examples)
	scores := make([]float64, 0, trials)
	for t := 0; t < trials; t++ {
		shuffle(work.Examples, rnd)
		folds := make([]float64, 0, k)
		for i := 0; i < k; i++ {
			var accuracy float64
			var err error
			if prune {
				accuracy, err = TrainPruneAndTest(pl, work, i*numTesting, (i+1)*numTesting, DefaultPruneRatio)
			} else {
				accuracy, err = TrainAndTest(l, work, i*numTesting, (i+1)*numTesting)
			}
			if err != nil {
				return nil, fmt.Errorf("trial %d, fold %d: %w", t, i, err)
			}
			folds = append(folds, accuracy)
		}
		scores = append(scores, stat.Mean(folds, nil))
	}
	return scores, nil
}

/*
LearningCurve measures how the accuracy of the learner grows with the number
of training examples. For every size it runs trials in which the examples are
shuffled with rnd, the learner is trained with the first size examples and
tested on the rest, and returns the mean accuracy and its standard deviation
for each size, in the given order.

When sizes is nil, sizes 2, 4, 6... up to 10 examples less than the dataset
holds are used. A nil rnd uses a source seeded with the current time. The
examples of the dataset are never reordered.
*/
func LearningCurve(l Learner, ds *dataset.Dataset, trials int, sizes []int, rnd *rand.Rand) ([]CurvePoint, error) {
	if trials < 1 {
		return nil, fmt.Errorf("invalid number of trials %d", trials)
	}
	n := len(ds.Examples)
	if sizes == nil {
		for s := 2; s < n-10; s += 2 {
			sizes = append(sizes, s)
		}
	}
	for _, s := range sizes {
		if s < 0 || s > n {
			return nil, fmt.Errorf("invalid training size %d for %d examples", s, n)
		}
	}
	rnd = orSeeded(rnd)
	work := ds.WithExamples(ds.Examples)
	result := make([]CurvePoint, 0, len(sizes))
	for _, s := range sizes {
		scores := make([]float64, 0, trials)
		for t := 0; t < trials; t++ {
			shuffle(work.Examples, rnd)
			accuracy, err := TrainAndTest(l, work, s, n)
			if err != nil {
				return nil, fmt.Errorf("size %d, trial %d: %w", s, t, err)
			}
			scores = append(scores, accuracy)
		}
		mean, std := stat.MeanStdDev(scores, nil)
		if trials == 1 {
			std = 0
		}
		result = append(result, CurvePoint{Size: s, Accuracy: mean, StdDev: std})
	}
	return result, nil
}

func checkRange(start, end, n int) error {
	if start < 0 || end > n || start > end {
		return fmt.Errorf("invalid test range [%d, %d) for %d examples", start, end, n)
	}
	return nil
}

// withoutRange returns a new slice with the examples outside [start, end)
func withoutRange(examples []dataset.Example, start, end int) []dataset.Example {
	result := make([]dataset.Example, 0, len(examples)-(end-start))
	result = append(result, examples[:start]...)
	return append(result, examples[end:]...)
}

func shuffle(examples []dataset.Example, rnd *rand.Rand) {
	rnd.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})
}

func orSeeded(rnd *rand.Rand) *rand.Rand {
	if rnd == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rnd
}
