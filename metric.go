package arbor

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Error metrics comparing predictions with their targets. Both slices must
// have the same length. All of them are 0 for empty slices.

// RMSError returns the root mean squared error of the predictions
func RMSError(predictions, targets []float64) float64 {
	return math.Sqrt(MSError(predictions, targets))
}

// MSError returns the mean squared error of the predictions
func MSError(predictions, targets []float64) float64 {
	if len(predictions) == 0 {
		return 0.0
	}
	d := floats.Distance(predictions, targets, 2)
	return d * d / float64(len(predictions))
}

// MeanError returns the mean absolute error of the predictions
func MeanError(predictions, targets []float64) float64 {
	if len(predictions) == 0 {
		return 0.0
	}
	return floats.Distance(predictions, targets, 1) / float64(len(predictions))
}

/*
MeanBooleanError returns the proportion of predictions that differ from their
targets. It works with predictions of any comparable type, such as the labels
predicted by a Learner.
*/
func MeanBooleanError(predictions, targets []interface{}) float64 {
	if len(predictions) == 0 {
		return 0.0
	}
	misses := make([]float64, len(predictions))
	for i, p := range predictions {
		if p != targets[i] {
			misses[i] = 1
		}
	}
	return stat.Mean(misses, nil)
}
