package arbor

import (
	"errors"
	"io"
	"log/slog"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

/*
ErrUntrained is returned when asking a learner that has not been trained to
predict or prune.
*/
var ErrUntrained = errors.New("learner has not been trained")

/*
Learner is an interface for learning algorithms that can be trained with a
dataset and then asked to predict the target attribute of examples.

Train replaces whatever the learner had learned before. Predict takes an
example sanitized by the dataset the learner was trained with.
*/
type Learner interface {
	Train(ds *dataset.Dataset) error
	Predict(e dataset.Example) (interface{}, error)
}

/*
PrunableLearner is a Learner whose model can be simplified with validation
examples after training.
*/
type PrunableLearner interface {
	Learner
	Prune(validation []dataset.Example) error
}

/*
DecisionTreeLearner learns decision trees with the ID3 algorithm: nodes
branch on the input attribute with the highest information gain over the
examples reaching them, one branch per value in the attribute's domain.

The zero value is ready to use. Logger receives debug records about training
and pruning and may be nil. Pruner, when not nil, is asked about every split
during training and may turn the node into a leaf.
*/
type DecisionTreeLearner struct {
	Logger *slog.Logger
	Pruner Pruner

	ds    *dataset.Dataset
	model tree.Subtree
}

/*
Train grows a new tree from the examples of the dataset, replacing the
current model.
*/
func (l *DecisionTreeLearner) Train(ds *dataset.Dataset) error {
	if ds == nil {
		return errors.New("cannot train with a nil dataset")
	}
	l.ds = ds
	l.model = l.induce(ds, ds.Examples, append([]int(nil), ds.Inputs...), nil)
	l.logger().Debug("trained decision tree",
		"dataset", ds.Name,
		"examples", len(ds.Examples),
		"nodes", l.model.Size(),
		"depth", l.model.Depth())
	return nil
}

/*
Predict returns the label the current model predicts for the example. A
*tree.MissingBranchError is returned when the example holds a value the
model has no branch for.
*/
func (l *DecisionTreeLearner) Predict(e dataset.Example) (interface{}, error) {
	if l.ds == nil {
		return nil, ErrUntrained
	}
	return l.model.Predict(e)
}

/*
Model returns the current model: a leaf when induction did not need to
branch at all, or the root of the tree otherwise.
*/
func (l *DecisionTreeLearner) Model() tree.Subtree {
	return l.model
}

/*
Dataset returns the dataset the learner was trained with, or the one given
to SetModel.
*/
func (l *DecisionTreeLearner) Dataset() *dataset.Dataset {
	return l.ds
}

/*
SetModel replaces the current model and dataset, as if the learner had been
trained with the dataset and learned the given tree. It is used to restore
trees read from files or stores.
*/
func (l *DecisionTreeLearner) SetModel(ds *dataset.Dataset, model tree.Subtree) {
	l.ds = ds
	l.model = model
}

func (l *DecisionTreeLearner) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Logger
}
