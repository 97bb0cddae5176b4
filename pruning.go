package arbor

import (
	"math"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

/*
Pruner is an interface wrapping the Prune method, that can be used
to decide during training whether a split is good enough to become part
of a tree or if the node must become a leaf instead.

The Prune method takes the dataset, the examples reaching the node and the
chosen split and returns true to indicate the split must be pruned, false to
allow its adding to the tree and further development.
*/
type Pruner interface {
	Prune(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool

/*
Prune invokes the PrunerFunc with the given parameters to return its boolean
result.
*/
func (pf PrunerFunc) Prune(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool {
	return pf(ds, examples, s)
}

/*
DefaultPruner returns a Pruner whose Prune method evaluates a minimum information
gain for the split and returns true if the split information gain is below
this minimum and false otherwise.
This minimum is calculated as
(1/N) x log2(N-1) + (1/N) x [ log2 (3^k-2) - (k x Entropy(S) – k1 x Entropy(S1) – k2 x Entropy(S2) ... - ki x Entropy(Si)]
with
 * N begin the number of examples reaching the node
 * k being the number of different target values among them
 * k1, k2, ... ki being the number of different target values on the partition 1, 2, ... i
 * S1, S2, ... Si begin the examples in the partition 1, 2, ... i
*/
func DefaultPruner() Pruner {
	return PrunerFunc(func(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool {
		n := float64(len(examples))
		if n < 2 {
			return false
		}
		k := float64(distinctTargets(ds, examples))
		minimum := math.Log2(n-1.0) + math.Log2(math.Pow(3.0, k)-2) - k*Entropy(SplitBy(ds, ds.Target, examples))
		for _, p := range s.Partitions {
			if len(p.Examples) == 0 {
				continue
			}
			minimum += float64(distinctTargets(ds, p.Examples)) * Entropy(SplitBy(ds, ds.Target, p.Examples))
		}
		minimum = minimum / n
		return minimum > s.InformationGain
	})
}

/*
FixedInformationGainPruner takes an informationGainThreshold float64 value
and returns a Pruner whose Prune method returns whether the informationGainThreshold
is greater or equal to the received split's information gain
*/
func FixedInformationGainPruner(informationGainThreshold float64) Pruner {
	return PrunerFunc(func(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool {
		return informationGainThreshold >= s.InformationGain
	})
}

/*
NoPruner returns a Pruner whose Prune method always returns false, that is,
never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(ds *dataset.Dataset, examples []dataset.Example, s *Split) bool {
		return false
	})
}

func distinctTargets(ds *dataset.Dataset, examples []dataset.Example) int {
	var k int
	for _, v := range ds.Values(ds.Target) {
		if dataset.Count(ds.Target, v, examples) > 0 {
			k++
		}
	}
	return k
}

/*
Prune simplifies the current model with reduced-error pruning over the given
validation examples. On every round it measures the accuracy of the model on
the validation examples and that of every copy of the model in which an
internal node other than the root is replaced by a leaf (see
tree.Node.CopyExcludingPath), labelled after the training examples reaching
it. The most accurate copy, the first one in post-order among equally
accurate ones, replaces the model if it is at least as accurate as the model.
Pruning stops when no copy is or when no node but the root is left.

Prune never lowers the accuracy of the model on the validation examples.
*/
func (l *DecisionTreeLearner) Prune(validation []dataset.Example) error {
	if l.ds == nil {
		return ErrUntrained
	}
	log := l.logger()
	candidate := &DecisionTreeLearner{ds: l.ds}
	for round := 0; !l.model.IsLeaf(); round++ {
		baseline, err := Test(l, l.ds, validation)
		if err != nil {
			return err
		}
		root := l.model.Node()
		paths := root.Paths()
		paths = paths[:len(paths)-1]
		if len(paths) == 0 {
			log.Debug("no pruning candidates left", "round", round, "baseline", baseline)
			return nil
		}
		var best tree.Subtree
		var bestPath tree.Path
		bestAccuracy := -1.0
		for _, p := range paths {
			st, ok := root.CopyExcludingPath(p, l.ds.Examples, l.ds.Target)
			if !ok {
				continue
			}
			candidate.model = st
			accuracy, err := Test(candidate, l.ds, validation)
			if err != nil {
				return err
			}
			if accuracy > bestAccuracy {
				best = st
				bestPath = p
				bestAccuracy = accuracy
			}
		}
		committed := bestAccuracy >= baseline
		log.Debug("pruning round",
			"round", round,
			"baseline", baseline,
			"candidates", len(paths),
			"best", bestPath.String(),
			"accuracy", bestAccuracy,
			"committed", committed)
		if !committed {
			return nil
		}
		l.model = best
	}
	return nil
}
