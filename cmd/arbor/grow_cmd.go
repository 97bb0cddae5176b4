package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"github.com/spf13/cobra"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataConfig
	treeConfig
	validationInput string
	output          string
	pruneStrategy   string
	name            string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a decision tree from a set of data to predict a certain feature, optionally pruning it against a validation set.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			features, err := config.features()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			trainingSet, err := config.loadDataset(ctx, config.logger, config.dataInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			pruner, err := pruningStrategy(config.pruneStrategy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			learner := &arbor.DecisionTreeLearner{Logger: config.Slog(), Pruner: pruner}
			config.Logf("Growing tree from a set with %d examples and %d inputs to predict %s...", len(trainingSet.Examples), len(trainingSet.Inputs), config.classFeature)
			err = learner.Train(trainingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			if config.validationInput != "" {
				err = config.prune(ctx, learner, features)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(6)
				}
			}
			config.Logf("Grown tree:\n%s", learner.Model().Render(trainingSet.Features))
			if config.output != "" || config.store == "" {
				err = outputTree(config.output, learner.Model(), trainingSet.Features, trainingSet.Target)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(7)
				}
			}
			if config.store != "" {
				err = config.save(ctx, learner.Model(), trainingSet)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(8)
				}
			}
		},
	}
	config.dataConfig.addFlags(cmd, "grow the tree")
	config.treeConfig.addStoreFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.validationInput), "validation", "V", "", "path or URL, as for the input flag, of data to prune the grown tree against (defaults to no pruning)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT unless a store is given)")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "prune", "p", "none", "strategy to stop splitting nodes while growing, the following are valid: default, minimum-information-gain:[VALUE], none")
	cmd.PersistentFlags().StringVar(&(config.name), "name", "", "name under which the tree is saved in the store (required with store)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	err := gcc.dataConfig.Validate()
	if err != nil {
		return err
	}
	if gcc.store != "" && gcc.name == "" {
		return fmt.Errorf("required name flag was not set for the store")
	}
	if gcc.validationInput != "" && gcc.validationInput == gcc.dataInput {
		return fmt.Errorf("validation data must differ from the input data")
	}
	return nil
}

func (gcc *growCmdConfig) prune(ctx context.Context, learner *arbor.DecisionTreeLearner, features []*feature.DiscreteFeature) error {
	validationSet, err := gcc.loadDataset(ctx, gcc.logger, gcc.validationInput, features)
	if err != nil {
		return fmt.Errorf("reading validation set: %v", err)
	}
	examples, err := alignExamples(validationSet, learner.Dataset().Features)
	if err != nil {
		return fmt.Errorf("reading validation set: %v", err)
	}
	before := learner.Model().Size()
	gcc.Logf("Pruning tree with %d nodes against %d validation examples...", before, len(examples))
	err = learner.Prune(examples)
	if err != nil {
		return fmt.Errorf("pruning the tree: %v", err)
	}
	gcc.Logf("Done, %d nodes pruned", before-learner.Model().Size())
	return nil
}

func (gcc *growCmdConfig) save(ctx context.Context, st tree.Subtree, ds *dataset.Dataset) error {
	store, err := gcc.openStore(ds.Features, ds.Target)
	if err != nil {
		return err
	}
	defer store.Close(ctx)
	gcc.Logf("Saving tree as %s in store at %s...", gcc.name, gcc.store)
	err = store.Save(ctx, gcc.name, st)
	if err != nil {
		return fmt.Errorf("saving tree: %v", err)
	}
	return nil
}

/*
alignExamples returns the examples of ds with their values rearranged to
follow the given features, matched by name. Datasets read from CSV files
follow the order of their columns, which may differ between files.
*/
func alignExamples(ds *dataset.Dataset, features []*feature.DiscreteFeature) ([]dataset.Example, error) {
	positions := make([]int, len(features))
	for i, f := range features {
		positions[i] = -1
		for j, df := range ds.Features {
			if df.Name() == f.Name() {
				positions[i] = j
				break
			}
		}
		if positions[i] < 0 {
			return nil, fmt.Errorf("missing values for feature %s", f.Name())
		}
	}
	examples := make([]dataset.Example, 0, len(ds.Examples))
	for _, e := range ds.Examples {
		aligned := make(dataset.Example, len(positions))
		for i, p := range positions {
			aligned[i] = e[p]
		}
		examples = append(examples, aligned)
	}
	return examples, nil
}

func outputTree(outputPath string, st tree.Subtree, features []*feature.DiscreteFeature, target int) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.WriteJSONTree(f, st, features, target)
}

func pruningStrategy(ps string) (arbor.Pruner, error) {
	parsedPS := strings.Split(ps, ":")
	ps = parsedPS[0]
	psParams := parsedPS[1:]
	switch ps {
	case "default":
		return arbor.DefaultPruner(), nil
	case "none":
		return arbor.NoPruner(), nil
	case "minimum-information-gain":
		if len(psParams) != 1 {
			return nil, fmt.Errorf("minimum-information-gain expects a single parameter, as in minimum-information-gain:0.1")
		}
		minimum, err := strconv.ParseFloat(psParams[0], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing minimum-information-gain parameter: %v", err)
		}
		return arbor.FixedInformationGainPruner(minimum), nil
	}
	return nil, fmt.Errorf("unknown pruning strategy %s", ps)
}
