package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	dataConfig
	treeConfig
}

/*
testReport summarizes the predictions of a tree over a testing set. Examples
the tree cannot predict count as failures and errors.
*/
type testReport struct {
	Examples  int
	Failed    int
	Accuracy  float64
	MeanError float64
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set`,
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
			testingSet, err := config.loadDataset(ctx, config.logger, config.dataInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			st, target, err := config.loadTree(ctx, config.logger, testingSet.Features, testingSet.Target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if target != testingSet.Target {
				fmt.Fprintf(os.Stderr, "tree predicts %s instead of %s\n", testingSet.Features[target].Name(), config.classFeature)
				os.Exit(5)
			}
			learner := &arbor.DecisionTreeLearner{Logger: config.Slog()}
			learner.SetModel(testingSet, st)
			config.Logf("Testing tree against testset with %d examples...", len(testingSet.Examples))
			report, err := testLearner(learner, testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, %f mean boolean error, failed to make a prediction for %d examples\n", report.Accuracy, report.MeanError, report.Failed)
		},
	}
	config.dataConfig.addFlags(cmd, "test the tree")
	config.treeConfig.addFlags(cmd)
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	err := tcc.treeConfig.Validate()
	if err != nil {
		return err
	}
	return tcc.dataConfig.Validate()
}

/*
testLearner predicts every example of the dataset with the learner and
compares the predictions with their target values. Predictions failing for a
missing branch are counted, any other error aborts the test.
*/
func testLearner(l arbor.Learner, ds *dataset.Dataset) (*testReport, error) {
	report := &testReport{Examples: len(ds.Examples)}
	predictions := make([]interface{}, 0, len(ds.Examples))
	targets := make([]interface{}, 0, len(ds.Examples))
	var right int
	for i, e := range ds.Examples {
		prediction, err := l.Predict(ds.Sanitize(e))
		if err != nil {
			if !errors.Is(err, tree.ErrMissingBranch) {
				return nil, fmt.Errorf("predicting example #%d: %w", i, err)
			}
			report.Failed++
			prediction = nil
		}
		if prediction != nil && prediction == e[ds.Target] {
			right++
		}
		predictions = append(predictions, prediction)
		targets = append(targets, e[ds.Target])
	}
	if report.Examples > 0 {
		report.Accuracy = float64(right) / float64(report.Examples)
	}
	report.MeanError = arbor.MeanBooleanError(predictions, targets)
	return report, nil
}
