package main

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

type crossValidateCmdConfig struct {
	*rootCmdConfig
	dataConfig
	flags         evalConfig
	pruneStrategy string
}

func crossValidateCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &crossValidateCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "crossvalidate",
		Short: "Estimate the accuracy of the trees grown from a set of data",
		Long:  `Run trials of k-fold cross-validation of the trees grown from a set of data, optionally pruning them with part of the training examples, and report the mean accuracy of the trials and its standard deviation`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			settings, err := evalSettings(cmd, config.rootCmdConfig, &config.flags)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			features, err := config.features()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ds, err := config.loadDataset(ctx, config.logger, config.dataInput, features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			pruner, err := pruningStrategy(config.pruneStrategy)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			learner := &arbor.DecisionTreeLearner{Logger: config.Slog(), Pruner: pruner}
			config.Logf("Running %d trials of %d-fold cross-validation over %d examples...", settings.Trials, settings.K, len(ds.Examples))
			scores, err := arbor.CrossValidationScores(learner, ds, settings.Prune, settings.K, settings.Trials, settings.Rand())
			if err != nil {
				fmt.Fprintf(os.Stderr, "cross-validating: %v\n", err)
				os.Exit(6)
			}
			config.Logf("Done")
			mean, std := meanStdDev(scores)
			fmt.Printf("%f mean accuracy, %f standard deviation over %d trials of %d-fold cross-validation\n", mean, std, len(scores), settings.K)
		},
	}
	config.dataConfig.addFlags(cmd, "cross-validate")
	cmd.PersistentFlags().IntVarP(&(config.flags.K), "folds", "k", defaultFolds, "number of folds the examples are split in")
	cmd.PersistentFlags().IntVar(&(config.flags.Trials), "trials", 1, "number of times the cross-validation is repeated over reshuffled examples")
	cmd.PersistentFlags().BoolVar(&(config.flags.Prune), "prune", false, "prune every tree with a part of its training examples before testing it")
	cmd.PersistentFlags().Int64Var(&(config.flags.Seed), "seed", 0, "seed to shuffle the examples with (defaults to 0: seeded with the current time)")
	cmd.PersistentFlags().StringVarP(&(config.pruneStrategy), "split-prune", "p", "none", "strategy to stop splitting nodes while growing, the following are valid: default, minimum-information-gain:[VALUE], none")
	return cmd
}

func (cvcc *crossValidateCmdConfig) Validate() error {
	return cvcc.dataConfig.Validate()
}

/*
meanStdDev returns the mean of the scores and their standard deviation, which
is 0 for less than two scores.
*/
func meanStdDev(scores []float64) (float64, float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	mean, std := stat.MeanStdDev(scores, nil)
	if len(scores) < 2 {
		std = 0
	}
	return mean, std
}
