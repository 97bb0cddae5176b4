package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pbanos/arbor"
	"github.com/spf13/cobra"
)

type curveCmdConfig struct {
	*rootCmdConfig
	dataConfig
	flags evalConfig
}

func curveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &curveCmdConfig{rootCmdConfig: rootConfig, flags: evalConfig{K: defaultFolds}}
	cmd := &cobra.Command{
		Use:   "curve",
		Short: "Compute the learning curve of the trees grown from a set of data",
		Long:  `Measure the accuracy of trees grown with increasing numbers of examples from a set of data, testing them on the remaining examples, and print the mean accuracy and its standard deviation for every size`,
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
			learner := &arbor.DecisionTreeLearner{Logger: config.Slog()}
			config.Logf("Computing learning curve with %d trials per size over %d examples...", settings.Trials, len(ds.Examples))
			points, err := arbor.LearningCurve(learner, ds, settings.Trials, settings.Sizes, settings.Rand())
			if err != nil {
				fmt.Fprintf(os.Stderr, "computing learning curve: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			err = writeCurve(os.Stdout, points)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	config.dataConfig.addFlags(cmd, "compute the curve")
	cmd.PersistentFlags().IntVar(&(config.flags.Trials), "trials", 10, "number of trials averaged for every size")
	cmd.PersistentFlags().IntSliceVar(&(config.flags.Sizes), "sizes", nil, "numbers of training examples to measure (defaults to 2, 4, 6... up to 10 less than the number of examples)")
	cmd.PersistentFlags().Int64Var(&(config.flags.Seed), "seed", 0, "seed to shuffle the examples with (defaults to 0: seeded with the current time)")
	return cmd
}

func (ccc *curveCmdConfig) Validate() error {
	return ccc.dataConfig.Validate()
}

func writeCurve(w io.Writer, points []arbor.CurvePoint) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "size\taccuracy\tstddev")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%f\t%f\n", p.Size, p.Accuracy, p.StdDev)
	}
	return tw.Flush()
}
