package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeConfig
	metadataInput string
	classFeature  string
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a value for an example answering questions",
		Long:  `Use the loaded tree to predict the class feature value for an example answering a reduced set of questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx, cancel := cmdContext()
			defer cancel()
			features, err := readFeatures(config.metadataInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			target, err := featureIndex(features, config.classFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			st, _, err := config.loadTree(ctx, config.logger, features, target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			prediction, err := predictInteractively(st, features, os.Stdin, os.Stdout)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			fmt.Printf("Predicted %s is %v\n", config.classFeature, prediction)
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features used on the tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the tree predicts (required)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if pcc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set")
	}
	return pcc.treeConfig.Validate()
}

/*
predictInteractively follows the tree from its root asking on out for the
value of the feature tested at every node and reading it as a line from in.
Lines with values the feature does not take are rejected and the question is
asked again. It returns the label of the leaf reached, or an error if in is
exhausted first.
*/
func predictInteractively(st tree.Subtree, features []*feature.DiscreteFeature, in io.Reader, out io.Writer) (interface{}, error) {
	scanner := bufio.NewScanner(in)
	for !st.IsLeaf() {
		n := st.Node()
		if n.Feature < 0 || n.Feature >= len(features) {
			return nil, fmt.Errorf("node %q tests attribute %d, which has no feature", n.Name, n.Feature)
		}
		f := features[n.Feature]
		value, err := requestValue(scanner, f, out)
		if err != nil {
			return nil, err
		}
		child, ok := n.Branch(value)
		if !ok {
			return nil, &tree.MissingBranchError{Feature: n.Feature, Name: n.Name, Value: value}
		}
		st = child
	}
	return st.Label(), nil
}

func requestValue(scanner *bufio.Scanner, f *feature.DiscreteFeature, out io.Writer) (interface{}, error) {
	fmt.Fprintf(out, "Please provide the example's %s:\n(valid values are %v)\n", f.Name(), f.AvailableValues())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if value, ok := f.Lookup(line); ok {
			return value, nil
		}
		fmt.Fprintf(out, "%q is not a valid value for %s, please provide one of %v:\n", line, f.Name(), f.AvailableValues())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading value for %s: %v", f.Name(), err)
	}
	return nil, fmt.Errorf("no value provided for %s", f.Name())
}
