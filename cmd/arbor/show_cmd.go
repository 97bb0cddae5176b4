package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	treeConfig
	metadataInput string
	classFeature  string
	uniquify      bool
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a tree",
		Long:  `Print an indented representation of a tree with the names of the features it tests`,
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
			target := -1
			if config.classFeature != "" {
				target, err = featureIndex(features, config.classFeature)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
			}
			st, _, err := config.loadTree(ctx, config.logger, features, target)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			if config.uniquify && !st.IsLeaf() {
				st.Node().UniquifyNames()
			}
			fmt.Print(st.Render(features))
		},
	}
	config.treeConfig.addFlags(cmd)
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the different features used on the tree (required)")
	cmd.PersistentFlags().StringVarP(&(config.classFeature), "class-feature", "c", "", "name of the feature the tree predicts (required with store)")
	cmd.PersistentFlags().BoolVar(&(config.uniquify), "uniquify", false, "rename the nodes as Node0, Node1... in post-order before showing them")
	return cmd
}

func (scc *showCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.store != "" && scc.classFeature == "" {
		return fmt.Errorf("required class-feature flag was not set for the store")
	}
	return scc.treeConfig.Validate()
}
