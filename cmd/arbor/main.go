package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	logger
	verbose    bool
	configPath string
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor is a tool to learn decision trees",
		Long:  `A tool to grow decision trees from your data with ID3, prune them, evaluate them and use them to make predictions`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.logger = newLogger(os.Stderr, config.verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of the command on STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configPath), "config", "", "path to a YML file with evaluation settings (k, trials, prune, seed, sizes)")
	rootCmd.AddCommand(
		versionCmd(),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		showCmd(config),
		crossValidateCmd(config),
		curveCmd(config),
	)
	return rootCmd
}
