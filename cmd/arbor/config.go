package main

import (
	"fmt"
	"io/ioutil"
	"math/rand"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

// defaultFolds is the default number of folds of cross-validations
const defaultFolds = 10

/*
evalConfig holds the settings of the evaluation commands. They can be read
from a YML file and are overridden by the flags set on the command line.
*/
type evalConfig struct {
	K      int   `yaml:"k"`
	Trials int   `yaml:"trials"`
	Seed   int64 `yaml:"seed"`
	Sizes  []int `yaml:"sizes"`
	Prune  bool  `yaml:"prune"`
}

/*
readEvalConfig returns the given default evaluation settings overridden by
those in the YML document at path. An empty path yields the defaults.
*/
func readEvalConfig(path string, defaults evalConfig) (*evalConfig, error) {
	ec := defaults
	if path == "" {
		return &ec, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %v", path, err)
	}
	err = yaml.UnmarshalStrict(data, &ec)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %v", path, err)
	}
	return &ec, nil
}

func (ec *evalConfig) Validate() error {
	if ec.K < 1 {
		return fmt.Errorf("invalid number of folds %d", ec.K)
	}
	if ec.Trials < 1 {
		return fmt.Errorf("invalid number of trials %d", ec.Trials)
	}
	for _, s := range ec.Sizes {
		if s < 0 {
			return fmt.Errorf("invalid training size %d", s)
		}
	}
	return nil
}

/*
override replaces the settings of ec whose flags were set on cmd with the
values of flags.
*/
func (ec *evalConfig) override(cmd *cobra.Command, flags *evalConfig) {
	changed := cmd.Flags().Changed
	if changed("folds") {
		ec.K = flags.K
	}
	if changed("trials") {
		ec.Trials = flags.Trials
	}
	if changed("seed") {
		ec.Seed = flags.Seed
	}
	if changed("sizes") {
		ec.Sizes = flags.Sizes
	}
	if changed("prune") {
		ec.Prune = flags.Prune
	}
}

// Rand returns a source seeded with Seed, or nil to seed it with the time
func (ec *evalConfig) Rand() *rand.Rand {
	if ec.Seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(ec.Seed))
}

/*
evalSettings reads the config file of the root command over the defaults of
the flags of cmd, and applies the flags set on the command line over it.
*/
func evalSettings(cmd *cobra.Command, rootConfig *rootCmdConfig, flags *evalConfig) (*evalConfig, error) {
	ec, err := readEvalConfig(rootConfig.configPath, *flags)
	if err != nil {
		return nil, err
	}
	ec.override(cmd, flags)
	return ec, ec.Validate()
}
