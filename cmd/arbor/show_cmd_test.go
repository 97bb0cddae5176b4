package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowCmdValidate(t *testing.T) {
	scc := &showCmdConfig{rootCmdConfig: &rootCmdConfig{}}
	assert.Error(t, scc.Validate())
	scc.metadataInput = "meta.yml"
	scc.treeInput = "tree.json"
	assert.NoError(t, scc.Validate())
	scc.store = "redis://localhost:6379/0"
	assert.Error(t, scc.Validate(), "trees in a store need the class feature to be decoded")
	scc.classFeature = "Class"
	assert.NoError(t, scc.Validate())
}
