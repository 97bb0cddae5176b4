package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/tree"
	"github.com/pbanos/arbor/tree/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	rs := &redisStore{prefix: "arbor"}
	assert.Equal(t, "arbor:restaurant", rs.keyFor("restaurant"))
}

func TestOpenInvalidURL(t *testing.T) {
	_, err := Open("http://localhost", "arbor", nil)
	assert.Error(t, err)
}

// TestRedisStore runs against the redis database at ARBOR_TEST_REDIS_URL
func TestRedisStore(t *testing.T) {
	url := os.Getenv("ARBOR_TEST_REDIS_URL")
	if url == "" {
		t.Skip("ARBOR_TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	features := []*feature.DiscreteFeature{
		feature.NewDiscreteFeature("Hungry", []interface{}{"Yes", "No"}),
		feature.NewDiscreteFeature("WillWait", []interface{}{"Yes", "No"}),
	}
	s, err := Open(url, "arbor-test", json.NewEncodeDecoder(features, 1))
	require.NoError(t, err)
	defer s.Close(ctx)

	n := tree.NewNode(0)
	n.AddBranch("Yes", tree.Leaf("Yes")).AddBranch("No", tree.Leaf("No"))
	require.NoError(t, s.Save(ctx, "hungry", tree.Internal(n)))
	st, err := s.Load(ctx, "hungry")
	require.NoError(t, err)
	assert.True(t, st.Node().Equal(n))

	require.NoError(t, s.Delete(ctx, "hungry"))
	_, err = s.Load(ctx, "hungry")
	assert.Equal(t, tree.ErrTreeNotFound, err)
}
