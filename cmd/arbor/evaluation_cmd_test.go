package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/pbanos/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanStdDev(t *testing.T) {
	mean, std := meanStdDev(nil)
	assert.Equal(t, 0.0, mean)
	assert.Equal(t, 0.0, std)

	mean, std = meanStdDev([]float64{0.75})
	assert.Equal(t, 0.75, mean)
	assert.Equal(t, 0.0, std)

	mean, std = meanStdDev([]float64{0.5, 1})
	assert.Equal(t, 0.75, mean)
	assert.InDelta(t, math.Sqrt(0.125), std, 1e-9)
}

func TestWriteCurve(t *testing.T) {
	var buf bytes.Buffer
	points := []arbor.CurvePoint{{Size: 2, Accuracy: 0.5, StdDev: 0.1}, {Size: 10, Accuracy: 1}}
	require.NoError(t, writeCurve(&buf, points))
	expected := "size  accuracy  stddev\n" +
		"2     0.500000  0.100000\n" +
		"10    1.000000  0.000000\n"
	assert.Equal(t, expected, buf.String())
}

func TestCliParserCommands(t *testing.T) {
	root := cliParser()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "grow", "test", "predict", "show", "crossvalidate", "curve"}, names)
}
