package loader

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalarad/internal/autodiff/graph"
	"github.com/born-ml/scalarad/internal/autodiff/mono"
)

const sinTimesSumYAML = `
inputs: [0.6, 1.4]
nodes:
  - {op: inp, args: [0]}
  - {op: inp, args: [1]}
  - {op: add, args: [0, 1]}
  - {op: sin, args: [0]}
  - {op: mul, args: [2, 3]}
chain: [sin, cos, exp]
x: 2.0
`

const sinTimesSumJSON = `{
  "inputs": [0.6, 1.4],
  "nodes": [
    {"op": "inp", "args": [0]},
    {"op": "inp", "args": [1]},
    {"op": "add", "args": [0, 1]},
    {"op": "sin", "args": [0]},
    {"op": "mul", "args": [2, 3]}
  ]
}`

func TestParse_YAML(t *testing.T) {
	spec, err := Parse([]byte(sinTimesSumYAML))
	require.NoError(t, err)
	assert.True(t, spec.HasGraph())
	assert.True(t, spec.HasChain())
	assert.Equal(t, []float64{0.6, 1.4}, spec.Inputs)
	require.NotNil(t, spec.X)
	assert.Equal(t, 2.0, *spec.X)

	g, err := spec.Graph()
	require.NoError(t, err)
	assert.Equal(t, 5, g.NumNodes())

	value, grads, err := graph.Gradient(g, spec.Inputs)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.6)*2, value, 1e-12)
	assert.InDelta(t, math.Sin(0.6), grads[1], 1e-12)

	chain, err := spec.ChainOps()
	require.NoError(t, err)
	assert.Equal(t, []mono.Op{mono.Sin, mono.Cos, mono.Exp}, chain)
}

func TestParse_JSON(t *testing.T) {
	spec, err := Parse([]byte(sinTimesSumJSON))
	require.NoError(t, err)
	assert.False(t, spec.HasChain())
	assert.Nil(t, spec.X)

	g, err := spec.Graph()
	require.NoError(t, err)
	value, err := graph.Evaluate(g, spec.Inputs)
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(0.6)*2, value, 1e-12)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("inputs: [1]\n"))
	assert.ErrorContains(t, err, "neither nodes nor chain")

	_, err = Parse([]byte("nodes: [{op: sin, args: [0]}]\nbogus: 1\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("nodes: {"))
	assert.Error(t, err)
}

func TestSpec_GraphErrors(t *testing.T) {
	spec, err := Parse([]byte("nodes:\n  - {op: inp, args: [0]}\n  - {op: relu, args: [0]}\n"))
	require.NoError(t, err)
	_, err = spec.Graph()
	assert.ErrorContains(t, err, "node 1")

	spec, err = Parse([]byte("nodes:\n  - {op: inp, args: [0]}\n  - {op: add, args: [0]}\n"))
	require.NoError(t, err)
	_, err = spec.Graph()
	assert.ErrorIs(t, err, graph.ErrArityMismatch)

	spec, err = Parse([]byte("nodes:\n  - {op: inp, args: [0]}\n  - {op: sin, args: [1]}\n"))
	require.NoError(t, err)
	_, err = spec.Graph()
	assert.ErrorIs(t, err, graph.ErrInvalidReference)

	spec, err = Parse([]byte("chain: [sin]\n"))
	require.NoError(t, err)
	_, err = spec.Graph()
	assert.ErrorIs(t, err, graph.ErrEmptyGraph)

	spec, err = Parse([]byte("chain: [sin, mul]\n"))
	require.NoError(t, err)
	_, err = spec.ChainOps()
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "f.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sinTimesSumYAML), 0o600))
	spec, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, spec.Nodes, 5)

	jsonPath := filepath.Join(dir, "f.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sinTimesSumJSON), 0o600))
	spec, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Len(t, spec.Nodes, 5)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatYAML, DetectFormat("a.YML"))
	assert.Equal(t, FormatJSON, DetectFormat("dir/a.json"))
	assert.Equal(t, FormatUnknown, DetectFormat("a.txt"))
	assert.Equal(t, "JSON", FormatJSON.String())
	assert.Equal(t, "Unknown", FormatUnknown.String())
}

func TestMarshal_RoundTripsGraph(t *testing.T) {
	g, err := graph.NewBuilder(2).Add(0, 1).Sin(0).Mul(2, 3).Build()
	require.NoError(t, err)

	data, err := Marshal(FromGraph(g, []float64{0.6, 1.4}))
	require.NoError(t, err)

	spec, err := Parse(data)
	require.NoError(t, err)
	loaded, err := spec.Graph()
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), loaded.Nodes())
	assert.Equal(t, []float64{0.6, 1.4}, spec.Inputs)
}
