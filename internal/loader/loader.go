// Package loader reads graph and chain descriptions from YAML or JSON files.
//
// A description holds an optional multi-variable graph, an optional
// single-variable chain and default inputs for each:
//
//	inputs: [0.6, 1.4]
//	nodes:
//	  - {op: inp, args: [0]}
//	  - {op: inp, args: [1]}
//	  - {op: add, args: [0, 1]}
//	  - {op: sin, args: [0]}
//	  - {op: mul, args: [2, 3]}
//	chain: [sin, cos, exp]
//	x: 2.0
//
// JSON is a subset of YAML, so both are read by the same decoder.
package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"

	"github.com/born-ml/scalarad/internal/autodiff/graph"
	"github.com/born-ml/scalarad/internal/autodiff/mono"
	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Format is the encoding of a description file.
type Format int

// Supported formats.
const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "YAML"
	case FormatJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// DetectFormat guesses the format from a file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// NodeSpec is one node of a described graph.
type NodeSpec struct {
	Op   string `yaml:"op" json:"op"`
	Args []int  `yaml:"args" json:"args"`
}

// Spec is a parsed description file.
type Spec struct {
	Inputs []float64  `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Nodes  []NodeSpec `yaml:"nodes,omitempty" json:"nodes,omitempty"`
	Chain  []string   `yaml:"chain,omitempty" json:"chain,omitempty"`
	X      *float64   `yaml:"x,omitempty" json:"x,omitempty"`
}

// Load reads and parses a description file.
func Load(path string) (*Spec, error) {
	format := DetectFormat(path)
	if format == FormatUnknown {
		klog.V(1).Infof("loader: unrecognised extension for %q, decoding as YAML", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: reading %s", path)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loader: %s", path)
	}
	klog.V(2).Infof("loader: %s (%s): %d nodes, %d chain steps", path, format, len(spec.Nodes), len(spec.Chain))
	return spec, nil
}

// Parse decodes a description. Unknown fields are rejected.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var spec Spec
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "decoding description")
	}
	if len(spec.Nodes) == 0 && len(spec.Chain) == 0 {
		return nil, errors.New("description has neither nodes nor chain")
	}
	return &spec, nil
}

// HasGraph reports whether the description contains graph nodes.
func (s *Spec) HasGraph() bool {
	return len(s.Nodes) > 0
}

// HasChain reports whether the description contains a chain.
func (s *Spec) HasChain() bool {
	return len(s.Chain) > 0
}

// Graph resolves the node list and returns the validated graph.
func (s *Spec) Graph() (*graph.Graph, error) {
	if !s.HasGraph() {
		return nil, graph.ErrEmptyGraph
	}
	nodes := make([]graph.Node, len(s.Nodes))
	for i, n := range s.Nodes {
		op, err := ops.ParseOp(n.Op)
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", i)
		}
		nodes[i] = graph.NewNode(op, n.Args...)
	}
	g, err := graph.New(nodes...)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// ChainOps resolves the chain step names.
func (s *Spec) ChainOps() ([]mono.Op, error) {
	return mono.ParseChain(s.Chain)
}

// Marshal encodes s as YAML.
func Marshal(s *Spec) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, errors.Wrap(err, "encoding description")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encoding description")
	}
	return buf.Bytes(), nil
}

// FromGraph describes an existing graph, optionally with default inputs.
func FromGraph(g *graph.Graph, inputs []float64) *Spec {
	spec := &Spec{Inputs: inputs}
	for _, n := range g.Nodes() {
		spec.Nodes = append(spec.Nodes, NodeSpec{Op: n.Op.String(), Args: n.Args})
	}
	return spec
}
