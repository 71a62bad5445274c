package graph

import (
	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Evaluate runs the forward pass and returns the value of the last node.
func Evaluate(g *Graph, inputs []float64) (float64, error) {
	if err := g.checkInputs(inputs); err != nil {
		return 0, err
	}
	outputs := g.forward(inputs)
	return outputs[len(outputs)-1], nil
}

// EvaluateWithGradient runs the forward pass and returns the value of the
// last node together with the backward procedure producing the gradient with
// respect to every input.
//
// The gradient has one entry per element of inputs; inputs the graph never
// reads get 0.
func EvaluateWithGradient(g *Graph, inputs []float64) (float64, Backward, error) {
	if err := g.checkInputs(inputs); err != nil {
		return 0, nil, err
	}
	t := &tape{graph: g, numInputs: len(inputs)}
	t.outputs = g.forward(inputs)
	t.adjoint = make([]float64, len(t.outputs))
	return t.outputs[len(t.outputs)-1], t.backward, nil
}

// Gradient evaluates g at inputs and returns its value and gradient for a
// unit seed.
func Gradient(g *Graph, inputs []float64) (float64, []float64, error) {
	value, backward, err := EvaluateWithGradient(g, inputs)
	if err != nil {
		return 0, nil, err
	}
	return value, backward(1), nil
}

// forward computes every node's output in index order.
// The graph and inputs must have been validated.
func (g *Graph) forward(inputs []float64) []float64 {
	outputs := make([]float64, len(g.nodes))
	var args [ops.MaxArity]float64
	for i, n := range g.nodes {
		if n.Op.IsInput() {
			outputs[i] = inputs[n.Args[0]]
			continue
		}
		for j, ref := range n.Args {
			args[j] = outputs[ref]
		}
		outputs[i] = ops.Forward(n.Op, args[:len(n.Args)])
	}
	return outputs
}

// tape holds the forward values of one evaluation for its backward pass.
type tape struct {
	graph     *Graph
	numInputs int
	outputs   []float64
	adjoint   []float64 // scratch, reused across backward calls
}

// backward propagates seed from the last node back to the inputs.
//
// Nodes are visited in strictly decreasing index order. Every reference
// points to a smaller index, so adjoint[k] has received all contributions
// from its consumers before node k is processed.
func (t *tape) backward(seed float64) []float64 {
	nodes := t.graph.nodes
	adjoint := t.adjoint
	clear(adjoint)
	grads := make([]float64, t.numInputs)
	adjoint[len(adjoint)-1] = seed

	var args, partials [ops.MaxArity]float64
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		upstream := adjoint[i]
		if n.Op.IsInput() {
			grads[n.Args[0]] += upstream
			continue
		}
		for j, ref := range n.Args {
			args[j] = t.outputs[ref]
		}
		local := ops.Partials(n.Op, args[:len(n.Args)], t.outputs[i], partials[:0])
		for j, ref := range n.Args {
			adjoint[ref] += upstream * local[j]
		}
	}
	return grads
}
