// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation of scalar
// expressions.
//
// Two engines are available. A single-variable chain applies unary operations
// one after another to a running value:
//
//	value, backward := autodiff.EvaluateChain([]autodiff.ChainOp{autodiff.ChainSin, autodiff.ChainCos, autodiff.ChainExp}, 2.0)
//	fmt.Println(value, backward(1.0)) // f(2), f'(2)
//
// A multi-variable graph wires named operations together by node index and
// yields a gradient vector:
//
//	g, err := autodiff.NewBuilder(2).
//	    Add(0, 1). // x + y
//	    Sin(0).    // sin(x)
//	    Mul(2, 3). // sin(x) * (x + y)
//	    Build()
//	value, backward, err := autodiff.EvaluateWithGradient(g, []float64{0.6, 1.4})
//	grads := backward(1.0) // [∂f/∂x, ∂f/∂y]
package autodiff

import (
	"context"

	"github.com/born-ml/scalarad/internal/autodiff/graph"
	"github.com/born-ml/scalarad/internal/autodiff/mono"
	"github.com/born-ml/scalarad/internal/autodiff/ops"
	"github.com/born-ml/scalarad/internal/parallel"
)

// Op identifies an elementary operation.
type Op = ops.Op

// Elementary operations.
const (
	Inp  = ops.Inp
	Add  = ops.Add
	Sub  = ops.Sub
	Mul  = ops.Mul
	Div  = ops.Div
	Pow  = ops.Pow
	Sin  = ops.Sin
	Cos  = ops.Cos
	Tan  = ops.Tan
	Exp  = ops.Exp
	Ln   = ops.Ln
	Sqrt = ops.Sqrt
	Abs  = ops.Abs
	Neg  = ops.Neg
)

// ParseOp resolves an operation from its name.
func ParseOp(name string) (Op, error) {
	return ops.ParseOp(name)
}

// ChainOp is a unary operation usable in a single-variable chain.
type ChainOp = mono.Op

// Chain operations.
const (
	ChainSin  = mono.Sin
	ChainCos  = mono.Cos
	ChainTan  = mono.Tan
	ChainExp  = mono.Exp
	ChainLn   = mono.Ln
	ChainSqrt = mono.Sqrt
	ChainAbs  = mono.Abs
	ChainNeg  = mono.Neg
)

// ChainBackward maps a seed to the derivative of a chain.
type ChainBackward = mono.Backward

// SharedChainBackward is the shareable form of ChainBackward.
type SharedChainBackward = mono.SharedBackward

// ComputeChain evaluates a chain without recording for differentiation.
func ComputeChain(chain []ChainOp, x float64) float64 {
	return mono.Compute(chain, x)
}

// EvaluateChain evaluates a chain and returns its backward procedure.
func EvaluateChain(chain []ChainOp, x float64) (float64, ChainBackward) {
	return mono.Evaluate(chain, x)
}

// ParseChain builds a chain from operation names.
func ParseChain(names []string) ([]ChainOp, error) {
	return mono.ParseChain(names)
}

// Graph is an immutable multi-variable computational graph.
type Graph = graph.Graph

// Node is one operation of a graph.
type Node = graph.Node

// Builder constructs graphs fluently.
type Builder = graph.Builder

// Backward maps a seed to the gradient of a graph's output.
type Backward = graph.Backward

// SharedBackward is the shareable form of Backward.
type SharedBackward = graph.SharedBackward

// Result is the value and gradient of one batch evaluation.
type Result = graph.Result

// NodeError reports a validation failure at a node.
type NodeError = graph.NodeError

// ParallelConfig controls batch evaluation concurrency.
type ParallelConfig = parallel.Config

// Graph validation errors.
var (
	ErrArityMismatch         = graph.ErrArityMismatch
	ErrInvalidReference      = graph.ErrInvalidReference
	ErrInputIndexOutOfBounds = graph.ErrInputIndexOutOfBounds
	ErrEmptyGraph            = graph.ErrEmptyGraph
	ErrInvalidOp             = graph.ErrInvalidOp
	ErrBuilderConsumed       = graph.ErrBuilderConsumed
)

// NewGraph validates nodes and returns the graph they describe.
func NewGraph(nodes ...Node) (*Graph, error) {
	return graph.New(nodes...)
}

// Input returns a passthrough node reading inputs[index].
func Input(index int) Node {
	return graph.Input(index)
}

// NewNode returns a node applying op to earlier nodes.
func NewNode(op Op, args ...int) Node {
	return graph.NewNode(op, args...)
}

// NewBuilder returns a builder for a graph over numInputs inputs.
func NewBuilder(numInputs int) *Builder {
	return graph.NewBuilder(numInputs)
}

// Evaluate runs the forward pass of g.
func Evaluate(g *Graph, inputs []float64) (float64, error) {
	return graph.Evaluate(g, inputs)
}

// EvaluateWithGradient runs the forward pass of g and returns its backward procedure.
func EvaluateWithGradient(g *Graph, inputs []float64) (float64, Backward, error) {
	return graph.EvaluateWithGradient(g, inputs)
}

// EvaluateBatch evaluates g for every input vector concurrently.
func EvaluateBatch(ctx context.Context, g *Graph, batch [][]float64, seed float64, cfg ParallelConfig) ([]Result, error) {
	return graph.EvaluateBatch(ctx, g, batch, seed, cfg)
}

// DefaultParallelConfig returns the default batch concurrency settings.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
