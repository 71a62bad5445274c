// Package graph implements reverse-mode differentiation over a multi-variable
// computational graph.
//
// A Graph is an ordered list of nodes. A node's position is its identity and
// output slot. Input passthrough nodes (ops.Inp) read one value from the
// caller's input vector; every other node reads the outputs of earlier nodes.
// References must point strictly backwards, which makes the graph acyclic by
// construction and lets both passes run as simple index loops:
//
//	forward:  0 .. N-1, outputs[i] = op_i(outputs[args_i])
//	backward: N-1 .. 0, adjoint[arg] += adjoint[i] * ∂op_i/∂arg
//
// Example, f(x, y) = sin(x) * (x + y):
//
//	g, err := graph.NewBuilder(2).
//		Add(0, 1). // 2: x + y
//		Sin(0).    // 3: sin(x)
//		Mul(2, 3). // 4: sin(x) * (x + y)
//		Build()
//	value, backward, err := graph.EvaluateWithGradient(g, []float64{0.6, 1.4})
//	grads := backward(1.0) // [∂f/∂x, ∂f/∂y]
//
// A Graph is immutable and may be evaluated concurrently; every evaluation
// allocates its own buffers.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Node pairs an operation with its argument references.
//
// For ops.Inp the single argument is an index into the input vector. For all
// other operations each argument is the position of an earlier node.
type Node struct {
	Op   ops.Op
	Args []int
}

// Input returns a passthrough node reading inputs[index].
func Input(index int) Node {
	return Node{Op: ops.Inp, Args: []int{index}}
}

// NewNode returns a node applying op to args.
func NewNode(op ops.Op, args ...int) Node {
	return Node{Op: op, Args: args}
}

func (n Node) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = fmt.Sprint(a)
	}
	return n.Op.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Graph is a validated, immutable sequence of nodes.
type Graph struct {
	nodes     []Node
	maxInput int // largest input index referenced, -1 if none
}

// New validates nodes and returns the graph they describe.
//
// It checks that every node's argument count matches its operation's arity
// and that every non-input argument references an earlier node. Input
// indices are checked against the actual input vector at evaluation time.
// The argument slices are copied, later changes to nodes do not affect the
// graph. An empty node list is accepted but cannot be evaluated.
func New(nodes ...Node) (*Graph, error) {
	g := &Graph{nodes: make([]Node, len(nodes)), maxInput: -1}
	for i, n := range nodes {
		if err := validateNode(i, n); err != nil {
			return nil, err
		}
		g.nodes[i] = Node{Op: n.Op, Args: append([]int(nil), n.Args...)}
		if n.Op.IsInput() {
			g.maxInput = max(g.maxInput, n.Args[0])
		}
	}
	return g, nil
}

// validateNode checks one node against the arity and ordering invariants.
func validateNode(pos int, n Node) error {
	if !n.Op.Valid() {
		return &NodeError{Node: pos, Op: n.Op, Arg: -1, Err: ErrInvalidOp}
	}
	if want := n.Op.Arity(); len(n.Args) != want {
		return &NodeError{
			Node:    pos,
			Op:      n.Op,
			Arg:     -1,
			Err:     ErrArityMismatch,
			Details: fmt.Sprintf("expected %d, got %d", want, len(n.Args)),
		}
	}
	for j, ref := range n.Args {
		if n.Op.IsInput() {
			if ref < 0 {
				return &NodeError{
					Node:    pos,
					Op:      n.Op,
					Arg:     j,
					Err:     ErrInputIndexOutOfBounds,
					Details: fmt.Sprintf("input index %d is negative", ref),
				}
			}
			continue
		}
		if ref < 0 || ref >= pos {
			return &NodeError{
				Node:    pos,
				Op:      n.Op,
				Arg:     j,
				Err:     ErrInvalidReference,
				Details: fmt.Sprintf("references %d, must be in [0, %d)", ref, pos),
			}
		}
	}
	return nil
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns a copy of the node at position i.
func (g *Graph) Node(i int) Node {
	n := g.nodes[i]
	return Node{Op: n.Op, Args: append([]int(nil), n.Args...)}
}

// Nodes returns a copy of all nodes in order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.Node(i)
	}
	return out
}

// MinInputs returns the smallest input vector length the graph can be
// evaluated with: one past the largest input index referenced. It saturates
// at math.MaxInt.
func (g *Graph) MinInputs() int {
	if g.maxInput == math.MaxInt {
		return math.MaxInt
	}
	return g.maxInput + 1
}

// String lists the nodes, one per line, prefixed with their position.
func (g *Graph) String() string {
	var b strings.Builder
	for i, n := range g.nodes {
		fmt.Fprintf(&b, "%d: %s\n", i, n)
	}
	return b.String()
}

// checkInputs validates an input vector against the graph before evaluation.
func (g *Graph) checkInputs(inputs []float64) error {
	if g == nil || len(g.nodes) == 0 {
		return ErrEmptyGraph
	}
	if g.maxInput < len(inputs) {
		return nil
	}
	for i, n := range g.nodes {
		if n.Op.IsInput() && n.Args[0] >= len(inputs) {
			return &NodeError{
				Node:    i,
				Op:      n.Op,
				Arg:     0,
				Err:     ErrInputIndexOutOfBounds,
				Details: fmt.Sprintf("input index %d, got %d inputs", n.Args[0], len(inputs)),
			}
		}
	}
	return nil
}
