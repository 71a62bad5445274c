package graph

import (
	"fmt"

	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Builder constructs a Graph without manual index bookkeeping.
//
// NewBuilder(n) reserves positions 0..n-1 for passthrough nodes reading the
// n inputs in order. Each append method adds one node at position
// NextIndex() and returns the builder for chaining:
//
//	b := graph.NewBuilder(3) // x, y, z at 0, 1, 2
//	b.Pow(0, 1)              // 3: x^y
//	b.Add(b.Last(), 2)       // 4: x^y + z
//	g, err := b.Build()
//
// Arguments are checked as nodes are appended. The first failure is kept,
// every later call becomes a no-op, and Build reports it.
type Builder struct {
	numInputs int
	nodes     []Node
	next      int
	err       error
	built     bool
}

// NewBuilder returns a builder for a graph over numInputs inputs.
// A negative count is treated as zero.
func NewBuilder(numInputs int) *Builder {
	numInputs = max(numInputs, 0)
	b := &Builder{
		numInputs: numInputs,
		nodes:     make([]Node, 0, numInputs+8),
		next:      numInputs,
	}
	for i := range numInputs {
		b.nodes = append(b.nodes, Input(i))
	}
	return b
}

// Add appends a + b.
func (b *Builder) Add(left, right int) *Builder { return b.append(ops.Add, left, right) }

// Sub appends a - b.
func (b *Builder) Sub(left, right int) *Builder { return b.append(ops.Sub, left, right) }

// Mul appends a * b.
func (b *Builder) Mul(left, right int) *Builder { return b.append(ops.Mul, left, right) }

// Div appends a / b.
func (b *Builder) Div(left, right int) *Builder { return b.append(ops.Div, left, right) }

// Pow appends base^exponent.
func (b *Builder) Pow(base, exponent int) *Builder { return b.append(ops.Pow, base, exponent) }

// Sin appends sin(x).
func (b *Builder) Sin(x int) *Builder { return b.append(ops.Sin, x) }

// Cos appends cos(x).
func (b *Builder) Cos(x int) *Builder { return b.append(ops.Cos, x) }

// Tan appends tan(x).
func (b *Builder) Tan(x int) *Builder { return b.append(ops.Tan, x) }

// Exp appends e^x.
func (b *Builder) Exp(x int) *Builder { return b.append(ops.Exp, x) }

// Ln appends the natural logarithm of x.
func (b *Builder) Ln(x int) *Builder { return b.append(ops.Ln, x) }

// Sqrt appends √x.
func (b *Builder) Sqrt(x int) *Builder { return b.append(ops.Sqrt, x) }

// Abs appends |x|.
func (b *Builder) Abs(x int) *Builder { return b.append(ops.Abs, x) }

// Neg appends -x.
func (b *Builder) Neg(x int) *Builder { return b.append(ops.Neg, x) }

// Custom appends an arbitrary operation. For ops.Inp the argument is an input
// index and must be below the builder's input count.
func (b *Builder) Custom(op ops.Op, args ...int) *Builder {
	return b.append(op, args...)
}

func (b *Builder) append(op ops.Op, args ...int) *Builder {
	if b.built {
		b.setErr(ErrBuilderConsumed)
		return b
	}
	if b.err != nil {
		return b
	}

	pos := b.next
	n := Node{Op: op, Args: args}
	if err := validateNode(pos, n); err != nil {
		b.err = err
		return b
	}
	if op.IsInput() && args[0] >= b.numInputs {
		b.err = &NodeError{
			Node:    pos,
			Op:      op,
			Arg:     0,
			Err:     ErrInputIndexOutOfBounds,
			Details: fmt.Sprintf("input index %d, builder has %d inputs", args[0], b.numInputs),
		}
		return b
	}

	b.nodes = append(b.nodes, Node{Op: op, Args: append([]int(nil), args...)})
	b.next++
	return b
}

func (b *Builder) setErr(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

// NextIndex returns the position the next appended node will occupy.
func (b *Builder) NextIndex() int {
	return b.next
}

// Last returns the position of the most recently added node, or -1 if the
// builder holds no nodes at all.
func (b *Builder) Last() int {
	return b.next - 1
}

// Len returns the number of appended nodes, not counting the implicit inputs.
func (b *Builder) Len() int {
	return b.next - b.numInputs
}

// NumInputs returns the number of inputs declared at construction.
func (b *Builder) NumInputs() int {
	return b.numInputs
}

// Build returns the finished graph: the input passthrough nodes followed by
// the appended nodes in call order. The builder is consumed; any later call
// on it fails with ErrBuilderConsumed.
func (b *Builder) Build() (*Graph, error) {
	if b.built {
		b.setErr(ErrBuilderConsumed)
		return nil, ErrBuilderConsumed
	}
	b.built = true
	if b.err != nil {
		return nil, b.err
	}
	g := &Graph{nodes: b.nodes, maxInput: b.numInputs - 1}
	b.nodes = nil
	return g, nil
}
