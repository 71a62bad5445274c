// Package mono implements reverse-mode differentiation of a single-variable chain.
//
// A chain is an ordered list of unary operations applied to one running value:
//
//	f(x) = opN(...op2(op1(x)))
//
// Evaluate runs the forward pass once, recording the value fed into every
// step, and returns a Backward closure that applies the chain rule in reverse:
//
//	value, backward := mono.Evaluate([]mono.Op{mono.Sin, mono.Cos, mono.Exp}, 2.0)
//	grad := backward(1.0) // f'(2.0)
//
// Only unary operations can be expressed as an Op, so a chain needs no
// validation and evaluation never fails.
package mono

import (
	"fmt"
	"strings"

	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Op is a unary operation usable in a chain.
type Op uint8

// Chain operations.
const (
	Sin Op = iota
	Cos
	Tan
	Exp
	Ln
	Sqrt
	Abs
	Neg

	numOps
)

var catalog = [numOps]ops.Op{
	Sin:  ops.Sin,
	Cos:  ops.Cos,
	Tan:  ops.Tan,
	Exp:  ops.Exp,
	Ln:   ops.Ln,
	Sqrt: ops.Sqrt,
	Abs:  ops.Abs,
	Neg:  ops.Neg,
}

// Catalog returns the elementary operation backing op.
func (op Op) Catalog() ops.Op {
	if op >= numOps {
		panic(fmt.Sprintf("mono: invalid operation %d", uint8(op)))
	}
	return catalog[op]
}

// String returns the lowercase name of the operation.
func (op Op) String() string {
	if op >= numOps {
		return fmt.Sprintf("mono.Op(%d)", uint8(op))
	}
	return catalog[op].String()
}

// FromCatalog converts an elementary operation to a chain operation.
// It fails for operations that do not take exactly one value argument.
func FromCatalog(op ops.Op) (Op, error) {
	for m, c := range catalog {
		if c == op {
			return Op(m), nil
		}
	}
	return 0, fmt.Errorf("mono: %s is not a unary operation", op)
}

// ParseChain converts operation names into a chain.
func ParseChain(names []string) ([]Op, error) {
	chain := make([]Op, 0, len(names))
	for i, name := range names {
		op, err := ops.ParseOp(name)
		if err != nil {
			return nil, fmt.Errorf("mono: step %d: %w", i, err)
		}
		m, err := FromCatalog(op)
		if err != nil {
			return nil, fmt.Errorf("mono: step %d: %w", i, err)
		}
		chain = append(chain, m)
	}
	return chain, nil
}

// FormatChain renders a chain as the composed expression applied to x,
// e.g. "exp(cos(sin(x)))".
func FormatChain(chain []Op) string {
	var b strings.Builder
	for i := len(chain) - 1; i >= 0; i-- {
		b.WriteString(chain[i].String())
		b.WriteByte('(')
	}
	b.WriteByte('x')
	b.WriteString(strings.Repeat(")", len(chain)))
	return b.String()
}
