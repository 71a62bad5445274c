// Package ops defines the elementary scalar operations used by both autodiff engines.
//
// Each operation has a fixed arity, a forward formula and a local derivative
// formula for each argument. Derivatives are evaluated at the forward input
// values, never at the output (exp reuses its output as a shortcut).
//
// Supported operations:
//   - Inp: input passthrough, its single argument is an index into the raw inputs
//   - Add, Sub, Mul, Div, Pow: binary arithmetic
//   - Sin, Cos, Tan, Exp, Ln, Sqrt, Abs, Neg: unary functions
//
// No domain guards are applied. Ln of a non-positive value, Sqrt of a negative
// value or division by zero produce NaN or Inf exactly as IEEE 754 dictates.
package ops

import (
	"fmt"
	"strings"
)

// Op identifies the elementary function computed by a node.
type Op uint8

// Operation tags.
const (
	Inp Op = iota
	Add
	Sub
	Mul
	Div
	Pow
	Sin
	Cos
	Tan
	Exp
	Ln
	Sqrt
	Abs
	Neg

	numOps
)

var opNames = [numOps]string{
	Inp:  "inp",
	Add:  "add",
	Sub:  "sub",
	Mul:  "mul",
	Div:  "div",
	Pow:  "pow",
	Sin:  "sin",
	Cos:  "cos",
	Tan:  "tan",
	Exp:  "exp",
	Ln:   "ln",
	Sqrt: "sqrt",
	Abs:  "abs",
	Neg:  "neg",
}

// aliases accepted by ParseOp in addition to the canonical names.
var opAliases = map[string]Op{
	"input": Inp,
	"log":   Ln,
}

// MaxArity is the largest argument count of any operation.
const MaxArity = 2

// String returns the lowercase name of the operation.
func (op Op) String() string {
	if op >= numOps {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opNames[op]
}

// Valid reports whether op is a known operation tag.
func (op Op) Valid() bool {
	return op < numOps
}

// Arity returns the number of arguments the operation requires.
// Unknown tags report 0.
func (op Op) Arity() int {
	switch op {
	case Add, Sub, Mul, Div, Pow:
		return 2
	case Inp, Sin, Cos, Tan, Exp, Ln, Sqrt, Abs, Neg:
		return 1
	default:
		return 0
	}
}

// IsInput reports whether op is the input passthrough.
func (op Op) IsInput() bool {
	return op == Inp
}

// Ops returns every operation tag in declaration order.
func Ops() []Op {
	all := make([]Op, 0, numOps)
	for op := Inp; op < numOps; op++ {
		all = append(all, op)
	}
	return all
}

// ParseOp resolves an operation from its name (case-insensitive).
func ParseOp(name string) (Op, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for op := Inp; op < numOps; op++ {
		if opNames[op] == key {
			return op, nil
		}
	}
	if op, ok := opAliases[key]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("ops: unknown operation %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (op Op) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("ops: invalid operation tag %d", uint8(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Op) UnmarshalText(text []byte) error {
	parsed, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}
