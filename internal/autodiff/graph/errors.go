package graph

import (
	"errors"
	"fmt"

	"github.com/born-ml/scalarad/internal/autodiff/ops"
)

// Graph validation errors.
var (
	ErrArityMismatch         = errors.New("argument count does not match operation arity")
	ErrInvalidReference      = errors.New("argument references a node at or after its own position")
	ErrInputIndexOutOfBounds = errors.New("input index out of bounds")
	ErrEmptyGraph            = errors.New("graph has no nodes")
	ErrInvalidOp             = errors.New("unknown operation")
	ErrBuilderConsumed       = errors.New("builder already built")
)

// NodeError reports a validation failure at a specific node.
// Use errors.Is with the sentinel errors above to classify it.
type NodeError struct {
	Node    int    // position of the offending node
	Op      ops.Op // its operation
	Arg     int    // offending argument position, -1 when not argument specific
	Err     error  // one of the sentinel errors
	Details string
}

func (e *NodeError) Error() string {
	msg := fmt.Sprintf("graph: node %d (%s)", e.Node, e.Op)
	if e.Arg >= 0 {
		msg += fmt.Sprintf(" arg %d", e.Arg)
	}
	msg += ": " + e.Err.Error()
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
