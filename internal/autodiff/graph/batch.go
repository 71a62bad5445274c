package graph

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/born-ml/scalarad/internal/parallel"
)

// Result is the value and gradient of one evaluation.
type Result struct {
	Value    float64
	Gradient []float64
}

// EvaluateBatch evaluates g once per input vector, backpropagating seed
// through each, and returns the results in batch order.
//
// Evaluations run concurrently according to cfg, each with its own buffers.
// The first failing input vector aborts the batch; its error names the
// batch position.
func EvaluateBatch(ctx context.Context, g *Graph, batch [][]float64, seed float64, cfg parallel.Config) ([]Result, error) {
	if g == nil || len(g.nodes) == 0 {
		return nil, ErrEmptyGraph
	}
	results := make([]Result, len(batch))
	klog.V(1).Infof("graph: evaluating batch of %d over %d nodes", len(batch), len(g.nodes))

	err := parallel.ForEach(ctx, len(batch), func(_ context.Context, i int) error {
		value, backward, err := EvaluateWithGradient(g, batch[i])
		if err != nil {
			return fmt.Errorf("batch item %d: %w", i, err)
		}
		results[i] = Result{Value: value, Gradient: backward(seed)}
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return results, nil
}
