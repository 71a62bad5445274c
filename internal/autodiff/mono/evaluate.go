package mono

import "github.com/born-ml/scalarad/internal/autodiff/ops"

// Backward maps a seed cotangent to the derivative of the chain with respect
// to its input, scaled by the seed.
//
// A Backward captures only the values recorded by its forward pass and may be
// called any number of times. It is the single-owner form; use Shared to
// hand it to several goroutines.
type Backward func(seed float64) float64

// step is one recorded forward step: the value fed into op and its result.
type step struct {
	op  ops.Op
	in  float64
	out float64
}

// Compute runs the forward pass only and returns f(x).
// An empty chain returns x unchanged.
func Compute(chain []Op, x float64) float64 {
	value := x
	for _, op := range chain {
		value = ops.Unary(op.Catalog(), value)
	}
	return value
}

// Evaluate runs the forward pass and returns f(x) together with the backward
// procedure for the chain.
//
// For an empty chain the value is x and the backward procedure is the
// identity on the seed.
func Evaluate(chain []Op, x float64) (float64, Backward) {
	steps := make([]step, len(chain))
	value := x
	for i, op := range chain {
		c := op.Catalog()
		out := ops.Unary(c, value)
		steps[i] = step{op: c, in: value, out: out}
		value = out
	}

	backward := func(seed float64) float64 {
		grad := seed
		for i := len(steps) - 1; i >= 0; i-- {
			s := steps[i]
			grad *= ops.Derivative(s.op, s.in, s.out)
		}
		return grad
	}

	return value, backward
}

// Derivative returns f(x) and f'(x) for the chain, using a unit seed.
func Derivative(chain []Op, x float64) (value, grad float64) {
	value, backward := Evaluate(chain, x)
	return value, backward(1)
}
