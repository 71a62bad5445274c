// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package autodiff_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/scalarad/autodiff"
)

func TestChain(t *testing.T) {
	chain, err := autodiff.ParseChain([]string{"sin", "cos", "exp"})
	require.NoError(t, err)
	assert.Equal(t, []autodiff.ChainOp{autodiff.ChainSin, autodiff.ChainCos, autodiff.ChainExp}, chain)

	x := 2.0
	value, backward := autodiff.EvaluateChain(chain, x)
	want := math.Exp(math.Cos(math.Sin(x)))
	assert.InDelta(t, want, value, 1e-12)
	assert.InDelta(t, want*-math.Sin(math.Sin(x))*math.Cos(x), backward(1), 1e-12)
	assert.Equal(t, value, autodiff.ComputeChain(chain, x))
	assert.InDelta(t, 3*backward(1), backward.Shared().Call(3), 1e-12)
}

func TestGraph(t *testing.T) {
	g, err := autodiff.NewGraph(
		autodiff.Input(0),
		autodiff.Input(1),
		autodiff.NewNode(autodiff.Add, 0, 1),
		autodiff.NewNode(autodiff.Sin, 0),
		autodiff.NewNode(autodiff.Mul, 2, 3),
	)
	require.NoError(t, err)

	built, err := autodiff.NewBuilder(2).Add(0, 1).Sin(0).Mul(2, 3).Build()
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), built.Nodes())

	x, y := 0.6, 1.4
	value, backward, err := autodiff.EvaluateWithGradient(g, []float64{x, y})
	require.NoError(t, err)
	assert.InDelta(t, math.Sin(x)*(x+y), value, 1e-12)

	grads := backward.Shared().Call(1)
	assert.InDelta(t, math.Sin(x)+2*math.Cos(x), grads[0], 1e-12)
	assert.InDelta(t, math.Sin(x), grads[1], 1e-12)

	forward, err := autodiff.Evaluate(g, []float64{x, y})
	require.NoError(t, err)
	assert.Equal(t, value, forward)

	results, err := autodiff.EvaluateBatch(context.Background(), g, [][]float64{{x, y}}, 1, autodiff.DefaultParallelConfig())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, value, results[0].Value, 1e-12)
}

func TestErrors(t *testing.T) {
	_, err := autodiff.NewGraph(autodiff.Input(0), autodiff.Input(1), autodiff.NewNode(autodiff.Add, 0))
	assert.ErrorIs(t, err, autodiff.ErrArityMismatch)

	_, err = autodiff.NewGraph(autodiff.Input(0), autodiff.Input(1), autodiff.NewNode(autodiff.Mul, 0, 2))
	assert.ErrorIs(t, err, autodiff.ErrInvalidReference)

	empty, err := autodiff.NewGraph()
	require.NoError(t, err)
	_, err = autodiff.Evaluate(empty, nil)
	assert.ErrorIs(t, err, autodiff.ErrEmptyGraph)

	g, err := autodiff.NewGraph(autodiff.Input(3))
	require.NoError(t, err)
	_, err = autodiff.Evaluate(g, []float64{1})
	assert.ErrorIs(t, err, autodiff.ErrInputIndexOutOfBounds)

	_, err = autodiff.NewGraph(autodiff.NewNode(autodiff.Op(200), 0))
	assert.ErrorIs(t, err, autodiff.ErrInvalidOp)

	op, err := autodiff.ParseOp("pow")
	require.NoError(t, err)
	assert.Equal(t, autodiff.Pow, op)
}
