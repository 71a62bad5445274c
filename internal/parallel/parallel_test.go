package parallel

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEach(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 1000
	seen := make([]int32, n)
	err := ForEach(context.Background(), n, func(_ context.Context, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	}, cfg)
	require.NoError(t, err)

	for i, c := range seen {
		assert.Equal(t, int32(1), c, "index %d", i)
	}
}

func TestForEach_Sequential(t *testing.T) {
	var order []int
	err := ForEach(context.Background(), 5, func(_ context.Context, i int) error {
		order = append(order, i)
		return nil
	}, Sequential())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestForEach_SmallWorkFallsBackToSequential(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = true

	var counter int64
	n := cfg.MinChunkSize - 1
	err := ForEach(context.Background(), n, func(_ context.Context, _ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(n), counter)
}

func TestForEach_Error(t *testing.T) {
	boom := errors.New("boom")
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2}

	err := ForEach(context.Background(), 100, func(_ context.Context, i int) error {
		if i == 37 {
			return boom
		}
		return nil
	}, cfg)
	assert.ErrorIs(t, err, boom)

	err = ForEach(context.Background(), 10, func(_ context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	}, Sequential())
	assert.ErrorIs(t, err, boom)
}

func TestForEach_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var counter int64
	err := ForEach(ctx, 100, func(_ context.Context, _ int) error {
		atomic.AddInt64(&counter, 1)
		return nil
	}, Config{Enabled: true, NumWorkers: 4, MinChunkSize: 2})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, counter)

	assert.ErrorIs(t, ForEach(ctx, 0, nil, Sequential()), context.Canceled)
}

func BenchmarkForEach(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000
	work := func(_ context.Context, i int) error {
		_ = i * i
		return nil
	}

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = ForEach(context.Background(), n, work, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = ForEach(context.Background(), n, work, Sequential())
		}
	})
}
