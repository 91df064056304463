package worker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteKeepsInputOrder(t *testing.T) {
	pool := NewPool[string, string](3, func(_ context.Context, in string) (string, error) {
		return strings.ToUpper(in), nil
	})

	results := pool.Execute(context.Background(), []string{"a", "b", "c", "d", "e"})

	require.Len(t, results, 5)
	for i, want := range []string{"A", "B", "C", "D", "E"} {
		assert.Equal(t, want, results[i].Result)
		assert.NoError(t, results[i].Err)
	}
}

func TestExecuteReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	pool := NewPool[int, int](0, func(_ context.Context, in int) (int, error) {
		if in%2 == 1 {
			return 0, boom
		}
		return in * 10, nil
	})

	results := pool.Execute(context.Background(), []int{0, 1, 2})

	assert.Equal(t, 0, results[0].Result)
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Equal(t, 20, results[2].Result)
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool[int, int](2, func(context.Context, int) (int, error) {
		calls.Add(1)
		return 1, nil
	})

	results := pool.Execute(ctx, []int{1, 2, 3, 4})

	require.Len(t, results, 4)
	for _, r := range results {
		if r.Err != nil {
			assert.ErrorIs(t, r.Err, context.Canceled)
		}
	}
	assert.LessOrEqual(t, int(calls.Load()), 4)
}
