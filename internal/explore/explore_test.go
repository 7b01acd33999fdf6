package explore

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumBranch offers moves(i) choices at every position; choice k adds k to the
// running sum. It accepts when the sum equals target.
type sumBranch struct {
	moves  func(i int) int
	target int
	sum    int
	takes  *atomic.Int64
}

func newSumBranch(width, target int) *sumBranch {
	return &sumBranch{
		moves:  func(int) int { return width },
		target: target,
		takes:  &atomic.Int64{},
	}
}

func (b *sumBranch) Expand(i int) int { return b.moves(i) }

func (b *sumBranch) Take(k int) {
	b.sum += k
	b.takes.Add(1)
}

func (b *sumBranch) Fork() *sumBranch {
	clone := *b
	return &clone
}

func (b *sumBranch) Accepting() bool { return b.sum == b.target }

func TestRun_ORSemantics(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		length int
		target int
		want   bool
	}{
		{"reachable sum", 2, 3, 3, true},
		{"unreachable sum", 2, 3, 4, false},
		{"middle of the tree", 3, 4, 5, true},
		{"empty word accepts initial", 2, 0, 0, true},
		{"empty word rejects initial", 2, 0, 1, false},
		{"single move path", 1, 5, 0, true},
	}

	for _, tt := range tests {
		for _, parallelism := range []int{1, 4} {
			t.Run(tt.name, func(t *testing.T) {
				got, err := Run(context.Background(), newSumBranch(tt.width, tt.target), tt.length, Options{Parallelism: parallelism})
				require.NoError(t, err)
				assert.Equal(t, tt.want, got, "parallelism %d", parallelism)
			})
		}
	}
}

func TestRun_StuckJudgedWhereItStands(t *testing.T) {
	b := newSumBranch(0, 0)
	b.moves = func(i int) int {
		if i == 0 {
			return 1
		}
		return 0
	}

	got, err := Run(context.Background(), b, 5, Options{})
	require.NoError(t, err)
	assert.True(t, got)

	b = newSumBranch(0, 1)
	b.moves = func(int) int { return 0 }
	got, err = Run(context.Background(), b, 5, Options{})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRun_SequentialShortCircuit(t *testing.T) {
	b := newSumBranch(2, 0)

	got, err := Run(context.Background(), b, 1, Options{Parallelism: 1})
	require.NoError(t, err)
	assert.True(t, got)
	// The first branch accepts; the second is never taken.
	assert.Equal(t, int64(1), b.takes.Load())
}

func TestRun_OnFork(t *testing.T) {
	var forks atomic.Int64
	opts := Options{
		Parallelism: 1,
		OnFork: func(_ context.Context, _, branches int) {
			assert.Equal(t, 2, branches)
			forks.Add(1)
		},
	}

	got, err := Run(context.Background(), newSumBranch(2, 99), 3, opts)
	require.NoError(t, err)
	assert.False(t, got)
	assert.Equal(t, int64(1+2+4), forks.Load())

	forks.Store(0)
	_, err = Run(context.Background(), newSumBranch(1, 0), 3, opts)
	require.NoError(t, err)
	assert.Zero(t, forks.Load())
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallelism := range []int{1, 4} {
		got, err := Run(ctx, newSumBranch(2, 0), 3, Options{Parallelism: parallelism})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, got)
	}
}

func TestRun_WideParallelSearch(t *testing.T) {
	// 3^8 leaves; only the all-max path reaches the target.
	got, err := Run(context.Background(), newSumBranch(3, 16), 8, Options{Parallelism: 8})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = Run(context.Background(), newSumBranch(3, 17), 8, Options{Parallelism: 8})
	require.NoError(t, err)
	assert.False(t, got)
}
