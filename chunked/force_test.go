package chunked

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

func TestForEach(t *testing.T) {
	t.Run("visits every block exactly once", func(t *testing.T) {
		a, err := New(95, 3, 10, constantBlocks(95, 3, 10, nil))
		require.NoError(t, err)

		var mu sync.Mutex
		seen := make(map[int]int)

		err = a.ForEach(context.Background(), 4, func(b, lo int, m *mat.Dense) error {
			mu.Lock()
			defer mu.Unlock()
			seen[b]++
			assert.Equal(t, b*10, lo)
			return nil
		})
		require.NoError(t, err)

		assert.Len(t, seen, 10)
		for b, count := range seen {
			assert.Equal(t, 1, count, "block %d", b)
		}
	})

	t.Run("fail-fast on block error", func(t *testing.T) {
		boom := errors.New("block exploded")
		a, err := New(100, 2, 10, func(b int) (*mat.Dense, error) {
			if b == 7 {
				return nil, boom
			}
			return mat.NewDense(10, 2, nil), nil
		})
		require.NoError(t, err)

		err = a.ForEach(context.Background(), 2, func(int, int, *mat.Dense) error { return nil })
		require.Error(t, err)
		assert.True(t, errors.Is(err, boom))
	})

	t.Run("panicking producer surfaces as error", func(t *testing.T) {
		a, err := New(20, 2, 10, func(b int) (*mat.Dense, error) {
			if b == 1 {
				panic("producer bug")
			}
			return mat.NewDense(10, 2, nil), nil
		})
		require.NoError(t, err)

		err = a.ForEach(context.Background(), 1, func(int, int, *mat.Dense) error { return nil })
		require.Error(t, err)

		var panicErr *errors.PanicError
		assert.True(t, errors.As(err, &panicErr))
	})

	t.Run("cancelled context stops work", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		a, err := New(100, 2, 10, constantBlocks(100, 2, 10, nil))
		require.NoError(t, err)

		err = a.ForEach(ctx, 2, func(int, int, *mat.Dense) error { return nil })
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("nil consumer is rejected", func(t *testing.T) {
		a, err := New(10, 2, 5, constantBlocks(10, 2, 5, nil))
		require.NoError(t, err)
		assert.Error(t, a.ForEach(context.Background(), 0, nil))
	})
}

func TestMaterialize(t *testing.T) {
	t.Run("assembles blocks in row order", func(t *testing.T) {
		a, err := New(25, 2, 10, constantBlocks(25, 2, 10, nil))
		require.NoError(t, err)

		m, err := a.Materialize(context.Background())
		require.NoError(t, err)

		r, c := m.Dims()
		assert.Equal(t, 25, r)
		assert.Equal(t, 2, c)

		assert.Equal(t, 0.0, m.At(0, 0))
		assert.Equal(t, 0.0, m.At(9, 1))
		assert.Equal(t, 1.0, m.At(10, 0))
		assert.Equal(t, 1.0, m.At(19, 1))
		assert.Equal(t, 2.0, m.At(20, 0))
		assert.Equal(t, 2.0, m.At(24, 1))
	})

	t.Run("propagates block failure", func(t *testing.T) {
		a, err := New(20, 2, 10, func(b int) (*mat.Dense, error) {
			if b == 1 {
				return nil, errors.New("no data")
			}
			return mat.NewDense(10, 2, nil), nil
		})
		require.NoError(t, err)

		_, err = a.Materialize(context.Background())
		assert.Error(t, err)
	})
}
