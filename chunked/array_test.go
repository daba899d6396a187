package chunked

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

// constantBlocks returns a producer that fills block b with the value b,
// counting invocations per block.
func constantBlocks(rows, cols, size int, calls map[int]int) BlockFunc {
	return func(b int) (*mat.Dense, error) {
		if calls != nil {
			calls[b]++
		}
		lo := b * size
		hi := lo + size
		if hi > rows {
			hi = rows
		}
		m := mat.NewDense(hi-lo, cols, nil)
		for i := 0; i < hi-lo; i++ {
			for j := 0; j < cols; j++ {
				m.Set(i, j, float64(b))
			}
		}
		return m, nil
	}
}

func TestNew(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		a, err := New(100, 5, 10, constantBlocks(100, 5, 10, nil))
		require.NoError(t, err)
		assert.Equal(t, 100, a.Rows())
		assert.Equal(t, 5, a.Cols())
		assert.Equal(t, 10, a.BlockSize())
		assert.Equal(t, 10, a.NumBlocks())
	})

	t.Run("ragged final block", func(t *testing.T) {
		a, err := New(105, 3, 10, constantBlocks(105, 3, 10, nil))
		require.NoError(t, err)
		assert.Equal(t, 11, a.NumBlocks())

		lo, hi := a.BlockBounds(10)
		assert.Equal(t, 100, lo)
		assert.Equal(t, 105, hi)

		m, err := a.Block(10)
		require.NoError(t, err)
		r, _ := m.Dims()
		assert.Equal(t, 5, r)
	})

	t.Run("block size larger than rows degenerates to one block", func(t *testing.T) {
		a, err := New(7, 2, 100, constantBlocks(7, 2, 100, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, a.NumBlocks())

		m, err := a.Block(0)
		require.NoError(t, err)
		r, c := m.Dims()
		assert.Equal(t, 7, r)
		assert.Equal(t, 2, c)
	})

	t.Run("invalid parameters", func(t *testing.T) {
		cases := []struct {
			name             string
			rows, cols, size int
		}{
			{"zero rows", 0, 5, 10},
			{"negative rows", -1, 5, 10},
			{"zero cols", 100, 0, 10},
			{"zero size", 100, 5, 0},
			{"negative size", 100, 5, -3},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := New(tc.rows, tc.cols, tc.size, constantBlocks(tc.rows, tc.cols, tc.size, nil))
				require.Error(t, err)

				var cfgErr *errors.ConfigError
				assert.True(t, errors.As(err, &cfgErr))
			})
		}
	})

	t.Run("nil producer", func(t *testing.T) {
		_, err := New(10, 2, 5, nil)
		require.Error(t, err)
	})
}

func TestBlock(t *testing.T) {
	t.Run("out of range index", func(t *testing.T) {
		a, err := New(100, 5, 10, constantBlocks(100, 5, 10, nil))
		require.NoError(t, err)

		_, err = a.Block(-1)
		assert.Error(t, err)
		_, err = a.Block(10)
		assert.Error(t, err)
	})

	t.Run("producer shape is validated", func(t *testing.T) {
		a, err := New(100, 5, 10, func(int) (*mat.Dense, error) {
			return mat.NewDense(3, 5, nil), nil
		})
		require.NoError(t, err)

		_, err = a.Block(0)
		require.Error(t, err)

		var dimErr *errors.DimensionError
		require.True(t, errors.As(err, &dimErr))
		assert.Equal(t, 0, dimErr.Axis)
	})

	t.Run("no caching between requests", func(t *testing.T) {
		calls := make(map[int]int)
		a, err := New(20, 2, 10, constantBlocks(20, 2, 10, calls))
		require.NoError(t, err)

		_, err = a.Block(1)
		require.NoError(t, err)
		_, err = a.Block(1)
		require.NoError(t, err)
		assert.Equal(t, 2, calls[1])
	})
}

func TestSlice(t *testing.T) {
	a, err := New(100, 5, 10, constantBlocks(100, 5, 10, nil))
	require.NoError(t, err)

	t.Run("aligned split keeps partitioning", func(t *testing.T) {
		train, err := a.Slice(0, 80)
		require.NoError(t, err)
		assert.Equal(t, 80, train.Rows())
		assert.Equal(t, 8, train.NumBlocks())

		test, err := a.Slice(80, 100)
		require.NoError(t, err)
		assert.Equal(t, 20, test.Rows())
		assert.Equal(t, 2, test.NumBlocks())

		assert.Equal(t, a.Rows(), train.Rows()+test.Rows())

		// Block 0 of the test slice is block 8 of the parent.
		m, err := test.Block(0)
		require.NoError(t, err)
		assert.Equal(t, 8.0, m.At(0, 0))
	})

	t.Run("upper bound may be the row count on ragged arrays", func(t *testing.T) {
		ragged, err := New(95, 5, 10, constantBlocks(95, 5, 10, nil))
		require.NoError(t, err)

		tail, err := ragged.Slice(80, 95)
		require.NoError(t, err)
		assert.Equal(t, 15, tail.Rows())
		assert.Equal(t, 2, tail.NumBlocks())

		m, err := tail.Block(1)
		require.NoError(t, err)
		r, _ := m.Dims()
		assert.Equal(t, 5, r)
	})

	t.Run("misaligned bounds are rejected", func(t *testing.T) {
		_, err := a.Slice(5, 80)
		assert.Error(t, err)

		_, err = a.Slice(0, 75)
		assert.Error(t, err)
	})

	t.Run("out of range bounds are rejected", func(t *testing.T) {
		_, err := a.Slice(-10, 80)
		assert.Error(t, err)
		_, err = a.Slice(0, 110)
		assert.Error(t, err)
		_, err = a.Slice(80, 80)
		assert.Error(t, err)
	})
}
