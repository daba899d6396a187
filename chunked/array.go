// Package chunked implements lazily evaluated, row-partitioned numeric
// arrays.
//
// An Array never holds data. It records a logical shape, a block size and a
// producer function; a block is computed (or re-read) every time it is
// requested. Blocks are independent of one another, which is what allows
// force evaluation to run them as parallel tasks with no ordering
// constraints.
package chunked

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

// BlockFunc produces the block with the given index. It must return a matrix
// whose shape matches the bounds declared by the owning Array; the Array
// verifies this on every call.
type BlockFunc func(block int) (*mat.Dense, error)

// Array is a lazily evaluated two-dimensional array of rows × cols values,
// partitioned into contiguous blocks of at most size rows. The final block
// may be shorter. Arrays do not cache: requesting the same block twice runs
// the producer twice.
type Array struct {
	rows int
	cols int
	size int
	fn   BlockFunc
}

// New creates a lazy array. rows, cols and size must be positive; size
// larger than rows degenerates to a single block.
func New(rows, cols, size int, fn BlockFunc) (*Array, error) {
	if rows <= 0 {
		return nil, errors.NewConfigError("rows", "must be positive", rows)
	}
	if cols <= 0 {
		return nil, errors.NewConfigError("cols", "must be positive", cols)
	}
	if size <= 0 {
		return nil, errors.NewConfigError("size", "must be positive", size)
	}
	if fn == nil {
		return nil, errors.NewConfigError("fn", "block producer is required", nil)
	}
	return &Array{rows: rows, cols: cols, size: size, fn: fn}, nil
}

// Rows returns the total number of rows.
func (a *Array) Rows() int { return a.rows }

// Cols returns the number of columns.
func (a *Array) Cols() int { return a.cols }

// BlockSize returns the maximum number of rows per block.
func (a *Array) BlockSize() int { return a.size }

// NumBlocks returns ceil(rows/size).
func (a *Array) NumBlocks() int {
	return (a.rows + a.size - 1) / a.size
}

// BlockBounds returns the half-open row range [lo, hi) covered by block b.
func (a *Array) BlockBounds(b int) (lo, hi int) {
	lo = b * a.size
	hi = lo + a.size
	if hi > a.rows {
		hi = a.rows
	}
	return lo, hi
}

// Block computes block b and validates its shape against the declared
// partitioning.
func (a *Array) Block(b int) (*mat.Dense, error) {
	if b < 0 || b >= a.NumBlocks() {
		return nil, errors.NewConfigError("block", "index out of range", b)
	}
	m, err := a.fn(b)
	if err != nil {
		return nil, err
	}
	lo, hi := a.BlockBounds(b)
	r, c := m.Dims()
	if r != hi-lo {
		return nil, errors.NewDimensionError("chunked.Block", hi-lo, r, 0)
	}
	if c != a.cols {
		return nil, errors.NewDimensionError("chunked.Block", a.cols, c, 1)
	}
	return m, nil
}

// Slice returns a lazy view of rows [lo, hi). Bounds must fall on block
// boundaries (hi may also equal Rows()) so that the view keeps the same
// block-wise partitioning as its parent; a misaligned split would leave a
// block shared between two regions.
func (a *Array) Slice(lo, hi int) (*Array, error) {
	if lo < 0 || hi > a.rows || lo >= hi {
		return nil, errors.NewConfigError("slice", "bounds out of range", []int{lo, hi})
	}
	if lo%a.size != 0 {
		return nil, errors.NewConfigError("slice", "lower bound must be a multiple of the block size", lo)
	}
	if hi%a.size != 0 && hi != a.rows {
		return nil, errors.NewConfigError("slice", "upper bound must be a multiple of the block size or the row count", hi)
	}

	offset := lo / a.size
	return New(hi-lo, a.cols, a.size, func(b int) (*mat.Dense, error) {
		return a.Block(offset + b)
	})
}
