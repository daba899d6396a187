package dataset

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/chunked"
	"github.com/ChadGueli/bigboost/pkg/errors"
)

const (
	// Scale multiplies the Friedman base signal.
	Scale = 5.0

	// NoiseStd is the default standard deviation of the additive noise.
	NoiseStd = 0.1
)

// DefaultColumns selects the five feature columns that drive the target.
var DefaultColumns = [5]int{0, 1, 2, 3, 4}

// Friedman returns the lazy target vector for X using the default columns
// and noise level. See FriedmanColumns.
func Friedman(x *chunked.Array, seed uint64) (*chunked.Array, error) {
	return FriedmanColumns(x, DefaultColumns, NoiseStd, seed)
}

// FriedmanColumns returns a lazy nObs × 1 target computed row-wise as
//
//	base = 2*sin(pi*c0*c1) + (2*c2 - 1)^2 + 2*c3 + c4
//	y    = Scale*base + noiseStd*N(0, 1)
//
// over the five selected columns of x. The noise for each block is an
// independent stream seeded from the block index, so the target keeps the
// feature table's partitioning and its blocks stay independently
// computable.
func FriedmanColumns(x *chunked.Array, cols [5]int, noiseStd float64, seed uint64) (*chunked.Array, error) {
	if x == nil {
		return nil, errors.NewConfigError("x", "feature table is required", nil)
	}
	if x.Cols() < len(cols) {
		return nil, errors.NewDimensionError("dataset.Friedman", len(cols), x.Cols(), 1)
	}
	for _, c := range cols {
		if c < 0 || c >= x.Cols() {
			return nil, errors.NewConfigError("cols", "column index out of range", c)
		}
	}
	if noiseStd < 0 {
		return nil, errors.NewConfigError("noiseStd", "must be non-negative", noiseStd)
	}

	return chunked.New(x.Rows(), 1, x.BlockSize(), func(b int) (*mat.Dense, error) {
		xb, err := x.Block(b)
		if err != nil {
			return nil, err
		}
		r, _ := xb.Dims()

		rng := rand.New(rand.NewPCG(seed, uint64(b)))
		out := mat.NewDense(r, 1, nil)
		for i := 0; i < r; i++ {
			c0 := xb.At(i, cols[0])
			c1 := xb.At(i, cols[1])
			c2 := xb.At(i, cols[2])
			c3 := xb.At(i, cols[3])
			c4 := xb.At(i, cols[4])

			base := 2*math.Sin(math.Pi*c0*c1) + (2*c2-1)*(2*c2-1) + 2*c3 + c4
			out.Set(i, 0, Scale*base+noiseStd*rng.NormFloat64())
		}
		return out, nil
	})
}
