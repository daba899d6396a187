// Package dataset produces the synthetic regression data used throughout
// bigboost: a chunked table of uniform features and a Friedman #1 target.
//
// Randomness is deterministic and parallel-safe: every block owns a PCG
// stream derived from the caller's seed and the block index, so blocks can
// be computed in any order, on any worker, and still reproduce bit-for-bit.
package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/chunked"
)

// Uniform returns a lazy nObs × nFts table of independent uniform [0, 1)
// samples, partitioned into blocks of size rows. Validation of the shape
// parameters happens in chunked.New.
func Uniform(nObs, nFts, size int, seed uint64) (*chunked.Array, error) {
	return chunked.New(nObs, nFts, size, func(b int) (*mat.Dense, error) {
		lo := b * size
		hi := lo + size
		if hi > nObs {
			hi = nObs
		}

		rng := rand.New(rand.NewPCG(seed, uint64(b)))
		data := make([]float64, (hi-lo)*nFts)
		for i := range data {
			data[i] = rng.Float64()
		}
		return mat.NewDense(hi-lo, nFts, data), nil
	})
}
