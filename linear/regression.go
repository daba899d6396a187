// Package linear implements an ordinary least squares regressor. It is the
// reference modeling collaborator for the pipeline: anything satisfying
// model.Regressor can take its place.
package linear

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/core/model"
	"github.com/ChadGueli/bigboost/core/parallel"
	"github.com/ChadGueli/bigboost/pkg/errors"
	"github.com/ChadGueli/bigboost/pkg/log"
)

// Regression is a linear regression model fitted by the normal equations.
type Regression struct {
	model.BaseEstimator

	Weights   *mat.VecDense // coefficients, one per feature
	Intercept float64
	NFeatures int
}

// NewRegression creates an unfitted linear regression model.
func NewRegression() *Regression {
	return &Regression{}
}

// Fit estimates weights and intercept by solving
// w = (X^T X)^(-1) X^T y over X augmented with an intercept column.
func (lr *Regression) Fit(X, y mat.Matrix) error {
	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "linear.Fit")
	}
	if ry != r {
		return errors.NewDimensionError("linear.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("linear.Fit", "y must be a column vector")
	}

	lr.NFeatures = c

	// Augment X with a leading column of ones for the intercept term.
	augmented := mat.NewDense(r, c+1, nil)
	const sequentialCutoff = 1000
	parallel.RunWithThreshold(r, sequentialCutoff, func(start, end int) {
		for i := start; i < end; i++ {
			augmented.Set(i, 0, 1.0)
			for j := 0; j < c; j++ {
				augmented.Set(i, j+1, X.At(i, j))
			}
		}
	})

	var xt mat.Dense
	xt.CloneFrom(augmented.T())

	var xtx mat.Dense
	xtx.Mul(&xt, augmented)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return errors.Wrap(errors.ErrSingularMatrix, "linear.Fit")
	}

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	var xty mat.VecDense
	xty.MulVec(&xt, yVec)

	solution := mat.NewVecDense(c+1, nil)
	solution.MulVec(&xtxInv, &xty)

	lr.Intercept = solution.AtVec(0)
	lr.Weights = mat.NewVecDense(c, nil)
	for i := 0; i < c; i++ {
		lr.Weights.SetVec(i, solution.AtVec(i+1))
	}

	lr.SetFitted()
	logger := log.GetLoggerWithName("linear")
	logger.Debug().
		Int("samples", r).
		Int("features", c).
		Msg("model fitted")
	return nil
}

// Predict returns an n×1 matrix of predictions.
func (lr *Regression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("linear.Regression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("linear.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// Score returns the coefficient of determination on (X, y).
func (lr *Regression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("linear.Regression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()
	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	var tss, rss float64
	for i := 0; i < r; i++ {
		t := y.At(i, 0)
		p := yPred.At(i, 0)
		tss += (t - yMean) * (t - yMean)
		rss += (t - p) * (t - p)
	}
	if tss == 0 {
		return 0, errors.Newf("linear.Score: total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}
