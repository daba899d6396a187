package model

import "gonum.org/v1/gonum/mat"

// Fitter trains a model on a feature matrix X (n×d) and a target column
// vector y (n×1).
type Fitter interface {
	Fit(X, y mat.Matrix) error
}

// Predictor produces an n×1 prediction matrix for a feature matrix X.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor is the full modeling-collaborator contract consumed by the
// pipeline: fit on the train split, predict on the test split, score for
// evaluation.
type Regressor interface {
	Fitter
	Predictor
	Score(X, y mat.Matrix) (float64, error)
}
