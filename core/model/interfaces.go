// Package model provides the base estimator types and interfaces shared by
// all transformers and regression models in imputego.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Estimator is the minimal interface for anything with a fitted state.
type Estimator interface {
	IsFitted() bool
	Reset()
}

// Predictor is the interface for models that can make predictions.
type Predictor interface {
	// Predict returns predictions as an n×1 matrix.
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Regressor combines interfaces for regression models.
type Regressor interface {
	Estimator
	Predictor

	// Fit trains the model on feature matrix X and target column vector y.
	Fit(X, y mat.Matrix) error
}
