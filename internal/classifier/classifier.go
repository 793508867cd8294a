package classifier

import (
	"errors"

	"github.com/go-grove/grove/internal/dataset"
)

var (
	// ErrEmptyDataset is returned by Fit when X or y has zero rows.
	ErrEmptyDataset = errors.New("cannot fit model with empty dataset")
	// ErrNoClasses is returned by Fit when y holds no distinct values.
	ErrNoClasses = errors.New("no classes found in target variable")
	// ErrDimensionMismatch is returned when X and y disagree on row count.
	ErrDimensionMismatch = dataset.ErrDimensionMismatch
	// ErrInvalidConfiguration is returned for unusable parameters such as an
	// unknown distance metric or a non-positive k.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrUnfitted is returned by Predict before a successful Fit.
	ErrUnfitted = errors.New("model must be fitted before making predictions")
)

type ProvideFn func() (Classifier, error)

// Classifier is the training/prediction contract every model in this
// package tree implements. A Fit call produces a self-contained model;
// Predict never mutates it and is safe for concurrent use.
type Classifier interface {
	Name() string
	Fit(ds *dataset.Dataset, y []string) error
	Predict(ds *dataset.Dataset) ([]string, error)
}

// Introspectable is the optional diagnostics surface: plain nested
// maps/slices suitable for external serialization.
type Introspectable interface {
	Summary() map[string]interface{}
}

// FeatureRanker is implemented by the tree models.
type FeatureRanker interface {
	FeatureImportances() map[string]float64
}
