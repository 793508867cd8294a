// Package knn implements a brute-force k-nearest-neighbors classifier over
// numeric feature matrices.
package knn

import (
	"fmt"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
	"github.com/go-grove/grove/internal/geom"
	"github.com/go-grove/grove/pkg/pqueue"
)

var _ classifier.Classifier = (*Model)(nil)

// DistanceFn computes the distance between two equally sized vectors.
type DistanceFn func(vec, vec1 []float64) (float64, error)

// DistanceFuncFor resolves a metric name to its vector distance function.
func DistanceFuncFor(metric Metric) (DistanceFn, error) {
	switch metric {
	case MetricEuclidean:
		return geom.EuclideanDistance, nil
	case MetricManhattan:
		return geom.ManhattanDistance, nil
	case MetricMinkowski:
		return geom.MinkowskiDistance, nil
	case MetricChebyshev:
		return geom.ChebyshevDistance, nil
	default:
		return nil, fmt.Errorf("unknown metric %q: %w", metric, classifier.ErrInvalidConfiguration)
	}
}

type Model struct {
	k      int
	metric Metric
	distFn DistanceFn

	features []string
	train    [][]float64
	labels   []string
}

func New(opts ...Option) (*Model, error) {
	m := &Model{k: 5, metric: MetricEuclidean}
	for _, opt := range opts {
		opt(m)
	}
	if m.k <= 0 {
		return nil, fmt.Errorf("k %d: %w", m.k, classifier.ErrInvalidConfiguration)
	}
	distFn, err := DistanceFuncFor(m.metric)
	if err != nil {
		return nil, err
	}
	m.distFn = distFn
	return m, nil
}

func (m *Model) Name() string { return "KNN" }

// Fit stores a copy of the training matrix and labels; all work happens at
// prediction time.
func (m *Model) Fit(ds *dataset.Dataset, y []string) error {
	if ds.NumRows() == 0 || len(y) == 0 {
		return classifier.ErrEmptyDataset
	}
	if ds.NumRows() != len(y) {
		return fmt.Errorf("%d feature rows, %d labels: %w", ds.NumRows(), len(y), classifier.ErrDimensionMismatch)
	}
	if len(classifier.Classes(y)) == 0 {
		return classifier.ErrNoClasses
	}
	matrix, err := ds.Matrix()
	if err != nil {
		return fmt.Errorf("training matrix: %w", err)
	}

	m.features = ds.Names()
	m.train = matrix
	m.labels = make([]string, len(y))
	copy(m.labels, y)
	return nil
}

func (m *Model) Predict(ds *dataset.Dataset) ([]string, error) {
	if m.train == nil {
		return nil, classifier.ErrUnfitted
	}
	matrix, err := ds.Matrix()
	if err != nil {
		return nil, fmt.Errorf("prediction matrix: %w", err)
	}
	if len(matrix) > 0 && len(m.train) > 0 && len(matrix[0]) != len(m.train[0]) {
		return nil, fmt.Errorf("%d features, trained on %d: %w", len(matrix[0]), len(m.train[0]), classifier.ErrDimensionMismatch)
	}
	out := make([]string, len(matrix))
	for i, vec := range matrix {
		label, err := m.predictRow(vec)
		if err != nil {
			return nil, err
		}
		out[i] = label
	}
	return out, nil
}

// predictRow votes over the k nearest training rows; equal distances keep
// training order and vote ties keep the earliest seen label.
func (m *Model) predictRow(vec []float64) (string, error) {
	pq := pqueue.New(pqueue.WithCap(uint(m.k)))
	for i, trainVec := range m.train {
		distance, err := m.distFn(vec, trainVec)
		if err != nil {
			return "", fmt.Errorf("unable to compute distance between %v and %v: %w", vec, trainVec, err)
		}
		pq.Push(m.labels[i], distance)
	}
	neighbors := make([]string, 0, pq.Len())
	for _, label := range pq.PopAll() {
		neighbors = append(neighbors, label.(string))
	}
	return classifier.Majority(neighbors), nil
}

// Info reports the model hyperparameters and, once fitted, the stored
// training shape.
func (m *Model) Info() map[string]interface{} {
	info := map[string]interface{}{
		"n_neighbors": m.k,
		"metric":      string(m.metric),
		"trained":     m.train != nil,
	}
	if m.train == nil {
		return info
	}
	nFeatures := 0
	if len(m.train) > 0 {
		nFeatures = len(m.train[0])
	}
	info["n_training_samples"] = len(m.train)
	info["n_features"] = nFeatures
	info["n_classes"] = len(classifier.Classes(m.labels))
	info["classes"] = classifier.Classes(m.labels)
	info["feature_names"] = m.features
	return info
}

func (m *Model) Summary() map[string]interface{} {
	return m.Info()
}
