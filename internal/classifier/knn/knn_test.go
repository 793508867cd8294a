package knn

import (
	"errors"
	"testing"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
)

func trainDS(t *testing.T) (*dataset.Dataset, []string) {
	t.Helper()
	ds, err := dataset.New(
		dataset.NumericColumn("x", []float64{1, 2, 1.5, 10, 11, 10.5}),
		dataset.NumericColumn("y", []float64{1, 1, 2, 10, 10, 11}),
	)
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds, []string{"a", "a", "a", "b", "b", "b"}
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "zero_k", opts: []Option{WithK(0)}},
		{name: "negative_k", opts: []Option{WithK(-3)}},
		{name: "unknown_metric", opts: []Option{WithMetric("cosine")}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			if _, err := New(test.opts...); !errors.Is(err, classifier.ErrInvalidConfiguration) {
				t.Errorf("New error got: %v, expected: %v", err, classifier.ErrInvalidConfiguration)
			}
		})
	}
}

func TestModel_FitErrors(t *testing.T) {
	empty, _ := dataset.New(dataset.NumericColumn("x", nil))
	four, _ := dataset.New(dataset.NumericColumn("x", []float64{1, 2, 3, 4}))
	categorical, _ := dataset.New(dataset.CategoricalColumn("c", []string{"a", "b"}))
	tests := []struct {
		name     string
		ds       *dataset.Dataset
		y        []string
		expected error
	}{
		{name: "empty_dataset", ds: empty, y: nil, expected: classifier.ErrEmptyDataset},
		{name: "mismatch", ds: four, y: []string{"a"}, expected: classifier.ErrDimensionMismatch},
		{name: "categorical_feature", ds: categorical, y: []string{"a", "b"}, expected: dataset.ErrNotNumeric},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			m, err := New()
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := m.Fit(test.ds, test.y); !errors.Is(err, test.expected) {
				t.Errorf("Fit error got: %v, expected: %v", err, test.expected)
			}
		})
	}
}

func TestModel_PredictUnfitted(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ds, _ := dataset.New(dataset.NumericColumn("x", []float64{1}))
	if _, err := m.Predict(ds); !errors.Is(err, classifier.ErrUnfitted) {
		t.Errorf("Predict error got: %v, expected: %v", err, classifier.ErrUnfitted)
	}
}

func TestModel_PredictDimensionMismatch(t *testing.T) {
	ds, y := trainDS(t)
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Fit(ds, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	probe, _ := dataset.New(dataset.NumericColumn("x", []float64{1}))
	if _, err := m.Predict(probe); !errors.Is(err, classifier.ErrDimensionMismatch) {
		t.Errorf("Predict error got: %v, expected: %v", err, classifier.ErrDimensionMismatch)
	}
}

func TestModel_OneNeighborTrainAccuracy(t *testing.T) {
	ds, y := trainDS(t)
	for _, metric := range []Metric{MetricEuclidean, MetricManhattan, MetricMinkowski, MetricChebyshev} {
		metric := metric
		t.Run(string(metric), func(t *testing.T) {
			m, err := New(WithK(1), WithMetric(metric))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := m.Fit(ds, y); err != nil {
				t.Fatalf("Fit: %v", err)
			}
			predicted, err := m.Predict(ds)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			for i, label := range predicted {
				if label != y[i] {
					t.Errorf("row %d got: %s, expected: %s", i, label, y[i])
				}
			}
		})
	}
}

func TestModel_MajorityVote(t *testing.T) {
	ds, y := trainDS(t)
	m, err := New(WithK(3))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Fit(ds, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	probe, _ := dataset.New(
		dataset.NumericColumn("x", []float64{1.4, 10.4}),
		dataset.NumericColumn("y", []float64{1.2, 10.2}),
	)
	predicted, err := m.Predict(probe)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if predicted[0] != "a" || predicted[1] != "b" {
		t.Errorf("predictions got: %v, expected: [a b]", predicted)
	}
}

func TestModel_VoteTieKeepsNearest(t *testing.T) {
	ds, _ := dataset.New(dataset.NumericColumn("x", []float64{1, 3, 5, 7}))
	y := []string{"a", "a", "b", "b"}
	m, err := New(WithK(4))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.Fit(ds, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// all four rows vote 2:2; the closest neighbor's label wins the tie
	probe, _ := dataset.New(dataset.NumericColumn("x", []float64{0, 8}))
	predicted, err := m.Predict(probe)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if predicted[0] != "a" {
		t.Errorf("tie near a got: %s, expected: a", predicted[0])
	}
	if predicted[1] != "b" {
		t.Errorf("tie near b got: %s, expected: b", predicted[1])
	}
}

func TestModel_Info(t *testing.T) {
	m, err := New(WithK(3), WithMetric(MetricManhattan))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info := m.Info()
	if info["trained"] != false {
		t.Error("untrained info expected trained=false")
	}
	ds, y := trainDS(t)
	if err := m.Fit(ds, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	info = m.Info()
	if info["n_training_samples"] != 6 {
		t.Errorf("samples got: %v, expected: 6", info["n_training_samples"])
	}
	if info["n_features"] != 2 {
		t.Errorf("features got: %v, expected: 2", info["n_features"])
	}
	if info["n_classes"] != 2 {
		t.Errorf("classes got: %v, expected: 2", info["n_classes"])
	}
}
