package crossval

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/classifier/bayes"
	"github.com/go-grove/grove/internal/dataset"
)

func separableDS(t *testing.T) (*dataset.Dataset, []string) {
	t.Helper()
	nums := make([]float64, 20)
	y := make([]string, 20)
	for i := 0; i < 20; i++ {
		if i < 10 {
			nums[i], y[i] = float64(i), "low"
		} else {
			nums[i], y[i] = float64(i)+100, "high"
		}
	}
	ds, err := dataset.New(dataset.NumericColumn("value", nums))
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	return ds, y
}

func provideBayes() (classifier.Classifier, error) {
	return bayes.New(), nil
}

func TestRun_StratifiedBayes(t *testing.T) {
	ds, y := separableDS(t)
	result, err := Run(context.Background(), provideBayes, ds, y, WithSeed(17))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.NSplits != 5 || !result.Stratified {
		t.Errorf("config got: %d/%v, expected 5 stratified folds", result.NSplits, result.Stratified)
	}
	if len(result.Folds) != 5 {
		t.Fatalf("folds got: %d, expected: 5", len(result.Folds))
	}
	for _, fold := range result.Folds {
		if fold.TrainSize != 16 || fold.TestSize != 4 {
			t.Errorf("fold %d sizes got: %d/%d, expected: 16/4", fold.Fold, fold.TrainSize, fold.TestSize)
		}
		if fold.TestAccuracy != 1.0 {
			t.Errorf("fold %d test accuracy got: %v, expected: 1.0", fold.Fold, fold.TestAccuracy)
		}
	}
	if result.AvgTestAccuracy != 1.0 || result.StdTestAccuracy != 0.0 {
		t.Errorf("aggregate got: avg=%v std=%v, expected: 1.0/0.0", result.AvgTestAccuracy, result.StdTestAccuracy)
	}
}

func TestRun_PlainKFold(t *testing.T) {
	ds, y := separableDS(t)
	result, err := Run(
		context.Background(), provideBayes, ds, y,
		WithStratified(false), WithNSplits(4), WithSeed(17),
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Folds) != 4 {
		t.Fatalf("folds got: %d, expected: 4", len(result.Folds))
	}
	for _, fold := range result.Folds {
		if fold.TestSize != 5 {
			t.Errorf("fold %d test size got: %d, expected: 5", fold.Fold, fold.TestSize)
		}
	}
}

func TestRun_InvalidSplits(t *testing.T) {
	ds, y := separableDS(t)
	_, err := Run(context.Background(), provideBayes, ds, y, WithNSplits(0))
	if !errors.Is(err, classifier.ErrInvalidConfiguration) {
		t.Errorf("error got: %v, expected: %v", err, classifier.ErrInvalidConfiguration)
	}
}

func TestRun_ProvideErrorAborts(t *testing.T) {
	ds, y := separableDS(t)
	expected := fmt.Errorf("no such algorithm")
	provide := func() (classifier.Classifier, error) {
		return nil, expected
	}
	if _, err := Run(context.Background(), provide, ds, y); !errors.Is(err, expected) {
		t.Errorf("error got: %v, expected: %v", err, expected)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ds, y := separableDS(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, provideBayes, ds, y); !errors.Is(err, context.Canceled) {
		t.Errorf("error got: %v, expected: %v", err, context.Canceled)
	}
}
