// Package crossval orchestrates k-fold evaluation of a classifier: it
// partitions the rows, trains a fresh model per fold and aggregates the
// per-fold metric reports.
package crossval

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/tag"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
	"github.com/go-grove/grove/internal/evaluation"
	"github.com/go-grove/grove/internal/logging"
	"github.com/go-grove/grove/internal/split"
)

type options struct {
	nSplits    int
	stratified bool
	splitOpts  []split.Option
}

type Option func(*options)

func WithNSplits(n int) Option {
	return func(o *options) {
		o.nSplits = n
	}
}

func WithStratified(stratified bool) Option {
	return func(o *options) {
		o.stratified = stratified
	}
}

func WithShuffle(shuffle bool) Option {
	return func(o *options) {
		o.splitOpts = append(o.splitOpts, split.WithShuffle(shuffle))
	}
}

func WithSeed(seed int64) Option {
	return func(o *options) {
		o.splitOpts = append(o.splitOpts, split.WithSeed(seed))
	}
}

// FoldResult carries the metric reports of one train/test fold.
type FoldResult struct {
	Fold          int                `json:"fold"`
	TrainSize     int                `json:"train_size"`
	TestSize      int                `json:"test_size"`
	TrainAccuracy float64            `json:"train_accuracy"`
	TestAccuracy  float64            `json:"test_accuracy"`
	TrainMetrics  *evaluation.Report `json:"train_metrics"`
	TestMetrics   *evaluation.Report `json:"test_metrics"`
}

type Result struct {
	NSplits          int          `json:"n_splits"`
	Stratified       bool         `json:"stratified"`
	Folds            []FoldResult `json:"fold_results"`
	AvgTrainAccuracy float64      `json:"avg_train_accuracy"`
	AvgTestAccuracy  float64      `json:"avg_test_accuracy"`
	StdTrainAccuracy float64      `json:"std_train_accuracy"`
	StdTestAccuracy  float64      `json:"std_test_accuracy"`
}

// Run evaluates the classifiers built by provide across every fold. A new
// model is constructed per fold so no state leaks between folds; the first
// failing fold aborts the run.
func Run(ctx context.Context, provide classifier.ProvideFn, ds *dataset.Dataset, y []string, opts ...Option) (*Result, error) {
	o := options{nSplits: 5, stratified: true}
	for _, opt := range opts {
		opt(&o)
	}
	logger := logging.FromContext(ctx)

	var folds []split.Fold
	var err error
	if o.stratified {
		folds, err = split.StratifiedKFold(y, o.nSplits, o.splitOpts...)
	} else {
		folds, err = split.KFold(len(y), o.nSplits, o.splitOpts...)
	}
	if err != nil {
		return nil, fmt.Errorf("partition rows: %w", err)
	}

	result := &Result{NSplits: o.nSplits, Stratified: o.stratified}
	for foldIdx, fold := range folds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()

		model, err := provide()
		if err != nil {
			return nil, fmt.Errorf("fold %d: provide classifier: %w", foldIdx+1, err)
		}

		trainDS, testDS := ds.Select(fold.Train), ds.Select(fold.Test)
		trainY := subset(y, fold.Train)
		testY := subset(y, fold.Test)

		if err := model.Fit(trainDS, trainY); err != nil {
			return nil, fmt.Errorf("fold %d: fit %s: %w", foldIdx+1, model.Name(), err)
		}

		trainPred, err := model.Predict(trainDS)
		if err != nil {
			return nil, fmt.Errorf("fold %d: predict train: %w", foldIdx+1, err)
		}
		testPred, err := model.Predict(testDS)
		if err != nil {
			return nil, fmt.Errorf("fold %d: predict test: %w", foldIdx+1, err)
		}

		trainMetrics, err := evaluation.Evaluate(trainY, trainPred)
		if err != nil {
			return nil, fmt.Errorf("fold %d: train metrics: %w", foldIdx+1, err)
		}
		testMetrics, err := evaluation.Evaluate(testY, testPred)
		if err != nil {
			return nil, fmt.Errorf("fold %d: test metrics: %w", foldIdx+1, err)
		}

		result.Folds = append(result.Folds, FoldResult{
			Fold:          foldIdx + 1,
			TrainSize:     len(fold.Train),
			TestSize:      len(fold.Test),
			TrainAccuracy: trainMetrics.Accuracy,
			TestAccuracy:  testMetrics.Accuracy,
			TrainMetrics:  trainMetrics,
			TestMetrics:   testMetrics,
		})

		mCtx, _ := tag.New(ctx, tag.Upsert(KeyAlgorithm, model.Name()))
		stats.Record(mCtx,
			mFoldDuration.M(float64(time.Since(start).Milliseconds())),
			mTestAccuracy.M(testMetrics.Accuracy),
		)
		logger.Debugf(
			"fold %d/%d: train acc %.4f, test acc %.4f",
			foldIdx+1, o.nSplits, trainMetrics.Accuracy, testMetrics.Accuracy,
		)
	}

	result.AvgTrainAccuracy, result.StdTrainAccuracy = meanStd(result.Folds, func(f FoldResult) float64 { return f.TrainAccuracy })
	result.AvgTestAccuracy, result.StdTestAccuracy = meanStd(result.Folds, func(f FoldResult) float64 { return f.TestAccuracy })
	return result, nil
}

// meanStd computes the mean and population standard deviation of a fold
// statistic.
func meanStd(folds []FoldResult, pick func(FoldResult) float64) (mean, std float64) {
	if len(folds) == 0 {
		return 0, 0
	}
	for _, fold := range folds {
		mean += pick(fold)
	}
	mean /= float64(len(folds))
	for _, fold := range folds {
		d := pick(fold) - mean
		std += d * d
	}
	return mean, math.Sqrt(std / float64(len(folds)))
}

func subset(y []string, indices []int) []string {
	out := make([]string, len(indices))
	for i, idx := range indices {
		out[i] = y[idx]
	}
	return out
}
