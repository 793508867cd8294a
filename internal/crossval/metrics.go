package crossval

import (
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	// KeyAlgorithm tags every recorded measure with the classifier name.
	KeyAlgorithm = tag.MustNewKey("algorithm")

	mFoldDuration = stats.Float64(
		"grove/crossval/fold_duration",
		"Duration of a single cross-validation fold",
		stats.UnitMilliseconds,
	)
	mTestAccuracy = stats.Float64(
		"grove/crossval/test_accuracy",
		"Holdout accuracy of a single cross-validation fold",
		stats.UnitDimensionless,
	)
)

// Views exposes the fold measures for metric exporters.
func Views() []*view.View {
	return []*view.View{
		{
			Name:        "grove/crossval/fold_duration",
			Measure:     mFoldDuration,
			Description: "Fold duration distribution",
			TagKeys:     []tag.Key{KeyAlgorithm},
			Aggregation: view.Distribution(1, 5, 10, 50, 100, 500, 1000, 5000),
		},
		{
			Name:        "grove/crossval/test_accuracy",
			Measure:     mTestAccuracy,
			Description: "Last observed fold holdout accuracy",
			TagKeys:     []tag.Key{KeyAlgorithm},
			Aggregation: view.LastValue(),
		},
	}
}
