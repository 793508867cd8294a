package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"contrib.go.opencensus.io/exporter/prometheus"
	"github.com/davecgh/go-spew/spew"
	"go.opencensus.io/stats/view"
	"golang.org/x/sync/errgroup"

	"github.com/go-grove/grove/internal/buildinfo"
	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/crossval"
	"github.com/go-grove/grove/internal/evaluation"
	"github.com/go-grove/grove/internal/grove"
	"github.com/go-grove/grove/internal/logging"
	"github.com/go-grove/grove/internal/setup"
	"github.com/go-grove/grove/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context, cancel func()) error {
	config := grove.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	ctx = logging.WithLogger(ctx, logging.NewLogger(config.DebugMode))
	logger := logging.FromContext(ctx)

	exp, err := grove.LoadExperiment(config.ExperimentFile)
	if err != nil {
		return fmt.Errorf("grove.LoadExperiment: %w", err)
	}
	ds, labels, err := grove.LoadCSV(exp.Dataset.Path, exp.Dataset.Target)
	if err != nil {
		return fmt.Errorf("grove.LoadCSV: %w", err)
	}
	logger.Infof(
		"experiment %q: %d rows, %d features, target %q",
		exp.Name, ds.NumRows(), ds.NumCols(), exp.Dataset.Target,
	)

	if err := view.Register(crossval.Views()...); err != nil {
		return fmt.Errorf("view.Register: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: "grove"})
	if err != nil {
		return fmt.Errorf("prometheus.NewExporter: %w", err)
	}
	view.RegisterExporter(exporter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", exporter)
	go func() {
		if err := http.ListenAndServe(config.MetricsAddr, mux); err != nil {
			cancel()
		}
	}()

	shutdownCh := make(chan error, 1)
	persister, err := env.ProvidePersister()(shutdownCh)
	if err != nil {
		return fmt.Errorf("persister provider function error: %w", err)
	}
	persister.Run(ctx)

	cvOpts := []crossval.Option{
		crossval.WithStratified(exp.CrossVal.Stratified),
		crossval.WithShuffle(exp.CrossVal.Shuffle),
	}
	if exp.CrossVal.NSplits > 0 {
		cvOpts = append(cvOpts, crossval.WithNSplits(exp.CrossVal.NSplits))
	}
	if exp.CrossVal.Seed != 0 {
		cvOpts = append(cvOpts, crossval.WithSeed(exp.CrossVal.Seed))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, alg := range exp.Algorithms {
		alg := alg
		g.Go(func() error {
			provideFn, err := setup.ProvideClassifierFor(classifier.AlgType(alg))
			if err != nil {
				return fmt.Errorf("setup.ProvideClassifierFor: %w", err)
			}

			result, err := crossval.Run(gctx, provideFn, ds, labels, cvOpts...)
			if err != nil {
				return fmt.Errorf("crossval.Run %s: %w", alg, err)
			}
			logger.Infof(
				"%s: test accuracy %.4f +/- %.4f over %d folds",
				alg, result.AvgTestAccuracy, result.StdTestAccuracy, result.NSplits,
			)

			model, err := provideFn()
			if err != nil {
				return fmt.Errorf("classifier provider function error: %w", err)
			}
			if err := model.Fit(ds, labels); err != nil {
				return fmt.Errorf("fit %s: %w", alg, err)
			}
			preds, err := model.Predict(ds)
			if err != nil {
				return fmt.Errorf("predict %s: %w", alg, err)
			}
			report, err := evaluation.Evaluate(labels, preds)
			if err != nil {
				return fmt.Errorf("evaluation.Evaluate %s: %w", alg, err)
			}
			logReport(ctx, alg, result, report)

			summary := map[string]interface{}{}
			if in, ok := model.(classifier.Introspectable); ok {
				summary = in.Summary()
			}
			record := env.Store().Add(exp.Name, model, summary)
			if err := persister.Append(record); err != nil {
				return fmt.Errorf("persister.Append %s: %w", alg, err)
			}

			if config.DebugMode {
				spew.Fdump(os.Stderr, summary)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	persister.Stop()
	return <-shutdownCh
}

func logReport(ctx context.Context, alg string, result *crossval.Result, report *evaluation.Report) {
	logger := logging.FromContext(ctx)
	out := map[string]interface{}{
		"algorithm":        alg,
		"cross_validation": result,
		"report":           report,
	}
	b, err := json.Marshal(out)
	if err != nil {
		logger.Errorf("unable marshal report for %s: %v", alg, err)
		return
	}
	logger.Infof("report: %s", b)
}
