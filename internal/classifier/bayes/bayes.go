// Package bayes implements a mixed naive Bayes classifier: Gaussian
// likelihoods for numeric features and Laplace-smoothed frequency tables
// for categorical ones.
package bayes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
)

var _ classifier.Classifier = (*Model)(nil)

const (
	// stdFloor replaces a zero or undefined class standard deviation.
	stdFloor = 1e-6
	// unseenLikelihood is assigned to category values absent from the
	// training table of a class.
	unseenLikelihood = 1e-6
	// densityFloor keeps log posteriors finite.
	densityFloor = 1e-10
)

type gaussian struct {
	mean float64
	std  float64
}

type Model struct {
	classes  []string
	priors   map[string]float64
	numerics map[string]map[string]gaussian
	tables   map[string]map[string]map[string]float64
	features []string
}

func New() *Model {
	return &Model{}
}

func (m *Model) Name() string { return "Naive Bayes" }

func (m *Model) Fit(ds *dataset.Dataset, y []string) error {
	if ds.NumRows() == 0 || len(y) == 0 {
		return classifier.ErrEmptyDataset
	}
	if ds.NumRows() != len(y) {
		return fmt.Errorf("%d feature rows, %d labels: %w", ds.NumRows(), len(y), classifier.ErrDimensionMismatch)
	}
	classes := classifier.Classes(y)
	if len(classes) == 0 {
		return classifier.ErrNoClasses
	}

	m.classes = classes
	m.features = ds.Names()
	m.priors = make(map[string]float64, len(classes))
	m.numerics = make(map[string]map[string]gaussian, len(classes))
	m.tables = make(map[string]map[string]map[string]float64, len(classes))

	rowsByClass := make(map[string][]int, len(classes))
	for i, label := range y {
		rowsByClass[label] = append(rowsByClass[label], i)
	}

	// smoothing denominators use the number of distinct values over the
	// whole column, not the per-class slice
	distinct := make([]int, ds.NumCols())
	for f := 0; f < ds.NumCols(); f++ {
		col := ds.Column(f)
		if col.Kind != dataset.Categorical {
			continue
		}
		seen := make(map[string]struct{})
		for _, v := range col.Cats {
			if v == "" {
				continue
			}
			seen[v] = struct{}{}
		}
		distinct[f] = len(seen)
	}

	for _, class := range classes {
		rows := rowsByClass[class]
		m.priors[class] = float64(len(rows)) / float64(ds.NumRows())
		m.numerics[class] = make(map[string]gaussian)
		m.tables[class] = make(map[string]map[string]float64)

		for f := 0; f < ds.NumCols(); f++ {
			col := ds.Column(f)
			name := m.features[f]
			if col.Kind == dataset.Numeric {
				m.numerics[class][name] = summarize(col.Nums, rows)
				continue
			}
			counts := make(map[string]int)
			for _, i := range rows {
				if col.Cats[i] == "" {
					continue
				}
				counts[col.Cats[i]]++
			}
			table := make(map[string]float64, len(counts))
			denom := float64(len(rows) + distinct[f])
			for value, count := range counts {
				table[value] = float64(count+1) / denom
			}
			m.tables[class][name] = table
		}
	}
	return nil
}

// summarize computes the mean and sample standard deviation of the class
// slice, skipping missing values.
func summarize(values []float64, rows []int) gaussian {
	present := make([]float64, 0, len(rows))
	for _, i := range rows {
		if math.IsNaN(values[i]) {
			continue
		}
		present = append(present, values[i])
	}
	if len(present) == 0 {
		return gaussian{mean: math.NaN(), std: stdFloor}
	}
	mean, std := stat.MeanStdDev(present, nil)
	if len(present) < 2 || std == 0 || math.IsNaN(std) {
		std = stdFloor
	}
	return gaussian{mean: mean, std: std}
}

func (m *Model) Predict(ds *dataset.Dataset) ([]string, error) {
	if len(m.classes) == 0 {
		return nil, classifier.ErrUnfitted
	}
	out := make([]string, ds.NumRows())
	for row := 0; row < ds.NumRows(); row++ {
		out[row] = m.predictRow(ds, row)
	}
	return out, nil
}

func (m *Model) predictRow(ds *dataset.Dataset, row int) string {
	best := ""
	bestPosterior := math.Inf(-1)
	for _, class := range m.classes {
		posterior := math.Log(m.priors[class])
		for f := 0; f < ds.NumCols(); f++ {
			if ds.IsMissing(f, row) {
				continue
			}
			col := ds.Column(f)
			name := col.Name
			if g, ok := m.numerics[class][name]; ok {
				density := gaussianPDF(col.Nums[row], g)
				if density <= 0 {
					density = densityFloor
				}
				posterior += math.Log(density)
				continue
			}
			likelihood := unseenLikelihood
			if table, ok := m.tables[class][name]; ok {
				if l, present := table[col.Cats[row]]; present {
					likelihood = l
				}
			}
			posterior += math.Log(likelihood)
		}
		// ties keep the lowest class label
		if posterior > bestPosterior {
			bestPosterior = posterior
			best = class
		}
	}
	return best
}

func gaussianPDF(x float64, g gaussian) float64 {
	if math.IsNaN(x) || math.IsNaN(g.mean) || math.IsNaN(g.std) {
		return unseenLikelihood
	}
	if g.std < 1e-10 {
		if math.Abs(x-g.mean) < 1e-10 {
			return 1.0
		}
		return unseenLikelihood
	}
	exponent := math.Exp(-(x - g.mean) * (x - g.mean) / (2 * g.std * g.std))
	return exponent / (math.Sqrt(2*math.Pi) * g.std)
}
