package chaid

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
	"github.com/go-grove/grove/internal/stat"
)

var _ classifier.Classifier = (*Tree)(nil)

// Tree is a CHAID classifier: chi-square driven induction with automatic
// category and bin merging ahead of every split.
type Tree struct {
	alpha            float64
	minSamplesSplit  int
	maxDepth         int
	minChildNodeSize int

	root         node
	features     []string
	importances  map[string]float64
	totalSamples int
}

func New(opts ...Option) (*Tree, error) {
	t := &Tree{alpha: 0.05, minSamplesSplit: 30, maxDepth: 5, minChildNodeSize: 10}
	for _, opt := range opts {
		opt(t)
	}
	if t.alpha <= 0 || t.alpha >= 1 {
		return nil, fmt.Errorf("alpha %v: %w", t.alpha, classifier.ErrInvalidConfiguration)
	}
	if t.maxDepth < 0 {
		return nil, fmt.Errorf("max depth %d: %w", t.maxDepth, classifier.ErrInvalidConfiguration)
	}
	if t.minChildNodeSize < 1 {
		return nil, fmt.Errorf("min child node size %d: %w", t.minChildNodeSize, classifier.ErrInvalidConfiguration)
	}
	return t, nil
}

func (t *Tree) Name() string { return "CHAID" }

func (t *Tree) Fit(ds *dataset.Dataset, y []string) error {
	if ds.NumRows() == 0 || len(y) == 0 {
		return classifier.ErrEmptyDataset
	}
	if ds.NumRows() != len(y) {
		return fmt.Errorf("%d feature rows, %d labels: %w", ds.NumRows(), len(y), classifier.ErrDimensionMismatch)
	}
	if len(classifier.Classes(y)) == 0 {
		return classifier.ErrNoClasses
	}

	t.features = ds.Names()
	t.importances = make(map[string]float64, ds.NumCols())
	for _, name := range t.features {
		t.importances[name] = 0
	}
	t.totalSamples = ds.NumRows()

	idx := make([]int, ds.NumRows())
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(ds, y, idx, 0)

	var total float64
	for _, v := range t.importances {
		total += v
	}
	if total > 0 {
		for k, v := range t.importances {
			t.importances[k] = v / total
		}
	}
	return nil
}

func (t *Tree) Predict(ds *dataset.Dataset) ([]string, error) {
	if t.root == nil {
		return nil, classifier.ErrUnfitted
	}
	out := make([]string, ds.NumRows())
	for row := 0; row < ds.NumRows(); row++ {
		out[row] = t.predictRow(ds, row, t.root)
	}
	return out, nil
}

func (t *Tree) predictRow(ds *dataset.Dataset, row int, n node) string {
	switch v := n.(type) {
	case leaf:
		return v.label
	case *split:
		var key string
		if v.numeric {
			value := ds.Column(v.feature).Nums[row]
			if math.IsNaN(value) || len(v.binEdges) < 2 {
				return fallbackLabel(v)
			}
			key = binKey(locateBin(v.binEdges, value))
		} else {
			value := ds.Column(v.feature).Cats[row]
			key = value
			if mapped, ok := v.categoryMap[value]; ok {
				key = mapped
			}
		}
		if child, ok := v.children[key]; ok {
			return t.predictRow(ds, row, child)
		}
		return fallbackLabel(v)
	}
	return ""
}

// fallbackLabel is the explicit unseen-group policy: the majority label
// over all descendant leaves, each leaf counted once.
func fallbackLabel(v *split) string {
	labels := leafLabels(v, nil)
	if len(labels) == 0 {
		return ""
	}
	return classifier.Majority(labels)
}

func (t *Tree) build(ds *dataset.Dataset, y []string, idx []int, depth int) node {
	labels := make([]string, len(idx))
	for i, j := range idx {
		labels[i] = y[j]
	}
	counts, _ := classifier.Counts(labels)

	if depth >= t.maxDepth || len(idx) < t.minSamplesSplit || len(counts) == 1 {
		return makeLeaf(labels, counts)
	}

	best, ok := t.bestSplit(ds, y, idx)
	if !ok {
		return makeLeaf(labels, counts)
	}

	groups := make(map[string][]int)
	var keys []string
	if best.numeric {
		for pos, i := range idx {
			bin := best.bins[pos]
			if bin < 0 {
				continue
			}
			key := binKey(bin)
			if _, seen := groups[key]; !seen {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], i)
		}
	} else {
		col := ds.Column(best.feature)
		for _, i := range idx {
			key := best.categoryMap[col.Cats[i]]
			if _, seen := groups[key]; !seen {
				keys = append(keys, key)
			}
			groups[key] = append(groups[key], i)
		}
	}

	children := make(map[string]node)
	var childKeys []string
	for _, key := range keys {
		// children below the size floor are dropped together with their
		// samples; observed original behavior, kept deliberately
		if len(groups[key]) < t.minChildNodeSize {
			continue
		}
		children[key] = t.build(ds, y, groups[key], depth+1)
		childKeys = append(childKeys, key)
	}
	if len(children) == 0 {
		return makeLeaf(labels, counts)
	}

	t.importances[t.features[best.feature]] += best.stat * float64(len(idx)) / float64(t.totalSamples)

	return &split{
		feature:     best.feature,
		numeric:     best.numeric,
		binEdges:    best.binEdges,
		categoryMap: best.categoryMap,
		keys:        childKeys,
		children:    children,
		samples:     len(idx),
	}
}

type candidate struct {
	feature     int
	numeric     bool
	bins        []int
	binEdges    []float64
	categoryMap map[string]string
	p           float64
	stat        float64
}

// bestSplit merges each feature first and keeps the lowest post-merge
// p-value; only a feature significant at alpha is eligible.
func (t *Tree) bestSplit(ds *dataset.Dataset, y []string, idx []int) (candidate, bool) {
	subY := make([]string, len(idx))
	for pos, i := range idx {
		subY[pos] = y[i]
	}

	best := candidate{p: 1.0}
	found := false
	for f := 0; f < ds.NumCols(); f++ {
		col := ds.Column(f)
		var cand candidate
		if col.Kind == dataset.Numeric {
			bins, edges := t.discretize(col.Nums, y, idx)
			var testX, testY []string
			for pos := range bins {
				if bins[pos] < 0 {
					continue
				}
				testX = append(testX, binKey(bins[pos]))
				testY = append(testY, subY[pos])
			}
			p, chi := stat.ChiSquareTest(testX, testY)
			cand = candidate{feature: f, numeric: true, bins: bins, binEdges: edges, p: p, stat: chi}
		} else {
			catMap := t.mergeCategories(col.Cats, y, idx)
			mapped := make([]string, len(idx))
			for pos, i := range idx {
				mapped[pos] = catMap[col.Cats[i]]
			}
			p, chi := stat.ChiSquareTest(mapped, subY)
			cand = candidate{feature: f, numeric: false, categoryMap: catMap, p: p, stat: chi}
		}
		if !found || cand.p < best.p {
			best = cand
			found = true
		}
	}
	if !found || best.p >= t.alpha {
		return candidate{}, false
	}
	return best, true
}

func makeLeaf(labels []string, counts map[string]int) leaf {
	dist := make(map[string]int, len(counts))
	for k, v := range counts {
		dist[k] = v
	}
	return leaf{label: classifier.Majority(labels), samples: len(labels), distribution: dist}
}

func binKey(bin int) string {
	return strconv.Itoa(bin)
}
