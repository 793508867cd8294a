package c45

import (
	"fmt"
	"math"

	"github.com/go-grove/grove/internal/classifier"
	"github.com/go-grove/grove/internal/dataset"
)

var _ classifier.Classifier = (*Tree)(nil)

// Tree is a C4.5-style decision tree: splits maximize the gain ratio, the
// information gain normalized by split information.
type Tree struct {
	maxDepth        int
	minSamplesSplit int

	root         node
	features     []string
	kinds        []dataset.ColumnKind
	importances  map[string]float64
	totalSamples int
}

func New(opts ...Option) (*Tree, error) {
	t := &Tree{maxDepth: 5, minSamplesSplit: 2}
	for _, opt := range opts {
		opt(t)
	}
	if t.maxDepth < 0 {
		return nil, fmt.Errorf("max depth %d: %w", t.maxDepth, classifier.ErrInvalidConfiguration)
	}
	if t.minSamplesSplit < 0 {
		return nil, fmt.Errorf("min samples split %d: %w", t.minSamplesSplit, classifier.ErrInvalidConfiguration)
	}
	return t, nil
}

func (t *Tree) Name() string { return "C4.5" }

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
	t.kinds = make([]dataset.ColumnKind, ds.NumCols())
	t.importances = make(map[string]float64, ds.NumCols())
	for i := 0; i < ds.NumCols(); i++ {
		t.kinds[i] = ds.Column(i).Kind
		t.importances[t.features[i]] = 0
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
	case *numericSplit:
		if ds.Column(v.feature).Nums[row] <= v.threshold {
			return t.predictRow(ds, row, v.left)
		}
		return t.predictRow(ds, row, v.right)
	case *categoricalSplit:
		value := ds.Column(v.feature).Cats[row]
		if child, ok := v.branches[value]; ok {
			return t.predictRow(ds, row, child)
		}
		// unseen category: majority label over the subtree's leaves
		return classifier.Majority(leafLabels(v, nil))
	}
	return ""
}

func (t *Tree) build(ds *dataset.Dataset, y []string, idx []int, depth int) node {
	labels := subset(y, idx)
	counts, _ := classifier.Counts(labels)

	if depth >= t.maxDepth || len(counts) == 1 || len(idx) < t.minSamplesSplit {
		return leaf{label: classifier.Majority(labels)}
	}

	best, ok := t.bestSplit(ds, y, idx)
	if !ok {
		return leaf{label: classifier.Majority(labels)}
	}
	t.importances[t.features[best.feature]] += best.gain * float64(len(idx)) / float64(t.totalSamples)

	if best.numeric {
		var left, right []int
		col := ds.Column(best.feature)
		for _, i := range idx {
			v := col.Nums[i]
			if math.IsNaN(v) {
				continue
			}
			if v <= best.threshold {
				left = append(left, i)
			} else {
				right = append(right, i)
			}
		}
		return &numericSplit{
			feature:   best.feature,
			threshold: best.threshold,
			left:      t.build(ds, y, left, depth+1),
			right:     t.build(ds, y, right, depth+1),
		}
	}

	col := ds.Column(best.feature)
	groups := make(map[string][]int)
	var keys []string
	for _, i := range idx {
		v := col.Cats[i]
		if _, ok := groups[v]; !ok {
			keys = append(keys, v)
		}
		groups[v] = append(groups[v], i)
	}
	branches := make(map[string]node, len(keys))
	for _, key := range keys {
		branches[key] = t.build(ds, y, groups[key], depth+1)
	}
	return &categoricalSplit{feature: best.feature, keys: keys, branches: branches}
}

type split struct {
	feature   int
	threshold float64
	numeric   bool
	gain      float64
	ratio     float64
}

// bestSplit scans features in column order and observed thresholds in row
// order; strict improvement keeps the first-encountered winner on ties.
// Only a positive gain ratio qualifies.
func (t *Tree) bestSplit(ds *dataset.Dataset, y []string, idx []int) (split, bool) {
	var best split
	found := false

	parent := entropy(subset(y, idx))

	for f := 0; f < ds.NumCols(); f++ {
		col := ds.Column(f)
		if col.Kind == dataset.Numeric {
			for _, thr := range uniqueNums(col.Nums, idx) {
				gain, ratio, ok := numericGainRatio(col.Nums, y, idx, thr, parent)
				if !ok {
					continue
				}
				if !found || ratio > best.ratio {
					best = split{feature: f, threshold: thr, numeric: true, gain: gain, ratio: ratio}
					found = true
				}
			}
			continue
		}
		gain, ratio, ok := categoricalGainRatio(col.Cats, y, idx, parent)
		if !ok {
			continue
		}
		if !found || ratio > best.ratio {
			best = split{feature: f, numeric: false, gain: gain, ratio: ratio}
			found = true
		}
	}
	return best, found
}

func numericGainRatio(values []float64, y []string, idx []int, thr, parent float64) (gain, ratio float64, ok bool) {
	var left, right []string
	for _, i := range idx {
		v := values[i]
		if math.IsNaN(v) {
			continue
		}
		if v <= thr {
			left = append(left, y[i])
		} else {
			right = append(right, y[i])
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return 0, 0, false
	}
	n := float64(len(idx))
	pl, pr := float64(len(left))/n, float64(len(right))/n
	gain = parent - pl*entropy(left) - pr*entropy(right)

	splitInfo := -(pl*math.Log2(pl) + pr*math.Log2(pr))
	if splitInfo == 0 {
		splitInfo = 1
	}
	ratio = gain / splitInfo
	return gain, ratio, ratio > 0
}

func categoricalGainRatio(values []string, y []string, idx []int, parent float64) (gain, ratio float64, ok bool) {
	groups := make(map[string][]string)
	var keys []string
	for _, i := range idx {
		v := values[i]
		if _, seen := groups[v]; !seen {
			keys = append(keys, v)
		}
		groups[v] = append(groups[v], y[i])
	}
	if len(keys) < 2 {
		return 0, 0, false
	}
	n := float64(len(idx))
	var child, splitInfo float64
	for _, key := range keys {
		p := float64(len(groups[key])) / n
		child += p * entropy(groups[key])
		splitInfo -= p * math.Log2(p)
	}
	gain = parent - child
	if splitInfo == 0 {
		splitInfo = 1
	}
	ratio = gain / splitInfo
	return gain, ratio, ratio > 0
}

func entropy(labels []string) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts, _ := classifier.Counts(labels)
	n := float64(len(labels))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

func subset(y []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = y[j]
	}
	return out
}

func uniqueNums(values []float64, idx []int) []float64 {
	seen := make(map[float64]struct{}, len(idx))
	var out []float64
	for _, i := range idx {
		v := values[i]
		if math.IsNaN(v) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}
