package chaid

import (
	"math"
	"sort"

	"github.com/go-grove/grove/internal/geom"
	"github.com/go-grove/grove/internal/stat"
)

const maxBins = 10

// mergeCategories starts with every observed category in its own group and
// repeatedly merges the pair whose combined contingency test is least
// significant, until only two groups remain or no pair exceeds alpha. The
// first-seen group identifier absorbs its partner.
func (t *Tree) mergeCategories(values []string, y []string, idx []int) map[string]string {
	var cats []string
	catMap := make(map[string]string)
	for _, i := range idx {
		v := values[i]
		if _, ok := catMap[v]; !ok {
			catMap[v] = v
			cats = append(cats, v)
		}
	}
	if len(cats) <= 2 {
		return catMap
	}

	for {
		groups := groupOrder(cats, catMap)
		if len(groups) <= 2 {
			return catMap
		}

		bestP := -1.0
		var absorb, absorbed string
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				g1, g2 := groups[i], groups[j]
				var pairX, pairY []string
				for _, row := range idx {
					mapped := catMap[values[row]]
					if mapped == g1 || mapped == g2 {
						pairX = append(pairX, mapped)
						pairY = append(pairY, y[row])
					}
				}
				if len(pairX) < t.minChildNodeSize {
					continue
				}
				p, _ := stat.ChiSquareTest(pairX, pairY)
				if p > bestP {
					bestP = p
					absorb, absorbed = g1, g2
				}
			}
		}

		if absorb == "" || bestP <= t.alpha {
			return catMap
		}
		for cat, group := range catMap {
			if group == absorbed {
				catMap[cat] = absorb
			}
		}
	}
}

// groupOrder lists the distinct merged group ids in first-seen order.
func groupOrder(cats []string, catMap map[string]string) []string {
	seen := make(map[string]struct{}, len(cats))
	var groups []string
	for _, cat := range cats {
		g := catMap[cat]
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			groups = append(groups, g)
		}
	}
	return groups
}

// discretize cuts a numeric feature into up to maxBins equal-frequency
// bins, then merges adjacent bins with the same pairwise chi-square
// procedure. It returns per-position bin labels aligned with idx (-1 for
// missing values) and the bin edges. When quantile edges collapse it falls
// back to a binary split at the median.
func (t *Tree) discretize(values []float64, y []string, idx []int) ([]int, []float64) {
	var present []float64
	for _, i := range idx {
		if !math.IsNaN(values[i]) {
			present = append(present, values[i])
		}
	}
	if len(present) == 0 {
		bins := make([]int, len(idx))
		for pos := range bins {
			bins[pos] = -1
		}
		return bins, nil
	}

	unique := make(map[float64]struct{}, len(present))
	for _, v := range present {
		unique[v] = struct{}{}
	}
	nBins := len(unique)
	if nBins > maxBins {
		nBins = maxBins
	}
	if nBins < 2 {
		nBins = 2
	}

	var edges []float64
	for i := 0; i <= nBins; i++ {
		edge := stat.Quantile(present, float64(i)/float64(nBins))
		if len(edges) == 0 || edge != edges[len(edges)-1] {
			edges = append(edges, edge)
		}
	}
	if len(edges) < 2 {
		p := geom.New(present)
		median := p.Median()
		edges = []float64{p.Min(), median, p.Max()}
		bins := make([]int, len(idx))
		for pos, i := range idx {
			switch {
			case math.IsNaN(values[i]):
				bins[pos] = -1
			case values[i] > median:
				bins[pos] = 1
			default:
				bins[pos] = 0
			}
		}
		return bins, edges
	}

	bins := make([]int, len(idx))
	for pos, i := range idx {
		bins[pos] = locateBin(edges, values[i])
	}

	t.mergeBins(bins, y, idx)
	return bins, edges
}

// locateBin finds the right-closed interval of v; the last bin is the
// catch-all beyond every edge.
func locateBin(edges []float64, v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	for i := 1; i < len(edges); i++ {
		if v <= edges[i] {
			return i - 1
		}
	}
	return len(edges) - 2
}

// mergeBins merges neighboring bins in place, preserving order: only
// adjacent labels may join and the lower label absorbs the higher.
func (t *Tree) mergeBins(bins []int, y []string, idx []int) {
	binMap := make(map[int]int)
	for _, b := range bins {
		if b >= 0 {
			binMap[b] = b
		}
	}

	for {
		groups := sortedGroups(binMap)
		if len(groups) <= 2 {
			break
		}

		bestP := -1.0
		mergeAt := -1
		for i := 0; i < len(groups)-1; i++ {
			b1, b2 := groups[i], groups[i+1]
			var pairX, pairY []string
			for pos := range bins {
				if bins[pos] < 0 {
					continue
				}
				mapped := binMap[bins[pos]]
				if mapped == b1 || mapped == b2 {
					pairX = append(pairX, binKey(mapped))
					pairY = append(pairY, y[idx[pos]])
				}
			}
			if len(pairX) < t.minChildNodeSize {
				continue
			}
			p, _ := stat.ChiSquareTest(pairX, pairY)
			if p > bestP {
				bestP = p
				mergeAt = i
			}
		}

		if mergeAt < 0 || bestP <= t.alpha {
			break
		}
		b1, b2 := groups[mergeAt], groups[mergeAt+1]
		for b, g := range binMap {
			if g == b2 {
				binMap[b] = b1
			}
		}
	}

	for pos := range bins {
		if bins[pos] >= 0 {
			bins[pos] = binMap[bins[pos]]
		}
	}
}

func sortedGroups(binMap map[int]int) []int {
	seen := make(map[int]struct{}, len(binMap))
	var groups []int
	for _, g := range binMap {
		if _, ok := seen[g]; !ok {
			seen[g] = struct{}{}
			groups = append(groups, g)
		}
	}
	sort.Ints(groups)
	return groups
}
