package stat

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquareTest runs a chi-square test of independence on the contingency
// table of x against y. It returns the p-value and the test statistic.
// Degenerate tables (fewer than two distinct values on either side) are
// reported as independent: p=1, stat=0. The Yates continuity correction is
// applied on 2x2 tables.
func ChiSquareTest(x, y []string) (pValue, stat float64) {
	if len(x) == 0 || len(x) != len(y) {
		return 1.0, 0.0
	}

	rowKeys, rowIdx := indexKeys(x)
	colKeys, colIdx := indexKeys(y)
	if len(rowKeys) < 2 || len(colKeys) < 2 {
		return 1.0, 0.0
	}

	observed := make([][]float64, len(rowKeys))
	for i := range observed {
		observed[i] = make([]float64, len(colKeys))
	}
	for i := range x {
		observed[rowIdx[x[i]]][colIdx[y[i]]]++
	}

	rowSums := make([]float64, len(rowKeys))
	colSums := make([]float64, len(colKeys))
	var total float64
	for r := range observed {
		for c := range observed[r] {
			rowSums[r] += observed[r][c]
			colSums[c] += observed[r][c]
			total += observed[r][c]
		}
	}

	dof := (len(rowKeys) - 1) * (len(colKeys) - 1)
	yates := dof == 1
	for r := range observed {
		for c := range observed[r] {
			expected := rowSums[r] * colSums[c] / total
			if expected == 0 {
				continue
			}
			diff := math.Abs(observed[r][c] - expected)
			if yates {
				diff -= 0.5
				if diff < 0 {
					diff = 0
				}
			}
			stat += diff * diff / expected
		}
	}

	dist := distuv.ChiSquared{K: float64(dof)}
	return dist.Survival(stat), stat
}

// indexKeys assigns each distinct value its first-seen position.
func indexKeys(values []string) ([]string, map[string]int) {
	idx := make(map[string]int)
	var keys []string
	for _, v := range values {
		if _, ok := idx[v]; !ok {
			idx[v] = len(keys)
			keys = append(keys, v)
		}
	}
	return keys, idx
}
