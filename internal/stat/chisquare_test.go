package stat

import (
	"math"
	"testing"
)

func TestChiSquareTest(t *testing.T) {
	tests := []struct {
		name         string
		x            []string
		y            []string
		expectedP    float64
		expectedStat float64
	}{
		{
			// 2x2 dependent, Yates corrected: each cell contributes 0.25
			name:         "dependent_2x2",
			x:            []string{"a", "a", "b", "b"},
			y:            []string{"0", "0", "1", "1"},
			expectedP:    0.31731050786291415,
			expectedStat: 1.0,
		},
		{
			// 3x2, no correction: stat = 4, dof = 2, p = exp(-2)
			name:         "three_groups",
			x:            []string{"a", "a", "b", "b", "c", "c"},
			y:            []string{"0", "0", "1", "1", "0", "1"},
			expectedP:    0.1353352832366127,
			expectedStat: 4.0,
		},
		{
			name:         "single_group",
			x:            []string{"a", "a", "a"},
			y:            []string{"0", "1", "0"},
			expectedP:    1.0,
			expectedStat: 0.0,
		},
		{
			name:         "single_label",
			x:            []string{"a", "b", "a"},
			y:            []string{"0", "0", "0"},
			expectedP:    1.0,
			expectedStat: 0.0,
		},
		{
			name:         "empty",
			x:            nil,
			y:            nil,
			expectedP:    1.0,
			expectedStat: 0.0,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			p, stat := ChiSquareTest(test.x, test.y)
			if math.Abs(p-test.expectedP) > 1e-9 {
				t.Errorf("p-value got: %v, expected: %v", p, test.expectedP)
			}
			if math.Abs(stat-test.expectedStat) > 1e-9 {
				t.Errorf("statistic got: %v, expected: %v", stat, test.expectedStat)
			}
		})
	}
}

func TestChiSquareTestIndependent(t *testing.T) {
	// a label distribution identical across groups must not reach
	// significance at any reasonable alpha
	x := []string{"a", "a", "b", "b", "a", "a", "b", "b"}
	y := []string{"0", "1", "0", "1", "0", "1", "0", "1"}
	p, stat := ChiSquareTest(x, y)
	if p < 0.99 {
		t.Errorf("independent table p-value got: %v, expected ~1", p)
	}
	if stat != 0 {
		t.Errorf("independent table statistic got: %v, expected 0", stat)
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		q        float64
		expected float64
	}{
		{name: "median_even", values: []float64{1, 2, 3, 4}, q: 0.5, expected: 2.5},
		{name: "lower_quartile", values: []float64{1, 2, 3, 4}, q: 0.25, expected: 1.75},
		{name: "min", values: []float64{4, 1, 3, 2}, q: 0, expected: 1},
		{name: "max", values: []float64{4, 1, 3, 2}, q: 1, expected: 4},
		{name: "single", values: []float64{9}, q: 0.5, expected: 9},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			got := Quantile(test.values, test.q)
			if math.Abs(got-test.expected) > 1e-12 {
				t.Errorf("quantile got: %v, expected: %v", got, test.expected)
			}
		})
	}
}
