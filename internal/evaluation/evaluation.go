// Package evaluation computes classification quality metrics from label
// pairs: the confusion matrix, per-class counts and rates, and the macro,
// weighted and micro aggregates.
package evaluation

import (
	"fmt"
	"sort"
)

var ErrLengthMismatch = fmt.Errorf("true and predicted labels differ in length")

// Matrix is a confusion matrix indexed [true][predicted] over Labels in
// sorted order.
type Matrix struct {
	Labels []string `json:"labels"`
	Cells  [][]int  `json:"cells"`
}

// ConfusionMatrix builds the matrix over the sorted union of labels seen
// in either slice.
func ConfusionMatrix(yTrue, yPred []string) (*Matrix, error) {
	if len(yTrue) != len(yPred) {
		return nil, fmt.Errorf("%d true, %d predicted: %w", len(yTrue), len(yPred), ErrLengthMismatch)
	}

	seen := make(map[string]struct{})
	for _, label := range yTrue {
		seen[label] = struct{}{}
	}
	for _, label := range yPred {
		seen[label] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	cells := make([][]int, len(labels))
	for i := range cells {
		cells[i] = make([]int, len(labels))
	}
	for i := range yTrue {
		cells[index[yTrue[i]]][index[yPred[i]]]++
	}
	return &Matrix{Labels: labels, Cells: cells}, nil
}

// ClassMetrics holds the one-vs-rest counts and rates for a single class.
type ClassMetrics struct {
	TP          int     `json:"tp"`
	TN          int     `json:"tn"`
	FP          int     `json:"fp"`
	FN          int     `json:"fn"`
	Precision   float64 `json:"precision"`
	Recall      float64 `json:"recall"`
	F1          float64 `json:"f1_score"`
	Specificity float64 `json:"specificity"`
	Support     int     `json:"support"`
}

// Average aggregates precision, recall and F1 over classes.
type Average struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1_score"`
}

type Report struct {
	Matrix      *Matrix                 `json:"confusion_matrix"`
	Accuracy    float64                 `json:"accuracy"`
	PerClass    map[string]ClassMetrics `json:"per_class"`
	MacroAvg    Average                 `json:"macro_avg"`
	WeightedAvg Average                 `json:"weighted_avg"`
	MicroAvg    Average                 `json:"micro_avg"`
}

// Evaluate computes the full metric report for a pair of label slices.
func Evaluate(yTrue, yPred []string) (*Report, error) {
	matrix, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		return nil, err
	}

	total := len(yTrue)
	perClass := make(map[string]ClassMetrics, len(matrix.Labels))
	var trace int
	for idx, label := range matrix.Labels {
		tp := matrix.Cells[idx][idx]
		trace += tp

		var fp, fn int
		for other := range matrix.Labels {
			if other == idx {
				continue
			}
			fp += matrix.Cells[other][idx]
			fn += matrix.Cells[idx][other]
		}
		tn := total - tp - fp - fn

		m := ClassMetrics{TP: tp, TN: tn, FP: fp, FN: fn, Support: tp + fn}
		m.Precision = ratio(tp, tp+fp)
		m.Recall = ratio(tp, tp+fn)
		m.Specificity = ratio(tn, tn+fp)
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		perClass[label] = m
	}

	report := &Report{
		Matrix:   matrix,
		PerClass: perClass,
	}
	if total > 0 {
		report.Accuracy = float64(trace) / float64(total)
	}

	var totalTP, totalFP, totalFN, totalSupport int
	for _, label := range matrix.Labels {
		m := perClass[label]
		report.MacroAvg.Precision += m.Precision
		report.MacroAvg.Recall += m.Recall
		report.MacroAvg.F1 += m.F1
		report.WeightedAvg.Precision += m.Precision * float64(m.Support)
		report.WeightedAvg.Recall += m.Recall * float64(m.Support)
		report.WeightedAvg.F1 += m.F1 * float64(m.Support)
		totalTP += m.TP
		totalFP += m.FP
		totalFN += m.FN
		totalSupport += m.Support
	}
	if n := len(matrix.Labels); n > 0 {
		report.MacroAvg.Precision /= float64(n)
		report.MacroAvg.Recall /= float64(n)
		report.MacroAvg.F1 /= float64(n)
	}
	if totalSupport > 0 {
		report.WeightedAvg.Precision /= float64(totalSupport)
		report.WeightedAvg.Recall /= float64(totalSupport)
		report.WeightedAvg.F1 /= float64(totalSupport)
	}
	report.MicroAvg.Precision = ratio(totalTP, totalTP+totalFP)
	report.MicroAvg.Recall = ratio(totalTP, totalTP+totalFN)
	if s := report.MicroAvg.Precision + report.MicroAvg.Recall; s > 0 {
		report.MicroAvg.F1 = 2 * report.MicroAvg.Precision * report.MicroAvg.Recall / s
	}
	return report, nil
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
