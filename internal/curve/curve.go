// Package curve computes ROC and precision-recall curves over raw scores
// through a full threshold sweep, plus their trapezoidal areas.
package curve

import (
	"fmt"
	"math"
	"sort"
)

var ErrLengthMismatch = fmt.Errorf("labels and scores differ in length")

// ROC holds one rate pair per threshold; Thresholds is padded with +Inf
// and -Inf so the curve always spans (0,0) to (1,1).
type ROC struct {
	FPR        []float64 `json:"fpr"`
	TPR        []float64 `json:"tpr"`
	Thresholds []float64 `json:"thresholds"`
}

// PR holds one precision-recall pair per threshold.
type PR struct {
	Precision  []float64 `json:"precision"`
	Recall     []float64 `json:"recall"`
	Thresholds []float64 `json:"thresholds"`
}

// ROCCurve sweeps every distinct score as a decision threshold, treating
// a score at or above the threshold as a positive prediction.
func ROCCurve(yTrue []string, scores []float64, posLabel string) (*ROC, error) {
	if len(yTrue) != len(scores) {
		return nil, fmt.Errorf("%d labels, %d scores: %w", len(yTrue), len(scores), ErrLengthMismatch)
	}

	thresholds := sweepThresholds(scores)
	roc := &ROC{
		FPR:        make([]float64, 0, len(thresholds)),
		TPR:        make([]float64, 0, len(thresholds)),
		Thresholds: thresholds,
	}

	var nPos, nNeg int
	for _, label := range yTrue {
		if label == posLabel {
			nPos++
		} else {
			nNeg++
		}
	}

	for _, threshold := range thresholds {
		var tp, fp int
		for i, score := range scores {
			if score < threshold {
				continue
			}
			if yTrue[i] == posLabel {
				tp++
			} else {
				fp++
			}
		}
		roc.TPR = append(roc.TPR, safeRate(tp, nPos))
		roc.FPR = append(roc.FPR, safeRate(fp, nNeg))
	}
	return roc, nil
}

// AUC integrates the ROC curve with the trapezoidal rule after ordering
// points by false positive rate.
func AUC(fpr, tpr []float64) float64 {
	return trapezoid(fpr, tpr)
}

// PRCurve sweeps thresholds the same way ROCCurve does and reports
// precision against recall.
func PRCurve(yTrue []string, scores []float64, posLabel string) (*PR, error) {
	if len(yTrue) != len(scores) {
		return nil, fmt.Errorf("%d labels, %d scores: %w", len(yTrue), len(scores), ErrLengthMismatch)
	}

	thresholds := sweepThresholds(scores)
	pr := &PR{
		Precision:  make([]float64, 0, len(thresholds)),
		Recall:     make([]float64, 0, len(thresholds)),
		Thresholds: thresholds,
	}

	var nPos int
	for _, label := range yTrue {
		if label == posLabel {
			nPos++
		}
	}

	for _, threshold := range thresholds {
		var tp, fp int
		for i, score := range scores {
			if score < threshold {
				continue
			}
			if yTrue[i] == posLabel {
				tp++
			} else {
				fp++
			}
		}
		pr.Precision = append(pr.Precision, safeRate(tp, tp+fp))
		pr.Recall = append(pr.Recall, safeRate(tp, nPos))
	}
	return pr, nil
}

// AveragePrecision integrates the PR curve with the trapezoidal rule after
// ordering points by recall.
func AveragePrecision(precision, recall []float64) float64 {
	return trapezoid(recall, precision)
}

// ClassROC is the one-vs-rest curve of a single class.
type ClassROC struct {
	FPR []float64 `json:"fpr"`
	TPR []float64 `json:"tpr"`
	AUC float64   `json:"auc"`
}

// MulticlassResult aggregates one-vs-rest curves with the unweighted mean
// of the per-class areas.
type MulticlassResult struct {
	PerClass map[string]ClassROC `json:"per_class"`
	MacroAUC float64             `json:"macro_auc"`
}

// MulticlassROC computes a one-vs-rest ROC per class; probs holds one row
// per sample with class scores in label order.
func MulticlassROC(yTrue []string, probs [][]float64, labels []string) (*MulticlassResult, error) {
	if len(yTrue) != len(probs) {
		return nil, fmt.Errorf("%d labels, %d probability rows: %w", len(yTrue), len(probs), ErrLengthMismatch)
	}
	for i, row := range probs {
		if len(row) != len(labels) {
			return nil, fmt.Errorf("probability row %d has %d scores, expected %d: %w", i, len(row), len(labels), ErrLengthMismatch)
		}
	}

	result := &MulticlassResult{PerClass: make(map[string]ClassROC, len(labels))}
	for idx, label := range labels {
		scores := make([]float64, len(probs))
		for i := range probs {
			scores[i] = probs[i][idx]
		}
		roc, err := ROCCurve(yTrue, scores, label)
		if err != nil {
			return nil, err
		}
		auc := AUC(roc.FPR, roc.TPR)
		result.PerClass[label] = ClassROC{FPR: roc.FPR, TPR: roc.TPR, AUC: auc}
		result.MacroAUC += auc
	}
	if len(labels) > 0 {
		result.MacroAUC /= float64(len(labels))
	}
	return result, nil
}

// sweepThresholds lists the distinct scores in descending order, wrapped
// with +Inf and -Inf sentinels.
func sweepThresholds(scores []float64) []float64 {
	seen := make(map[float64]struct{}, len(scores))
	unique := make([]float64, 0, len(scores))
	for _, score := range scores {
		if _, ok := seen[score]; ok {
			continue
		}
		seen[score] = struct{}{}
		unique = append(unique, score)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(unique)))

	thresholds := make([]float64, 0, len(unique)+2)
	thresholds = append(thresholds, math.Inf(1))
	thresholds = append(thresholds, unique...)
	return append(thresholds, math.Inf(-1))
}

func trapezoid(x, y []float64) float64 {
	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })

	var area float64
	for i := 1; i < len(idx); i++ {
		area += (x[idx[i]] - x[idx[i-1]]) * (y[idx[i]] + y[idx[i-1]]) / 2
	}
	return area
}

func safeRate(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
