package curve

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-12

func TestROCCurve_PerfectSeparation(t *testing.T) {
	yTrue := []string{"n", "n", "p", "p"}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	roc, err := ROCCurve(yTrue, scores, "p")
	if err != nil {
		t.Fatalf("ROCCurve: %v", err)
	}
	expectedTPR := []float64{0, 0.5, 1, 1, 1, 1}
	expectedFPR := []float64{0, 0, 0, 0.5, 1, 1}
	if !reflect.DeepEqual(roc.TPR, expectedTPR) {
		t.Errorf("tpr got: %v, expected: %v", roc.TPR, expectedTPR)
	}
	if !reflect.DeepEqual(roc.FPR, expectedFPR) {
		t.Errorf("fpr got: %v, expected: %v", roc.FPR, expectedFPR)
	}
	if !math.IsInf(roc.Thresholds[0], 1) || !math.IsInf(roc.Thresholds[len(roc.Thresholds)-1], -1) {
		t.Errorf("thresholds got: %v, expected infinite sentinels", roc.Thresholds)
	}
	if auc := AUC(roc.FPR, roc.TPR); auc != 1.0 {
		t.Errorf("auc got: %v, expected: 1.0", auc)
	}
}

func TestROCCurve_InvertedScores(t *testing.T) {
	yTrue := []string{"n", "n", "p", "p"}
	scores := []float64{0.9, 0.8, 0.2, 0.1}
	roc, err := ROCCurve(yTrue, scores, "p")
	if err != nil {
		t.Fatalf("ROCCurve: %v", err)
	}
	if auc := AUC(roc.FPR, roc.TPR); auc != 0.0 {
		t.Errorf("auc got: %v, expected: 0.0", auc)
	}
}

func TestROCCurve_ConstantScores(t *testing.T) {
	yTrue := []string{"n", "p", "n", "p"}
	scores := []float64{0.5, 0.5, 0.5, 0.5}
	roc, err := ROCCurve(yTrue, scores, "p")
	if err != nil {
		t.Fatalf("ROCCurve: %v", err)
	}
	if auc := AUC(roc.FPR, roc.TPR); math.Abs(auc-0.5) > epsilon {
		t.Errorf("auc got: %v, expected: 0.5", auc)
	}
}

func TestROCCurve_SingleClassZeroRates(t *testing.T) {
	roc, err := ROCCurve([]string{"p", "p"}, []float64{0.2, 0.8}, "p")
	if err != nil {
		t.Fatalf("ROCCurve: %v", err)
	}
	for _, fpr := range roc.FPR {
		if fpr != 0 {
			t.Errorf("fpr got: %v, expected 0 with no negatives", roc.FPR)
			break
		}
	}
}

func TestROCCurve_LengthMismatch(t *testing.T) {
	if _, err := ROCCurve([]string{"p"}, []float64{0.1, 0.2}, "p"); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error got: %v, expected: %v", err, ErrLengthMismatch)
	}
}

func TestPRCurve_AveragePrecision(t *testing.T) {
	yTrue := []string{"n", "n", "p", "p"}
	scores := []float64{0.1, 0.2, 0.8, 0.9}
	pr, err := PRCurve(yTrue, scores, "p")
	if err != nil {
		t.Fatalf("PRCurve: %v", err)
	}
	expectedPrecision := []float64{0, 1, 1, 2.0 / 3.0, 0.5, 0.5}
	expectedRecall := []float64{0, 0.5, 1, 1, 1, 1}
	if !reflect.DeepEqual(pr.Precision, expectedPrecision) {
		t.Errorf("precision got: %v, expected: %v", pr.Precision, expectedPrecision)
	}
	if !reflect.DeepEqual(pr.Recall, expectedRecall) {
		t.Errorf("recall got: %v, expected: %v", pr.Recall, expectedRecall)
	}
	if ap := AveragePrecision(pr.Precision, pr.Recall); math.Abs(ap-0.75) > epsilon {
		t.Errorf("average precision got: %v, expected: 0.75", ap)
	}
}

func TestMulticlassROC(t *testing.T) {
	yTrue := []string{"a", "a", "b", "b"}
	probs := [][]float64{
		{0.9, 0.1},
		{0.8, 0.2},
		{0.2, 0.8},
		{0.1, 0.9},
	}
	result, err := MulticlassROC(yTrue, probs, []string{"a", "b"})
	if err != nil {
		t.Fatalf("MulticlassROC: %v", err)
	}
	if len(result.PerClass) != 2 {
		t.Fatalf("classes got: %d, expected: 2", len(result.PerClass))
	}
	for label, class := range result.PerClass {
		if class.AUC != 1.0 {
			t.Errorf("class %s auc got: %v, expected: 1.0", label, class.AUC)
		}
	}
	if result.MacroAUC != 1.0 {
		t.Errorf("macro auc got: %v, expected: 1.0", result.MacroAUC)
	}
}

func TestMulticlassROC_RowWidthMismatch(t *testing.T) {
	_, err := MulticlassROC([]string{"a"}, [][]float64{{0.5}}, []string{"a", "b"})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error got: %v, expected: %v", err, ErrLengthMismatch)
	}
}
