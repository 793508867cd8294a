package evaluation

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const epsilon = 1e-12

func TestConfusionMatrix(t *testing.T) {
	yTrue := []string{"cat", "dog", "dog", "cat", "bird"}
	yPred := []string{"cat", "dog", "cat", "cat", "dog"}
	matrix, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("ConfusionMatrix: %v", err)
	}
	if !reflect.DeepEqual(matrix.Labels, []string{"bird", "cat", "dog"}) {
		t.Errorf("labels got: %v, expected sorted union", matrix.Labels)
	}
	expected := [][]int{
		{0, 0, 1},
		{0, 2, 0},
		{0, 1, 1},
	}
	if !reflect.DeepEqual(matrix.Cells, expected) {
		t.Errorf("cells got: %v, expected: %v", matrix.Cells, expected)
	}
	var sum int
	for _, row := range matrix.Cells {
		for _, cell := range row {
			sum += cell
		}
	}
	if sum != len(yTrue) {
		t.Errorf("cell sum got: %d, expected: %d", sum, len(yTrue))
	}
}

func TestConfusionMatrix_LengthMismatch(t *testing.T) {
	if _, err := ConfusionMatrix([]string{"a"}, []string{"a", "b"}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error got: %v, expected: %v", err, ErrLengthMismatch)
	}
}

func TestConfusionMatrix_PredictedOnlyLabel(t *testing.T) {
	matrix, err := ConfusionMatrix([]string{"a", "a"}, []string{"a", "b"})
	if err != nil {
		t.Fatalf("ConfusionMatrix: %v", err)
	}
	if !reflect.DeepEqual(matrix.Labels, []string{"a", "b"}) {
		t.Errorf("labels got: %v, expected: [a b]", matrix.Labels)
	}
}

func TestEvaluate_PerfectPredictions(t *testing.T) {
	y := []string{"a", "b", "a", "b", "c"}
	report, err := Evaluate(y, y)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Accuracy != 1.0 {
		t.Errorf("accuracy got: %v, expected: 1.0", report.Accuracy)
	}
	for label, m := range report.PerClass {
		if m.Precision != 1.0 || m.Recall != 1.0 || m.F1 != 1.0 {
			t.Errorf("class %s got: %+v, expected perfect scores", label, m)
		}
	}
	if report.MacroAvg.F1 != 1.0 || report.MicroAvg.F1 != 1.0 || report.WeightedAvg.F1 != 1.0 {
		t.Error("aggregate F1 expected 1.0 across all averages")
	}
}

func TestEvaluate_BinaryCounts(t *testing.T) {
	yTrue := []string{"p", "p", "p", "n", "n", "n", "n", "n"}
	yPred := []string{"p", "p", "n", "n", "n", "n", "p", "p"}
	report, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	p := report.PerClass["p"]
	if p.TP != 2 || p.FN != 1 || p.FP != 2 || p.TN != 3 {
		t.Errorf("class p counts got: %+v, expected tp=2 fn=1 fp=2 tn=3", p)
	}
	if math.Abs(p.Precision-0.5) > epsilon {
		t.Errorf("precision got: %v, expected: 0.5", p.Precision)
	}
	if math.Abs(p.Recall-2.0/3.0) > epsilon {
		t.Errorf("recall got: %v, expected: 2/3", p.Recall)
	}
	if math.Abs(p.Specificity-0.6) > epsilon {
		t.Errorf("specificity got: %v, expected: 0.6", p.Specificity)
	}
	if p.Support != 3 {
		t.Errorf("support got: %d, expected: 3", p.Support)
	}
	if math.Abs(report.Accuracy-5.0/8.0) > epsilon {
		t.Errorf("accuracy got: %v, expected: 5/8", report.Accuracy)
	}
}

func TestEvaluate_MicroEqualsAccuracy(t *testing.T) {
	// every row has exactly one true and one predicted label, so micro
	// precision, recall and F1 all collapse to accuracy
	yTrue := []string{"a", "a", "b", "b", "c", "c", "a"}
	yPred := []string{"a", "b", "b", "c", "c", "a", "a"}
	report, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for name, got := range map[string]float64{
		"precision": report.MicroAvg.Precision,
		"recall":    report.MicroAvg.Recall,
		"f1":        report.MicroAvg.F1,
	} {
		if math.Abs(got-report.Accuracy) > epsilon {
			t.Errorf("micro %s got: %v, expected accuracy %v", name, got, report.Accuracy)
		}
	}
}

func TestEvaluate_AbsentClassZeroRates(t *testing.T) {
	// class c is never predicted and never true beyond one row that the
	// model misses entirely
	yTrue := []string{"a", "a", "c"}
	yPred := []string{"a", "a", "a"}
	report, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	c := report.PerClass["c"]
	if c.Precision != 0 || c.Recall != 0 || c.F1 != 0 {
		t.Errorf("class c got: %+v, expected zero rates", c)
	}
}

func TestEvaluate_WeightedAverage(t *testing.T) {
	yTrue := []string{"a", "a", "a", "b"}
	yPred := []string{"a", "a", "b", "b"}
	report, err := Evaluate(yTrue, yPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	a := report.PerClass["a"]
	b := report.PerClass["b"]
	expected := (a.Recall*3 + b.Recall*1) / 4
	if math.Abs(report.WeightedAvg.Recall-expected) > epsilon {
		t.Errorf("weighted recall got: %v, expected: %v", report.WeightedAvg.Recall, expected)
	}
}
