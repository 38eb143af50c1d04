package lqa

import (
	"math"
	"testing"
)

func TestScore_WorkedExample(t *testing.T) {
	scores := map[string]float64{
		"accuracy": 90, "fluency": 80, "terminology": 70,
		"style": 60, "grammar": 90, "completeness": 100, "formatting": 100,
	}
	ev := Score(DefaultCriteria(), scores)

	if math.Abs(ev.WeightedScore-83.5) > 1e-9 {
		t.Errorf("weighted score = %g, want 83.5", ev.WeightedScore)
	}
	if ev.Status != StatusNeedsReview {
		t.Errorf("status = %s, want %s", ev.Status, StatusNeedsReview)
	}
}

func TestScore_Approved(t *testing.T) {
	scores := map[string]float64{
		"accuracy": 95, "fluency": 90, "terminology": 90,
		"style": 85, "grammar": 95, "completeness": 100, "formatting": 100,
	}
	ev := Score(DefaultCriteria(), scores)
	if ev.Status != StatusApproved {
		t.Errorf("status = %s (%.1f), want approved", ev.Status, ev.WeightedScore)
	}
}

func TestScore_CriticalFloorRejects(t *testing.T) {
	// Accuracy at the reject floor rejects regardless of the weighted sum.
	scores := map[string]float64{
		"accuracy": 10, "fluency": 100, "terminology": 100,
		"style": 100, "grammar": 100, "completeness": 100, "formatting": 100,
	}
	ev := Score(DefaultCriteria(), scores)
	if ev.Status != StatusRejected {
		t.Errorf("status = %s, want rejected", ev.Status)
	}
}

func TestScore_CriticalMinBlocksApproval(t *testing.T) {
	// Completeness below its minimum keeps a high weighted score at
	// needs_review instead of approved.
	scores := map[string]float64{
		"accuracy": 100, "fluency": 100, "terminology": 100,
		"style": 100, "grammar": 100, "completeness": 50, "formatting": 100,
	}
	ev := Score(DefaultCriteria(), scores)
	if ev.Status != StatusNeedsReview {
		t.Errorf("status = %s (%.1f), want needs_review", ev.Status, ev.WeightedScore)
	}
}

func TestScore_Clamping(t *testing.T) {
	scores := map[string]float64{
		"accuracy": 150, "fluency": -20, "terminology": 100,
		"style": 100, "grammar": 100, "completeness": 100, "formatting": 100,
	}
	ev := Score(DefaultCriteria(), scores)
	if ev.Scores["accuracy"] != 100 {
		t.Errorf("accuracy not clamped: %g", ev.Scores["accuracy"])
	}
	if ev.Scores["fluency"] != 0 {
		t.Errorf("fluency not clamped: %g", ev.Scores["fluency"])
	}
	if ev.WeightedScore < 0 || ev.WeightedScore > 100 {
		t.Errorf("weighted score out of range: %g", ev.WeightedScore)
	}
}

func TestScore_MissingDimensionIsZero(t *testing.T) {
	ev := Score(DefaultCriteria(), map[string]float64{"accuracy": 10})
	if ev.Status != StatusRejected {
		t.Errorf("accuracy at floor must reject, got %s", ev.Status)
	}
	if ev.Scores["fluency"] != 0 {
		t.Errorf("missing dimension should score zero, got %g", ev.Scores["fluency"])
	}
}

func TestCriteriaValidate(t *testing.T) {
	if err := DefaultCriteria().Validate(); err != nil {
		t.Fatalf("default criteria invalid: %v", err)
	}

	c := DefaultCriteria()
	d := c.Dimensions["accuracy"]
	d.Weight = 0.05 // sum drops to 0.75
	c.Dimensions["accuracy"] = d
	if err := c.Validate(); err == nil {
		t.Error("expected error for weights not summing to 1.0")
	}

	half := Criteria{
		Dimensions:       map[string]Dimension{"accuracy": {Weight: 0.5}},
		ApproveThreshold: 85,
	}
	if err := half.Validate(); err == nil {
		t.Error("expected error for weight sum 0.5")
	}
}

func TestCriteriaValidate_Tolerance(t *testing.T) {
	c := Criteria{
		Dimensions: map[string]Dimension{
			"a": {Weight: 0.505}, "b": {Weight: 0.5},
		},
		ApproveThreshold: 85,
		RejectFloor:      10,
	}
	if err := c.Validate(); err != nil {
		t.Errorf("sum 1.005 should pass the ±0.01 tolerance: %v", err)
	}

	c.Dimensions["a"] = Dimension{Weight: 0.52}
	if err := c.Validate(); err == nil {
		t.Error("sum 1.02 should fail the tolerance")
	}
}

func TestCriteriaValidate_Thresholds(t *testing.T) {
	c := DefaultCriteria()
	c.RejectFloor = 90
	if err := c.Validate(); err == nil {
		t.Error("reject floor above approve threshold must fail")
	}
}

func TestDimensionNames(t *testing.T) {
	names := DefaultCriteria().DimensionNames()
	if len(names) != 7 {
		t.Fatalf("expected 7 dimensions, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}
