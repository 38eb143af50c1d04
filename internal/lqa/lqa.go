// Package lqa implements Language Quality Assessment: weighted
// multi-dimension scoring of translations and the resulting
// approve/review/reject disposition.
package lqa

import (
	"fmt"
	"math"
	"sort"
)

// Status is the disposition derived from a weighted score.
type Status string

const (
	StatusApproved    Status = "approved"
	StatusNeedsReview Status = "needs_review"
	StatusRejected    Status = "rejected"
)

// Dimension is one weighted evaluation axis.
type Dimension struct {
	Weight      float64 `yaml:"weight" json:"weight"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Critical    bool    `yaml:"critical" json:"critical"`
	MinScore    float64 `yaml:"min_score" json:"min_score"`
}

// Criteria is the scoring configuration. Loaded once at job start and
// treated as immutable for the job's duration.
type Criteria struct {
	Dimensions       map[string]Dimension `yaml:"dimensions" json:"dimensions"`
	ApproveThreshold float64              `yaml:"approve_threshold" json:"approve_threshold"`
	RejectFloor      float64              `yaml:"reject_floor" json:"reject_floor"`
}

// weightTolerance is the allowed deviation of the weight sum from 1.0.
const weightTolerance = 0.01

// DefaultCriteria returns the built-in seven-dimension configuration.
func DefaultCriteria() Criteria {
	return Criteria{
		Dimensions: map[string]Dimension{
			"accuracy":     {Weight: 0.30, Critical: true, MinScore: 60, Description: "Meaning preserved from source"},
			"fluency":      {Weight: 0.20, MinScore: 0, Description: "Reads naturally in the target language"},
			"terminology":  {Weight: 0.15, MinScore: 0, Description: "Domain terms translated consistently"},
			"style":        {Weight: 0.10, MinScore: 0, Description: "Register and tone fit the content category"},
			"grammar":      {Weight: 0.10, MinScore: 0, Description: "Grammatically correct"},
			"completeness": {Weight: 0.10, Critical: true, MinScore: 60, Description: "Nothing omitted or added"},
			"formatting":   {Weight: 0.05, MinScore: 0, Description: "Placeholders and markup intact"},
		},
		ApproveThreshold: 85,
		RejectFloor:      10,
	}
}

// Validate checks the criteria invariants: weights sum to 1.0 within
// tolerance, thresholds are ordered, every dimension has a non-negative
// weight. Must be called at load time, before any translation starts.
func (c Criteria) Validate() error {
	if len(c.Dimensions) == 0 {
		return fmt.Errorf("no dimensions configured")
	}
	var sum float64
	for name, dim := range c.Dimensions {
		if dim.Weight < 0 {
			return fmt.Errorf("dimension %s has negative weight %g", name, dim.Weight)
		}
		if dim.MinScore < 0 || dim.MinScore > 100 {
			return fmt.Errorf("dimension %s has min_score %g outside [0,100]", name, dim.MinScore)
		}
		sum += dim.Weight
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("dimension weights must sum to 1.0, got %g", sum)
	}
	if c.ApproveThreshold < 0 || c.ApproveThreshold > 100 {
		return fmt.Errorf("approve threshold %g outside [0,100]", c.ApproveThreshold)
	}
	if c.RejectFloor < 0 || c.RejectFloor >= c.ApproveThreshold {
		return fmt.Errorf("reject floor %g must be in [0, approve threshold)", c.RejectFloor)
	}
	return nil
}

// DimensionNames returns the configured dimension names in sorted order.
func (c Criteria) DimensionNames() []string {
	names := make([]string, 0, len(c.Dimensions))
	for name := range c.Dimensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluation is one scored assessment of a single translation. Never
// mutated after creation.
type Evaluation struct {
	RecordID      string             `json:"record_id"`
	TargetLang    string             `json:"target_lang"`
	Scores        map[string]float64 `json:"scores"`
	WeightedScore float64            `json:"weighted_score"`
	Status        Status             `json:"status"`
}

// Score aggregates dimension scores into an Evaluation. Pure function of
// (criteria, scores): a dimension missing from scores counts as zero, each
// score is clamped into [0,100] before weighting, and the weighted sum is
// clamped into [0,100].
//
// Disposition rules:
//   - any critical dimension at or below the reject floor → rejected
//   - weighted score ≥ approve threshold and every critical dimension at or
//     above its own minimum → approved
//   - otherwise → needs_review
func Score(c Criteria, scores map[string]float64) Evaluation {
	clamped := make(map[string]float64, len(c.Dimensions))
	var weighted float64
	for name, dim := range c.Dimensions {
		s := clamp(scores[name], 0, 100)
		clamped[name] = s
		weighted += s * dim.Weight
	}
	weighted = clamp(weighted, 0, 100)

	status := StatusNeedsReview
	criticalOK := true
	rejected := false
	for name, dim := range c.Dimensions {
		if !dim.Critical {
			continue
		}
		if clamped[name] <= c.RejectFloor {
			rejected = true
		}
		if clamped[name] < dim.MinScore {
			criticalOK = false
		}
	}
	switch {
	case rejected:
		status = StatusRejected
	case weighted >= c.ApproveThreshold && criticalOK:
		status = StatusApproved
	}

	return Evaluation{
		Scores:        clamped,
		WeightedScore: weighted,
		Status:        status,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
