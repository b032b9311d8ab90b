// Package ews implements the clinical early-warning scoring core: NEWS2,
// qSOFA, Morse-style fall risk, vitals trend analysis, deterioration
// prediction, and the comprehensive assessment that combines them. Every
// scoring function is pure and total: it never fails, never blocks, and
// holds no state between calls.
package ews

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel tags a score with its clinical urgency.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// rank orders risk levels for sorting; higher is worse.
func (r RiskLevel) rank() int {
	switch r {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium, RiskModerate:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// Rank exposes the severity ordering to callers that sort across patients.
func (r RiskLevel) Rank() int { return r.rank() }

// NEWS2Result is the outcome of the National Early Warning Score 2
// calculation. Total is the arithmetic sum of the eight component scores
// and always falls in [0,20].
type NEWS2Result struct {
	TotalScore int            `json:"totalScore"`
	Breakdown  map[string]int `json:"breakdown"`
	Components []string       `json:"components,omitempty"`
	// HasExtremeScore is true when any single parameter scored 3 (a "RED
	// score"); it forces at least HIGH risk regardless of the total.
	HasExtremeScore bool      `json:"hasExtremeScore"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	Response        string    `json:"response"`
	ReassessIn      string    `json:"reassessIn"`
}

// QSOFAResult is the quick-SOFA sepsis screen plus a derived probability.
type QSOFAResult struct {
	TotalScore           int            `json:"totalScore"`
	Breakdown            map[string]int `json:"breakdown"`
	Components           []string       `json:"components,omitempty"`
	RiskLevel            RiskLevel      `json:"riskLevel"`
	SepsisProbability    float64        `json:"sepsisProbability"`
	RequiresSepsisWorkup bool           `json:"requiresSepsisWorkup"`
	Response             string         `json:"response"`
}

// FallRiskResult is the Morse-style fall risk score. The total is additive
// and uncapped; only the tier thresholds are fixed.
type FallRiskResult struct {
	TotalScore           int            `json:"totalScore"`
	Breakdown            map[string]int `json:"breakdown"`
	Factors              []string       `json:"factors,omitempty"`
	Interventions        []string       `json:"interventions,omitempty"`
	RiskLevel            RiskLevel      `json:"riskLevel"`
	RequiresFallProtocol bool           `json:"requiresFallProtocol"`
}

// ParameterTrend is the fitted trend for one vital-sign parameter.
type ParameterTrend struct {
	Parameter string  `json:"parameter"`
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	// Direction is "increasing", "decreasing", or "stable". Positive
	// RateOfChange always means the value is rising over time.
	Direction    string  `json:"direction"`
	RateOfChange float64 `json:"rateOfChange"`
	IsConcerning bool    `json:"isConcerning"`
	Samples      int     `json:"samples"`
}

// TrendResult is the outcome of trend analysis over a vitals history.
type TrendResult struct {
	HasEnoughData  bool                       `json:"hasEnoughData"`
	Parameters     map[string]*ParameterTrend `json:"parameters,omitempty"`
	OverallConcern bool                       `json:"overallConcern"`
	Concerns       []string                   `json:"concerns,omitempty"`
}

// Factor is one named contribution to the deterioration probability, kept
// so the caller can explain the final number.
type Factor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// DeteriorationResult blends the NEWS2 score, trend concern, and static
// patient risk into a bounded probability with a time-window estimate.
type DeteriorationResult struct {
	Probability     float64   `json:"probability"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	TimeWindow      string    `json:"timeWindow"`
	NEWS2Score      int       `json:"news2Score"`
	Factors         []Factor  `json:"factors"`
	Recommendations []string  `json:"recommendations"`
}

// Alert is generated transiently when a score crosses a threshold. Alerts
// are recomputed on every assessment and never stored or mutated; any
// acknowledgement lifecycle belongs to the caller.
type Alert struct {
	Type      string    `json:"type"`
	Severity  RiskLevel `json:"severity"`
	Score     float64   `json:"score"`
	Message   string    `json:"message"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Alert types emitted by the comprehensive assessment.
const (
	AlertNEWS2    = "NEWS2"
	AlertSepsis   = "SEPSIS"
	AlertFallRisk = "FALL_RISK"
)

// Assessment is the full structured report for one patient.
type Assessment struct {
	PatientID          uuid.UUID            `json:"patientId,omitempty"`
	GeneratedAt        time.Time            `json:"generatedAt"`
	NEWS2              *NEWS2Result         `json:"news2"`
	QSOFA              *QSOFAResult         `json:"qsofa"`
	FallRisk           *FallRiskResult      `json:"fallRisk"`
	Trends             *TrendResult         `json:"trends"`
	Deterioration      *DeteriorationResult `json:"deterioration"`
	Alerts             []Alert              `json:"alerts"`
	EscalationRequired bool                 `json:"escalationRequired"`
	RecommendedActions []string             `json:"recommendedActions,omitempty"`
	// Explanations holds optional advisory narratives keyed by sub-score
	// ("news2", "qsofa", "deterioration"). Advisory only: their presence or
	// absence never changes a score, tier, or flag.
	Explanations map[string]string `json:"explanations,omitempty"`
}
