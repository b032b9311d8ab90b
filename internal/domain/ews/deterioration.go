package ews

import (
	"fmt"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// Deterioration probability settings. The NEWS2 total is normalized against
// 15 rather than the maximum 20 so that very high scores keep compounding
// with the additive adjustments instead of saturating early.
const (
	deteriorationNormalizer = 15.0
	maxDeteriorationProb    = 0.95
)

var deteriorationRecs = map[RiskLevel][]string{
	RiskCritical: {
		"immediate senior clinical review",
		"consider rapid response team activation",
		"continuous vital-sign monitoring",
		"prepare for possible ICU transfer",
	},
	RiskHigh: {
		"clinical review within 1 hour",
		"increase vital-sign frequency to hourly",
		"ensure IV access is patent",
		"notify responsible physician",
	},
	RiskMedium: {
		"increase vital-sign frequency to 4-hourly",
		"inform charge nurse of risk status",
		"review fluid balance and oxygen requirement",
	},
	RiskLow: {
		"continue routine monitoring",
		"reassess if condition changes",
	},
}

// Deterioration blends the normalized NEWS2 total, trend concern, and
// static patient risk modifiers into a bounded probability with a 4-tier
// label and time-window estimate. history and pc may be nil or empty.
func (e *Engine) Deterioration(v *vitals.VitalSigns, history vitals.History, pc *vitals.PatientContext) *DeteriorationResult {
	news2 := e.NEWS2(v)
	trends := e.Trends(history)
	return e.deteriorationFrom(news2, trends, pc)
}

// deteriorationFrom is the blending step, shared with the comprehensive
// assessment so NEWS2 and trends are computed once per call.
func (e *Engine) deteriorationFrom(news2 *NEWS2Result, trends *TrendResult, pc *vitals.PatientContext) *DeteriorationResult {
	r := &DeteriorationResult{NEWS2Score: news2.TotalScore}

	add := func(name string, contribution float64) {
		r.Factors = append(r.Factors, Factor{Name: name, Contribution: contribution})
		r.Probability += contribution
	}

	add("NEWS2 score", float64(news2.TotalScore)/deteriorationNormalizer)

	if trends != nil && trends.HasEnoughData && trends.OverallConcern {
		add("concerning vital-sign trend", 0.15)
	}

	if pc != nil {
		switch {
		case pc.Age >= 85:
			add(fmt.Sprintf("age %d", pc.Age), 0.10)
		case pc.Age >= 75:
			add(fmt.Sprintf("age %d", pc.Age), 0.05)
		}

		for _, cond := range pc.ChronicConditions {
			if matchesAny(cond, e.cfg.DeteriorationConditions) {
				add(fmt.Sprintf("chronic condition: %s", cond), 0.05)
			}
		}

		if pc.RecentRapidResponse {
			add("recent rapid response call", 0.15)
		}
		if pc.RecentICUTransfer {
			add("recent ICU transfer", 0.12)
		}
	}

	if r.Probability > maxDeteriorationProb {
		r.Probability = maxDeteriorationProb
	}

	// The label takes the worse of the probability tier and the raw NEWS2
	// tier, so a deranged score flags even when adjustments are few.
	switch {
	case r.Probability >= 0.7 || news2.TotalScore >= 7:
		r.RiskLevel = RiskCritical
		r.TimeWindow = "0-6 hours"
	case r.Probability >= 0.5 || news2.TotalScore >= 5:
		r.RiskLevel = RiskHigh
		r.TimeWindow = "6-12 hours"
	case r.Probability >= 0.3 || news2.TotalScore >= 3:
		r.RiskLevel = RiskMedium
		r.TimeWindow = "12-24 hours"
	default:
		r.RiskLevel = RiskLow
		r.TimeWindow = ">24 hours"
	}
	r.Recommendations = deteriorationRecs[r.RiskLevel]

	return r
}
