package ews

import (
	"fmt"
	"time"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

const maxRecommendedActions = 8

// Assess runs every scorer over one reading and combines the results into
// a single report: alerts, escalation decision, and a deduplicated action
// list. history and pc may be nil. The function is pure; advisory
// explanations are attached separately by the Service.
func (e *Engine) Assess(v *vitals.VitalSigns, history vitals.History, pc *vitals.PatientContext) *Assessment {
	now := time.Now().UTC()

	news2 := e.NEWS2(v)
	qsofa := e.QSOFA(v)
	fallRisk := e.FallRisk(v, pc)
	trends := e.Trends(history)
	deterioration := e.deteriorationFrom(news2, trends, pc)

	a := &Assessment{
		PatientID:     v.PatientID,
		GeneratedAt:   now,
		NEWS2:         news2,
		QSOFA:         qsofa,
		FallRisk:      fallRisk,
		Trends:        trends,
		Deterioration: deterioration,
	}

	if news2.TotalScore >= 3 {
		a.Alerts = append(a.Alerts, Alert{
			Type:      AlertNEWS2,
			Severity:  news2.RiskLevel,
			Score:     float64(news2.TotalScore),
			Message:   fmt.Sprintf("NEWS2 score %d (%s)", news2.TotalScore, news2.RiskLevel),
			Action:    news2.Response,
			Timestamp: now,
		})
	}

	if qsofa.TotalScore >= 2 {
		a.Alerts = append(a.Alerts, Alert{
			Type:      AlertSepsis,
			Severity:  RiskHigh,
			Score:     float64(qsofa.TotalScore),
			Message:   fmt.Sprintf("qSOFA %d/3: sepsis screening positive", qsofa.TotalScore),
			Action:    qsofa.Response,
			Timestamp: now,
		})
	}

	if fallRisk.RiskLevel == RiskHigh || fallRisk.RiskLevel == RiskMedium {
		a.Alerts = append(a.Alerts, Alert{
			Type:      AlertFallRisk,
			Severity:  fallRisk.RiskLevel,
			Score:     float64(fallRisk.TotalScore),
			Message:   fmt.Sprintf("fall risk score %d (%s)", fallRisk.TotalScore, fallRisk.RiskLevel),
			Action:    "apply fall precautions per protocol",
			Timestamp: now,
		})
	}

	a.EscalationRequired = news2.TotalScore >= 5 || qsofa.TotalScore >= 2 || news2.HasExtremeScore

	var actions []string
	recs := deterioration.Recommendations
	if len(recs) > 3 {
		recs = recs[:3]
	}
	actions = append(actions, recs...)
	if qsofa.TotalScore >= 1 {
		actions = append(actions, qsofa.Response)
	}
	ints := fallRisk.Interventions
	if len(ints) > 2 {
		ints = ints[:2]
	}
	actions = append(actions, ints...)
	a.RecommendedActions = dedupeTruncate(actions, maxRecommendedActions)

	return a
}
