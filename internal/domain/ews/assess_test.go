package ews

import (
	"testing"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

func TestAssess_HealthyPatient(t *testing.T) {
	a := NewDefaultEngine().Assess(&vitals.VitalSigns{}, nil, nil)

	if a.NEWS2.TotalScore != 0 || a.QSOFA.TotalScore != 0 || a.FallRisk.TotalScore != 0 {
		t.Fatalf("default vitals must score 0 everywhere: %d/%d/%d",
			a.NEWS2.TotalScore, a.QSOFA.TotalScore, a.FallRisk.TotalScore)
	}
	if len(a.Alerts) != 0 {
		t.Errorf("no alerts expected, got %v", a.Alerts)
	}
	if a.EscalationRequired {
		t.Error("no escalation expected")
	}
	if a.Trends.HasEnoughData {
		t.Error("empty history must not claim enough data")
	}
	if len(a.RecommendedActions) == 0 {
		t.Error("routine-monitoring actions still expected")
	}
}

func TestAssess_CriticalPatient(t *testing.T) {
	v := &vitals.VitalSigns{
		RespiratoryRate:  f(30),
		OxygenSaturation: f(89),
		Temperature:      f(39.5),
		SystolicBP:       f(85),
		HeartRate:        f(135),
		Consciousness:    vitals.ConsciousnessVoice,
	}
	a := NewDefaultEngine().Assess(v, nil, nil)

	if a.NEWS2.TotalScore != 17 || a.NEWS2.RiskLevel != RiskCritical {
		t.Fatalf("expected NEWS2 17 CRITICAL, got %d %s", a.NEWS2.TotalScore, a.NEWS2.RiskLevel)
	}
	if a.QSOFA.TotalScore != 3 {
		t.Fatalf("expected qSOFA 3, got %d", a.QSOFA.TotalScore)
	}
	if !a.EscalationRequired {
		t.Error("escalation required")
	}

	types := make(map[string]Alert)
	for _, al := range a.Alerts {
		types[al.Type] = al
	}
	if al, ok := types[AlertNEWS2]; !ok || al.Severity != RiskCritical {
		t.Errorf("expected CRITICAL NEWS2 alert, got %+v", types[AlertNEWS2])
	}
	if al, ok := types[AlertSepsis]; !ok || al.Severity != RiskHigh {
		t.Errorf("expected HIGH sepsis alert, got %+v", types[AlertSepsis])
	}
	// Voice consciousness + hypotension put the fall score at MEDIUM even
	// without any patient context.
	if al, ok := types[AlertFallRisk]; !ok || al.Severity != RiskMedium {
		t.Errorf("expected MEDIUM fall-risk alert, got %+v", types[AlertFallRisk])
	}
}

func TestAssess_EscalationThresholds(t *testing.T) {
	e := NewDefaultEngine()

	// NEWS2 3 from distributed ones and twos: alert but no escalation.
	a := e.Assess(&vitals.VitalSigns{RespiratoryRate: f(22), HeartRate: f(95)}, nil, nil)
	if a.NEWS2.TotalScore != 3 {
		t.Fatalf("expected NEWS2 3, got %d", a.NEWS2.TotalScore)
	}
	if a.EscalationRequired {
		t.Error("NEWS2 3 without a red score must not escalate")
	}
	found := false
	for _, al := range a.Alerts {
		if al.Type == AlertNEWS2 {
			found = true
		}
	}
	if !found {
		t.Error("NEWS2 3 must still raise an alert")
	}

	// A single red score escalates regardless of the total.
	a = e.Assess(&vitals.VitalSigns{RespiratoryRate: f(8)}, nil, nil)
	if !a.EscalationRequired {
		t.Error("a single extreme parameter must escalate")
	}
}

func TestAssess_RecommendedActionsComposition(t *testing.T) {
	v := &vitals.VitalSigns{
		RespiratoryRate: f(24),
		SystolicBP:      f(95),
	}
	pc := &vitals.PatientContext{Age: 80, FallHistory: true, Gait: vitals.GaitNormal}
	a := NewDefaultEngine().Assess(v, nil, pc)

	if len(a.RecommendedActions) == 0 || len(a.RecommendedActions) > maxRecommendedActions {
		t.Fatalf("got %d actions", len(a.RecommendedActions))
	}
	seen := make(map[string]bool)
	for _, act := range a.RecommendedActions {
		if seen[act] {
			t.Errorf("duplicate action %q", act)
		}
		seen[act] = true
	}
	// qSOFA is 2 here (RR + BP), so its response must be included.
	if !seen[a.QSOFA.Response] {
		t.Errorf("qSOFA response missing from actions: %v", a.RecommendedActions)
	}
}

func TestAssess_DeteriorationSharedWithTrends(t *testing.T) {
	history := spo2History(88, 92, 96, 98)
	a := NewDefaultEngine().Assess(&vitals.VitalSigns{OxygenSaturation: f(88)}, history, nil)

	if !a.Trends.OverallConcern {
		t.Fatal("expected concerning trend")
	}
	found := false
	for _, fac := range a.Deterioration.Factors {
		if fac.Name == "concerning vital-sign trend" {
			found = true
		}
	}
	if !found {
		t.Errorf("trend concern must feed the deterioration factors: %v", a.Deterioration.Factors)
	}
}
