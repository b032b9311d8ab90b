package ews

import (
	"fmt"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

const maxSepsisProbability = 0.95

// QSOFA calculates the quick-SOFA sepsis screen: one point each for
// respiratory rate >=22, altered mentation, and systolic BP <=100.
func (e *Engine) QSOFA(v *vitals.VitalSigns) *QSOFAResult {
	r := &QSOFAResult{Breakdown: make(map[string]int, 3)}

	add := func(criterion string, met bool, detail string) {
		points := 0
		if met {
			points = 1
			r.TotalScore++
			r.Components = append(r.Components, detail)
		}
		r.Breakdown[criterion] = points
	}

	rr := v.RespRate()
	add("respiratoryRate", rr >= 22, fmt.Sprintf("respiratory rate %g/min (>=22)", rr))

	altered := v.AVPU() != vitals.ConsciousnessAlert || v.GCSValue() < 15
	add("mentation", altered, fmt.Sprintf("altered mentation (%s, GCS %d)", v.AVPU(), v.GCSValue()))

	lowBP := v.SystolicBP != nil && *v.SystolicBP <= 100
	detail := "systolic BP not measured"
	if v.SystolicBP != nil {
		detail = fmt.Sprintf("systolic BP %g mmHg (<=100)", *v.SystolicBP)
	}
	add("systolicBP", lowBP, detail)

	switch {
	case r.TotalScore >= 2:
		r.RiskLevel = RiskHigh
		r.SepsisProbability = 0.70 + float64(r.TotalScore-2)*0.15
		r.RequiresSepsisWorkup = true
		r.Response = "High sepsis risk: obtain blood cultures and lactate, begin sepsis bundle"
	case r.TotalScore == 1:
		r.RiskLevel = RiskModerate
		r.SepsisProbability = 0.35
		r.Response = "Moderate sepsis risk: increase monitoring frequency and reassess"
	default:
		r.RiskLevel = RiskLow
		r.SepsisProbability = 0.10
		r.Response = "Low sepsis risk: continue routine monitoring"
	}

	// Temperature and tachycardia adjust the probability estimate
	// regardless of the qSOFA tier.
	temp := v.Temp()
	if temp > 38.3 || temp < 36.0 {
		r.SepsisProbability = capProb(r.SepsisProbability + 0.10)
	}
	if v.HR() > 90 {
		r.SepsisProbability = capProb(r.SepsisProbability + 0.05)
	}

	return r
}

func capProb(p float64) float64 {
	if p > maxSepsisProbability {
		return maxSepsisProbability
	}
	return p
}
