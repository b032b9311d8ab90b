package ews

import (
	"fmt"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// NEWS2 parameter names as they appear in result breakdowns.
const (
	paramRespRate      = "respiratoryRate"
	paramSpO2          = "oxygenSaturation"
	paramSupplementalO = "supplementalOxygen"
	paramTemperature   = "temperature"
	paramSystolicBP    = "systolicBP"
	paramDiastolicBP   = "diastolicBP"
	paramHeartRate     = "heartRate"
	paramConsciousness = "consciousness"
)

// NEWS2 calculates the National Early Warning Score 2 for one reading.
// Missing fields take their documented defaults, so the function is total.
func (e *Engine) NEWS2(v *vitals.VitalSigns) *NEWS2Result {
	r := &NEWS2Result{Breakdown: make(map[string]int, 8)}

	add := func(param string, points int, detail string) {
		r.Breakdown[param] = points
		r.TotalScore += points
		if points == 3 {
			r.HasExtremeScore = true
		}
		if points > 0 {
			r.Components = append(r.Components, fmt.Sprintf("%s: %s (+%d)", param, detail, points))
		}
	}

	rr := v.RespRate()
	add(paramRespRate, lookup(respRateBands, rr), fmt.Sprintf("%g/min", rr))

	spo2 := v.SpO2()
	spo2Bands := spO2Scale1Bands
	if v.IsHypercapnic {
		spo2Bands = spO2Scale2Bands
	}
	add(paramSpO2, lookup(spo2Bands, spo2), fmt.Sprintf("%g%%", spo2))

	o2Points := 0
	if v.SupplementalOxygen {
		o2Points = 2
	}
	add(paramSupplementalO, o2Points, "on oxygen therapy")

	temp := v.Temp()
	add(paramTemperature, lookup(temperatureBands, temp), fmt.Sprintf("%.1f°C", temp))

	// Blood pressure has no default: an unmeasured reading scores 0.
	bpPoints := 0
	bpDetail := "not measured"
	if v.SystolicBP != nil {
		bpPoints = lookup(systolicBPBands, *v.SystolicBP)
		bpDetail = fmt.Sprintf("%g mmHg", *v.SystolicBP)
	}
	add(paramSystolicBP, bpPoints, bpDetail)

	hr := v.HR()
	add(paramHeartRate, lookup(heartRateBands, hr), fmt.Sprintf("%g bpm", hr))

	avpuPoints := 0
	if v.AVPU() != vitals.ConsciousnessAlert {
		avpuPoints = 3
	}
	add(paramConsciousness, avpuPoints, string(v.AVPU()))

	switch {
	case r.TotalScore >= 7:
		r.RiskLevel = RiskCritical
		r.Response = "Continuous monitoring; urgent clinical review; consider transfer to ICU"
		r.ReassessIn = "continuously"
	case r.TotalScore >= 5 || r.HasExtremeScore:
		// A single severely deranged vital must flag HIGH even when the
		// total is low.
		r.RiskLevel = RiskHigh
		r.Response = "Monitoring at least hourly; urgent review by clinician within 30 minutes"
		r.ReassessIn = "1 hour"
	case r.TotalScore >= 3:
		r.RiskLevel = RiskMedium
		r.Response = "Monitoring every 4-6 hours; inform charge nurse"
		r.ReassessIn = "4 hours"
	default:
		r.RiskLevel = RiskLow
		r.Response = "Routine monitoring at least every 12 hours"
		r.ReassessIn = "12 hours"
	}

	return r
}
