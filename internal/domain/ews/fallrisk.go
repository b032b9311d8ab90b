package ews

import (
	"fmt"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// Fall-risk tier thresholds and reporting limits.
const (
	fallRiskHighThreshold   = 51
	fallRiskMediumThreshold = 25
	maxFallRiskFactors      = 8
	maxFallInterventions    = 10
)

var fallInterventionsHigh = []string{
	"implement full fall-precaution protocol",
	"bed in lowest position with brakes locked",
	"bed/chair alarm activated",
	"hourly rounding with toileting offered",
	"non-slip footwear at all times",
	"patient within line of sight or 1:1 observation as staffing allows",
	"fall-risk signage at door and wristband",
	"physical therapy consult for mobility assessment",
}

var fallInterventionsMedium = []string{
	"fall-risk wristband",
	"call bell within reach, reinforce use before ambulating",
	"non-slip footwear at all times",
	"assist with ambulation and transfers",
	"clear path to bathroom, night light on",
	"review toileting schedule",
}

var fallInterventionsLow = []string{
	"orient patient to room and call bell",
	"keep personal items within reach",
	"maintain clutter-free environment",
}

// FallRisk calculates a Morse-style fall risk score from the current
// reading and the patient's risk context. The contributions are additive
// and independently evaluated; the total is uncapped.
func (e *Engine) FallRisk(v *vitals.VitalSigns, pc *vitals.PatientContext) *FallRiskResult {
	r := &FallRiskResult{Breakdown: make(map[string]int)}
	// A patient with no context on file scores only on the current reading;
	// the unknown-gait assumption applies only when an assessment exists.
	noContext := pc == nil
	if noContext {
		pc = &vitals.PatientContext{}
	}

	var extra []string // condition-specific interventions

	add := func(key string, points int, factor string) {
		if points == 0 {
			return
		}
		r.Breakdown[key] = points
		r.TotalScore += points
		r.Factors = append(r.Factors, fmt.Sprintf("%s (+%d)", factor, points))
	}

	if pc.FallHistory || pc.RecentFalls > 0 {
		add("fallHistory", 25, "history of falls")
		extra = append(extra, "post-fall huddle review of prior falls")
	}

	if len(pc.ChronicConditions) >= 2 {
		add("chronicConditions", 15, fmt.Sprintf("%d chronic conditions", len(pc.ChronicConditions)))
	}

	switch pc.MobilityAid {
	case vitals.MobilityWalker, vitals.MobilityCane, vitals.MobilityCrutches:
		add("mobilityAid", 15, fmt.Sprintf("uses %s", pc.MobilityAid))
	case vitals.MobilityFurniture:
		add("mobilityAid", 30, "steadies on furniture to walk")
		extra = append(extra, "keep frequently used items at bedside")
	}

	if pc.HasIV {
		add("iv", 20, "IV access in place")
		extra = append(extra, "secure IV lines before ambulating")
	}

	switch pc.Gait {
	case vitals.GaitImpaired, vitals.GaitWeak, vitals.GaitUnsteady:
		add("gait", 20, fmt.Sprintf("%s gait", pc.Gait))
	case vitals.GaitNormal:
		// no contribution
	default:
		// Unknown gait assumes mild impairment rather than none.
		if !noContext {
			add("gait", 10, "gait not assessed")
			extra = append(extra, "complete gait assessment")
		}
	}

	if v.AVPU() != vitals.ConsciousnessAlert ||
		pc.MentalStatus == vitals.MentalConfused ||
		pc.MentalStatus == vitals.MentalDisoriented ||
		pc.MentalStatus == vitals.MentalImpaired {
		add("mentalStatus", 15, "altered mental status")
		extra = append(extra, "frequent reorientation")
	}

	switch {
	case pc.Age >= 85:
		add("age", 20, fmt.Sprintf("age %d", pc.Age))
	case pc.Age >= 75:
		add("age", 15, fmt.Sprintf("age %d", pc.Age))
	case pc.Age >= 65:
		add("age", 10, fmt.Sprintf("age %d", pc.Age))
	}

	medPoints := 0
	matched := 0
	for _, med := range pc.Medications {
		if matchesAny(med, e.cfg.FallRiskMedications) {
			medPoints += 10
			matched++
		}
	}
	if medPoints > 0 {
		add("medications", medPoints, fmt.Sprintf("%d fall-risk medication(s)", matched))
		extra = append(extra, "pharmacy review of fall-risk medications")
	}

	if v.SystolicBP != nil && *v.SystolicBP < 100 {
		add("orthostatic", 10, fmt.Sprintf("systolic BP %g mmHg", *v.SystolicBP))
		extra = append(extra, "orthostatic blood pressure checks, rise slowly")
	}

	var base []string
	switch {
	case r.TotalScore >= fallRiskHighThreshold:
		r.RiskLevel = RiskHigh
		base = fallInterventionsHigh
	case r.TotalScore >= fallRiskMediumThreshold:
		r.RiskLevel = RiskMedium
		base = fallInterventionsMedium
	default:
		r.RiskLevel = RiskLow
		base = fallInterventionsLow
	}
	r.RequiresFallProtocol = r.TotalScore >= fallRiskMediumThreshold

	r.Interventions = dedupeTruncate(append(append([]string{}, base...), extra...), maxFallInterventions)
	if len(r.Factors) > maxFallRiskFactors {
		r.Factors = r.Factors[:maxFallRiskFactors]
	}

	return r
}

// dedupeTruncate removes duplicates preserving first-seen order and caps
// the result at max entries.
func dedupeTruncate(items []string, max int) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
