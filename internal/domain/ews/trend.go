package ews

import (
	"fmt"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// Trend analysis settings.
const (
	trendMaxSamples     = 10
	trendStableBand     = 2.0 // |rateOfChange| below this is "stable"
	trendMinimumSamples = 2
)

// trendParam describes how one vital-sign parameter is extracted and when
// its trend is clinically concerning.
type trendParam struct {
	name    string
	extract func(*vitals.VitalSigns) *float64
	// concern evaluates the fitted trend; reason is reported when true.
	concern func(t *ParameterTrend) (bool, string)
}

var trendParams = []trendParam{
	{
		name:    paramRespRate,
		extract: func(v *vitals.VitalSigns) *float64 { return v.RespiratoryRate },
		concern: func(t *ParameterTrend) (bool, string) {
			if t.Direction == "increasing" && abs(t.RateOfChange) > 5 {
				return true, fmt.Sprintf("respiratory rate rising %.1f%% per reading", abs(t.RateOfChange))
			}
			return false, ""
		},
	},
	{
		name:    paramSpO2,
		extract: func(v *vitals.VitalSigns) *float64 { return v.OxygenSaturation },
		concern: func(t *ParameterTrend) (bool, string) {
			if t.Direction == "decreasing" && abs(t.RateOfChange) > 3 {
				return true, fmt.Sprintf("SpO2 declining %.1f%% per reading", abs(t.RateOfChange))
			}
			return false, ""
		},
	},
	{
		name:    paramTemperature,
		extract: func(v *vitals.VitalSigns) *float64 { return v.Temperature },
		concern: func(t *ParameterTrend) (bool, string) {
			if t.Direction == "increasing" && t.Current > 38.0 {
				return true, fmt.Sprintf("temperature rising, currently %.1f°C", t.Current)
			}
			return false, ""
		},
	},
	{
		name:    paramSystolicBP,
		extract: func(v *vitals.VitalSigns) *float64 { return v.SystolicBP },
		concern: func(t *ParameterTrend) (bool, string) {
			if t.Direction == "decreasing" && abs(t.RateOfChange) > 5 {
				return true, fmt.Sprintf("systolic BP falling %.1f%% per reading", abs(t.RateOfChange))
			}
			return false, ""
		},
	},
	{
		name:    paramDiastolicBP,
		extract: func(v *vitals.VitalSigns) *float64 { return v.DiastolicBP },
		concern: func(t *ParameterTrend) (bool, string) { return false, "" },
	},
	{
		name:    paramHeartRate,
		extract: func(v *vitals.VitalSigns) *float64 { return v.HeartRate },
		concern: func(t *ParameterTrend) (bool, string) {
			if t.Direction == "increasing" && abs(t.RateOfChange) > 5 {
				return true, fmt.Sprintf("heart rate rising %.1f%% per reading", abs(t.RateOfChange))
			}
			return false, ""
		},
	},
}

// Trends fits a per-parameter linear trend over a vitals history. Fewer
// than two readings yields HasEnoughData=false rather than an error.
//
// Sign convention: the sampled values are put in chronological order before
// the least-squares fit, so a positive slope (and positive RateOfChange)
// always means the value is rising over time.
func (e *Engine) Trends(history vitals.History) *TrendResult {
	if len(history) < trendMinimumSamples {
		return &TrendResult{HasEnoughData: false}
	}

	recent := history.RecentFirst()
	result := &TrendResult{
		HasEnoughData: true,
		Parameters:    make(map[string]*ParameterTrend, len(trendParams)),
	}

	for _, p := range trendParams {
		// Collect up to the last N readings that actually measured this
		// parameter; values[0] is the most recent.
		var values []float64
		for _, v := range recent {
			if val := p.extract(v); val != nil {
				values = append(values, *val)
				if len(values) == trendMaxSamples {
					break
				}
			}
		}
		if len(values) < trendMinimumSamples {
			continue
		}

		t := fitTrend(p.name, values)
		if concerning, reason := p.concern(t); concerning {
			t.IsConcerning = true
			result.OverallConcern = true
			result.Concerns = append(result.Concerns, reason)
		}
		result.Parameters[p.name] = t
	}

	return result
}

// fitTrend computes summary statistics and a first-degree least-squares fit
// for one parameter. values arrive most-recent-first and are reversed into
// chronological order for the regression.
func fitTrend(name string, values []float64) *ParameterTrend {
	n := len(values)
	chron := make([]float64, n)
	for i, v := range values {
		chron[n-1-i] = v
	}

	min, max, sum := chron[0], chron[0], 0.0
	for _, v := range chron {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(n)

	slope := leastSquaresSlope(chron)
	rate := 0.0
	if mean != 0 {
		rate = slope / mean * 100
	}

	direction := "stable"
	if abs(rate) >= trendStableBand {
		if rate > 0 {
			direction = "increasing"
		} else {
			direction = "decreasing"
		}
	}

	return &ParameterTrend{
		Parameter:    name,
		Current:      values[0],
		Previous:     values[1],
		Min:          min,
		Max:          max,
		Mean:         mean,
		Direction:    direction,
		RateOfChange: rate,
		Samples:      n,
	}
}

// leastSquaresSlope fits y = a + b*x against x = 0..n-1 and returns b.
func leastSquaresSlope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
