package ews

import (
	"math"
	"testing"
	"time"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// spo2History builds a history whose SpO2 values are given most-recent-first.
func spo2History(values ...float64) vitals.History {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := make(vitals.History, len(values))
	for i, v := range values {
		val := v
		h[i] = &vitals.VitalSigns{
			OxygenSaturation: &val,
			Timestamp:        base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return h
}

func TestTrends_InsufficientData(t *testing.T) {
	e := NewDefaultEngine()
	if e.Trends(nil).HasEnoughData {
		t.Error("empty history must report HasEnoughData=false")
	}
	if e.Trends(spo2History(97)).HasEnoughData {
		t.Error("single reading must report HasEnoughData=false")
	}
	if !e.Trends(spo2History(97, 98)).HasEnoughData {
		t.Error("two readings are enough")
	}
}

// Sign convention: positive rateOfChange always means rising over time,
// regardless of the most-recent-first storage order.
func TestTrends_SignConvention(t *testing.T) {
	e := NewDefaultEngine()

	// Most recent 98, oldest 92: the value has been rising.
	rising := e.Trends(spo2History(98, 96, 94, 92)).Parameters["oxygenSaturation"]
	if rising == nil {
		t.Fatal("expected an SpO2 trend")
	}
	if rising.Direction != "increasing" || rising.RateOfChange <= 0 {
		t.Errorf("rising series: got direction=%s rate=%g", rising.Direction, rising.RateOfChange)
	}
	if rising.IsConcerning {
		t.Error("rising SpO2 is not concerning")
	}

	// Reversed: most recent 92, oldest 98: falling.
	falling := e.Trends(spo2History(92, 94, 96, 98)).Parameters["oxygenSaturation"]
	if falling.Direction != "decreasing" || falling.RateOfChange >= 0 {
		t.Errorf("falling series: got direction=%s rate=%g", falling.Direction, falling.RateOfChange)
	}
}

func TestTrends_StableBand(t *testing.T) {
	tr := NewDefaultEngine().Trends(spo2History(97, 97, 97, 97)).Parameters["oxygenSaturation"]
	if tr.Direction != "stable" {
		t.Errorf("flat series: got direction=%s", tr.Direction)
	}
	if tr.RateOfChange != 0 {
		t.Errorf("flat series: got rate=%g", tr.RateOfChange)
	}
	if tr.Min != 97 || tr.Max != 97 || tr.Mean != 97 {
		t.Errorf("flat series stats wrong: min=%g max=%g mean=%g", tr.Min, tr.Max, tr.Mean)
	}
}

func TestTrends_ConcerningSpO2Decline(t *testing.T) {
	// Chronological 98 -> 96 -> 92 -> 88: slope -3.4, mean 93.5,
	// rate about -3.6% per reading, beyond the -3% concern threshold.
	res := NewDefaultEngine().Trends(spo2History(88, 92, 96, 98))
	tr := res.Parameters["oxygenSaturation"]
	if tr == nil {
		t.Fatal("expected an SpO2 trend")
	}
	if math.Abs(tr.RateOfChange-(-3.636)) > 0.01 {
		t.Errorf("expected rate about -3.64, got %g", tr.RateOfChange)
	}
	if !tr.IsConcerning {
		t.Error("steep SpO2 decline must be concerning")
	}
	if !res.OverallConcern {
		t.Error("any concerning parameter sets OverallConcern")
	}
	if len(res.Concerns) == 0 {
		t.Error("concern reasons must be reported")
	}
}

func TestTrends_MissingParameterExcluded(t *testing.T) {
	// No reading ever measured blood pressure: no BP trend at all.
	res := NewDefaultEngine().Trends(spo2History(96, 97, 98))
	if _, ok := res.Parameters["systolicBP"]; ok {
		t.Error("unmeasured systolic BP must not produce a trend")
	}
	if _, ok := res.Parameters["diastolicBP"]; ok {
		t.Error("unmeasured diastolic BP must not produce a trend")
	}
	// Defaults still feed the always-present parameters? They do not:
	// trend extraction reads the raw pointers, not the defaulted accessors.
	if _, ok := res.Parameters["heartRate"]; ok {
		t.Error("unmeasured heart rate must not produce a trend")
	}
}

func TestTrends_SampleWindowCapped(t *testing.T) {
	values := make([]float64, 15)
	for i := range values {
		values[i] = 95 + float64(i%3)
	}
	tr := NewDefaultEngine().Trends(spo2History(values...)).Parameters["oxygenSaturation"]
	if tr.Samples != trendMaxSamples {
		t.Errorf("expected %d samples, got %d", trendMaxSamples, tr.Samples)
	}
}

func TestTrends_CurrentAndPrevious(t *testing.T) {
	tr := NewDefaultEngine().Trends(spo2History(91, 95, 99)).Parameters["oxygenSaturation"]
	if tr.Current != 91 || tr.Previous != 95 {
		t.Errorf("current=%g previous=%g, want 91/95", tr.Current, tr.Previous)
	}
	if tr.Min != 91 || tr.Max != 99 || tr.Mean != 95 {
		t.Errorf("stats min=%g max=%g mean=%g", tr.Min, tr.Max, tr.Mean)
	}
}

func TestTrends_RisingTemperatureConcern(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	temps := []float64{39.0, 38.2, 37.4, 36.6} // most recent first
	h := make(vitals.History, len(temps))
	for i, tv := range temps {
		val := tv
		h[i] = &vitals.VitalSigns{
			Temperature: &val,
			Timestamp:   base.Add(-time.Duration(i) * time.Hour),
		}
	}
	tr := NewDefaultEngine().Trends(h).Parameters["temperature"]
	if tr == nil {
		t.Fatal("expected a temperature trend")
	}
	if tr.Direction != "increasing" {
		t.Fatalf("expected increasing, got %s (rate %g)", tr.Direction, tr.RateOfChange)
	}
	if !tr.IsConcerning {
		t.Error("rising fever above 38.0 must be concerning")
	}
}

func TestLeastSquaresSlope(t *testing.T) {
	if got := leastSquaresSlope([]float64{1, 2, 3, 4}); math.Abs(got-1) > 1e-12 {
		t.Errorf("perfect unit slope: got %g", got)
	}
	if got := leastSquaresSlope([]float64{5, 5, 5}); got != 0 {
		t.Errorf("flat series: got %g", got)
	}
	if got := leastSquaresSlope([]float64{7}); got != 0 {
		t.Errorf("degenerate single point: got %g", got)
	}
}
