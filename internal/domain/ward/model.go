// Package ward aggregates per-patient early-warning assessments into a
// single overview for a nursing station display.
package ward

import (
	"time"

	"github.com/google/uuid"

	"github.com/wardwatch/wardwatch/internal/domain/ews"
)

// PatientStatus is one row of the overview: identity plus the headline
// numbers of the patient's latest assessment. Patients with no recorded
// vitals appear with HasVitals=false and no scores.
type PatientStatus struct {
	PatientID     uuid.UUID  `json:"patientId"`
	Name          string     `json:"name"`
	Ward          string     `json:"ward,omitempty"`
	Bed           string     `json:"bed,omitempty"`
	HasVitals     bool       `json:"hasVitals"`
	LastReadingAt *time.Time `json:"lastReadingAt,omitempty"`
	// VitalsOverdue is set when the last reading is older than the
	// configured interval, or when no reading was ever taken.
	VitalsOverdue bool `json:"vitalsOverdue"`

	NEWS2Score               int           `json:"news2Score"`
	RiskLevel                ews.RiskLevel `json:"riskLevel,omitempty"`
	DeteriorationProbability float64       `json:"deteriorationProbability"`
	SepsisRisk               bool          `json:"sepsisRisk"`
	HighFallRisk             bool          `json:"highFallRisk"`
	EscalationRequired       bool          `json:"escalationRequired"`
	// Trend is the externally supplied flag carried on the patient record,
	// used when no vitals exist to score from.
	Trend string `json:"trend,omitempty"`
}

// Overview is the aggregated report across all active patients.
type Overview struct {
	GeneratedAt      time.Time `json:"generatedAt"`
	TotalPatients    int       `json:"totalPatients"`
	AssessedPatients int       `json:"assessedPatients"`

	CriticalCount int `json:"criticalCount"`
	HighCount     int `json:"highCount"`
	MediumCount   int `json:"mediumCount"`
	LowCount      int `json:"lowCount"`

	SepsisRiskCount    int `json:"sepsisRiskCount"`
	HighFallRiskCount  int `json:"highFallRiskCount"`
	OverdueVitalsCount int `json:"overdueVitalsCount"`
	// WorseningCount includes unscored patients whose external trend flag
	// says "worsening"; they need attention even without vitals on file.
	WorseningCount int `json:"worseningCount"`

	Patients []PatientStatus `json:"patients"`
	Alerts   []ews.Alert     `json:"alerts"`
}
