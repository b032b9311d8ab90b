// Package vitals holds the patient-facing data model for the early-warning
// service: registered patients, per-encounter risk context, and time-stamped
// vital-sign readings. Scoring itself lives in the ews package; this package
// is the patient-data provider it consumes.
package vitals

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Consciousness is the AVPU scale.
type Consciousness string

const (
	ConsciousnessAlert        Consciousness = "alert"
	ConsciousnessVoice        Consciousness = "voice"
	ConsciousnessPain         Consciousness = "pain"
	ConsciousnessUnresponsive Consciousness = "unresponsive"
)

func (c Consciousness) Valid() bool {
	switch c {
	case ConsciousnessAlert, ConsciousnessVoice, ConsciousnessPain, ConsciousnessUnresponsive:
		return true
	}
	return false
}

// MobilityAid describes how the patient gets around.
type MobilityAid string

const (
	MobilityNone       MobilityAid = "none"
	MobilityWalker     MobilityAid = "walker"
	MobilityCane       MobilityAid = "cane"
	MobilityCrutches   MobilityAid = "crutches"
	MobilityWheelchair MobilityAid = "wheelchair"
	MobilityBedbound   MobilityAid = "bedbound"
	// MobilityFurniture means the patient steadies themselves on furniture
	// to walk, the highest-risk ambulation pattern on the Morse scale.
	MobilityFurniture MobilityAid = "furniture"
)

func (m MobilityAid) Valid() bool {
	switch m {
	case MobilityNone, MobilityWalker, MobilityCane, MobilityCrutches,
		MobilityWheelchair, MobilityBedbound, MobilityFurniture:
		return true
	}
	return false
}

// Gait describes observed walking quality.
type Gait string

const (
	GaitNormal   Gait = "normal"
	GaitImpaired Gait = "impaired"
	GaitWeak     Gait = "weak"
	GaitUnsteady Gait = "unsteady"
	GaitUnknown  Gait = "unknown"
)

func (g Gait) Valid() bool {
	switch g {
	case GaitNormal, GaitImpaired, GaitWeak, GaitUnsteady, GaitUnknown:
		return true
	}
	return false
}

// MentalStatus describes orientation.
type MentalStatus string

const (
	MentalOriented    MentalStatus = "oriented"
	MentalConfused    MentalStatus = "confused"
	MentalDisoriented MentalStatus = "disoriented"
	MentalImpaired    MentalStatus = "impaired"
)

func (m MentalStatus) Valid() bool {
	switch m {
	case MentalOriented, MentalConfused, MentalDisoriented, MentalImpaired:
		return true
	}
	return false
}

// Defaults applied to missing vital-sign fields. A partial reading must
// never fail scoring; absent values are treated as normal.
const (
	DefaultRespiratoryRate  = 16.0
	DefaultOxygenSaturation = 98.0
	DefaultTemperature      = 37.0
	DefaultHeartRate        = 80.0
	DefaultGCS              = 15
)

// VitalSigns is one snapshot of physiological measurements. Optional numeric
// fields are pointers so that "not measured" is distinguishable from a real
// zero; accessor methods apply the documented defaults. Blood pressure has
// no default: an absent reading contributes nothing to any score.
type VitalSigns struct {
	ID                 uuid.UUID     `json:"id"`
	PatientID          uuid.UUID     `json:"patientId"`
	RespiratoryRate    *float64      `json:"respiratoryRate,omitempty"`
	OxygenSaturation   *float64      `json:"oxygenSaturation,omitempty"`
	SupplementalOxygen bool          `json:"supplementalOxygen"`
	IsHypercapnic      bool          `json:"isHypercapnic"`
	Temperature        *float64      `json:"temperature,omitempty"`
	SystolicBP         *float64      `json:"systolicBP,omitempty"`
	DiastolicBP        *float64      `json:"diastolicBP,omitempty"`
	HeartRate          *float64      `json:"heartRate,omitempty"`
	Consciousness      Consciousness `json:"consciousness,omitempty"`
	GCS                *int          `json:"gcs,omitempty"`
	Timestamp          time.Time     `json:"timestamp"`
}

func valueOr(p *float64, def float64) float64 {
	if p != nil {
		return *p
	}
	return def
}

// RespRate returns the respiratory rate, defaulting to 16 breaths/min.
func (v *VitalSigns) RespRate() float64 { return valueOr(v.RespiratoryRate, DefaultRespiratoryRate) }

// SpO2 returns the oxygen saturation, defaulting to 98%.
func (v *VitalSigns) SpO2() float64 { return valueOr(v.OxygenSaturation, DefaultOxygenSaturation) }

// Temp returns the temperature, defaulting to 37.0 C.
func (v *VitalSigns) Temp() float64 { return valueOr(v.Temperature, DefaultTemperature) }

// HR returns the heart rate, defaulting to 80 bpm.
func (v *VitalSigns) HR() float64 { return valueOr(v.HeartRate, DefaultHeartRate) }

// AVPU returns the consciousness level, defaulting to alert.
func (v *VitalSigns) AVPU() Consciousness {
	if v.Consciousness == "" {
		return ConsciousnessAlert
	}
	return v.Consciousness
}

// GCSValue returns the Glasgow Coma Scale score, defaulting to 15.
func (v *VitalSigns) GCSValue() int {
	if v.GCS != nil {
		return *v.GCS
	}
	return DefaultGCS
}

// PatientContext holds the relatively static per-encounter risk facts used
// by the fall-risk scorer and deterioration predictor.
type PatientContext struct {
	PatientID           uuid.UUID    `json:"patientId"`
	Age                 int          `json:"age"`
	ChronicConditions   []string     `json:"chronicConditions,omitempty"`
	Medications         []string     `json:"medications,omitempty"`
	FallHistory         bool         `json:"fallHistory"`
	RecentFalls         int          `json:"recentFalls"`
	MobilityAid         MobilityAid  `json:"mobilityAid,omitempty"`
	HasIV               bool         `json:"hasIV"`
	Gait                Gait         `json:"gait,omitempty"`
	MentalStatus        MentalStatus `json:"mentalStatus,omitempty"`
	RecentRapidResponse bool         `json:"recentRapidResponse"`
	RecentICUTransfer   bool         `json:"recentICUTransfer"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// Patient is a minimal ward registry entry. Trend is an externally supplied
// flag ("worsening", "stable", ...) used by the ward overview when a patient
// has no recorded vitals yet.
type Patient struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	MRN       string    `json:"mrn"`
	Ward      string    `json:"ward,omitempty"`
	Bed       string    `json:"bed,omitempty"`
	Trend     string    `json:"trend,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// History is an ordered set of readings for one patient.
type History []*VitalSigns

// RecentFirst returns the history sorted most-recent-first. The receiver is
// not modified.
func (h History) RecentFirst() History {
	out := make(History, len(h))
	copy(out, h)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
