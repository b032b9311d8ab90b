package vitals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service validates and stores patients, context, and readings. Range checks
// live here as a boundary concern; the scoring core never validates input.
type Service struct {
	patients PatientRepository
	contexts ContextRepository
	vitals   VitalsRepository
}

func NewService(patients PatientRepository, contexts ContextRepository, vitals VitalsRepository) *Service {
	return &Service{patients: patients, contexts: contexts, vitals: vitals}
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.MRN == "" {
		return fmt.Errorf("mrn is required")
	}
	p.Active = true
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

func (s *Service) UpsertContext(ctx context.Context, pc *PatientContext) error {
	if pc.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if pc.Age < 0 || pc.Age > 130 {
		return fmt.Errorf("age out of range: %d", pc.Age)
	}
	if pc.RecentFalls < 0 {
		return fmt.Errorf("recentFalls cannot be negative")
	}
	if pc.MobilityAid != "" && !pc.MobilityAid.Valid() {
		return fmt.Errorf("invalid mobilityAid: %s", pc.MobilityAid)
	}
	if pc.Gait != "" && !pc.Gait.Valid() {
		return fmt.Errorf("invalid gait: %s", pc.Gait)
	}
	if pc.MentalStatus != "" && !pc.MentalStatus.Valid() {
		return fmt.Errorf("invalid mentalStatus: %s", pc.MentalStatus)
	}
	return s.contexts.Upsert(ctx, pc)
}

func (s *Service) GetContext(ctx context.Context, patientID uuid.UUID) (*PatientContext, error) {
	return s.contexts.GetByPatient(ctx, patientID)
}

func (s *Service) RecordVitals(ctx context.Context, v *VitalSigns) error {
	if v.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if v.RespiratoryRate != nil && (*v.RespiratoryRate < 0 || *v.RespiratoryRate > 80) {
		return fmt.Errorf("respiratoryRate out of range: %g", *v.RespiratoryRate)
	}
	if v.OxygenSaturation != nil && (*v.OxygenSaturation < 0 || *v.OxygenSaturation > 100) {
		return fmt.Errorf("oxygenSaturation out of range: %g", *v.OxygenSaturation)
	}
	if v.Temperature != nil && (*v.Temperature < 25 || *v.Temperature > 45) {
		return fmt.Errorf("temperature out of range: %g", *v.Temperature)
	}
	if v.SystolicBP != nil && (*v.SystolicBP < 0 || *v.SystolicBP > 300) {
		return fmt.Errorf("systolicBP out of range: %g", *v.SystolicBP)
	}
	if v.DiastolicBP != nil && (*v.DiastolicBP < 0 || *v.DiastolicBP > 200) {
		return fmt.Errorf("diastolicBP out of range: %g", *v.DiastolicBP)
	}
	if v.HeartRate != nil && (*v.HeartRate < 0 || *v.HeartRate > 300) {
		return fmt.Errorf("heartRate out of range: %g", *v.HeartRate)
	}
	if v.GCS != nil && (*v.GCS < 3 || *v.GCS > 15) {
		return fmt.Errorf("gcs out of range: %d", *v.GCS)
	}
	if v.Consciousness != "" && !v.Consciousness.Valid() {
		return fmt.Errorf("invalid consciousness: %s", v.Consciousness)
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	return s.vitals.Create(ctx, v)
}

func (s *Service) ListVitals(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	return s.vitals.ListByPatient(ctx, patientID, limit, offset)
}
