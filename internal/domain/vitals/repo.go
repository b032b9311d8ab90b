package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a patient, context, or reading does not exist.
var ErrNotFound = errors.New("not found")

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListActive(ctx context.Context) ([]*Patient, error)
}

type ContextRepository interface {
	Upsert(ctx context.Context, pc *PatientContext) error
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*PatientContext, error)
}

type VitalsRepository interface {
	Create(ctx context.Context, v *VitalSigns) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error)
	// History returns up to max readings for the patient, most recent first.
	History(ctx context.Context, patientID uuid.UUID, max int) (History, error)
	Latest(ctx context.Context, patientID uuid.UUID) (*VitalSigns, error)
}
