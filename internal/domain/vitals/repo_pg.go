package vitals

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `id, name, mrn, ward, bed, trend, active, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.MRN, &p.Ward, &p.Bed, &p.Trend, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient (id, name, mrn, ward, bed, trend, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.MRN, p.Ward, p.Bed, p.Trend, p.Active)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patient WHERE id = $1`, id))
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *patientRepoPG) ListActive(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+patientCols+` FROM patient WHERE active ORDER BY ward, bed`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// =========== PatientContext Repository ===========

type contextRepoPG struct{ pool *pgxpool.Pool }

func NewContextRepoPG(pool *pgxpool.Pool) ContextRepository {
	return &contextRepoPG{pool: pool}
}

const contextCols = `patient_id, age, chronic_conditions, medications, fall_history, recent_falls,
	mobility_aid, has_iv, gait, mental_status, recent_rapid_response, recent_icu_transfer, updated_at`

func scanContext(row pgx.Row) (*PatientContext, error) {
	var pc PatientContext
	err := row.Scan(&pc.PatientID, &pc.Age, &pc.ChronicConditions, &pc.Medications,
		&pc.FallHistory, &pc.RecentFalls, &pc.MobilityAid, &pc.HasIV, &pc.Gait,
		&pc.MentalStatus, &pc.RecentRapidResponse, &pc.RecentICUTransfer, &pc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &pc, err
}

func (r *contextRepoPG) Upsert(ctx context.Context, pc *PatientContext) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patient_context (patient_id, age, chronic_conditions, medications, fall_history,
			recent_falls, mobility_aid, has_iv, gait, mental_status, recent_rapid_response, recent_icu_transfer)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (patient_id) DO UPDATE SET
			age=$2, chronic_conditions=$3, medications=$4, fall_history=$5, recent_falls=$6,
			mobility_aid=$7, has_iv=$8, gait=$9, mental_status=$10,
			recent_rapid_response=$11, recent_icu_transfer=$12, updated_at=NOW()`,
		pc.PatientID, pc.Age, pc.ChronicConditions, pc.Medications, pc.FallHistory,
		pc.RecentFalls, pc.MobilityAid, pc.HasIV, pc.Gait, pc.MentalStatus,
		pc.RecentRapidResponse, pc.RecentICUTransfer)
	return err
}

func (r *contextRepoPG) GetByPatient(ctx context.Context, patientID uuid.UUID) (*PatientContext, error) {
	return scanContext(r.pool.QueryRow(ctx, `SELECT `+contextCols+` FROM patient_context WHERE patient_id = $1`, patientID))
}

// =========== VitalSigns Repository ===========

type vitalsRepoPG struct{ pool *pgxpool.Pool }

func NewVitalsRepoPG(pool *pgxpool.Pool) VitalsRepository {
	return &vitalsRepoPG{pool: pool}
}

const vitalsCols = `id, patient_id, respiratory_rate, oxygen_saturation, supplemental_oxygen,
	is_hypercapnic, temperature, systolic_bp, diastolic_bp, heart_rate, consciousness, gcs, taken_at`

func scanVitals(row pgx.Row) (*VitalSigns, error) {
	var v VitalSigns
	var consciousness *string
	err := row.Scan(&v.ID, &v.PatientID, &v.RespiratoryRate, &v.OxygenSaturation,
		&v.SupplementalOxygen, &v.IsHypercapnic, &v.Temperature, &v.SystolicBP,
		&v.DiastolicBP, &v.HeartRate, &consciousness, &v.GCS, &v.Timestamp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if consciousness != nil {
		v.Consciousness = Consciousness(*consciousness)
	}
	return &v, err
}

func (r *vitalsRepoPG) Create(ctx context.Context, v *VitalSigns) error {
	v.ID = uuid.New()
	var consciousness *string
	if v.Consciousness != "" {
		s := string(v.Consciousness)
		consciousness = &s
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO vital_signs (id, patient_id, respiratory_rate, oxygen_saturation, supplemental_oxygen,
			is_hypercapnic, temperature, systolic_bp, diastolic_bp, heart_rate, consciousness, gcs, taken_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		v.ID, v.PatientID, v.RespiratoryRate, v.OxygenSaturation, v.SupplementalOxygen,
		v.IsHypercapnic, v.Temperature, v.SystolicBP, v.DiastolicBP, v.HeartRate,
		consciousness, v.GCS, v.Timestamp)
	return err
}

func (r *vitalsRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*VitalSigns, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vital_signs WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+vitalsCols+` FROM vital_signs
		WHERE patient_id = $1 ORDER BY taken_at DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*VitalSigns
	for rows.Next() {
		v, err := scanVitals(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *vitalsRepoPG) History(ctx context.Context, patientID uuid.UUID, max int) (History, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vitalsCols+` FROM vital_signs
		WHERE patient_id = $1 ORDER BY taken_at DESC LIMIT $2`, patientID, max)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var hist History
	for rows.Next() {
		v, err := scanVitals(rows)
		if err != nil {
			return nil, err
		}
		hist = append(hist, v)
	}
	return hist, rows.Err()
}

func (r *vitalsRepoPG) Latest(ctx context.Context, patientID uuid.UUID) (*VitalSigns, error) {
	return scanVitals(r.pool.QueryRow(ctx, `SELECT `+vitalsCols+` FROM vital_signs
		WHERE patient_id = $1 ORDER BY taken_at DESC LIMIT 1`, patientID))
}
