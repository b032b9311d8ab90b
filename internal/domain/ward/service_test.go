package ward

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wardwatch/wardwatch/internal/domain/ews"
	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

type mockPatientRepo struct {
	active []*vitals.Patient
	err    error
}

func (m *mockPatientRepo) Create(_ context.Context, _ *vitals.Patient) error { return nil }

func (m *mockPatientRepo) GetByID(_ context.Context, _ uuid.UUID) (*vitals.Patient, error) {
	return nil, vitals.ErrNotFound
}

func (m *mockPatientRepo) List(_ context.Context, _, _ int) ([]*vitals.Patient, int, error) {
	return m.active, len(m.active), m.err
}

func (m *mockPatientRepo) ListActive(_ context.Context) ([]*vitals.Patient, error) {
	return m.active, m.err
}

type mockVitalsRepo struct {
	histories map[uuid.UUID]vitals.History
	err       error
}

func (m *mockVitalsRepo) Create(_ context.Context, _ *vitals.VitalSigns) error { return nil }

func (m *mockVitalsRepo) ListByPatient(_ context.Context, id uuid.UUID, _, _ int) ([]*vitals.VitalSigns, int, error) {
	h := m.histories[id]
	return h, len(h), nil
}

func (m *mockVitalsRepo) History(_ context.Context, id uuid.UUID, _ int) (vitals.History, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.histories[id], nil
}

func (m *mockVitalsRepo) Latest(_ context.Context, id uuid.UUID) (*vitals.VitalSigns, error) {
	h := m.histories[id]
	if len(h) == 0 {
		return nil, vitals.ErrNotFound
	}
	return h.RecentFirst()[0], nil
}

type mockContextRepo struct {
	contexts map[uuid.UUID]*vitals.PatientContext
}

func (m *mockContextRepo) Upsert(_ context.Context, _ *vitals.PatientContext) error { return nil }

func (m *mockContextRepo) GetByPatient(_ context.Context, id uuid.UUID) (*vitals.PatientContext, error) {
	if pc, ok := m.contexts[id]; ok {
		return pc, nil
	}
	return nil, vitals.ErrNotFound
}

func f(v float64) *float64 { return &v }

func reading(patientID uuid.UUID, age time.Duration, mutate func(*vitals.VitalSigns)) *vitals.VitalSigns {
	v := &vitals.VitalSigns{
		PatientID: patientID,
		Timestamp: time.Now().UTC().Add(-age),
	}
	if mutate != nil {
		mutate(v)
	}
	return v
}

func newTestService(patients []*vitals.Patient, histories map[uuid.UUID]vitals.History, contexts map[uuid.UUID]*vitals.PatientContext) *Service {
	return NewService(
		ews.NewDefaultEngine(),
		&mockPatientRepo{active: patients},
		&mockVitalsRepo{histories: histories},
		&mockContextRepo{contexts: contexts},
		4*time.Hour,
		zerolog.Nop(),
	)
}

func TestOverview_EmptyWard(t *testing.T) {
	ov, err := newTestService(nil, nil, nil).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.TotalPatients != 0 || ov.AssessedPatients != 0 || len(ov.Alerts) != 0 {
		t.Errorf("empty ward should be all zeroes: %+v", ov)
	}
}

func TestOverview_ListError(t *testing.T) {
	svc := NewService(ews.NewDefaultEngine(),
		&mockPatientRepo{err: errors.New("db down")},
		&mockVitalsRepo{}, &mockContextRepo{}, 4*time.Hour, zerolog.Nop())
	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatal("expected error when the patient list is unavailable")
	}
}

func TestOverview_BucketsAndCounts(t *testing.T) {
	critical := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	healthy := &vitals.Patient{ID: uuid.New(), Name: "Baker", Active: true}
	unscored := &vitals.Patient{ID: uuid.New(), Name: "Clark", Active: true, Trend: TrendWorsening}

	histories := map[uuid.UUID]vitals.History{
		critical.ID: {reading(critical.ID, 30*time.Minute, func(v *vitals.VitalSigns) {
			v.RespiratoryRate = f(30)
			v.OxygenSaturation = f(89)
			v.SystolicBP = f(85)
			v.HeartRate = f(135)
			v.Consciousness = vitals.ConsciousnessVoice
		})},
		healthy.ID: {reading(healthy.ID, time.Hour, nil)},
	}

	ov, err := newTestService([]*vitals.Patient{healthy, critical, unscored}, histories, nil).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ov.TotalPatients != 3 {
		t.Errorf("expected 3 total, got %d", ov.TotalPatients)
	}
	if ov.AssessedPatients != 2 {
		t.Errorf("expected 2 assessed, got %d", ov.AssessedPatients)
	}
	if ov.CriticalCount != 1 || ov.LowCount != 1 {
		t.Errorf("bucket counts wrong: %+v", ov)
	}
	if ov.SepsisRiskCount != 1 {
		t.Errorf("expected 1 sepsis-risk patient, got %d", ov.SepsisRiskCount)
	}
	if ov.WorseningCount != 1 {
		t.Errorf("worsening flag on the unscored patient must count, got %d", ov.WorseningCount)
	}
	// Unscored patient has no reading at all: overdue.
	if ov.OverdueVitalsCount != 1 {
		t.Errorf("expected 1 overdue, got %d", ov.OverdueVitalsCount)
	}

	// Worst patient first.
	if ov.Patients[0].Name != "Adams" {
		t.Errorf("expected Adams first, got %s", ov.Patients[0].Name)
	}
	if !ov.Patients[0].EscalationRequired {
		t.Error("critical patient must require escalation")
	}
}

func TestOverview_AlertsSortedBySeverityThenScore(t *testing.T) {
	critical := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	medium := &vitals.Patient{ID: uuid.New(), Name: "Baker", Active: true}

	histories := map[uuid.UUID]vitals.History{
		critical.ID: {reading(critical.ID, time.Hour, func(v *vitals.VitalSigns) {
			v.RespiratoryRate = f(30)
			v.OxygenSaturation = f(89)
			v.SystolicBP = f(85)
			v.HeartRate = f(135)
			v.Consciousness = vitals.ConsciousnessVoice
		})},
		medium.ID: {reading(medium.ID, time.Hour, func(v *vitals.VitalSigns) {
			v.RespiratoryRate = f(22)
			v.HeartRate = f(95)
		})},
	}

	ov, err := newTestService([]*vitals.Patient{medium, critical}, histories, nil).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ov.Alerts) < 2 {
		t.Fatalf("expected alerts from both patients, got %d", len(ov.Alerts))
	}
	for i := 1; i < len(ov.Alerts); i++ {
		prev, cur := ov.Alerts[i-1], ov.Alerts[i]
		if prev.Severity.Rank() < cur.Severity.Rank() {
			t.Fatalf("alerts out of severity order at %d: %v", i, ov.Alerts)
		}
		if prev.Severity.Rank() == cur.Severity.Rank() && prev.Score < cur.Score {
			t.Fatalf("alerts out of score order at %d: %v", i, ov.Alerts)
		}
	}
}

func TestOverview_OverdueVitals(t *testing.T) {
	stale := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	fresh := &vitals.Patient{ID: uuid.New(), Name: "Baker", Active: true}

	histories := map[uuid.UUID]vitals.History{
		stale.ID: {reading(stale.ID, 5*time.Hour, nil)},
		fresh.ID: {reading(fresh.ID, time.Hour, nil)},
	}

	ov, err := newTestService([]*vitals.Patient{stale, fresh}, histories, nil).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.OverdueVitalsCount != 1 {
		t.Errorf("expected 1 overdue patient, got %d", ov.OverdueVitalsCount)
	}
	for _, st := range ov.Patients {
		want := st.Name == "Adams"
		if st.VitalsOverdue != want {
			t.Errorf("%s: overdue=%v, want %v", st.Name, st.VitalsOverdue, want)
		}
	}
}

// A failing vitals lookup degrades that patient to unscored instead of
// failing the whole overview.
func TestOverview_PerPatientFailureIsSoft(t *testing.T) {
	p := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	svc := NewService(ews.NewDefaultEngine(),
		&mockPatientRepo{active: []*vitals.Patient{p}},
		&mockVitalsRepo{err: errors.New("timeout")},
		&mockContextRepo{}, 4*time.Hour, zerolog.Nop())

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("per-patient failure leaked: %v", err)
	}
	if ov.TotalPatients != 1 || ov.AssessedPatients != 0 {
		t.Errorf("expected 1 total / 0 assessed, got %d/%d", ov.TotalPatients, ov.AssessedPatients)
	}
}

func TestOverview_ContextFeedsFallRisk(t *testing.T) {
	p := &vitals.Patient{ID: uuid.New(), Name: "Adams", Active: true}
	histories := map[uuid.UUID]vitals.History{
		p.ID: {reading(p.ID, time.Hour, nil)},
	}
	contexts := map[uuid.UUID]*vitals.PatientContext{
		p.ID: {
			PatientID:   p.ID,
			Age:         90,
			FallHistory: true,
			MobilityAid: vitals.MobilityFurniture,
			Gait:        vitals.GaitImpaired,
		},
	}

	ov, err := newTestService([]*vitals.Patient{p}, histories, contexts).Overview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.HighFallRiskCount != 1 {
		t.Errorf("expected 1 high fall risk, got %d", ov.HighFallRiskCount)
	}
	if !ov.Patients[0].HighFallRisk {
		t.Error("patient row must carry the fall-risk flag")
	}
}
