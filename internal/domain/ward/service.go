package ward

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/wardwatch/wardwatch/internal/domain/ews"
	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

// TrendWorsening is the externally supplied flag that marks an unscored
// patient as needing attention.
const TrendWorsening = "worsening"

// historyDepth matches the assessment service: enough readings for the
// trend analyzer's 10-sample window with slack for partial measurements.
const historyDepth = 20

// Service builds the ward overview. Scoring is pure and per-patient, so the
// fan-out runs one goroutine per patient and sorts deterministically after
// gathering.
type Service struct {
	engine       *ews.Engine
	patients     vitals.PatientRepository
	vitals       vitals.VitalsRepository
	contexts     vitals.ContextRepository
	overdueAfter time.Duration
	logger       zerolog.Logger
}

func NewService(engine *ews.Engine, patients vitals.PatientRepository, vitalsRepo vitals.VitalsRepository, contexts vitals.ContextRepository, overdueAfter time.Duration, logger zerolog.Logger) *Service {
	return &Service{
		engine:       engine,
		patients:     patients,
		vitals:       vitalsRepo,
		contexts:     contexts,
		overdueAfter: overdueAfter,
		logger:       logger,
	}
}

// Overview assesses every active patient and aggregates the results.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	active, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active patients: %w", err)
	}

	now := time.Now().UTC()
	statuses := make([]PatientStatus, len(active))
	alertLists := make([][]ews.Alert, len(active))

	var wg sync.WaitGroup
	for i, p := range active {
		wg.Add(1)
		go func(i int, p *vitals.Patient) {
			defer wg.Done()
			statuses[i], alertLists[i] = s.assessOne(ctx, p, now)
		}(i, p)
	}
	wg.Wait()

	ov := &Overview{
		GeneratedAt:   now,
		TotalPatients: len(active),
		Patients:      statuses,
	}
	for i := range statuses {
		st := &statuses[i]
		if st.HasVitals {
			ov.AssessedPatients++
			switch st.RiskLevel {
			case ews.RiskCritical:
				ov.CriticalCount++
			case ews.RiskHigh:
				ov.HighCount++
			case ews.RiskMedium, ews.RiskModerate:
				ov.MediumCount++
			default:
				ov.LowCount++
			}
			if st.SepsisRisk {
				ov.SepsisRiskCount++
			}
			if st.HighFallRisk {
				ov.HighFallRiskCount++
			}
		}
		if st.VitalsOverdue {
			ov.OverdueVitalsCount++
		}
		if st.Trend == TrendWorsening {
			ov.WorseningCount++
		}
		ov.Alerts = append(ov.Alerts, alertLists[i]...)
	}

	// Worst first; ties broken by probability, then name for stable display.
	sort.SliceStable(ov.Patients, func(a, b int) bool {
		pa, pb := ov.Patients[a], ov.Patients[b]
		if ra, rb := pa.RiskLevel.Rank(), pb.RiskLevel.Rank(); ra != rb {
			return ra > rb
		}
		if pa.DeteriorationProbability != pb.DeteriorationProbability {
			return pa.DeteriorationProbability > pb.DeteriorationProbability
		}
		return pa.Name < pb.Name
	})
	sort.SliceStable(ov.Alerts, func(a, b int) bool {
		if ra, rb := ov.Alerts[a].Severity.Rank(), ov.Alerts[b].Severity.Rank(); ra != rb {
			return ra > rb
		}
		return ov.Alerts[a].Score > ov.Alerts[b].Score
	})

	return ov, nil
}

// assessOne scores a single patient. Data-access failures degrade that one
// row to unscored rather than failing the whole overview.
func (s *Service) assessOne(ctx context.Context, p *vitals.Patient, now time.Time) (PatientStatus, []ews.Alert) {
	st := PatientStatus{
		PatientID:     p.ID,
		Name:          p.Name,
		Ward:          p.Ward,
		Bed:           p.Bed,
		Trend:         p.Trend,
		VitalsOverdue: true,
	}

	history, err := s.vitals.History(ctx, p.ID, historyDepth)
	if err != nil {
		s.logger.Warn().Err(err).Stringer("patient_id", p.ID).Msg("overview: vitals unavailable")
		return st, nil
	}
	if len(history) == 0 {
		return st, nil
	}

	pc, err := s.contexts.GetByPatient(ctx, p.ID)
	if err != nil && !errors.Is(err, vitals.ErrNotFound) {
		s.logger.Warn().Err(err).Stringer("patient_id", p.ID).Msg("overview: context unavailable")
	}

	latest := history.RecentFirst()[0]
	a := s.engine.Assess(latest, history, pc)

	st.HasVitals = true
	ts := latest.Timestamp
	st.LastReadingAt = &ts
	st.VitalsOverdue = now.Sub(ts) > s.overdueAfter
	st.NEWS2Score = a.NEWS2.TotalScore
	st.RiskLevel = a.Deterioration.RiskLevel
	st.DeteriorationProbability = a.Deterioration.Probability
	st.SepsisRisk = a.QSOFA.TotalScore >= 2
	st.HighFallRisk = a.FallRisk.RiskLevel == ews.RiskHigh
	st.EscalationRequired = a.EscalationRequired
	return st, a.Alerts
}
