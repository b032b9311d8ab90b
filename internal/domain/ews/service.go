package ews

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
	"github.com/wardwatch/wardwatch/internal/platform/advisory"
)

// historyDepth is how many stored readings are loaded for trend analysis.
// The analyzer itself uses at most 10 samples per parameter; loading a few
// more covers readings that skipped some measurements.
const historyDepth = 20

// Significance thresholds above which an advisory explanation is requested.
const (
	explainNEWS2Min         = 3
	explainQSOFAMin         = 1
	explainDeteriorationMin = 0.3
)

// Service runs assessments against stored patient data and attaches
// optional advisory narratives. Scoring itself stays in the Engine; the
// service owns data access and the advisory boundary.
type Service struct {
	engine   *Engine
	vitals   vitals.VitalsRepository
	contexts vitals.ContextRepository
	advisor  advisory.Advisor
	logger   zerolog.Logger
}

func NewService(engine *Engine, vitalsRepo vitals.VitalsRepository, contexts vitals.ContextRepository, advisor advisory.Advisor, logger zerolog.Logger) *Service {
	if advisor == nil {
		advisor = advisory.Noop{}
	}
	return &Service{
		engine:   engine,
		vitals:   vitalsRepo,
		contexts: contexts,
		advisor:  advisor,
		logger:   logger,
	}
}

// Engine exposes the pure scoring engine for direct snapshot scoring.
func (s *Service) Engine() *Engine { return s.engine }

// AssessPatient runs the comprehensive assessment against the patient's
// stored latest reading, history, and context.
func (s *Service) AssessPatient(ctx context.Context, patientID uuid.UUID) (*Assessment, error) {
	history, err := s.vitals.History(ctx, patientID, historyDepth)
	if err != nil {
		return nil, fmt.Errorf("load vitals history: %w", err)
	}
	if len(history) == 0 {
		return nil, vitals.ErrNotFound
	}

	pc, err := s.contexts.GetByPatient(ctx, patientID)
	if err != nil && !errors.Is(err, vitals.ErrNotFound) {
		return nil, fmt.Errorf("load patient context: %w", err)
	}

	latest := history.RecentFirst()[0]
	a := s.engine.Assess(latest, history, pc)
	a.PatientID = patientID
	s.attachExplanations(ctx, a)
	return a, nil
}

// TrendsForPatient runs trend analysis over the patient's stored history.
func (s *Service) TrendsForPatient(ctx context.Context, patientID uuid.UUID) (*TrendResult, error) {
	history, err := s.vitals.History(ctx, patientID, historyDepth)
	if err != nil {
		return nil, fmt.Errorf("load vitals history: %w", err)
	}
	return s.engine.Trends(history), nil
}

// attachExplanations asks the advisor for a narrative on each significant
// sub-score. It runs only after all numbers are final; failures are logged
// and leave the field absent. The rule-based result is always authoritative.
func (s *Service) attachExplanations(ctx context.Context, a *Assessment) {
	if !s.advisor.Available() {
		return
	}

	explain := func(key, prompt string) {
		text, err := s.advisor.Explain(ctx, prompt)
		if err != nil {
			s.logger.Warn().Err(err).Str("score", key).Msg("advisory explanation unavailable")
			return
		}
		if text == "" {
			return
		}
		if a.Explanations == nil {
			a.Explanations = make(map[string]string)
		}
		a.Explanations[key] = text
	}

	if a.NEWS2.TotalScore >= explainNEWS2Min {
		explain("news2", fmt.Sprintf(
			"Explain for a ward nurse: NEWS2 score %d (%s). Components: %v.",
			a.NEWS2.TotalScore, a.NEWS2.RiskLevel, a.NEWS2.Components))
	}
	if a.QSOFA.TotalScore >= explainQSOFAMin {
		explain("qsofa", fmt.Sprintf(
			"Explain for a ward nurse: qSOFA %d/3, sepsis probability %.2f. Criteria met: %v.",
			a.QSOFA.TotalScore, a.QSOFA.SepsisProbability, a.QSOFA.Components))
	}
	if a.Deterioration.Probability >= explainDeteriorationMin {
		explain("deterioration", fmt.Sprintf(
			"Explain for a ward nurse: deterioration probability %.2f (%s), window %s.",
			a.Deterioration.Probability, a.Deterioration.RiskLevel, a.Deterioration.TimeWindow))
	}
}
