package ews

import "strings"

// Config carries the keyword tables the scorers match against free-text
// medication and condition lists. Injecting them as data keeps the fuzzy
// string matching out of the scoring logic and lets deployments extend the
// tables without code changes.
type Config struct {
	// FallRiskMedications are substrings that mark a medication as
	// fall-risk-increasing; each matching medication adds 10 points.
	FallRiskMedications []string
	// DeteriorationConditions are substrings that mark a chronic condition
	// as deterioration-relevant; each matching condition adds 0.05 to the
	// predicted probability.
	DeteriorationConditions []string
}

// DefaultConfig returns the curated keyword tables.
func DefaultConfig() Config {
	return Config{
		FallRiskMedications: []string{
			"sedative", "hypnotic", "opioid", "anticonvulsant",
			"antihypertensive", "diuretic", "benzodiazepine",
			"antidepressant", "antipsychotic",
		},
		DeteriorationConditions: []string{
			"heart failure", "copd", "ckd", "cancer", "diabetes", "sepsis",
		},
	}
}

// Engine evaluates all early-warning scores. It is stateless apart from its
// configuration and safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine returns an engine with the curated keyword tables.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}

// matchesAny reports whether the lowercased text contains any keyword.
func matchesAny(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
