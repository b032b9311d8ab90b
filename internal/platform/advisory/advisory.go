// Package advisory wraps the optional external text-generation service used
// to attach narrative explanations to assessment results. The capability is
// strictly advisory: callers must treat a missing or failed explanation as
// an absent field, never as an error.
package advisory

import "context"

// Advisor is the capability exposed to the scoring layer.
type Advisor interface {
	// Available reports whether the advisor is configured and usable.
	Available() bool
	// Explain submits a prompt and returns generated text. Implementations
	// must honour ctx deadlines and return an error rather than block.
	Explain(ctx context.Context, prompt string) (string, error)
}

// Noop is an Advisor that is never available. It is the default when no
// advisory endpoint is configured, and the standard substitute in tests.
type Noop struct{}

func (Noop) Available() bool { return false }

func (Noop) Explain(_ context.Context, _ string) (string, error) {
	return "", nil
}
