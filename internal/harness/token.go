package harness

import "github.com/google/uuid"

// TokenGenerator produces run tokens for scenarios that don't pin one.
type TokenGenerator interface {
	Generate() string
}

// RandomTokens generates a fresh random run token per call.
//
// Used for ad-hoc runs where trace provenance matters more than
// reproducibility. Scenarios compared against golden files should set
// run_token explicitly instead (or inject testutil.FixedTokens).
type RandomTokens struct{}

// Generate returns a new random run token.
func (RandomTokens) Generate() string {
	return "run-" + uuid.NewString()
}
