package testutil

// FixedTokens satisfies harness.TokenGenerator with a constant run
// token, for scenarios that should snapshot identically across runs
// without pinning run_token in their YAML.
//
// Stateless and safe for concurrent use.
type FixedTokens struct {
	token string
}

// NewFixedTokens creates a generator that always returns token.
// An empty token falls back to "run-test-default".
func NewFixedTokens(token string) *FixedTokens {
	if token == "" {
		token = "run-test-default"
	}
	return &FixedTokens{token: token}
}

// Generate returns the fixed run token.
func (g *FixedTokens) Generate() string {
	return g.token
}
