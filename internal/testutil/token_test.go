package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTokens_AlwaysSameToken(t *testing.T) {
	gen := NewFixedTokens("run-00000000-0000-0000-0000-000000000001")

	first := gen.Generate()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, gen.Generate())
	}
	assert.Equal(t, "run-00000000-0000-0000-0000-000000000001", first)
}

func TestFixedTokens_EmptyFallsBackToDefault(t *testing.T) {
	gen := NewFixedTokens("")
	assert.Equal(t, "run-test-default", gen.Generate())
}
