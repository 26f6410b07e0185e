package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash_Deterministic(t *testing.T) {
	h1 := Hash("tok-abc123", "pepper-1")
	h2 := Hash("tok-abc123", "pepper-1")
	assert.Equal(t, h1, h2)
	// sha256 hex = 64 chars
	assert.Len(t, h1, 64)
}

func TestHash_DifferentTokenDifferentDigest(t *testing.T) {
	h1 := Hash("tok-abc123", "pepper-1")
	h2 := Hash("tok-abc124", "pepper-1")
	assert.NotEqual(t, h1, h2)
}

func TestHash_DifferentPepperDifferentDigest(t *testing.T) {
	h1 := Hash("tok-abc123", "pepper-1")
	h2 := Hash("tok-abc123", "pepper-2")
	assert.NotEqual(t, h1, h2)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "tok-abc", Normalize("  tok-abc \n"))
	assert.Equal(t, "", Normalize("   "))
}
