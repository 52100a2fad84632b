package tailor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tokens := Tokenize("We are looking for a Backend Engineer to build Go services in AWS.")
	assert.Contains(t, tokens, "aws")
	assert.Contains(t, tokens, "services")
	// Stop words and short tokens are dropped.
	assert.NotContains(t, tokens, "the")
	assert.NotContains(t, tokens, "to")
	assert.NotContains(t, tokens, "engineer")
}

func TestExtractKeywordsPrefersTechTerms(t *testing.T) {
	text := "Looking for experience with Kubernetes. Kubernetes and Docker deployments. " +
		"Banking Banking Banking Banking domain knowledge helpful."

	keywords := ExtractKeywords(text, 3)
	assert.Equal(t, []string{"kubernetes", "docker", "banking"}, keywords)
}

func TestExtractKeywordsDeterministic(t *testing.T) {
	text := "python react aws distributed systems observability"
	first := ExtractKeywords(text, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExtractKeywords(text, 5))
	}
}

func TestExtractKeywordsTopK(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda currency"
	assert.Len(t, ExtractKeywords(text, 4), 4)

	// Non-positive topK falls back to the default.
	assert.Len(t, ExtractKeywords(text, 0), 10)
}

func TestExtractKeywordsEmptyText(t *testing.T) {
	assert.Empty(t, ExtractKeywords("", 5))
}
