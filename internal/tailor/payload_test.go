package tailor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPayload_FencedJSON(t *testing.T) {
	text := "Here is the tailored output:\n```json\n" +
		`{"keywords": ["go", "kubernetes"], "resume": {"name": "Jane"}}` +
		"\n```\nGood luck!"

	payload := ExtractPayload(text)
	require.NotNil(t, payload)
	assert.Equal(t, []string{"go", "kubernetes"}, payload.Keywords)
	assert.JSONEq(t, `{"name": "Jane"}`, string(payload.Resume))
}

func TestExtractPayload_BareJSON(t *testing.T) {
	payload := ExtractPayload(`{"keywords": ["python"], "resume": {"name": "Jane"}}`)
	require.NotNil(t, payload)
	assert.Equal(t, []string{"python"}, payload.Keywords)
}

func TestExtractPayload_KeywordsOnly(t *testing.T) {
	payload := ExtractPayload(`{"keywords": ["go", "grpc"]}`)
	require.NotNil(t, payload)
	assert.Equal(t, []string{"go", "grpc"}, payload.Keywords)
	// With no nested resume, the whole object stands in for it.
	assert.JSONEq(t, `{"keywords": ["go", "grpc"]}`, string(payload.Resume))
}

func TestExtractPayload_SurroundingProse(t *testing.T) {
	text := `The model rambled first. {"resume": {"name": "Jane"}} And rambled after.`
	payload := ExtractPayload(text)
	require.NotNil(t, payload)
	assert.JSONEq(t, `{"name": "Jane"}`, string(payload.Resume))
}

func TestExtractPayload_NoJSONReturnsNil(t *testing.T) {
	assert.Nil(t, ExtractPayload("I'm sorry, I cannot produce a resume for this posting."))
}

func TestExtractPayload_ObjectWithoutRequiredKeysReturnsNil(t *testing.T) {
	assert.Nil(t, ExtractPayload(`{"summary": "looks great", "score": 10}`))
}

func TestExtractPayload_MalformedJSONReturnsNil(t *testing.T) {
	assert.Nil(t, ExtractPayload("```json\n{\"keywords\": [\"go\",\n```"))
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fence with language id", "```javascript\n{\"a\": 1}\n```", `{"a": 1}`},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"leading whitespace", "   {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
