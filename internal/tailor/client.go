// Package tailor is the resume-tailoring collaborator: it asks an LLM to
// produce an ATS-tailored resume payload for a job posting. Failures never
// surface as errors to the caller; they degrade to a fallback result the
// pipeline can act on.
package tailor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/apply-agent/internal/types"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Client is an abstraction over tailoring providers.
type Client interface {
	// Tailor produces a tailoring result for the job. The result is
	// degraded (never nil) when the provider call or parsing fails.
	Tailor(ctx context.Context, job types.JobContext, baseResume string, constraints map[string]string) *types.TailorResult
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client on Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini-backed tailoring client.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Tailor calls the model and parses its output. Provider errors and
// unparseable output both yield a degraded fallback result; the raw model
// text is preserved for downstream payload extraction.
func (c *GeminiClient) Tailor(ctx context.Context, job types.JobContext, baseResume string, constraints map[string]string) *types.TailorResult {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1) // Low temperature for consistent output

	resp, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(job, baseResume, constraints)))
	if err != nil {
		return Fallback(job, fmt.Sprintf("tailoring call failed: %v", err))
	}
	text, err := extractTextFromResponse(resp)
	if err != nil {
		return Fallback(job, fmt.Sprintf("empty tailoring response: %v", err))
	}

	result := &types.TailorResult{RawText: text}
	if err := json.Unmarshal([]byte(CleanJSONBlock(text)), result); err != nil {
		// Keep the raw text: the pipeline's payload extractor may still
		// find a usable object inside it.
		result.ChangesExplanation = "Model output was not valid JSON"
		result.Degraded = true
	}
	return result
}

// Close releases the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Fallback builds the degraded result returned when tailoring fails.
// Keywords come from local extraction so downstream consumers still get
// something to work with.
func Fallback(job types.JobContext, reason string) *types.TailorResult {
	return &types.TailorResult{
		TailoredResume:         json.RawMessage("{}"),
		ChangesExplanation:     "Resume tailoring failed - " + reason,
		ATSScore:               0,
		KeywordIntegration:     ExtractKeywords(job.Description, defaultTopKeywords),
		ImprovementSuggestions: []string{"Please try again with the tailoring service available"},
		Degraded:               true,
	}
}

// BuildPrompt constructs the tailoring prompt.
func BuildPrompt(job types.JobContext, baseResume string, constraints map[string]string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert ATS resume editor. Return a strict JSON object with keys: ")
	sb.WriteString("keywords: string[], resume: {...}, changes_explanation: string, ats_score: number, ")
	sb.WriteString("keyword_integration: string[], improvement_suggestions: string[]. ")
	sb.WriteString("Output only JSON in a code block.\n\n")
	if job.Title != "" || job.Company != "" {
		sb.WriteString(fmt.Sprintf("Role: %s at %s\n", job.Title, job.Company))
	}
	for k, v := range constraints {
		sb.WriteString(fmt.Sprintf("Constraint %s: %s\n", k, v))
	}
	sb.WriteString("\nJob description:\n\"\"\"\n")
	sb.WriteString(job.Description)
	sb.WriteString("\n\"\"\"\n\nBase resume:\n\"\"\"\n")
	sb.WriteString(baseResume)
	sb.WriteString("\n\"\"\"\n")
	return sb.String()
}

// extractTextFromResponse concatenates the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("response has no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("response contains no text parts")
	}
	return sb.String(), nil
}
