// Package tailor - payload.go extracts the structured resume payload out
// of free-form model output. Models commonly wrap JSON in fenced code
// blocks; extraction tolerates that and locates the first top-level object
// carrying a "resume" or "keywords" key.
package tailor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Payload is the structured tailoring output the pipeline needs before it
// will fill anything.
type Payload struct {
	Keywords []string        `json:"keywords"`
	Resume   json.RawMessage `json:"resume"`
}

var rxFence = regexp.MustCompile("(?i)```json\\s*([\\s\\S]*?)```")

// payloadSchema loosely validates the extracted object: when present,
// keywords must be a string array and resume an object.
const payloadSchema = `{
  "type": "object",
  "properties": {
    "keywords": {"type": "array", "items": {"type": "string"}},
    "resume": {"type": "object"}
  },
  "anyOf": [
    {"required": ["resume"]},
    {"required": ["keywords"]}
  ]
}`

// ExtractPayload pulls the first JSON object containing a resume or
// keywords key out of text. Returns nil when no such object exists; the
// pipeline treats that as "ask the human", not as an error.
func ExtractPayload(text string) *Payload {
	blob := text
	if m := rxFence.FindStringSubmatch(text); m != nil {
		blob = m[1]
	}

	start := strings.Index(blob, "{")
	end := strings.LastIndex(blob, "}")
	if start < 0 || end <= start {
		return nil
	}
	raw := blob[start : end+1]

	schemaResult, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(payloadSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil || !schemaResult.Valid() {
		return nil
	}

	var data struct {
		Keywords []string        `json:"keywords"`
		Resume   json.RawMessage `json:"resume"`
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}

	payload := &Payload{Keywords: data.Keywords, Resume: data.Resume}
	if len(payload.Resume) == 0 {
		// No nested resume object: the whole document is the resume.
		payload.Resume = json.RawMessage(raw)
	}
	return payload
}

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
// LLMs often wrap JSON in ```json ... ``` blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a potential language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
