package check

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Schemas for the JSON payloads the model is instructed to return. The
// corrections list and the explanation are optional; models routinely omit
// them when there is nothing to say.
const (
	grammarSchemaJSON = `{
		"type": "object",
		"required": ["has_errors", "confidence"],
		"properties": {
			"has_errors": {"type": "boolean"},
			"confidence": {"type": "integer", "minimum": 0, "maximum": 100},
			"corrections": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"original": {"type": "string"},
						"corrected": {"type": "string"}
					}
				}
			}
		}
	}`

	answerSchemaJSON = `{
		"type": "object",
		"required": ["is_correct", "confidence"],
		"properties": {
			"is_correct": {"type": "boolean"},
			"confidence": {"type": "integer", "minimum": 0, "maximum": 100},
			"explanation": {"type": "string"}
		}
	}`
)

var (
	grammarSchema = gojsonschema.NewStringLoader(grammarSchemaJSON)
	answerSchema  = gojsonschema.NewStringLoader(answerSchemaJSON)
)

// ExtractFenced returns the text between the first pair of code fences,
// preferring a ```json fence over a bare one. Without fences the input is
// returned unchanged. A missing closing fence yields everything after the
// opening one.
func ExtractFenced(s string) string {
	for _, fence := range []string{"```json", "```"} {
		i := strings.Index(s, fence)
		if i < 0 {
			continue
		}
		rest := s[i+len(fence):]
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		return strings.TrimSpace(rest)
	}
	return s
}

// NormalizeGrammar turns raw model output into a grammar verdict. Malformed
// or unexpected payloads degrade to a zero-confidence "no issue" verdict
// carrying a diagnostic; NormalizeGrammar never fails.
func NormalizeGrammar(content string) GrammarVerdict {
	text := ExtractFenced(content)

	if reason := validate(grammarSchema, text); reason != "" {
		return GrammarVerdict{Corrections: []Correction{}, Err: reason}
	}

	var v GrammarVerdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return GrammarVerdict{Corrections: []Correction{}, Err: fmt.Sprintf("decode grammar verdict: %v", err)}
	}
	if v.Corrections == nil {
		v.Corrections = []Correction{}
	}
	return v
}

// NormalizeAnswer turns raw model output into an answer verdict and enforces
// the confidence floor: below ConfidenceFloor the verdict is negative no
// matter what the model claimed. Never fails.
func NormalizeAnswer(content string) AnswerVerdict {
	text := ExtractFenced(content)

	if reason := validate(answerSchema, text); reason != "" {
		return AnswerVerdict{Explanation: reason}
	}

	var v AnswerVerdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return AnswerVerdict{Explanation: fmt.Sprintf("decode answer verdict: %v", err)}
	}

	if v.Confidence < ConfidenceFloor {
		v.IsCorrect = false
		if v.Explanation != "" {
			v.Explanation += " (low model confidence)"
		}
	}
	return v
}

// validate checks text against schema and returns a diagnostic string when it
// does not conform, "" when it does.
func validate(schema gojsonschema.JSONLoader, text string) string {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(text))
	if err != nil {
		return fmt.Sprintf("parse model response: %v", err)
	}
	if !result.Valid() {
		reasons := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return "unexpected response shape: " + strings.Join(reasons, "; ")
	}
	return ""
}
