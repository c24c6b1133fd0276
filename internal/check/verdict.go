// Package check runs model-based grammar and answer checks over a quiz and
// normalizes the free-form model output into structured verdicts.
package check

import "github.com/partyquiz/quizdeck/internal/quiz"

// ConfidenceFloor is the minimum confidence for a positive answer verdict.
// Anything below it is treated as unconfirmed regardless of the raw claim.
const ConfidenceFloor = 80

// Correction is a single grammar fix proposed by the model.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// GrammarVerdict is the normalized outcome of a grammar check.
type GrammarVerdict struct {
	HasErrors   bool         `json:"has_errors"`
	Corrections []Correction `json:"corrections"`
	Confidence  int          `json:"confidence"`
	Err         string       `json:"error,omitempty"`
}

// AnswerVerdict is the normalized outcome of an answer plausibility check.
type AnswerVerdict struct {
	IsCorrect   bool   `json:"is_correct"`
	Confidence  int    `json:"confidence"`
	Explanation string `json:"explanation"`
}

// CheckedQuestion pairs a question with the verdicts produced for it.
// Questions without an answer never get an answer verdict.
type CheckedQuestion struct {
	quiz.Question
	Grammar     *GrammarVerdict `json:"grammar,omitempty"`
	AnswerCheck *AnswerVerdict  `json:"answer_check,omitempty"`
}

// CheckedTopic mirrors quiz.Topic with annotated questions. The checker
// builds these instead of mutating the parsed tree.
type CheckedTopic struct {
	Name      string            `json:"name"`
	Questions []CheckedQuestion `json:"questions"`
}
