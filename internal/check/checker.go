package check

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/partyquiz/quizdeck/internal/ai"
	"github.com/partyquiz/quizdeck/internal/quiz"
)

const grammarSystemPrompt = `You are an expert on Czech grammar and spelling.
Your task is to check spelling and grammar in Czech quiz questions.
Respond ONLY with JSON using these keys:
- has_errors: true/false (whether the text contains errors)
- corrections: list of fixes (when there are errors), each with "original" and "corrected"
- confidence: number 0-100 (how certain you are about the check)

Example response:
{
  "has_errors": true,
  "corrections": [
    {"original": "Jaký je nejvetší město", "corrected": "Jaké je největší město"}
  ],
  "confidence": 95
}

When there is no error, return:
{
  "has_errors": false,
  "corrections": [],
  "confidence": 90
}`

const answerSystemPrompt = `You are an expert on quiz questions and facts.
Your task is to verify whether the recorded answer to a question is correct.

IMPORTANT:
- Be strict but reasonable - minor typos or grammar slips do not matter
- If you are less than 80% certain, return is_correct as false
- Return ONLY JSON

Response format:
{
  "is_correct": true/false,
  "confidence": number 0-100,
  "explanation": "short explanation"
}`

// Checker runs the sequential grammar and answer passes over a parsed quiz.
type Checker struct {
	router *ai.Router
	model  string
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithModel pins the model used for both passes. The provider default
// applies when unset.
func WithModel(model string) CheckerOption {
	return func(c *Checker) {
		c.model = model
	}
}

// NewChecker creates a checker backed by the given router.
func NewChecker(router *ai.Router, opts ...CheckerOption) *Checker {
	c := &Checker{router: router}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run checks every question in order: grammar always, answer plausibility
// only when the question carries an answer. The input topics are left
// untouched; annotated copies are returned. Remote failures degrade to
// zero-confidence verdicts and the pass continues.
func (c *Checker) Run(ctx context.Context, topics []quiz.Topic) []CheckedTopic {
	checked := make([]CheckedTopic, 0, len(topics))

	for _, topic := range topics {
		ct := CheckedTopic{Name: topic.Name, Questions: make([]CheckedQuestion, 0, len(topic.Questions))}

		for _, q := range topic.Questions {
			slog.Info("checking question", "topic", topic.Name, "text", preview(q.Text))

			cq := CheckedQuestion{Question: q}

			grammar := c.CheckGrammar(ctx, q.Text)
			cq.Grammar = &grammar
			if grammar.Err != "" {
				slog.Warn("grammar check degraded", "text", preview(q.Text), "reason", grammar.Err)
			}

			if q.Answer != "" {
				answer := c.CheckAnswer(ctx, q.Text, q.Answer)
				cq.AnswerCheck = &answer
			}

			ct.Questions = append(ct.Questions, cq)
		}

		checked = append(checked, ct)
	}

	return checked
}

// CheckGrammar asks the model to check one question's grammar and normalizes
// the reply.
func (c *Checker) CheckGrammar(ctx context.Context, text string) GrammarVerdict {
	resp, err := c.router.Complete(ctx, ai.CompletionRequest{
		Model: c.model,
		Messages: []ai.Message{
			{Role: "system", Content: grammarSystemPrompt},
			{Role: "user", Content: "Please check this text:\n\n" + text},
		},
		Task: ai.TaskGrammar,
	})
	if err != nil {
		return GrammarVerdict{Corrections: []Correction{}, Err: fmt.Sprintf("completion failed: %v", err)}
	}
	return NormalizeGrammar(resp.Content)
}

// CheckAnswer asks the model whether the recorded answer fits the question
// and normalizes the reply, confidence floor included.
func (c *Checker) CheckAnswer(ctx context.Context, question, answer string) AnswerVerdict {
	prompt := fmt.Sprintf("Question: %s\n\nRecorded answer: %s\n\nIs the recorded answer correct?", question, answer)

	resp, err := c.router.Complete(ctx, ai.CompletionRequest{
		Model: c.model,
		Messages: []ai.Message{
			{Role: "system", Content: answerSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Task: ai.TaskAnswer,
	})
	if err != nil {
		return AnswerVerdict{Explanation: fmt.Sprintf("completion failed: %v", err)}
	}
	return NormalizeAnswer(resp.Content)
}

// ApplyCorrections returns the question text with every correction applied.
// When the model reported errors without usable corrections, a placeholder
// note is returned instead, matching what the sheet writeback expects.
func ApplyCorrections(text string, v GrammarVerdict) string {
	if !v.HasErrors {
		return text
	}

	applied := false
	out := text
	for _, corr := range v.Corrections {
		if corr.Original == "" || corr.Corrected == "" {
			continue
		}
		out = strings.ReplaceAll(out, corr.Original, corr.Corrected)
		applied = true
	}
	if !applied {
		return fmt.Sprintf("[model reported errors but gave no corrections - confidence: %d%%]", v.Confidence)
	}
	return out
}

// preview shortens question text for log lines.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= 60 {
		return s
	}
	return string(runes[:60]) + "..."
}
