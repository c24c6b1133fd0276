// Package report folds per-question verdicts into summary counts and the two
// flat report files the check run leaves behind.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/partyquiz/quizdeck/internal/check"
)

const divider = "======================================================================"

// Summary holds the three headline counts.
type Summary struct {
	Total         int `json:"total"`
	GrammarIssues int `json:"grammar_issues"`
	AnswerIssues  int `json:"answer_issues"`
}

// Report is the aggregated outcome of a check run.
type Report struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Topics      []check.CheckedTopic `json:"topics"`
	Summary     Summary              `json:"summary"`
}

// Aggregate walks the checked topics and computes the summary counts. A
// grammar issue is a verdict with errors; an answer issue is any answer
// verdict that ended up below the confidence floor.
func Aggregate(topics []check.CheckedTopic) Report {
	r := Report{GeneratedAt: time.Now(), Topics: topics}

	for _, topic := range topics {
		for _, q := range topic.Questions {
			r.Summary.Total++
			if q.Grammar != nil && q.Grammar.HasErrors {
				r.Summary.GrammarIssues++
			}
			if q.AnswerCheck != nil && q.AnswerCheck.Confidence < check.ConfidenceFloor {
				r.Summary.AnswerIssues++
			}
		}
	}

	return r
}

// Text renders the human-readable report: topics, questions, verdicts and
// the summary block.
func (r Report) Text() string {
	var b strings.Builder

	b.WriteString(divider + "\n")
	b.WriteString("QUIZ CHECK REPORT\n")
	fmt.Fprintf(&b, "Date: %s\n", r.GeneratedAt.Format("02.01.2006 15:04:05"))
	b.WriteString(divider + "\n\n")

	for _, topic := range r.Topics {
		fmt.Fprintf(&b, "Topic: %s\n", topic.Name)
		for _, q := range topic.Questions {
			fmt.Fprintf(&b, "  Question: %s\n", q.Text)
			if q.Answer != "" {
				fmt.Fprintf(&b, "    Answer: %s\n", q.Answer)
			}
			if g := q.Grammar; g != nil {
				status := "OK"
				if g.HasErrors {
					status = "ISSUES"
				}
				fmt.Fprintf(&b, "    Grammar: %s (confidence %d%%)\n", status, g.Confidence)
				for _, corr := range g.Corrections {
					fmt.Fprintf(&b, "      - %q -> %q\n", corr.Original, corr.Corrected)
				}
				if g.Err != "" {
					fmt.Fprintf(&b, "      check degraded: %s\n", g.Err)
				}
			}
			if a := q.AnswerCheck; a != nil {
				status := "SUSPECT"
				if a.IsCorrect {
					status = "OK"
				}
				fmt.Fprintf(&b, "    Answer check: %s (confidence %d%%)", status, a.Confidence)
				if a.Explanation != "" {
					fmt.Fprintf(&b, " %s", a.Explanation)
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(divider + "\n")
	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "Total questions: %d\n", r.Summary.Total)
	fmt.Fprintf(&b, "Grammar issues:  %d\n", r.Summary.GrammarIssues)
	fmt.Fprintf(&b, "Answer issues:   %d\n", r.Summary.AnswerIssues)
	b.WriteString(divider + "\n")

	return b.String()
}

// Document renders the machine-readable JSON mirror of the report.
func (r Report) Document() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// WriteFiles writes both report forms. File write failures surface to the
// caller; they are the only errors this package produces.
func (r Report) WriteFiles(textPath, jsonPath string) error {
	if err := os.WriteFile(textPath, []byte(r.Text()), 0o644); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	doc, err := r.Document()
	if err != nil {
		return err
	}
	if err := os.WriteFile(jsonPath, doc, 0o644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}

	return nil
}
