package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/partyquiz/quizdeck/internal/check"
	"github.com/partyquiz/quizdeck/internal/quiz"
)

func sampleTopics() []check.CheckedTopic {
	return []check.CheckedTopic{
		{
			Name: "1. History",
			Questions: []check.CheckedQuestion{
				{
					Question: quiz.Question{Text: "1) Who won?", Answer: "Napoleon"},
					Grammar:  &check.GrammarVerdict{HasErrors: false, Corrections: []check.Correction{}, Confidence: 90},
					AnswerCheck: &check.AnswerVerdict{
						IsCorrect: true, Confidence: 95, Explanation: "matches",
					},
				},
				{
					Question: quiz.Question{Text: "2) What speling?", Answer: "b"},
					Grammar: &check.GrammarVerdict{HasErrors: true, Confidence: 88, Corrections: []check.Correction{
						{Original: "speling", Corrected: "spelling"},
					}},
					AnswerCheck: &check.AnswerVerdict{
						IsCorrect: false, Confidence: 40, Explanation: "unclear (low model confidence)",
					},
				},
			},
		},
		{
			Name: "2. Sport",
			Questions: []check.CheckedQuestion{
				{
					Question: quiz.Question{Text: "1) How many players?"},
					Grammar:  &check.GrammarVerdict{Corrections: []check.Correction{}, Confidence: 85},
				},
			},
		},
	}
}

func TestAggregate_Counts(t *testing.T) {
	r := Aggregate(sampleTopics())

	if r.Summary.Total != 3 {
		t.Errorf("Total = %d, want 3", r.Summary.Total)
	}
	if r.Summary.GrammarIssues != 1 {
		t.Errorf("GrammarIssues = %d, want 1", r.Summary.GrammarIssues)
	}
	if r.Summary.AnswerIssues != 1 {
		t.Errorf("AnswerIssues = %d, want 1", r.Summary.AnswerIssues)
	}
	if r.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestAggregate_UncheckedQuestionsCountOnlyInTotal(t *testing.T) {
	topics := []check.CheckedTopic{{
		Name:      "T",
		Questions: []check.CheckedQuestion{{Question: quiz.Question{Text: "Q"}}},
	}}

	r := Aggregate(topics)

	if r.Summary.Total != 1 || r.Summary.GrammarIssues != 0 || r.Summary.AnswerIssues != 0 {
		t.Errorf("Summary = %+v, want total-only count", r.Summary)
	}
}

func TestReport_Text(t *testing.T) {
	text := Aggregate(sampleTopics()).Text()

	for _, want := range []string{
		"QUIZ CHECK REPORT",
		"Topic: 1. History",
		"Question: 1) Who won?",
		"Answer: Napoleon",
		"Grammar: ISSUES (confidence 88%)",
		`"speling" -> "spelling"`,
		"Answer check: OK (confidence 95%) matches",
		"Answer check: SUSPECT (confidence 40%)",
		"Total questions: 3",
		"Grammar issues:  1",
		"Answer issues:   1",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Text() missing %q\n%s", want, text)
		}
	}
}

func TestReport_Document(t *testing.T) {
	doc, err := Aggregate(sampleTopics()).Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}

	var decoded struct {
		GeneratedAt string `json:"generated_at"`
		Topics      []struct {
			Name      string `json:"name"`
			Questions []struct {
				Text    string `json:"text"`
				Grammar *struct {
					HasErrors  bool `json:"has_errors"`
					Confidence int  `json:"confidence"`
				} `json:"grammar"`
			} `json:"questions"`
		} `json:"topics"`
		Summary Summary `json:"summary"`
	}
	if err := json.Unmarshal(doc, &decoded); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}

	if decoded.GeneratedAt == "" {
		t.Error("generated_at missing")
	}
	if len(decoded.Topics) != 2 || decoded.Topics[0].Name != "1. History" {
		t.Errorf("topics not mirrored: %+v", decoded.Topics)
	}
	if decoded.Topics[0].Questions[1].Grammar == nil || !decoded.Topics[0].Questions[1].Grammar.HasErrors {
		t.Error("grammar verdict not mirrored")
	}
	if decoded.Summary.Total != 3 {
		t.Errorf("summary total = %d, want 3", decoded.Summary.Total)
	}
}

func TestReport_WriteFiles(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "report.txt")
	jsonPath := filepath.Join(dir, "report.json")

	if err := Aggregate(sampleTopics()).WriteFiles(textPath, jsonPath); err != nil {
		t.Fatalf("WriteFiles() error = %v", err)
	}

	for _, p := range []string{textPath, jsonPath} {
		data, err := os.ReadFile(p)
		if err != nil {
			t.Fatalf("read %s: %v", p, err)
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestReport_WriteFiles_Error(t *testing.T) {
	dir := t.TempDir()

	err := Aggregate(nil).WriteFiles(filepath.Join(dir, "missing", "report.txt"), filepath.Join(dir, "report.json"))
	if err == nil {
		t.Fatal("WriteFiles() into missing directory should fail")
	}
}
