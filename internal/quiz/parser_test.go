package quiz

import (
	"fmt"
	"testing"
)

func TestStep(t *testing.T) {
	tests := []struct {
		name      string
		state     parserState
		count     int
		firstCell string
		hasNext   bool
		wantState parserState
		wantAct   action
	}{
		{"empty cell skipped", openTopic, 3, "   ", true, openTopic, skipRow},
		{"no open topic starts one", noTopic, 0, "History", true, openTopic, startTopic},
		{"no open topic starts one on last row", noTopic, 0, "History", false, openTopic, startTopic},
		{"open topic takes question", openTopic, 2, "1) Who?", true, openTopic, appendQuestion},
		{"full topic rolls over", openTopic, 6, "Sports", true, openTopic, startTopic},
		{"full topic keeps last row as question", openTopic, 6, "7) Who?", false, openTopic, appendQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotState, gotAct := step(tt.state, tt.count, tt.firstCell, tt.hasNext)
			if gotState != tt.wantState || gotAct != tt.wantAct {
				t.Errorf("step() = (%v, %v), want (%v, %v)", gotState, gotAct, tt.wantState, tt.wantAct)
			}
		})
	}
}

func TestParse_TooShort(t *testing.T) {
	for _, rows := range [][]Row{nil, {}, {{"Téma", "Odpověď", "Poznámky"}}} {
		if got := Parse(rows); len(got) != 0 {
			t.Errorf("Parse(%d rows) = %d topics, want 0", len(rows), len(got))
		}
	}
}

func TestParse_TopicCap(t *testing.T) {
	rows := []Row{
		{"Téma", "Odpověď", "Poznámky"},
		{"1. History"},
		{"1) Q1", "A1"},
		{"2) Q2", "A2"},
		{"3) Q3", "A3"},
		{"4) Q4", "A4"},
		{"5) Q5", "A5"},
		{"6) Q6", "A6"},
		{"2. Sports"},
		{"1) Q7", "A7"},
	}

	topics := Parse(rows)
	if len(topics) != 2 {
		t.Fatalf("Parse() = %d topics, want 2", len(topics))
	}
	if len(topics[0].Questions) != 6 {
		t.Errorf("first topic has %d questions, want 6", len(topics[0].Questions))
	}
	if topics[1].Name != "2. Sports" {
		t.Errorf("second topic name = %q, want %q", topics[1].Name, "2. Sports")
	}
	if len(topics[1].Questions) != 1 {
		t.Errorf("second topic has %d questions, want 1", len(topics[1].Questions))
	}
}

// The seventh consecutive question-shaped row after a full topic must open a
// new topic instead of landing in the full one.
func TestParse_SeventhRowOpensNewTopic(t *testing.T) {
	rows := []Row{
		{"Téma"},
		{"1. History"},
	}
	for i := 1; i <= 8; i++ {
		rows = append(rows, Row{q(i), "a"})
	}

	topics := Parse(rows)
	if len(topics) != 2 {
		t.Fatalf("Parse() = %d topics, want 2", len(topics))
	}
	if got := len(topics[0].Questions); got != 6 {
		t.Errorf("first topic has %d questions, want 6", got)
	}
	if topics[1].Name != q(7) {
		t.Errorf("second topic name = %q, want %q", topics[1].Name, q(7))
	}
	if got := len(topics[1].Questions); got != 1 {
		t.Errorf("second topic has %d questions, want 1", got)
	}
	if topics[1].Questions[0].Text != q(8) {
		t.Errorf("rolled-over question = %q, want %q", topics[1].Questions[0].Text, q(8))
	}
}

func q(i int) string {
	return fmt.Sprintf("%d) question %d", i, i)
}

func TestParse_EmptyRowsDoNotResetTopic(t *testing.T) {
	rows := []Row{
		{"Téma"},
		{"History"},
		{"Q1", "A1"},
		{""},
		{"   ", "stray answer"},
		{},
		{"Q2", "A2"},
	}

	topics := Parse(rows)
	if len(topics) != 1 {
		t.Fatalf("Parse() = %d topics, want 1", len(topics))
	}
	if got := len(topics[0].Questions); got != 2 {
		t.Fatalf("topic has %d questions, want 2", got)
	}
	if topics[0].Questions[1].Text != "Q2" {
		t.Errorf("second question = %q, want Q2", topics[0].Questions[1].Text)
	}
}

// A final row after a full topic has no lookahead, so it cannot open a new
// topic and lands in the full one as a seventh question.
func TestParse_TrailingRowAfterFullTopicStaysQuestion(t *testing.T) {
	rows := []Row{
		{"Téma"},
		{"History"},
		{"Q1"}, {"Q2"}, {"Q3"}, {"Q4"}, {"Q5"}, {"Q6"},
		{"Sports"},
	}

	topics := Parse(rows)
	if len(topics) != 1 {
		t.Fatalf("Parse() = %d topics, want 1", len(topics))
	}
	if got := len(topics[0].Questions); got != 7 {
		t.Errorf("topic has %d questions, want 7 (last row lacks lookahead)", got)
	}
}

func TestParse_LastRowStartsTopicWhenNoneOpen(t *testing.T) {
	rows := []Row{
		{"Téma"},
		{"History"},
	}

	topics := Parse(rows)
	if len(topics) != 1 {
		t.Fatalf("Parse() = %d topics, want 1", len(topics))
	}
	if topics[0].Name != "History" || len(topics[0].Questions) != 0 {
		t.Errorf("got %+v, want topic History with zero questions", topics[0])
	}
}

func TestParse_ShortRowsDefaultEmpty(t *testing.T) {
	rows := []Row{
		{"Téma", "Odpověď", "Poznámky"},
		{"  History  "},
		{" Q1 ", " A1 ", " note "},
		{"Q2", "A2"},
		{"Q3"},
	}

	topics := Parse(rows)
	if len(topics) != 1 {
		t.Fatalf("Parse() = %d topics, want 1", len(topics))
	}
	if topics[0].Name != "History" {
		t.Errorf("topic name = %q, want trimmed History", topics[0].Name)
	}
	qs := topics[0].Questions
	if len(qs) != 3 {
		t.Fatalf("got %d questions, want 3", len(qs))
	}
	if qs[0].Text != "Q1" || qs[0].Answer != "A1" || qs[0].Notes != "note" {
		t.Errorf("first question not trimmed: %+v", qs[0])
	}
	if qs[1].Notes != "" {
		t.Errorf("missing notes cell should be empty, got %q", qs[1].Notes)
	}
	if qs[2].Answer != "" || qs[2].Notes != "" {
		t.Errorf("missing cells should be empty, got %+v", qs[2])
	}
}
