package slides

import (
	"testing"

	"github.com/partyquiz/quizdeck/internal/quiz"
)

func TestPlanDecks_Batching(t *testing.T) {
	topics := []quiz.Topic{
		{Name: "T0", Questions: []quiz.Question{{Text: "q0"}}},
		{Name: "T1", Questions: []quiz.Question{{Text: "q1"}}},
		{Name: "T2", Questions: []quiz.Question{{Text: "q2"}}},
		{Name: "T3", Questions: []quiz.Question{{Text: "q3"}}},
		{Name: "T4", Questions: []quiz.Question{{Text: "q4"}}},
	}

	decks := PlanDecks(topics, 2, "")

	if len(decks) != 3 {
		t.Fatalf("PlanDecks() = %d decks, want 3", len(decks))
	}
	wantTitles := []string{"T0 & T1", "T2 & T3", "T4"}
	for i, want := range wantTitles {
		if decks[i].Title != want {
			t.Errorf("deck %d title = %q, want %q", i, decks[i].Title, want)
		}
	}
}

func TestPlanDecks_SlideOrder(t *testing.T) {
	topics := []quiz.Topic{
		{Name: "A", Questions: []quiz.Question{{Text: "a1"}, {Text: "a2"}}},
		{Name: "B", Questions: []quiz.Question{{Text: "b1"}}},
	}

	decks := PlanDecks(topics, 2, "")

	if len(decks) != 1 {
		t.Fatalf("PlanDecks() = %d decks, want 1", len(decks))
	}
	bodies := make([]string, len(decks[0].Slides))
	for i, s := range decks[0].Slides {
		bodies[i] = s.Body
	}
	want := []string{"a1", "a2", "b1"}
	for i := range want {
		if bodies[i] != want[i] {
			t.Fatalf("slide order = %v, want %v (topic-major, question-minor)", bodies, want)
		}
	}
}

func TestPlanDecks_Prefix(t *testing.T) {
	topics := []quiz.Topic{{Name: "1. Aktuality"}, {Name: "2. Sport"}}

	decks := PlanDecks(topics, 2, "Party Quiz")

	if decks[0].Title != "Party Quiz - 1. Aktuality & 2. Sport" {
		t.Errorf("title = %q", decks[0].Title)
	}
}

func TestPlanDecks_Empty(t *testing.T) {
	if decks := PlanDecks(nil, 2, "x"); len(decks) != 0 {
		t.Errorf("PlanDecks(nil) = %d decks, want 0", len(decks))
	}
}

func TestPlanDecks_DefaultBatchSize(t *testing.T) {
	topics := []quiz.Topic{{Name: "A"}, {Name: "B"}, {Name: "C"}}

	decks := PlanDecks(topics, 0, "")

	if len(decks) != 2 {
		t.Errorf("PlanDecks() with zero perDeck = %d decks, want 2", len(decks))
	}
}
