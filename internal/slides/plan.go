package slides

import (
	"context"
	"strings"

	"github.com/partyquiz/quizdeck/internal/quiz"
)

// DefaultTopicsPerDeck is how many topics share one presentation.
const DefaultTopicsPerDeck = 2

// Deck is one planned presentation: a title and its slides in final order.
type Deck struct {
	Title  string
	Slides []Content
}

// Builder turns a planned deck into an actual presentation and returns its
// identifier (a remote presentation id or a local file path).
type Builder interface {
	BuildDeck(ctx context.Context, title string, slides []Content) (string, error)
}

// PlanDecks groups topics perDeck at a time, in original order, into decks.
// Slides are emitted topic-major, question-minor. The deck title joins the
// grouped topic names with " & "; prefix, when non-empty, is prepended with
// " - ".
func PlanDecks(topics []quiz.Topic, perDeck int, prefix string) []Deck {
	if perDeck <= 0 {
		perDeck = DefaultTopicsPerDeck
	}

	var decks []Deck
	for i := 0; i < len(topics); i += perDeck {
		end := i + perDeck
		if end > len(topics) {
			end = len(topics)
		}
		batch := topics[i:end]

		names := make([]string, len(batch))
		var contents []Content
		for j, topic := range batch {
			names[j] = topic.Name
			for _, q := range topic.Questions {
				contents = append(contents, MapSlide(topic, q))
			}
		}

		title := strings.Join(names, " & ")
		if prefix != "" {
			title = prefix + " - " + title
		}

		decks = append(decks, Deck{Title: title, Slides: contents})
	}

	return decks
}
