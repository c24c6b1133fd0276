// Package slides maps parsed quiz content onto slide titles and bodies and
// plans how topics are batched into decks.
package slides

import (
	"regexp"
	"strings"

	"github.com/partyquiz/quizdeck/internal/quiz"
)

// Content is the title/body pair for one slide. It is derived on demand from
// a (topic, question) pair and never persisted.
type Content struct {
	Title string
	Body  string
}

var (
	// "1. Aktuality" or "2) Sport" -> bare topic name.
	topicNumberRe = regexp.MustCompile(`^\d+[.)]\s*`)
	// "2) how are you?" or "T. bonus" -> number token + remainder.
	questionNumberRe = regexp.MustCompile(`^([T\d]+[.)])\s*`)
)

// MapSlide derives slide content from a question and its topic. A leading
// numbering token on the question ("3)", "T.") moves into the title next to
// the cleaned topic name; the body is the question without the token. The
// absence of a token is a normal path, not an error.
func MapSlide(topic quiz.Topic, q quiz.Question) Content {
	cleanTopic := strings.TrimSpace(topicNumberRe.ReplaceAllString(topic.Name, ""))

	m := questionNumberRe.FindStringSubmatch(q.Text)
	if m == nil {
		return Content{Title: cleanTopic, Body: q.Text}
	}

	return Content{
		Title: m[1] + " " + cleanTopic,
		Body:  strings.TrimSpace(q.Text[len(m[0]):]),
	}
}
