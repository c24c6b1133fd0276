package quiz

import "strings"

// topicCap is the soft cap on questions per topic. The source table has no
// explicit topic marker column; a non-empty row after a full topic is taken
// as the next topic's name.
const topicCap = 6

// parserState tracks whether a topic is currently accumulating questions.
type parserState int

const (
	noTopic parserState = iota
	openTopic
)

// action is the emission decided for a single row.
type action int

const (
	skipRow action = iota
	startTopic
	appendQuestion
)

// step is the pure transition function of the parser. count is the number of
// questions in the open topic (meaningless in noTopic), hasNext reports
// whether another row follows.
func step(state parserState, count int, firstCell string, hasNext bool) (parserState, action) {
	if strings.TrimSpace(firstCell) == "" {
		return state, skipRow
	}
	switch state {
	case noTopic:
		// The first non-empty row always opens a topic, last row included.
		return openTopic, startTopic
	default:
		if count >= topicCap && hasNext {
			return openTopic, startTopic
		}
		return openTopic, appendQuestion
	}
}

// Parse turns raw table rows into topics. Row 0 is the header and is always
// skipped. Malformed input degrades to fewer topics or questions; Parse
// never fails.
func Parse(rows []Row) []Topic {
	if len(rows) < 2 {
		return nil
	}

	var topics []Topic
	state := noTopic

	for i := 1; i < len(rows); i++ {
		row := rows[i]
		first := cell(row, 0)
		hasNext := i+1 < len(rows)

		count := 0
		if len(topics) > 0 {
			count = len(topics[len(topics)-1].Questions)
		}

		next, act := step(state, count, first, hasNext)
		state = next

		switch act {
		case startTopic:
			topics = append(topics, Topic{Name: strings.TrimSpace(first)})
		case appendQuestion:
			q := Question{
				Text:   strings.TrimSpace(first),
				Answer: strings.TrimSpace(cell(row, 1)),
				Notes:  strings.TrimSpace(cell(row, 2)),
			}
			if q.Text != "" {
				last := len(topics) - 1
				topics[last].Questions = append(topics[last].Questions, q)
			}
		}
	}

	return topics
}

// cell returns row[i] or "" when the row is shorter.
func cell(row Row, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
