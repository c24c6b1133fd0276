// Package quiz holds the topic/question model and the row parser that
// builds it from a flat spreadsheet table.
package quiz

// Row is one spreadsheet row. Cell 0 carries the topic or question text,
// cell 1 the expected answer, cell 2 free-form notes. Trailing cells may be
// missing; anything past index 2 is ignored.
type Row []string

// Question is a single quiz question within a topic.
type Question struct {
	Text   string `json:"text"`
	Answer string `json:"answer"`
	Notes  string `json:"notes"`
}

// Topic is a named group of questions, presented across one or more slides.
type Topic struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}
