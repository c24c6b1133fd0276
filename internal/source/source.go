// Package source reads quiz tables from tabular backends. Every source
// returns plain rows; an empty result means "no data" and halts the run.
package source

import (
	"context"

	"golang.org/x/text/unicode/norm"

	"github.com/partyquiz/quizdeck/internal/quiz"
)

// RowSource is the tabular source reader the pipelines consume.
type RowSource interface {
	ReadRows(ctx context.Context) ([]quiz.Row, error)
}

// NormalizeRows converts raw cells into quiz rows with every cell NFC
// normalized. Sheet exports routinely deliver Czech diacritics in decomposed
// form, which would break string matching against corrections.
func NormalizeRows(raw [][]string) []quiz.Row {
	rows := make([]quiz.Row, len(raw))
	for i, r := range raw {
		row := make(quiz.Row, len(r))
		for j, c := range r {
			row[j] = norm.NFC.String(c)
		}
		rows[i] = row
	}
	return rows
}
