package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/partyquiz/quizdeck/internal/quiz"
)

// XLSXSource reads the quiz table from a local workbook. Used when no
// spreadsheet id is configured.
type XLSXSource struct {
	Path  string
	Sheet string // first sheet when empty
}

// NewXLSXSource creates a workbook-backed row source.
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{Path: path, Sheet: sheet}
}

func (s *XLSXSource) ReadRows(_ context.Context) ([]quiz.Row, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("closing workbook", "path", s.Path, "error", cerr)
		}
	}()

	sheet := s.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return NormalizeRows(raw), nil
}
