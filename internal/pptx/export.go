// Package pptx renders decks as local PowerPoint files. It is the offline
// alternative to the Slides backend and shares the deck builder interface.
package pptx

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/partyquiz/quizdeck/internal/slides"
)

const (
	emuPerInch = 914400

	slideWidth  = int64(10.0 * emuPerInch)
	marginLeft  = int64(0.4 * emuPerInch)
	titleTop    = int64(0.4 * emuPerInch)
	bodyTop     = int64(1.4 * emuPerInch)
	titleHeight = int64(0.8 * emuPerInch)
	bodyHeight  = int64(3.8 * emuPerInch)

	contentWidth = int64(9.2 * emuPerInch)

	fontTitle = 28
	fontBody  = 18
)

// Exporter writes one .pptx file per deck into OutDir.
type Exporter struct {
	OutDir string
}

// NewExporter creates a file-based deck builder.
func NewExporter(outDir string) *Exporter {
	return &Exporter{OutDir: outDir}
}

// BuildDeck renders the deck and returns the path of the written file.
func (e *Exporter) BuildDeck(_ context.Context, title string, contents []slides.Content) (string, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = title

	for i, content := range contents {
		var slide *ppt.Slide
		if i == 0 {
			// A fresh presentation already carries one slide.
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}
		fillSlide(slide, content)
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return "", fmt.Errorf("failed to create PPT writer: %w", err)
	}

	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return "", fmt.Errorf("failed to render PPT: %w", err)
	}

	if err := os.MkdirAll(e.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(e.OutDir, fileName(title))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write deck: %w", err)
	}
	return path, nil
}

func fillSlide(slide *ppt.Slide, content slides.Content) {
	if content.Title != "" {
		titleShape := slide.CreateRichTextShape()
		titleShape.SetOffsetX(marginLeft).SetOffsetY(titleTop)
		titleShape.SetWidth(contentWidth).SetHeight(titleHeight)
		tr := titleShape.CreateTextRun(content.Title)
		tr.GetFont().SetSize(fontTitle).SetBold(true).SetColor(ppt.NewColor("FF1E293B"))
	}

	if content.Body != "" {
		bodyShape := slide.CreateRichTextShape()
		bodyShape.SetOffsetX(marginLeft).SetOffsetY(bodyTop)
		bodyShape.SetWidth(contentWidth).SetHeight(bodyHeight)

		for i, line := range strings.Split(content.Body, "\n") {
			if i > 0 {
				bodyShape.CreateParagraph()
			}
			tr := bodyShape.CreateTextRun(line)
			tr.GetFont().SetSize(fontBody).SetColor(ppt.NewColor("FF334155"))
		}
	}
}

// fileName turns a deck title into a safe file name. Characters outside a
// conservative set become underscores.
func fileName(title string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.':
			return r
		case r == ' ':
			return '_'
		default:
			return '_'
		}
	}, strings.TrimSpace(title))

	if mapped == "" {
		mapped = "deck"
	}
	return mapped + ".pptx"
}
