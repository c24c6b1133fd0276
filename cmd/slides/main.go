// Command slides reads the quiz table, parses it into topics and renders one
// deck per topic batch, either as Google Slides presentations or as local
// .pptx files.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/partyquiz/quizdeck/internal/google"
	"github.com/partyquiz/quizdeck/internal/platform/config"
	"github.com/partyquiz/quizdeck/internal/pptx"
	"github.com/partyquiz/quizdeck/internal/quiz"
	"github.com/partyquiz/quizdeck/internal/slides"
	"github.com/partyquiz/quizdeck/internal/source"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var httpClient *http.Client
	if cfg.UsesSpreadsheet() || cfg.Slides.Output == "google" {
		scopes := []string{google.ScopeSpreadsheetsReadonly}
		if cfg.Slides.Output == "google" {
			scopes = append(scopes, google.ScopePresentations, google.ScopeDrive)
		}

		ts, err := google.TokenSource(ctx, cfg.Google.CredentialsPath, cfg.Google.TokenPath, scopes...)
		if err != nil {
			slog.Error("Google authentication failed", "error", err)
			os.Exit(1)
		}
		httpClient = oauth2.NewClient(ctx, ts)
	}

	var rowSrc source.RowSource
	if cfg.UsesSpreadsheet() {
		rowSrc = google.NewSheetSource(google.NewSheetsClient(httpClient), cfg.Source.SpreadsheetID, cfg.Source.ReadRange)
	} else {
		rowSrc = source.NewXLSXSource(cfg.Source.WorkbookPath, cfg.Source.Sheet)
	}

	rows, err := rowSrc.ReadRows(ctx)
	if err != nil {
		slog.Error("failed to read quiz table", "error", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		slog.Error("quiz table is empty, nothing to do")
		os.Exit(1)
	}
	slog.Info("quiz table loaded", "rows", len(rows))

	topics := quiz.Parse(rows)
	if len(topics) == 0 {
		slog.Error("no topics found in quiz table")
		os.Exit(1)
	}
	slog.Info("quiz parsed", "topics", len(topics))

	var builder slides.Builder
	if cfg.Slides.Output == "google" {
		drive := google.NewDriveClient(httpClient)

		// Without an explicit folder, decks land next to the spreadsheet.
		folderID := cfg.Slides.FolderID
		if folderID == "" && cfg.UsesSpreadsheet() {
			parents, err := drive.Parents(ctx, cfg.Source.SpreadsheetID)
			if err != nil {
				slog.Warn("could not look up spreadsheet folder", "error", err)
			} else if len(parents) > 0 {
				folderID = parents[0]
			}
		}

		builder = google.NewDeckBuilder(google.NewSlidesClient(httpClient), drive, folderID)
	} else {
		builder = pptx.NewExporter(cfg.Slides.OutDir)
	}

	decks := slides.PlanDecks(topics, cfg.Slides.TopicsPerDeck, cfg.Slides.TitlePrefix)

	created, failed := 0, 0
	for _, deck := range decks {
		ref, err := builder.BuildDeck(ctx, deck.Title, deck.Slides)
		if err != nil {
			slog.Error("deck failed", "title", deck.Title, "error", err)
			failed++
			continue
		}
		slog.Info("deck created", "title", deck.Title, "ref", ref, "slides", len(deck.Slides))
		created++
	}

	slog.Info("run finished", "decks_created", created, "decks_failed", failed)
	if created == 0 && failed > 0 {
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
