// Command grammarcheck runs the model-based grammar and answer checks over
// the quiz table, writes corrected question texts back into the spreadsheet
// and produces the check reports.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/oauth2"

	"github.com/partyquiz/quizdeck/internal/ai"
	"github.com/partyquiz/quizdeck/internal/check"
	"github.com/partyquiz/quizdeck/internal/google"
	"github.com/partyquiz/quizdeck/internal/platform/config"
	"github.com/partyquiz/quizdeck/internal/quiz"
	"github.com/partyquiz/quizdeck/internal/report"
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
	if !cfg.HasAIProvider() {
		slog.Error("no AI provider configured, set QUIZ_AI_OPENROUTER_API_KEY or enable Ollama")
		os.Exit(1)
	}

	router := ai.NewRouter()
	if cfg.AI.OpenRouter.APIKey != "" {
		router.Register("openrouter", ai.NewOpenRouterProvider(cfg.AI.OpenRouter.APIKey))
	}
	if cfg.AI.Ollama.Enabled {
		var opts []ai.OllamaOption
		if cfg.AI.Ollama.Model != "" {
			opts = append(opts, ai.WithOllamaModel(cfg.AI.Ollama.Model))
		}
		router.Register("ollama", ai.NewOllamaProvider(cfg.AI.Ollama.URL, opts...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var (
		rowSrc source.RowSource
		sheets *google.SheetsClient
	)
	if cfg.UsesSpreadsheet() {
		ts, err := google.TokenSource(ctx, cfg.Google.CredentialsPath, cfg.Google.TokenPath, google.ScopeSpreadsheets)
		if err != nil {
			slog.Error("Google authentication failed", "error", err)
			os.Exit(1)
		}
		sheets = google.NewSheetsClient(oauth2.NewClient(ctx, ts))
		rowSrc = google.NewSheetSource(sheets, cfg.Source.SpreadsheetID, cfg.Source.ReadRange)
	} else {
		rowSrc = source.NewXLSXSource(cfg.Source.WorkbookPath, cfg.Source.Sheet)
	}

	rows, err := rowSrc.ReadRows(ctx)
	if err != nil {
		slog.Error("failed to read quiz table", "error", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		slog.Error("quiz table is empty, nothing to check")
		os.Exit(1)
	}
	slog.Info("quiz table loaded", "rows", len(rows))

	topics := quiz.Parse(rows)
	if len(topics) == 0 {
		slog.Error("no topics found in quiz table")
		os.Exit(1)
	}

	var checkerOpts []check.CheckerOption
	if cfg.AI.OpenRouter.Model != "" {
		checkerOpts = append(checkerOpts, check.WithModel(cfg.AI.OpenRouter.Model))
	}
	checker := check.NewChecker(router, checkerOpts...)

	checked := checker.Run(ctx, topics)

	if sheets != nil {
		writeCorrections(ctx, sheets, cfg, rows, checked)
	}

	rep := report.Aggregate(checked)
	if err := rep.WriteFiles(cfg.Check.ReportTextPath, cfg.Check.ReportJSONPath); err != nil {
		slog.Error("failed to write reports", "error", err)
		os.Exit(1)
	}

	slog.Info("check finished",
		"questions", rep.Summary.Total,
		"grammar_issues", rep.Summary.GrammarIssues,
		"answer_issues", rep.Summary.AnswerIssues,
		"report_text", cfg.Check.ReportTextPath,
		"report_json", cfg.Check.ReportJSONPath,
	)
}

// writeCorrections puts corrected question texts into the target column of
// the rows they came from. Questions are matched back to rows by their text.
// Writeback failures are logged but do not fail the run; the reports still
// carry every verdict.
func writeCorrections(ctx context.Context, sheets *google.SheetsClient, cfg *config.Config, rows []quiz.Row, checked []check.CheckedTopic) {
	corrections := make(map[string]string)
	for _, topic := range checked {
		for _, q := range topic.Questions {
			if q.Grammar == nil || !q.Grammar.HasErrors {
				continue
			}
			if corrected := check.ApplyCorrections(q.Text, *q.Grammar); corrected != q.Text {
				corrections[q.Text] = corrected
			}
		}
	}
	if len(corrections) == 0 {
		slog.Info("no corrections to write back")
		return
	}

	var data []google.ValueRange
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		corrected, ok := corrections[strings.TrimSpace(row[0])]
		if !ok {
			continue
		}
		data = append(data, google.ValueRange{
			Range:  cellRange(cfg.Source.ReadRange, cfg.Check.TargetColumn, i+1),
			Values: [][]string{{corrected}},
		})
	}

	if err := sheets.BatchUpdateValues(ctx, cfg.Source.SpreadsheetID, data); err != nil {
		slog.Warn("could not write corrections back", "error", err)
		return
	}
	slog.Info("corrections written back", "cells", len(data))
}

// cellRange addresses one cell in the target column, keeping the sheet name
// of the read range when it has one.
func cellRange(readRange, column string, row int) string {
	if i := strings.Index(readRange, "!"); i >= 0 {
		return fmt.Sprintf("%s!%s%d", readRange[:i], column, row)
	}
	return fmt.Sprintf("%s%d", column, row)
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
