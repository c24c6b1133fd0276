// Package config loads application configuration from an optional YAML file
// and environment variables. All variables use the QUIZ_ prefix; environment
// values override file values.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is read when QUIZ_CONFIG_FILE is unset and the file
// exists in the working directory.
const defaultConfigFile = "quizdeck.yaml"

// Config holds all application configuration.
type Config struct {
	Source SourceConfig `yaml:"source"`
	AI     AIConfig     `yaml:"ai"`
	Slides SlidesConfig `yaml:"slides"`
	Check  CheckConfig  `yaml:"check"`
	Google GoogleConfig `yaml:"google"`
	Log    LogConfig    `yaml:"log"`
}

// SourceConfig selects the quiz table backend. A spreadsheet id takes
// precedence over a local workbook.
type SourceConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id"`
	ReadRange     string `yaml:"read_range"`
	WorkbookPath  string `yaml:"workbook_path"`
	Sheet         string `yaml:"sheet"`
}

// AIConfig holds configuration for the model providers.
type AIConfig struct {
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Ollama     OllamaConfig     `yaml:"ollama"`
}

// OpenRouterConfig holds OpenRouter provider settings.
type OpenRouterConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Model   string `yaml:"model"`
}

// SlidesConfig holds deck generation settings.
type SlidesConfig struct {
	Output        string `yaml:"output"` // "google" or "pptx"
	TopicsPerDeck int    `yaml:"topics_per_deck"`
	TitlePrefix   string `yaml:"title_prefix"`
	OutDir        string `yaml:"out_dir"`
	FolderID      string `yaml:"folder_id"`
}

// CheckConfig holds grammar check settings.
type CheckConfig struct {
	TargetColumn   string `yaml:"target_column"`
	ReportTextPath string `yaml:"report_text_path"`
	ReportJSONPath string `yaml:"report_json_path"`
}

// GoogleConfig holds credential locations for the Google backends.
type GoogleConfig struct {
	CredentialsPath string `yaml:"credentials_path"`
	TokenPath       string `yaml:"token_path"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads configuration. Defaults are applied first, then the YAML file
// named by QUIZ_CONFIG_FILE when set, then QUIZ_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Source: SourceConfig{
			ReadRange: "A:D",
		},
		AI: AIConfig{
			Ollama: OllamaConfig{
				URL: "http://localhost:11434",
			},
		},
		Slides: SlidesConfig{
			Output:        "google",
			TopicsPerDeck: 2,
			TitlePrefix:   "Party Quiz",
			OutDir:        "./decks",
		},
		Check: CheckConfig{
			TargetColumn:   "D",
			ReportTextPath: "grammar_check_report.txt",
			ReportJSONPath: "grammar_check_report.json",
		},
		Google: GoogleConfig{
			CredentialsPath: "credentials.json",
			TokenPath:       "token.json",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}

	path := os.Getenv("QUIZ_CONFIG_FILE")
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Source.SpreadsheetID = envStr("QUIZ_SOURCE_SPREADSHEET_ID", cfg.Source.SpreadsheetID)
	cfg.Source.ReadRange = envStr("QUIZ_SOURCE_READ_RANGE", cfg.Source.ReadRange)
	cfg.Source.WorkbookPath = envStr("QUIZ_SOURCE_WORKBOOK_PATH", cfg.Source.WorkbookPath)
	cfg.Source.Sheet = envStr("QUIZ_SOURCE_SHEET", cfg.Source.Sheet)

	cfg.AI.OpenRouter.APIKey = envStr("QUIZ_AI_OPENROUTER_API_KEY", cfg.AI.OpenRouter.APIKey)
	cfg.AI.OpenRouter.Model = envStr("QUIZ_AI_OPENROUTER_MODEL", cfg.AI.OpenRouter.Model)
	cfg.AI.Ollama.Enabled = envBool("QUIZ_AI_OLLAMA_ENABLED", cfg.AI.Ollama.Enabled)
	cfg.AI.Ollama.URL = envStr("QUIZ_AI_OLLAMA_URL", cfg.AI.Ollama.URL)
	cfg.AI.Ollama.Model = envStr("QUIZ_AI_OLLAMA_MODEL", cfg.AI.Ollama.Model)

	cfg.Slides.Output = envStr("QUIZ_SLIDES_OUTPUT", cfg.Slides.Output)
	cfg.Slides.TopicsPerDeck = envInt("QUIZ_SLIDES_TOPICS_PER_DECK", cfg.Slides.TopicsPerDeck)
	cfg.Slides.TitlePrefix = envStr("QUIZ_SLIDES_TITLE_PREFIX", cfg.Slides.TitlePrefix)
	cfg.Slides.OutDir = envStr("QUIZ_SLIDES_OUT_DIR", cfg.Slides.OutDir)
	cfg.Slides.FolderID = envStr("QUIZ_SLIDES_FOLDER_ID", cfg.Slides.FolderID)

	cfg.Check.TargetColumn = envStr("QUIZ_CHECK_TARGET_COLUMN", cfg.Check.TargetColumn)
	cfg.Check.ReportTextPath = envStr("QUIZ_CHECK_REPORT_TEXT_PATH", cfg.Check.ReportTextPath)
	cfg.Check.ReportJSONPath = envStr("QUIZ_CHECK_REPORT_JSON_PATH", cfg.Check.ReportJSONPath)

	cfg.Google.CredentialsPath = envStr("QUIZ_GOOGLE_CREDENTIALS_PATH", cfg.Google.CredentialsPath)
	cfg.Google.TokenPath = envStr("QUIZ_GOOGLE_TOKEN_PATH", cfg.Google.TokenPath)

	cfg.Log.Level = envStr("QUIZ_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = envStr("QUIZ_LOG_FORMAT", cfg.Log.Format)

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Source.SpreadsheetID == "" && c.Source.WorkbookPath == "" {
		return fmt.Errorf("QUIZ_SOURCE_SPREADSHEET_ID or QUIZ_SOURCE_WORKBOOK_PATH is required")
	}

	if c.Slides.Output != "google" && c.Slides.Output != "pptx" {
		return fmt.Errorf("QUIZ_SLIDES_OUTPUT must be 'google' or 'pptx', got %q", c.Slides.Output)
	}

	if c.Slides.TopicsPerDeck < 1 {
		return fmt.Errorf("QUIZ_SLIDES_TOPICS_PER_DECK must be at least 1, got %d", c.Slides.TopicsPerDeck)
	}

	col := c.Check.TargetColumn
	if len(col) != 1 || col[0] < 'A' || col[0] > 'Z' {
		return fmt.Errorf("QUIZ_CHECK_TARGET_COLUMN must be a single column letter, got %q", col)
	}

	return nil
}

// HasAIProvider returns true if at least one model provider is configured.
func (c *Config) HasAIProvider() bool {
	return c.AI.OpenRouter.APIKey != "" || c.AI.Ollama.Enabled
}

// UsesSpreadsheet returns true when rows come from a spreadsheet rather than
// a local workbook.
func (c *Config) UsesSpreadsheet() bool {
	return c.Source.SpreadsheetID != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
