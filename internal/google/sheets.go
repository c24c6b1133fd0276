package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/partyquiz/quizdeck/internal/quiz"
	"github.com/partyquiz/quizdeck/internal/source"
)

const defaultSheetsBaseURL = "https://sheets.googleapis.com/v4"

// SheetsClient is a minimal Sheets v4 REST client covering value reads and
// the batch writeback of corrected cells.
type SheetsClient struct {
	baseURL    string
	httpClient *http.Client
}

// SheetsOption configures the Sheets client.
type SheetsOption func(*SheetsClient)

// WithSheetsBaseURL overrides the API base URL, used by tests.
func WithSheetsBaseURL(baseURL string) SheetsOption {
	return func(c *SheetsClient) {
		c.baseURL = baseURL
	}
}

// NewSheetsClient creates a Sheets client on top of an authenticated HTTP
// client.
func NewSheetsClient(httpClient *http.Client, opts ...SheetsOption) *SheetsClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &SheetsClient{
		baseURL:    defaultSheetsBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ValueRange is one rectangular block of cells addressed in A1 notation.
type ValueRange struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// Values reads one range from a spreadsheet. A range with no data returns an
// empty result, not an error.
func (c *SheetsClient) Values(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("sheets API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out ValueRange
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Values, nil
}

// BatchUpdateValues writes several ranges in one request using raw input.
func (c *SheetsClient) BatchUpdateValues(ctx context.Context, spreadsheetID string, data []ValueRange) error {
	if len(data) == 0 {
		return nil
	}

	payload := struct {
		ValueInputOption string       `json:"valueInputOption"`
		Data             []ValueRange `json:"data"`
	}{
		ValueInputOption: "RAW",
		Data:             data,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/spreadsheets/%s/values:batchUpdate",
		c.baseURL, url.PathEscape(spreadsheetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SheetSource adapts a spreadsheet range to the row source interface.
type SheetSource struct {
	client        *SheetsClient
	spreadsheetID string
	readRange     string
}

// NewSheetSource creates a spreadsheet-backed row source.
func NewSheetSource(client *SheetsClient, spreadsheetID, readRange string) *SheetSource {
	return &SheetSource{
		client:        client,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
}

func (s *SheetSource) ReadRows(ctx context.Context) ([]quiz.Row, error) {
	values, err := s.client.Values(ctx, s.spreadsheetID, s.readRange)
	if err != nil {
		return nil, err
	}
	return source.NormalizeRows(values), nil
}
