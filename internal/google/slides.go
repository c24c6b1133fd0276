package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/partyquiz/quizdeck/internal/slides"
)

const defaultSlidesBaseURL = "https://slides.googleapis.com/v1"

// SlidesClient is a minimal Slides v1 REST client. The deck builder drives it
// with create, batch-update and get calls only.
type SlidesClient struct {
	baseURL    string
	httpClient *http.Client
}

// SlidesOption configures the Slides client.
type SlidesOption func(*SlidesClient)

// WithSlidesBaseURL overrides the API base URL, used by tests.
func WithSlidesBaseURL(baseURL string) SlidesOption {
	return func(c *SlidesClient) {
		c.baseURL = baseURL
	}
}

// NewSlidesClient creates a Slides client on top of an authenticated HTTP
// client.
func NewSlidesClient(httpClient *http.Client, opts ...SlidesOption) *SlidesClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &SlidesClient{
		baseURL:    defaultSlidesBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Presentation carries the slice of the API resource the builder needs.
type Presentation struct {
	PresentationID string `json:"presentationId"`
	Slides         []Page `json:"slides"`
}

// Page is one slide with its placeholder elements in document order.
type Page struct {
	ObjectID     string        `json:"objectId"`
	PageElements []PageElement `json:"pageElements"`
}

// PageElement identifies one placeholder shape on a slide.
type PageElement struct {
	ObjectID string `json:"objectId"`
}

// Request is a batchUpdate request. Exactly one field is set per request.
type Request struct {
	CreateSlide  *CreateSlideRequest  `json:"createSlide,omitempty"`
	DeleteObject *DeleteObjectRequest `json:"deleteObject,omitempty"`
	InsertText   *InsertTextRequest   `json:"insertText,omitempty"`
}

// CreateSlideRequest appends a slide using a predefined layout.
type CreateSlideRequest struct {
	SlideLayoutReference LayoutReference `json:"slideLayoutReference"`
}

// LayoutReference names a predefined layout such as TITLE_AND_BODY.
type LayoutReference struct {
	PredefinedLayout string `json:"predefinedLayout"`
}

// DeleteObjectRequest removes a page or page element.
type DeleteObjectRequest struct {
	ObjectID string `json:"objectId"`
}

// InsertTextRequest inserts text into a shape.
type InsertTextRequest struct {
	ObjectID       string `json:"objectId"`
	Text           string `json:"text"`
	InsertionIndex int    `json:"insertionIndex"`
}

// Create makes an empty presentation with the given title.
func (c *SlidesClient) Create(ctx context.Context, title string) (*Presentation, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/presentations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doPresentation(req)
}

// Get fetches a presentation with its slides and placeholder elements.
func (c *SlidesClient) Get(ctx context.Context, presentationID string) (*Presentation, error) {
	endpoint := c.baseURL + "/presentations/" + url.PathEscape(presentationID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.doPresentation(req)
}

// BatchUpdate applies the requests to a presentation in order.
func (c *SlidesClient) BatchUpdate(ctx context.Context, presentationID string, requests []Request) error {
	if len(requests) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string][]Request{"requests": requests})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + "/presentations/" + url.PathEscape(presentationID) + ":batchUpdate"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("slides request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slides API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func (c *SlidesClient) doPresentation(req *http.Request) (*Presentation, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slides request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("slides API error (status %d): %s", resp.StatusCode, string(body))
	}

	var pres Presentation
	if err := json.NewDecoder(resp.Body).Decode(&pres); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &pres, nil
}

// DeckBuilder renders decks as Google Slides presentations and optionally
// files them into a Drive folder.
type DeckBuilder struct {
	slides   *SlidesClient
	drive    *DriveClient
	folderID string
}

// NewDeckBuilder creates a Slides-backed deck builder. drive and folderID may
// be empty when decks should stay in the Drive root.
func NewDeckBuilder(slidesClient *SlidesClient, driveClient *DriveClient, folderID string) *DeckBuilder {
	return &DeckBuilder{
		slides:   slidesClient,
		drive:    driveClient,
		folderID: folderID,
	}
}

// BuildDeck creates one presentation with a TITLE_AND_BODY slide per content
// entry and returns its presentation id. Slides whose layout delivered fewer
// than two placeholders keep whatever placeholders exist empty rather than
// failing the deck.
func (b *DeckBuilder) BuildDeck(ctx context.Context, title string, contents []slides.Content) (string, error) {
	pres, err := b.slides.Create(ctx, title)
	if err != nil {
		return "", fmt.Errorf("create presentation: %w", err)
	}

	layout := make([]Request, 0, len(contents)+1)
	// New presentations open with one default slide; drop it so the deck
	// holds exactly the planned slides.
	for _, page := range pres.Slides {
		layout = append(layout, Request{DeleteObject: &DeleteObjectRequest{ObjectID: page.ObjectID}})
	}
	for range contents {
		layout = append(layout, Request{CreateSlide: &CreateSlideRequest{
			SlideLayoutReference: LayoutReference{PredefinedLayout: "TITLE_AND_BODY"},
		}})
	}
	if err := b.slides.BatchUpdate(ctx, pres.PresentationID, layout); err != nil {
		return "", fmt.Errorf("lay out slides: %w", err)
	}

	// Re-fetch for the placeholder object ids the layout produced.
	pres, err = b.slides.Get(ctx, pres.PresentationID)
	if err != nil {
		return "", fmt.Errorf("fetch created slides: %w", err)
	}

	var texts []Request
	for i, content := range contents {
		if i >= len(pres.Slides) {
			break
		}
		elements := pres.Slides[i].PageElements
		if len(elements) > 0 && content.Title != "" {
			texts = append(texts, Request{InsertText: &InsertTextRequest{
				ObjectID: elements[0].ObjectID,
				Text:     content.Title,
			}})
		}
		if len(elements) > 1 && content.Body != "" {
			texts = append(texts, Request{InsertText: &InsertTextRequest{
				ObjectID: elements[1].ObjectID,
				Text:     content.Body,
			}})
		}
	}
	if err := b.slides.BatchUpdate(ctx, pres.PresentationID, texts); err != nil {
		return "", fmt.Errorf("fill slides: %w", err)
	}

	if b.drive != nil && b.folderID != "" {
		if err := b.drive.Move(ctx, pres.PresentationID, b.folderID); err != nil {
			slog.Warn("could not move presentation into folder",
				"presentation_id", pres.PresentationID, "folder_id", b.folderID, "error", err)
		}
	}

	return pres.PresentationID, nil
}
