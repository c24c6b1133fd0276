package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultDriveBaseURL = "https://www.googleapis.com/drive/v3"

// DriveClient is a minimal Drive v3 REST client used only to file finished
// presentations into the configured folder.
type DriveClient struct {
	baseURL    string
	httpClient *http.Client
}

// DriveOption configures the Drive client.
type DriveOption func(*DriveClient)

// WithDriveBaseURL overrides the API base URL, used by tests.
func WithDriveBaseURL(baseURL string) DriveOption {
	return func(c *DriveClient) {
		c.baseURL = baseURL
	}
}

// NewDriveClient creates a Drive client on top of an authenticated HTTP
// client.
func NewDriveClient(httpClient *http.Client, opts ...DriveOption) *DriveClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &DriveClient{
		baseURL:    defaultDriveBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Parents returns the ids of the folders currently holding the file.
func (c *DriveClient) Parents(ctx context.Context, fileID string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/files/%s?fields=parents", c.baseURL, url.PathEscape(fileID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("drive API error (status %d): %s", resp.StatusCode, string(body))
	}

	var out struct {
		Parents []string `json:"parents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out.Parents, nil
}

// Move reparents the file into the folder, detaching it from its current
// parents.
func (c *DriveClient) Move(ctx context.Context, fileID, folderID string) error {
	parents, err := c.Parents(ctx, fileID)
	if err != nil {
		return err
	}

	query := url.Values{}
	query.Set("addParents", folderID)
	if len(parents) > 0 {
		query.Set("removeParents", strings.Join(parents, ","))
	}
	query.Set("fields", "id,parents")

	endpoint := fmt.Sprintf("%s/files/%s?%s", c.baseURL, url.PathEscape(fileID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("drive request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("drive API error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
