// Package google holds the thin REST glue for the Sheets, Slides and Drive
// backends plus OAuth token handling. The quiz logic never talks to these
// APIs directly.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth scopes used by the runs.
const (
	ScopeSpreadsheets         = "https://www.googleapis.com/auth/spreadsheets"
	ScopeSpreadsheetsReadonly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopePresentations        = "https://www.googleapis.com/auth/presentations"
	ScopeDrive                = "https://www.googleapis.com/auth/drive"
)

// TokenSource builds a token source from a credentials file. Service-account
// credentials need no token cache; authorized-user credentials require a
// previously cached token at tokenPath, which is refreshed transparently and
// persisted back after refresh. Failures here are fatal to the run.
func TokenSource(ctx context.Context, credentialsPath, tokenPath string, scopes ...string) (oauth2.TokenSource, error) {
	credData, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	if jwtCfg, err := google.JWTConfigFromJSON(credData, scopes...); err == nil {
		return jwtCfg.TokenSource(ctx), nil
	}

	cfg, err := google.ConfigFromJSON(credData, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("cached token %s: %w (run the authorization flow once to create it)", tokenPath, err)
	}

	return &cachingSource{
		path: tokenPath,
		src:  cfg.TokenSource(ctx, tok),
		last: tok.AccessToken,
	}, nil
}

// cachingSource persists refreshed tokens back to the cache file so the next
// run skips the refresh round trip.
type cachingSource struct {
	path string
	src  oauth2.TokenSource
	last string
}

func (s *cachingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := saveToken(s.path, tok); err != nil {
			slog.Warn("could not persist refreshed token", "path", s.path, "error", err)
		}
	}

	return tok, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
