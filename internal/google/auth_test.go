package google

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type staticTokenSource struct {
	tok *oauth2.Token
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.tok, nil
}

func TestCachingSource_PersistsRefreshedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	fresh := &oauth2.Token{
		AccessToken:  "fresh",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	src := &cachingSource{
		path: path,
		src:  &staticTokenSource{tok: fresh},
		last: "stale",
	}

	tok, err := src.Token()
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok.AccessToken != "fresh" {
		t.Errorf("access token = %q", tok.AccessToken)
	}

	saved, err := tokenFromFile(path)
	if err != nil {
		t.Fatalf("read persisted token: %v", err)
	}
	if saved.AccessToken != "fresh" || saved.RefreshToken != "refresh" {
		t.Errorf("persisted token = %+v", saved)
	}
}

func TestCachingSource_SkipsWriteWhenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")

	src := &cachingSource{
		path: path,
		src:  &staticTokenSource{tok: &oauth2.Token{AccessToken: "same"}},
		last: "same",
	}

	if _, err := src.Token(); err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("token file written without a refresh")
	}
}

func TestTokenSource_MissingCredentials(t *testing.T) {
	_, err := TokenSource(context.Background(),
		filepath.Join(t.TempDir(), "nope.json"), "token.json", ScopeSpreadsheets)
	if err == nil {
		t.Fatal("TokenSource() should fail without credentials")
	}
}

func TestTokenSource_AuthorizedUserNeedsCachedToken(t *testing.T) {
	dir := t.TempDir()

	creds := filepath.Join(dir, "credentials.json")
	payload := map[string]map[string]any{
		"installed": {
			"client_id":     "id.apps.googleusercontent.com",
			"client_secret": "secret",
			"redirect_uris": []string{"http://localhost"},
			"auth_uri":      "https://accounts.google.com/o/oauth2/auth",
			"token_uri":     "https://oauth2.googleapis.com/token",
		},
	}
	data, _ := json.Marshal(payload)
	if err := os.WriteFile(creds, data, 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	_, err := TokenSource(context.Background(), creds,
		filepath.Join(dir, "token.json"), ScopeSpreadsheets)
	if err == nil {
		t.Fatal("TokenSource() should fail without a cached token")
	}
}
