package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/solvik/daybook/internal/entry"
)

func testConfig(baseURL string) entry.AIConfig {
	return entry.AIConfig{
		APIKey:  "sk-test",
		BaseURL: baseURL,
		Model:   "gpt-3.5-turbo",
	}
}

func TestComplete_Success(t *testing.T) {
	var gotAuth, gotContentType, gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Dear diary..."}}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	got, err := c.Complete(context.Background(), testConfig(srv.URL), "be helpful", "summarize my day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Dear diary..." {
		t.Errorf("expected completion text, got %q", got)
	}

	if gotAuth != "Bearer sk-test" {
		t.Errorf("expected bearer auth header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("expected /chat/completions path, got %q", gotPath)
	}

	if gotBody["model"] != "gpt-3.5-turbo" {
		t.Errorf("expected model in payload, got %v", gotBody["model"])
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("expected two messages, got %v", gotBody["messages"])
	}
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	if first["role"] != "system" || first["content"] != "be helpful" {
		t.Errorf("unexpected system message: %v", first)
	}
	if second["role"] != "user" || second["content"] != "summarize my day" {
		t.Errorf("unexpected user message: %v", second)
	}
}

func TestComplete_TrailingSlashBaseURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	c := NewClient()
	if _, err := c.Complete(context.Background(), testConfig(srv.URL+"/"), "s", "u"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("expected normalized path, got %q", gotPath)
	}
}

func TestComplete_MissingAPIKey(t *testing.T) {
	dialed := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dialed = true
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.APIKey = ""

	c := NewClient()
	_, err := c.Complete(context.Background(), cfg, "s", "u")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	if dialed {
		t.Error("expected no network call with an empty api key")
	}
}

func TestComplete_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	c := NewClient()
	_, err := c.Complete(context.Background(), testConfig(srv.URL), "s", "u")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", statusErr.Code)
	}
	if !strings.Contains(statusErr.Body, "bad key") {
		t.Errorf("expected raw body in error, got %q", statusErr.Body)
	}
}

func TestComplete_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>oops</html>"},
		{"empty choices", `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient()
			_, err := c.Complete(context.Background(), testConfig(srv.URL), "s", "u")
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestComplete_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient()
	if _, err := c.Complete(ctx, testConfig(srv.URL), "s", "u"); err == nil {
		t.Error("expected error for cancelled context")
	}
}
