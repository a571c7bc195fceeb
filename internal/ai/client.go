// Package ai provides a minimal client for OpenAI-compatible
// chat-completion endpoints. One buffered POST/response cycle, no
// retries, no streaming.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/solvik/daybook/internal/entry"
)

// Client-level errors.
var (
	// ErrMissingAPIKey is returned before any network call when the
	// configured api key is empty. Recoverable by visiting settings.
	ErrMissingAPIKey = errors.New("API key is missing")
	// ErrMalformedResponse is returned when a success response does not
	// contain the expected completion text.
	ErrMalformedResponse = errors.New("failed to parse AI response")
)

// StatusError carries a non-2xx HTTP status and the raw response body.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI request failed with status %d: %s", e.Code, e.Body)
}

// Message is a single turn of a chat payload.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client posts chat-completion requests.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client with a bounded request timeout so a hung
// endpoint cannot stall the caller indefinitely.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewClientWithHTTPClient creates a Client using the given HTTP client
// (useful for testing).
func NewClientWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// Complete sends a two-message chat payload (system instruction plus
// user prompt) to {BaseURL}/chat/completions and returns the generated
// text. Fails fast with ErrMissingAPIKey when no key is configured.
func (c *Client) Complete(ctx context.Context, cfg entry.AIConfig, system, user string) (string, error) {
	if cfg.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	reqBody, err := json.Marshal(chatRequest{
		Model: cfg.Model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("AI request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ErrMalformedResponse
	}
	if len(parsed.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return parsed.Choices[0].Message.Content, nil
}
