// Package gemini implements the TextGenerator port against the Gemini
// REST API. The adapter only moves text; prompts and response parsing
// live in the core.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Elsie-Muhumuza/kambari/internal/ports/secondary"
)

const serviceName = "gemini"

// DefaultBaseURL is the Gemini generateContent endpoint root.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// DefaultModel matches the model the question prompts were tuned on.
const DefaultModel = "gemini-pro"

// ClientConfig configures the Gemini endpoint and HTTP behavior.
type ClientConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	cfg ClientConfig
}

// NewClient builds a Gemini client, filling config defaults.
func NewClient(cfg ClientConfig) *Client {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cfg: cfg}
}

// Request/response shapes for the generateContent endpoint. Only the
// fields the adapter reads are declared.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Invoke sends one prompt and returns the model's text response.
// Failures surface as *secondary.ExternalServiceError so callers can
// degrade to the built-in questions.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("no API key configured")}
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("encode request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, 200))}
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("decode response: %w", err)}
	}
	if parsed.Error != nil {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("API error %d: %s", parsed.Error.Code, parsed.Error.Message)}
	}
	if len(parsed.Candidates) == 0 {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("no candidates in response")}
	}

	var text strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", &secondary.ExternalServiceError{Service: serviceName, Err: fmt.Errorf("empty candidate text")}
	}
	return text.String(), nil
}

func truncate(data []byte, max int) string {
	s := strings.TrimSpace(string(data))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Ensure Client implements the port
var _ secondary.TextGenerator = (*Client)(nil)
