// Package ai calls the hosted Gemini generateContent endpoint to produce
// short financial tips from the session's dashboard data.
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

	"financas/internal/core"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	requestTimeout = 60 * time.Second
)

// ErrMissingAPIKey is returned when the client was built without a key.
var ErrMissingAPIKey = errors.New("gemini API key not configured")

// Client is a minimal Gemini REST client.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel selects a model other than the default.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// NewClient creates a Gemini client. An empty key is allowed; calls will
// fail with ErrMissingAPIKey so the dashboard can degrade gracefully.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire types for the generateContent endpoint.
type (
	generateRequest struct {
		Contents []content `json:"contents"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}
	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
	}
)

// GenerateTips asks the model for four short, practical financial tips based
// on the current overview and expense listing.
func (c *Client) GenerateTips(ctx context.Context, ov core.Overview, expenses []core.Expense) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: BuildPrompt(ov, expenses)}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// Tie the upstream timeout to the incoming ctx so cancellation propagates
	cctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(cctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini API connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini API error: %d - %s", resp.StatusCode, string(snippet))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned an empty response")
	}
	return text, nil
}

// BuildPrompt renders the tips prompt from the dashboard numbers and the
// expense listing.
func BuildPrompt(ov core.Overview, expenses []core.Expense) string {
	var listing strings.Builder
	listing.WriteString("Nome\tValor\tCategoria\n")
	for _, e := range expenses {
		fmt.Fprintf(&listing, "%s\tR$ %.2f\t%s\n", e.Name, e.Amount.Reais(), e.Category)
	}

	return fmt.Sprintf(`Renda mensal: R$ %.2f
Total de gastos: R$ %.2f
Saldo: R$ %.2f

Despesas:
%s
Gere 4 dicas financeiras curtas, práticas e objetivas.`,
		ov.Income.Reais(), ov.Spent.Reais(), ov.Balance.Reais(), listing.String())
}
