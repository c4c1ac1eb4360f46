// Package kroki is a thin HTTP client for a Kroki-compatible diagram
// rendering service.
package kroki

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://kroki.io"

// ClientOption configures the client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (e.g. a self-hosted Kroki instance).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// Client is a custom HTTP client for the Kroki rendering API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Kroki API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RenderError is a non-2xx reply from the rendering service. The body holds
// the service's diagnostic text.
type RenderError struct {
	StatusCode int
	Body       string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("kroki: status %d: %s", e.StatusCode, e.Body)
}

// RenderSVG renders a Mermaid definition to SVG markup.
func (c *Client) RenderSVG(ctx context.Context, definition string) (string, error) {
	body, err := c.render(ctx, definition, "svg")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// RenderPNG renders a Mermaid definition to a raster PNG.
func (c *Client) RenderPNG(ctx context.Context, definition string) ([]byte, error) {
	return c.render(ctx, definition, "png")
}

func (c *Client) render(ctx context.Context, definition, format string) ([]byte, error) {
	url := fmt.Sprintf("%s/mermaid/%s", c.baseURL, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(definition))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RenderError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
