// Package client is a small HTTP client for the casematch API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client calls the casematch HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("casematch: base URL required")
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// SimilarCases returns up to topK cases ranked by similarity to caseNumber.
// topK <= 0 lets the server apply its default.
func (c *Client) SimilarCases(ctx context.Context, caseNumber string, topK int) (SearchResult, error) {
	req := searchRequest{CaseNumber: caseNumber}
	if topK > 0 {
		req.TopK = &topK
	}

	var resp SearchResult
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return SearchResult{}, err
	}
	return resp, nil
}

// Case fetches a single table row by case number.
func (c *Client) Case(ctx context.Context, caseNumber string) (Case, error) {
	var resp Case
	if err := c.get(ctx, "/cases/"+url.PathEscape(caseNumber), &resp); err != nil {
		return Case{}, err
	}
	return resp, nil
}

// Preview fetches the first rows of the table. rows <= 0 lets the server
// apply its default.
func (c *Client) Preview(ctx context.Context, rows int) (Preview, error) {
	path := "/table-preview"
	if rows > 0 {
		path += "?rows=" + strconv.Itoa(rows)
	}

	var resp Preview
	if err := c.get(ctx, path, &resp); err != nil {
		return Preview{}, err
	}
	return resp, nil
}

// Status reports the loaded table's name, row count, and vector dimensionality.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var resp Status
	if err := c.get(ctx, "/status", &resp); err != nil {
		return Status{}, err
	}
	return resp, nil
}

// Health reports service health. A degraded service returns a Health value
// and no error; transport failures return an error.
func (c *Client) Health(ctx context.Context) (Health, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return Health{}, err
	}

	httpResp, err := c.httpc.Do(httpReq)
	if err != nil {
		return Health{}, fmt.Errorf("casematch: health request: %w", err)
	}
	defer httpResp.Body.Close()

	// 503 still carries a health report body.
	if httpResp.StatusCode != http.StatusOK && httpResp.StatusCode != http.StatusServiceUnavailable {
		return Health{}, apiErrorFrom(httpResp)
	}

	var resp Health
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return Health{}, fmt.Errorf("casematch: decode health response: %w", err)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("casematch: encode request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if body == nil {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("casematch: build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("casematch: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("casematch: decode response: %w", err)
	}
	return nil
}
