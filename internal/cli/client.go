package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lessensdelharmonie/harmonie/internal/api/dto/v1/contact"
	"github.com/lessensdelharmonie/harmonie/internal/version"
)

// maxResponseBytes bounds how much of a response body the client reads
const maxResponseBytes = 1 << 20

// Client posts contact submissions to a running site
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the site at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Submit sends a raw payload to the contact endpoint and decodes the verdict.
// A non-2xx status is not an error as long as the body is a submission result.
func (c *Client) Submit(ctx context.Context, payload []byte, acceptLanguage string) (*contact.SubmissionResult, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/contact", bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	var result contact.SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	return &result, resp.StatusCode, nil
}
