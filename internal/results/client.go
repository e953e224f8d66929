// Package results submits completed quiz results to the external test
// endpoint. Submission is fire-and-forget from the UI's perspective: the
// caller logs failures and never blocks the results screen on them.
package results

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bloom-quest-service/internal/domain"
)

// DefaultEndpoint matches the original backend contract.
const DefaultEndpoint = "http://localhost:8080/test"

// Client posts quiz results as JSON.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a result client for the given endpoint. An empty
// endpoint falls back to the default.
func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts the full result document. There is no response contract
// beyond HTTP success.
func (c *Client) Submit(ctx context.Context, result domain.QuizResult) error {
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build result request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("submit result: unexpected status %s", resp.Status)
	}
	return nil
}
