// Package assess talks to the career-assessment service and writes the
// returned recommendation back to the user's profile.
package assess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"bloom-quest-service/internal/domain"
)

// ProfileStore persists career recommendations per user.
type ProfileStore interface {
	SetRecommendation(ctx context.Context, userID, recommendation string) error
}

// Client posts assessments to the external endpoint.
type Client struct {
	baseURL  string
	http     *http.Client
	profiles ProfileStore
}

// NewClient builds an assessment client. profiles may be nil when no
// write-back is wanted.
func NewClient(baseURL string, profiles ProfileStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
		profiles: profiles,
	}
}

type assessResponse struct {
	Recommendation string `json:"recommendation"`
}

// Submit posts the assessment and returns the recommended interest.
func (c *Client) Submit(ctx context.Context, assessment domain.Assessment) (string, error) {
	body, err := json.Marshal(assessment)
	if err != nil {
		return "", fmt.Errorf("marshal assessment: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assess", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build assess request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("post assessment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("post assessment: unexpected status %s", resp.Status)
	}

	var decoded assessResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode assessment response: %w", err)
	}
	return decoded.Recommendation, nil
}

// Evaluate submits the assessment and, when a recommendation comes back,
// stores it on the user's profile.
func (c *Client) Evaluate(ctx context.Context, userID string, assessment domain.Assessment) (string, error) {
	recommendation, err := c.Submit(ctx, assessment)
	if err != nil {
		return "", err
	}
	if recommendation != "" && c.profiles != nil {
		if err := c.profiles.SetRecommendation(ctx, userID, recommendation); err != nil {
			return recommendation, fmt.Errorf("store recommendation: %w", err)
		}
	}
	return recommendation, nil
}
