// Package emotion polls the optional emotion-detection service while a
// video session is active and fans readings out on a channel.
package emotion

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"bloom-quest-service/internal/domain"
)

// Poller samples the analyze_emotion endpoint on a fixed interval.
type Poller struct {
	baseURL  string
	interval time.Duration
	http     *http.Client
}

// NewPoller builds a poller for the emotion service.
func NewPoller(baseURL string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{
		baseURL:  strings.TrimRight(baseURL, "/"),
		interval: interval,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

// VideoFeedURL returns the continuous image feed URL of the service.
func (p *Poller) VideoFeedURL() string {
	return p.baseURL + "/video_feed"
}

// Sample fetches one reading.
func (p *Poller) Sample(ctx context.Context) (domain.EmotionReading, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/analyze_emotion", nil)
	if err != nil {
		return domain.EmotionReading{}, fmt.Errorf("build emotion request: %w", err)
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return domain.EmotionReading{}, fmt.Errorf("poll emotion: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.EmotionReading{}, fmt.Errorf("poll emotion: unexpected status %s", resp.Status)
	}

	var reading domain.EmotionReading
	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return domain.EmotionReading{}, fmt.Errorf("decode emotion reading: %w", err)
	}
	return reading, nil
}

// Run polls until the context is cancelled, delivering readings on the
// returned channel. Failed samples are logged and skipped.
func (p *Poller) Run(ctx context.Context) <-chan domain.EmotionReading {
	out := make(chan domain.EmotionReading, 8)
	go func() {
		defer close(out)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reading, err := p.Sample(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("emotion sample failed: %v", err)
					continue
				}
				select {
				case out <- reading:
				default:
					// drop when nobody is keeping up
				}
			}
		}
	}()
	return out
}
