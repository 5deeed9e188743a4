// Package processed consumes a companion API that serves already-aggregated
// reports, sparing the local pipeline when one is deployed alongside.
package processed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

const requestTimeout = 15 * time.Second

// Client fetches pre-aggregated reports from the companion API. The first
// failure disables the client for the remainder of the process; the companion
// is optional infrastructure and a dead one must not add latency to every
// refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	disabled   atomic.Bool
}

// NewClient creates a companion API client. baseURL includes the API prefix,
// e.g. http://localhost:5000/api. An empty baseURL yields a client that is
// disabled from the start.
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
	if baseURL == "" {
		c.disabled.Store(true)
	}
	return c
}

// Enabled reports whether the client will still attempt requests.
func (c *Client) Enabled() bool {
	return !c.disabled.Load()
}

// FetchReport fetches the companion's aggregate report. Any failure latches
// the permanent disable and returns a wrapped domain.ErrNetwork; subsequent
// calls fail fast without touching the network.
func (c *Client) FetchReport(ctx context.Context) (*domain.AggregateReport, error) {
	if c.disabled.Load() {
		return nil, fmt.Errorf("%w: processed api disabled", domain.ErrNetwork)
	}

	report, err := c.fetch(ctx)
	if err != nil {
		c.disabled.Store(true)
		log.Printf("processed api failed, disabling for this process: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	return report, nil
}

func (c *Client) fetch(ctx context.Context) (*domain.AggregateReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/subjects", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("processed api returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var report domain.AggregateReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decoding processed response: %w", err)
	}
	return &report, nil
}
