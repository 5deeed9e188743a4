// Package thingspeak fetches raw feed records from a ThingSpeak-compatible
// channel API. The client owns the only mutable state of the ingest path: a
// single-slot cache of the last successful fetch and the newest observed
// entry id. Writes to both are full replacements under one mutex.
package thingspeak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/codeGROOVE-dev/retry"
)

const requestTimeout = 30 * time.Second

// Client is a feed client for one channel.
type Client struct {
	baseURL    string
	channelID  string
	apiKey     string
	httpClient *http.Client

	mu       sync.Mutex
	cached   []domain.FeedRecord // last successful fetch, replaced wholesale
	observed int                 // newest entry id seen by ObserveNewest
	channel  domain.ChannelInfo  // channel metadata from the last successful fetch
}

// NewClient creates a feed client. baseURL is the API root without a
// trailing slash, e.g. https://api.thingspeak.com. channelName labels the
// channel until the first successful fetch reports its own metadata.
func NewClient(baseURL, channelID, apiKey, channelName string) *Client {
	return &Client{
		baseURL:    baseURL,
		channelID:  channelID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		channel:    domain.ChannelInfo{ID: channelID, Name: channelName},
	}
}

// feedEnvelope mirrors the feeds.json response body.
type feedEnvelope struct {
	Channel struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"channel"`
	Feeds []domain.FeedRecord `json:"feeds"`
}

// FetchRawFeed fetches up to maxResults most recent records for the channel,
// sorted ascending by timestamp. A successful fetch overwrites the cache
// slot. On failure the previous successful fetch is returned instead when one
// exists (stale-read fallback); without a cache the error propagates wrapped
// in domain.ErrNetwork.
func (c *Client) FetchRawFeed(ctx context.Context, maxResults int) ([]domain.FeedRecord, error) {
	records, err := c.fetch(ctx, maxResults)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cached != nil {
			log.Printf("feed fetch failed, serving cached copy (%d records): %v", len(c.cached), err)
			return append([]domain.FeedRecord(nil), c.cached...), nil
		}
		return nil, err
	}

	sortByCreatedAt(records)

	c.mu.Lock()
	c.cached = records
	c.mu.Unlock()

	return append([]domain.FeedRecord(nil), records...), nil
}

// FetchSince fetches up to maxResults records and merges into the cache slot
// only those strictly newer than since and not already present by identity of
// creation timestamp. Returns the merged record set. Fetch failures fall back
// to the current cache the same way FetchRawFeed does.
func (c *Client) FetchSince(ctx context.Context, since time.Time, maxResults int) ([]domain.FeedRecord, error) {
	records, err := c.fetch(ctx, maxResults)
	if err != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.cached != nil {
			return append([]domain.FeedRecord(nil), c.cached...), nil
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[time.Time]struct{}, len(c.cached))
	for _, r := range c.cached {
		seen[r.CreatedAt] = struct{}{}
	}

	merged := append([]domain.FeedRecord(nil), c.cached...)
	for _, r := range records {
		if !r.CreatedAt.After(since) {
			continue
		}
		if _, ok := seen[r.CreatedAt]; ok {
			continue
		}
		merged = append(merged, r)
	}
	sortByCreatedAt(merged)

	c.cached = merged
	return append([]domain.FeedRecord(nil), merged...), nil
}

// Channel returns the channel metadata reported by the last successful fetch.
func (c *Client) Channel() domain.ChannelInfo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

// Cached returns the current cache slot contents, or nil if no fetch has
// succeeded yet.
func (c *Client) Cached() []domain.FeedRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return nil
	}
	return append([]domain.FeedRecord(nil), c.cached...)
}

// NewestEntryID returns the highest entry id in the cache slot, 0 when empty.
func (c *Client) NewestEntryID() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return newestEntryLocked(c.cached)
}

// NewestTimestamp returns the timestamp of the newest cached record.
func (c *Client) NewestTimestamp() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.cached) == 0 {
		return time.Time{}, false
	}
	return c.cached[len(c.cached)-1].CreatedAt, true
}

// ObserveNewest records the newest cached entry id as observed and reports
// whether it differs from the previous observation.
func (c *Client) ObserveNewest() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	newest := newestEntryLocked(c.cached)
	changed := newest != c.observed
	c.observed = newest
	return newest, changed
}

func newestEntryLocked(records []domain.FeedRecord) int {
	newest := 0
	for _, r := range records {
		if r.EntryID > newest {
			newest = r.EntryID
		}
	}
	return newest
}

// fetch performs one feed request with retries for transient failures.
func (c *Client) fetch(ctx context.Context, maxResults int) ([]domain.FeedRecord, error) {
	var records []domain.FeedRecord
	var channel domain.ChannelInfo

	err := retry.Do(
		func() error {
			var err error
			records, channel, err = c.fetchOnce(ctx, maxResults)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	c.mu.Lock()
	c.channel = channel
	c.mu.Unlock()

	return records, nil
}

func (c *Client) fetchOnce(ctx context.Context, maxResults int) ([]domain.FeedRecord, domain.ChannelInfo, error) {
	endpoint := fmt.Sprintf("%s/channels/%s/feeds.json", c.baseURL, c.channelID)

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("results", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, domain.ChannelInfo{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.ChannelInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("feed request returned HTTP %d", resp.StatusCode)
		// Client errors will not heal on retry.
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, domain.ChannelInfo{}, retry.Unrecoverable(err)
		}
		return nil, domain.ChannelInfo{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ChannelInfo{}, err
	}

	var envelope feedEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, domain.ChannelInfo{}, retry.Unrecoverable(fmt.Errorf("decoding feed response: %w", err))
	}

	channel := domain.ChannelInfo{
		ID:   strconv.Itoa(envelope.Channel.ID),
		Name: envelope.Channel.Name,
	}
	return envelope.Feeds, channel, nil
}

func sortByCreatedAt(records []domain.FeedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
}
