package thingspeak

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/blaisecz/sleep-monitor/internal/domain"
)

// Poller periodically fetches incremental feed data and invokes onChange
// when the newest entry id differs from the previously observed one.
// Polling is opt-in: nothing runs until Start is called, and Stop releases
// the timer.
type Poller struct {
	client     *Client
	interval   time.Duration
	maxResults int
	onChange   func(records []domain.FeedRecord)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller over client. onChange runs on the poller
// goroutine; it must not block for long.
func NewPoller(client *Client, interval time.Duration, maxResults int, onChange func([]domain.FeedRecord)) *Poller {
	return &Poller{
		client:     client,
		interval:   interval,
		maxResults: maxResults,
		onChange:   onChange,
	}
}

// Start begins polling. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	// Prime the observed entry id so a restart does not re-announce data
	// that was already seen.
	p.client.ObserveNewest()

	go p.run(ctx, p.done)
}

// Stop halts polling and releases the timer. In-flight fetches are not
// cancelled mid-request beyond context cancellation; their results are
// simply ignored.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// run owns the ticker loop. The done channel is passed in because Stop
// clears the struct field before waiting; run must close the channel it was
// started with, not whatever the field holds by then.
func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	since, ok := p.client.NewestTimestamp()

	var records []domain.FeedRecord
	var err error
	if ok {
		records, err = p.client.FetchSince(ctx, since, p.maxResults)
	} else {
		records, err = p.client.FetchRawFeed(ctx, p.maxResults)
	}
	if err != nil {
		log.Printf("poll fetch failed: %v", err)
		return
	}

	if _, changed := p.client.ObserveNewest(); changed && p.onChange != nil {
		p.onChange(records)
	}
}
