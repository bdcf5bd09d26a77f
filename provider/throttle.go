package provider

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/vwid-io/vwid/api"
)

// MinInterval is the shortest permitted poll interval
const MinInterval = 30 * time.Second

// ThrottleWindow is the period during which repeated refreshes of the same
// client are collapsed into the previous one
const ThrottleWindow = MinInterval * 8 / 10

// Throttle guards the upstream poll. At most one refresh per window is sent
// for the same client, no matter how many callers ask for it.
type Throttle struct {
	mu      sync.Mutex
	clock   clock.Clock
	window  time.Duration
	updated time.Time
	client  api.Fetcher
}

// NewThrottle creates a refresh throttle with the given window
func NewThrottle(window time.Duration) *Throttle {
	t := &Throttle{
		clock:  clock.New(),
		window: window,
	}

	_ = bus.Subscribe(reset, t.Reset)

	return t
}

// Update refreshes the client unless the same client has been refreshed
// successfully within the throttle window. Callers are serialized.
func (t *Throttle) Update(ctx context.Context, client api.Fetcher) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.client == client && t.clock.Since(t.updated) <= t.window {
		log.TRACE.Printf("refresh skipped, last update %v ago", t.clock.Since(t.updated).Truncate(time.Second))
		return nil
	}

	if err := client.FetchAll(ctx); err != nil {
		return err
	}

	t.updated = t.clock.Now()
	t.client = client

	return nil
}

// Updated returns the time of the last successful refresh
func (t *Throttle) Updated() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updated
}

// Reset forgets the last client and forces the next update
func (t *Throttle) Reset() {
	t.mu.Lock()
	t.client = nil
	t.mu.Unlock()
}
