package provider

import (
	"errors"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/benbjohnson/clock"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/util"
)

var (
	bus = EventBus.New()
	log = util.NewLogger("cache")
)

const reset = "reset"

// ResetCached invalidates all cached values and forces the next refresh
func ResetCached() {
	log.DEBUG.Println("reset")
	bus.Publish(reset)
}

// cached wraps a getter with a cache
type cached[T any] struct {
	mux     sync.Mutex
	clock   clock.Clock
	updated time.Time
	cache   time.Duration
	val     T
	err     error
}

// Cached wraps a getter with a cache
func Cached[T any](g func() (T, error), cache time.Duration) func() (T, error) {
	return cachedWithClock(g, cache, clock.New())
}

func cachedWithClock[T any](g func() (T, error), cache time.Duration, clock clock.Clock) func() (T, error) {
	c := &cached[T]{
		clock: clock,
		cache: cache,
	}

	_ = bus.Subscribe(reset, c.reset)

	return func() (T, error) {
		c.mux.Lock()
		defer c.mux.Unlock()

		if c.mustUpdate() {
			c.val, c.err = g()
			c.updated = c.clock.Now()
		}

		return c.val, c.err
	}
}

func (c *cached[T]) reset() {
	c.mux.Lock()
	c.updated = time.Time{}
	c.mux.Unlock()
}

// mustUpdate refreshes expired values and never keeps errors that ask for a retry
func (c *cached[T]) mustUpdate() bool {
	return c.updated.IsZero() || c.clock.Since(c.updated) > c.cache || errors.Is(c.err, api.ErrMustRetry)
}
