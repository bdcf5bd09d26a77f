package util

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Waiter provides monitoring of update timeouts and reception of the initial value
type Waiter struct {
	mu      sync.Mutex
	cond    *sync.Cond
	updated time.Time
	timeout time.Duration
}

// NewWaiter creates new waiter. A zero timeout disables staleness checks.
func NewWaiter(timeout time.Duration) *Waiter {
	p := &Waiter{
		timeout: timeout,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// Update is called when data has been received. Update resets the timeout counter.
func (p *Waiter) Update() {
	p.mu.Lock()
	p.updated = time.Now()
	p.mu.Unlock()

	p.cond.Broadcast()
}

// Updated returns the time of the last update
func (p *Waiter) Updated() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.updated
}

// Wait blocks until the initial update has been received or the context is done
func (p *Waiter) Wait(ctx context.Context) error {
	c := make(chan struct{})

	go func() {
		defer close(c)

		p.mu.Lock()
		defer p.mu.Unlock()

		for p.updated.IsZero() && ctx.Err() == nil {
			p.cond.Wait()
		}
	}()

	// wake up the waiting goroutine on cancellation
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			p.mu.Lock()
			p.cond.Broadcast()
			p.mu.Unlock()
		case <-stop:
		}
	}()

	select {
	case <-c:
	case <-ctx.Done():
		<-c
	}

	if p.Updated().IsZero() {
		return fmt.Errorf("timeout: %w", ctx.Err())
	}

	return nil
}

// Overdue returns an error if no update was received or the last update exceeded the timeout
func (p *Waiter) Overdue() error {
	updated := p.Updated()

	if updated.IsZero() {
		return fmt.Errorf("no update received")
	}

	if elapsed := time.Since(updated); p.timeout != 0 && elapsed > p.timeout {
		return fmt.Errorf("outdated: %v", elapsed.Round(time.Second))
	}

	return nil
}
