package util

import (
	"sync"
)

// Tee distributes parameters to subscribers
type Tee struct {
	mu   sync.Mutex
	recv []chan<- Param
}

// Attach creates a new receiver channel and attaches it to the Tee
func (t *Tee) Attach() <-chan Param {
	out := make(chan Param)
	t.add(out)
	return out
}

func (t *Tee) add(out chan<- Param) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recv = append(t.recv, out)
}

// Run starts parameter distribution
func (t *Tee) Run(in <-chan Param) {
	for msg := range in {
		t.mu.Lock()
		for _, recv := range t.recv {
			recv <- msg
		}
		t.mu.Unlock()
	}

	t.mu.Lock()
	for _, recv := range t.recv {
		close(recv)
	}
	t.mu.Unlock()
}
