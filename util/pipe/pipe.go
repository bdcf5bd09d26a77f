package pipe

import (
	"reflect"
	"time"

	"github.com/thoas/go-funk"
	"github.com/vwid-io/vwid/util"
)

// Piper is the interface that data flow plumbers must implement
type Piper interface {
	Pipe(in <-chan util.Param) <-chan util.Param
}

// Dropper drops parameters by key
type Dropper struct {
	drop []string
}

// NewDropper creates Dropper
func NewDropper(drop ...string) Piper {
	l := &Dropper{
		drop: drop,
	}
	return l
}

// Pipe creates a new filtered output channel for given input channel
func (l *Dropper) Pipe(in <-chan util.Param) <-chan util.Param {
	out := make(chan util.Param)

	go func() {
		defer close(out)
		for p := range in {
			if !funk.ContainsString(l.drop, p.Key) {
				out <- p
			}
		}
	}()

	return out
}

type cacheItem struct {
	updated time.Time
	val     interface{}
}

// Deduplicator allows filtering of channel data by given criteria
type Deduplicator struct {
	interval time.Duration
	filter   []string
	cache    map[string]cacheItem
}

// NewDeduplicator creates Deduplicator. Unchanged values of the filtered keys
// (all keys if none given) are suppressed until interval has elapsed.
func NewDeduplicator(interval time.Duration, filter ...string) Piper {
	l := &Deduplicator{
		interval: interval,
		filter:   filter,
		cache:    make(map[string]cacheItem),
	}

	return l
}

func (l *Deduplicator) pipe(in <-chan util.Param, out chan<- util.Param) {
	defer close(out)

	for p := range in {
		key := p.UniqueID()
		item, ok := l.cache[key]
		applicable := len(l.filter) == 0 || funk.ContainsString(l.filter, p.Key)

		if applicable && ok && time.Since(item.updated) < l.interval && reflect.DeepEqual(p.Val, item.val) {
			continue
		}

		l.cache[key] = cacheItem{updated: time.Now(), val: p.Val}
		out <- p
	}
}

// Pipe creates a new filtered output channel for given input channel
func (l *Deduplicator) Pipe(in <-chan util.Param) <-chan util.Param {
	out := make(chan util.Param)
	go l.pipe(in, out)
	return out
}
