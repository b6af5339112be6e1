// Package visitor keeps the displayed visitor count fresh by re-reading
// it on a fixed interval, independent of any read a user action triggers.
package visitor

import (
	"context"
	"log"
	"sync"
	"time"
)

// DefaultInterval matches the site's historical polling cadence.
const DefaultInterval = 5 * time.Second

// CountSource is the read the poller repeats; the data access facade
// satisfies it.
type CountSource interface {
	FetchVisitorCount(ctx context.Context) (int, error)
}

// Poller re-invokes the count read on a fixed interval. Reads overlap when
// one outlives the interval, so every request is tagged with a
// monotonically increasing sequence number and a completion older than the
// last applied one is discarded instead of overwriting newer state.
type Poller struct {
	source   CountSource
	interval time.Duration
	onCount  func(int)

	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	count   int
}

// NewPoller builds a poller; onCount is invoked for every applied reading
// and may be nil. A non-positive interval falls back to DefaultInterval.
func NewPoller(source CountSource, interval time.Duration, onCount func(int)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{source: source, interval: interval, onCount: onCount}
}

// Start polls until ctx is cancelled. The first read fires immediately;
// each read runs in its own goroutine so a slow fallback-path read never
// delays the ticker.
func (p *Poller) Start(ctx context.Context) {
	go p.poll(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				go p.poll(ctx)
			}
		}
	}()
}

// Count returns the most recently applied reading.
func (p *Poller) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *Poller) poll(ctx context.Context) {
	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	p.mu.Unlock()

	count, err := p.source.FetchVisitorCount(ctx)
	if err != nil {
		// The facade answers locally on failure; an error here means even
		// the fallback store is unusable. Keep the last good reading.
		log.Printf("[visitor] poll failed: %v", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq <= p.applied {
		log.Printf("[visitor] discarding stale reading seq=%d count=%d", seq, count)
		return
	}
	p.applied = seq
	p.count = count
	if p.onCount != nil {
		p.onCount(count)
	}
}
