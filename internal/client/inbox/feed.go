// Package inbox maintains the client-side view of the user's swaps: the
// received and sent lists plus the unread badge, refreshed when the realtime
// channel signals a change.
package inbox

import (
	"context"
	"sync"
	"time"
)

// Loader fetches a fresh snapshot from the server.
type Loader func(ctx context.Context) (*Snapshot, error)

// Snapshot is one consistent view of the inbox.
type Snapshot struct {
	Received []SwapRow
	Sent     []SwapRow
	Unread   int
}

// SwapRow is the display shape of one swap in either list.
type SwapRow struct {
	ID           string
	FoodName     string
	Counterparty string
	Status       string
	CreatedAt    time.Time
}

// Feed holds the latest snapshot and refetches it after invalidation
// signals. Bursts of signals within the debounce window collapse into a
// single fetch.
type Feed struct {
	load     Loader
	debounce time.Duration

	mu       sync.Mutex
	snapshot Snapshot

	signal   chan struct{}
	onUpdate func(Snapshot)
}

func NewFeed(load Loader, debounce time.Duration) *Feed {
	return &Feed{
		load:     load,
		debounce: debounce,
		signal:   make(chan struct{}, 1),
	}
}

// OnUpdate registers a callback invoked after each successful refetch. Set
// it before Run.
func (f *Feed) OnUpdate(fn func(Snapshot)) {
	f.onUpdate = fn
}

// Snapshot returns the latest fetched view.
func (f *Feed) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshot
}

// Invalidate signals that the server-side state changed. Never blocks; a
// signal while one is already pending is absorbed.
func (f *Feed) Invalidate() {
	select {
	case f.signal <- struct{}{}:
	default:
	}
}

// Refresh fetches a snapshot immediately, bypassing the debounce.
func (f *Feed) Refresh(ctx context.Context) error {
	snap, err := f.load(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.snapshot = *snap
	f.mu.Unlock()

	if f.onUpdate != nil {
		f.onUpdate(*snap)
	}
	return nil
}

// Run services invalidation signals until ctx is done. Each signal starts a
// debounce window; further signals inside the window are coalesced into the
// same fetch. Fetch errors are dropped; the stale snapshot stays visible
// until the next signal.
func (f *Feed) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-f.signal:
		}

		timer := time.NewTimer(f.debounce)
	drain:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-f.signal:
				// absorbed into the pending fetch
			case <-timer.C:
				break drain
			}
		}

		_ = f.Refresh(ctx)
	}
}
