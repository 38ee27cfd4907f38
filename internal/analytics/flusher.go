package analytics

// In this file: periodic snapshot flushing.

import (
	"context"
	"time"
)

// DefaultFlushInterval is how often AutoSave persists the snapshot.
const DefaultFlushInterval = 5 * time.Minute

// AutoSave persists the tracker state to store every interval until ctx is
// cancelled, then writes one final snapshot and returns.  Save failures are
// logged and swallowed: analytics must never take the server down.
func (t *Tracker) AutoSave(ctx context.Context, store Store, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.save(store)
			t.lg.Info("analytics: final snapshot written")
			return nil
		case <-ticker.C:
			t.save(store)
		}
	}
}

func (t *Tracker) save(store Store) {
	if err := store.Save(t.Snapshot()); err != nil {
		t.lg.Error("analytics: snapshot save failed", "error", err)
	}
}
