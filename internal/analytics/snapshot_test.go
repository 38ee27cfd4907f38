package analytics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_missingSnapshotStartsFresh(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "does-not-exist.json"))

	tr := Load(store, nil)
	require.NotNil(t, tr)
	s := tr.Summarize()
	assert.Zero(t, s.TotalRequests)
	assert.Zero(t, s.TotalToolCalls)
}

func TestLoad_corruptSnapshotStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	tr := Load(NewFileStore(path), nil)
	require.NotNil(t, tr)
	assert.Zero(t, tr.Summarize().TotalRequests)
}

func TestLoad_prunesStaleHourBuckets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	store := NewFileStore(path)
	st := zeroState()
	st.Hours["2000-01-01T00"] = 7
	require.NoError(t, store.Save(st))

	tr := Load(store, nil)
	assert.Empty(t, tr.Snapshot().Hours, "ancient buckets must not survive a reload")
}

func TestFileStore_roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	store := NewFileStore(path)

	tr := New(nil)
	tr.RecordRequest("GET", "/health", "1.2.3.4", "curl/8")
	tr.RecordToolCall("create_note", "1.2.3.4")
	require.NoError(t, store.Save(tr.Snapshot()))

	tr2 := Load(store, nil)
	s := tr2.Summarize()
	assert.Equal(t, 1, s.TotalRequests)
	assert.Equal(t, 1, s.TotalToolCalls)
	require.NotEmpty(t, s.Recent)
	assert.Equal(t, "create_note", s.Recent[0].Name, "ring order survives persistence")
}

func TestFileStore_saveOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analytics.json")
	store := NewFileStore(path)

	tr := New(nil)
	tr.RecordToolCall("get_note", "1.1.1.1")
	require.NoError(t, store.Save(tr.Snapshot()))

	// a second save with fewer counters replaces the file entirely.
	require.NoError(t, store.Save(zeroState()))
	st, err := store.Load()
	require.NoError(t, err)
	assert.Zero(t, st.TotalToolCalls)
	assert.Empty(t, st.Tools)
}

// failStore counts Save calls and always fails.
type failStore struct {
	mu    sync.Mutex
	saves int
}

func (fs *failStore) Load() (*State, error) { return nil, errors.New("no snapshot") }

func (fs *failStore) Save(*State) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.saves++
	return errors.New("disk full")
}

func (fs *failStore) count() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.saves
}

func TestAutoSave_flushesPeriodicallyAndOnShutdown(t *testing.T) {
	store := &failStore{}
	tr := New(nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- tr.AutoSave(ctx, store, 10*time.Millisecond)
	}()

	// wait for at least two periodic flushes.
	require.Eventually(t, func() bool { return store.count() >= 2 }, time.Second, 5*time.Millisecond)

	before := store.count()
	cancel()
	require.NoError(t, <-done, "save failures are swallowed, AutoSave returns nil")
	assert.Greater(t, store.count(), before, "final snapshot on shutdown")
}
