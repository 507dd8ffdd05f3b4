package view

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter collects every batch it receives.
type recordingWriter struct {
	mu      sync.Mutex
	batches [][]OrderUpdate
	fired   chan struct{}
	err     error
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{fired: make(chan struct{}, 16)}
}

func (w *recordingWriter) ApplyUpdates(updates []OrderUpdate) error {
	w.mu.Lock()
	w.batches = append(w.batches, updates)
	w.mu.Unlock()
	w.fired <- struct{}{}
	return w.err
}

func (w *recordingWriter) calls() [][]OrderUpdate {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([][]OrderUpdate, len(w.batches))
	copy(out, w.batches)
	return out
}

func waitForWrite(t *testing.T, w *recordingWriter) {
	t.Helper()
	select {
	case <-w.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the reconciler to write")
	}
}

func roots(ids ...int64) []*Node {
	out := make([]*Node, len(ids))
	for i, id := range ids {
		out[i] = &Node{Entity: Entity{ID: id}}
	}
	return out
}

func TestReconcilerSuppressesFirstObservation(t *testing.T) {
	w := newRecordingWriter()
	r := NewReconciler(w, 20*time.Millisecond)

	assert.False(t, r.Primed())
	r.Observe(roots(1, 2, 3))
	assert.True(t, r.Primed())

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, w.calls(), "the mount-time observation must never write")
}

func TestReconcilerDebounceCoalesces(t *testing.T) {
	w := newRecordingWriter()
	r := NewReconciler(w, 50*time.Millisecond)

	r.Observe(roots(1, 2, 3)) // mount, suppressed

	// A burst of sort clicks inside one debounce window.
	r.Observe(roots(3, 2, 1))
	r.Observe(roots(2, 3, 1))
	r.Observe(roots(1, 3, 2))

	waitForWrite(t, w)

	calls := w.calls()
	require.Len(t, calls, 1, "a burst must collapse into a single write")
	assert.Equal(t, []OrderUpdate{
		{ID: 1, SortOrder: 1000},
		{ID: 3, SortOrder: 2000},
		{ID: 2, SortOrder: 3000},
	}, calls[0])
}

func TestReconcilerWritesAgainAfterReturningToIdle(t *testing.T) {
	w := newRecordingWriter()
	r := NewReconciler(w, 20*time.Millisecond)

	r.Observe(roots(1, 2)) // mount
	r.Observe(roots(2, 1))
	waitForWrite(t, w)

	r.Observe(roots(1, 2))
	waitForWrite(t, w)

	require.Len(t, w.calls(), 2)
}

func TestReconcilerWriteFailureDoesNotWedge(t *testing.T) {
	w := newRecordingWriter()
	w.err = errors.New("backend rejected the batch")
	r := NewReconciler(w, 20*time.Millisecond)

	r.Observe(roots(1)) // mount
	r.Observe(roots(1))
	waitForWrite(t, w)

	// Still accepts and emits the next reconciliation.
	r.Observe(roots(1))
	waitForWrite(t, w)
	require.Len(t, w.calls(), 2)
}

func TestReconcilerStopCancelsPendingWrite(t *testing.T) {
	w := newRecordingWriter()
	r := NewReconciler(w, 40*time.Millisecond)

	r.Observe(roots(1, 2)) // mount
	r.Observe(roots(2, 1))
	r.Stop()

	time.Sleep(120 * time.Millisecond)
	assert.Empty(t, w.calls(), "no write may fire after teardown")

	// Observations after Stop are ignored entirely.
	r.Observe(roots(1, 2))
	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, w.calls())
}

func TestReconcilerDefaultDelay(t *testing.T) {
	r := NewReconciler(newRecordingWriter(), 0)
	assert.Equal(t, DefaultDebounce, r.delay)
}
