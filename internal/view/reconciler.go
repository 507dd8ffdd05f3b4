package view

import (
	"log"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period the Reconciler waits for after the
// last observed sort change before writing backend sort orders.
const DefaultDebounce = 2 * time.Second

// orderSpacing leaves gaps between persisted sort orders so a later manual
// reorder can slot in between neighbors without renumbering everything.
const orderSpacing = 1000

// Reconciler recomputes persisted sort orders after user-driven re-sorts and
// emits them as a single debounced batch. Two states: idle and pending. A
// new observation while pending restarts the timer, so a burst of sort
// clicks produces exactly one write reflecting the final order.
//
// The very first observation after construction represents the table
// initializing with its default or persisted sort; it marks the reconciler
// as primed and never writes. Only subsequent, user-driven observations
// schedule a write.
type Reconciler struct {
	writer OrderWriter
	delay  time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending []OrderUpdate
	primed  bool
	stopped bool
}

// NewReconciler creates a reconciler writing through w. A non-positive delay
// selects DefaultDebounce.
func NewReconciler(w OrderWriter, delay time.Duration) *Reconciler {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Reconciler{writer: w, delay: delay}
}

// Observe records the current root-level order. The first call only primes
// the reconciler; every later call (re)starts the debounce timer with sort
// orders derived from the given roots.
func (r *Reconciler) Observe(roots []*Node) {
	updates := make([]OrderUpdate, len(roots))
	for i, n := range roots {
		updates[i] = OrderUpdate{ID: n.Entity.ID, SortOrder: (i + 1) * orderSpacing}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}
	if !r.primed {
		r.primed = true
		return
	}
	r.pending = updates
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.delay, r.fire)
}

// Primed reports whether the mount-time observation has already happened.
func (r *Reconciler) Primed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.primed
}

// Stop cancels any pending write. A stopped reconciler ignores further
// observations; nothing fires after teardown.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = nil
}

// fire runs on timer expiry: emit the batch and return to idle. A failing
// writer is the collaborator's problem to surface or retry; the reconciler
// never wedges on it.
func (r *Reconciler) fire() {
	r.mu.Lock()
	updates := r.pending
	r.pending = nil
	r.timer = nil
	stopped := r.stopped
	r.mu.Unlock()

	if stopped || len(updates) == 0 {
		return
	}
	if err := r.writer.ApplyUpdates(updates); err != nil {
		log.Printf("sort-order reconciliation write failed: %v", err)
	}
}
