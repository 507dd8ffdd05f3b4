package api

import (
	"context"
	"sync"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"junction-admin-backend/internal/store"
	"junction-admin-backend/internal/view"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	prefs    view.KeyedStore
	webpush  *webpush.Options
	debounce time.Duration

	mu     sync.Mutex
	recons map[string]*view.Reconciler
}

// NewHandler creates a new API handler. debounce controls how long the
// sort-order reconcilers wait after the last sort change before writing.
func NewHandler(s store.Store, webpushOptions *webpush.Options, debounce time.Duration) *Handler {
	return &Handler{
		store:    s,
		prefs:    store.NewPreferenceStore(s),
		webpush:  webpushOptions,
		debounce: debounce,
		recons:   make(map[string]*view.Reconciler),
	}
}

// Close cancels every pending sort-order reconciliation. Called on shutdown
// so no write fires after the server is gone.
func (h *Handler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.recons {
		r.Stop()
	}
}

// reconciler returns the per-table reconciler, creating it on first use.
// Each table owns its own debounce timer; tables never interleave state.
func (h *Handler) reconciler(table string) *view.Reconciler {
	h.mu.Lock()
	defer h.mu.Unlock()
	if r, ok := h.recons[table]; ok {
		return r
	}
	var writer view.OrderWriter
	if table == tableJunctions {
		writer = junctionOrderWriter{store: h.store}
	} else {
		// The gateway table re-orders devices too.
		writer = deviceOrderWriter{store: h.store}
	}
	r := view.NewReconciler(writer, h.debounce)
	h.recons[table] = r
	return r
}

// deviceOrderWriter is the batched sort-order collaborator for device tables.
type deviceOrderWriter struct {
	store store.Store
}

func (w deviceOrderWriter) ApplyUpdates(updates []view.OrderUpdate) error {
	return w.store.ApplyDeviceSortOrders(context.Background(), updates)
}

// junctionOrderWriter is its counterpart for the junctions table.
type junctionOrderWriter struct {
	store store.Store
}

func (w junctionOrderWriter) ApplyUpdates(updates []view.OrderUpdate) error {
	return w.store.ApplyJunctionSortOrders(context.Background(), updates)
}
