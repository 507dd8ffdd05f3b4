package view

// Entity is a flat row handed to the engine by the caller (a device, a
// junction, or anything else with an integer id). The engine never fetches
// data itself; it only reshapes the snapshot it is given.
type Entity struct {
	ID          int64
	ParentID    *int64
	IsContainer bool
	SortOrder   int
	Fields      map[string]any
}

// Node wraps one Entity inside a forest. Level is the depth from the root
// (0 for roots); a child's Level is always its parent's Level plus one.
type Node struct {
	Entity   Entity
	Children []*Node
	Level    int
}

// Forest is the ordered result of a hierarchy build. DroppedEdges counts
// parent references that were discarded because they formed a cycle.
type Forest struct {
	Roots        []*Node
	DroppedEdges int
}

// KeyedStore is the persistence port for column and sort preferences. A
// localStorage-style key/value store on the client, a database table on the
// server, or a plain map in tests. Implementations must tolerate missing and
// corrupt values; Get reports presence, Set may fail.
type KeyedStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// OrderUpdate carries one entity's recomputed backend sort order.
type OrderUpdate struct {
	ID        int64 `json:"id"`
	SortOrder int   `json:"sortOrder"`
}

// OrderWriter receives the batched sort-order updates produced by the
// Reconciler, at most once per debounce window.
type OrderWriter interface {
	ApplyUpdates(updates []OrderUpdate) error
}
