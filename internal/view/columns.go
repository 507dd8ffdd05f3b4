package view

import (
	"encoding/json"
	"log"
)

// MoveDirection for column reordering.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// LoadColumns restores the ordered visible-column list stored under key.
// Missing or unparsable data, and a list that is empty after filtering out
// fields no longer known to the table, fall back to defaultVisible (itself
// filtered to knownFields). Schema drift never surfaces as an error.
func LoadColumns(store KeyedStore, key string, knownFields, defaultVisible []string) []string {
	raw, ok := store.Get(key)
	if !ok {
		return filterKnown(defaultVisible, knownFields)
	}
	var cols []string
	if err := json.Unmarshal([]byte(raw), &cols); err != nil {
		return filterKnown(defaultVisible, knownFields)
	}
	cols = filterKnown(cols, knownFields)
	if len(cols) == 0 {
		return filterKnown(defaultVisible, knownFields)
	}
	return cols
}

// SaveColumns persists the visible-column list under key. Persistence is
// best effort: a failing store is logged and the in-memory state stands.
func SaveColumns(store KeyedStore, key string, cols []string) {
	raw, err := json.Marshal(cols)
	if err != nil {
		log.Printf("failed to encode column preference for %s: %v", key, err)
		return
	}
	if err := store.Set(key, string(raw)); err != nil {
		log.Printf("failed to persist column preference for %s: %v", key, err)
	}
}

// ToggleColumn shows or hides a column. Enabling appends the field at the
// end; disabling removes it unless the field is required, in which case the
// list is returned unchanged.
func ToggleColumn(current []string, field string, visible bool, requiredFields []string) []string {
	if visible {
		for _, c := range current {
			if c == field {
				return current
			}
		}
		out := make([]string, 0, len(current)+1)
		out = append(out, current...)
		return append(out, field)
	}
	for _, r := range requiredFields {
		if r == field {
			return current
		}
	}
	out := make([]string, 0, len(current))
	for _, c := range current {
		if c != field {
			out = append(out, c)
		}
	}
	return out
}

// MoveColumn swaps the field with its immediate neighbor in the given
// direction. Absent fields and boundary moves are no-ops.
func MoveColumn(current []string, field string, dir MoveDirection) []string {
	idx := -1
	for i, c := range current {
		if c == field {
			idx = i
			break
		}
	}
	if idx < 0 {
		return current
	}
	var swap int
	switch dir {
	case MoveUp:
		swap = idx - 1
	case MoveDown:
		swap = idx + 1
	default:
		return current
	}
	if swap < 0 || swap >= len(current) {
		return current
	}
	out := make([]string, len(current))
	copy(out, current)
	out[idx], out[swap] = out[swap], out[idx]
	return out
}

func filterKnown(cols, known []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, k := range known {
		knownSet[k] = true
	}
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		if knownSet[c] {
			out = append(out, c)
		}
	}
	return out
}
