package view

import (
	"encoding/json"
	"log"
)

// LoadSort restores the sort descriptor stored under key, falling back to
// def when the value is missing, unparsable or incomplete.
func LoadSort(store KeyedStore, key string, def SortDescriptor) SortDescriptor {
	raw, ok := store.Get(key)
	if !ok {
		return def
	}
	var d SortDescriptor
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return def
	}
	if d.Field == "" || (d.Direction != Ascending && d.Direction != Descending) {
		return def
	}
	return d
}

// SaveSort persists the descriptor under key, best effort.
func SaveSort(store KeyedStore, key string, d SortDescriptor) {
	raw, err := json.Marshal(d)
	if err != nil {
		log.Printf("failed to encode sort preference for %s: %v", key, err)
		return
	}
	if err := store.Set(key, string(raw)); err != nil {
		log.Printf("failed to persist sort preference for %s: %v", key, err)
	}
}

// NextDescriptor advances the descriptor for a sort-header click: clicking
// the active field flips direction, clicking a new field resets to ascending.
func NextDescriptor(current SortDescriptor, clickedField string) SortDescriptor {
	if clickedField == current.Field {
		next := Ascending
		if current.Direction == Ascending {
			next = Descending
		}
		return SortDescriptor{Field: clickedField, Direction: next}
	}
	return SortDescriptor{Field: clickedField, Direction: Ascending}
}
