package view

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// memStore is an in-memory KeyedStore for tests.
type memStore struct {
	values  map[string]string
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memStore) Set(key, value string) error {
	if m.failSet {
		return errors.New("storage unavailable")
	}
	m.values[key] = value
	return nil
}

var deviceColumns = []string{"select", "name", "status", "firmware", "lastPinged", "actions"}

func TestLoadColumns(t *testing.T) {
	testCases := []struct {
		name     string
		stored   *string
		expected []string
	}{
		{
			name:     "missing value falls back to defaults",
			stored:   nil,
			expected: []string{"name", "status"},
		},
		{
			name:     "unparsable value falls back to defaults",
			stored:   strPtr(`{not json`),
			expected: []string{"name", "status"},
		},
		{
			name:     "persisted order is preserved",
			stored:   strPtr(`["status","name","firmware"]`),
			expected: []string{"status", "name", "firmware"},
		},
		{
			name:     "unknown fields are filtered out",
			stored:   strPtr(`["status","floorCode","name"]`),
			expected: []string{"status", "name"},
		},
		{
			name:     "empty after filtering falls back to defaults",
			stored:   strPtr(`["floorCode","imei"]`),
			expected: []string{"name", "status"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			if tc.stored != nil {
				store.values["devices:columns"] = *tc.stored
			}
			got := LoadColumns(store, "devices:columns", deviceColumns, []string{"name", "status"})
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSaveLoadColumnsRoundTrip(t *testing.T) {
	store := newMemStore()
	cols := []string{"select", "firmware", "name"}

	SaveColumns(store, "devices:columns", cols)
	got := LoadColumns(store, "devices:columns", deviceColumns, []string{"name"})

	assert.Equal(t, cols, got)
}

func TestSaveColumnsStorageFailureIsSilent(t *testing.T) {
	store := newMemStore()
	store.failSet = true

	// Must not panic; the in-memory state simply stays ahead of storage.
	SaveColumns(store, "devices:columns", []string{"name"})
	_, ok := store.values["devices:columns"]
	assert.False(t, ok)
}

func TestToggleColumn(t *testing.T) {
	required := []string{"select", "actions"}

	testCases := []struct {
		name     string
		current  []string
		field    string
		visible  bool
		expected []string
	}{
		{
			name:     "enabling appends at the end",
			current:  []string{"select", "name"},
			field:    "status",
			visible:  true,
			expected: []string{"select", "name", "status"},
		},
		{
			name:     "enabling an already visible field is a no-op",
			current:  []string{"select", "name"},
			field:    "name",
			visible:  true,
			expected: []string{"select", "name"},
		},
		{
			name:     "disabling removes the field",
			current:  []string{"select", "name", "status"},
			field:    "status",
			visible:  false,
			expected: []string{"select", "name"},
		},
		{
			name:     "disabling a required field is refused",
			current:  []string{"select", "name"},
			field:    "select",
			visible:  false,
			expected: []string{"select", "name"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToggleColumn(tc.current, tc.field, tc.visible, required)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMoveColumn(t *testing.T) {
	testCases := []struct {
		name     string
		current  []string
		field    string
		dir      MoveDirection
		expected []string
	}{
		{
			name:     "move up swaps with the previous neighbor",
			current:  []string{"name", "status", "firmware"},
			field:    "status",
			dir:      MoveUp,
			expected: []string{"status", "name", "firmware"},
		},
		{
			name:     "move down swaps with the next neighbor",
			current:  []string{"name", "status", "firmware"},
			field:    "status",
			dir:      MoveDown,
			expected: []string{"name", "firmware", "status"},
		},
		{
			name:     "move up at the top is a no-op",
			current:  []string{"name", "status"},
			field:    "name",
			dir:      MoveUp,
			expected: []string{"name", "status"},
		},
		{
			name:     "move down at the bottom is a no-op",
			current:  []string{"name", "status"},
			field:    "status",
			dir:      MoveDown,
			expected: []string{"name", "status"},
		},
		{
			name:     "absent field is a no-op",
			current:  []string{"name", "status"},
			field:    "firmware",
			dir:      MoveDown,
			expected: []string{"name", "status"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MoveColumn(tc.current, tc.field, tc.dir)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestMoveColumnDoesNotMutateInput(t *testing.T) {
	current := []string{"name", "status", "firmware"}
	_ = MoveColumn(current, "status", MoveUp)
	assert.Equal(t, []string{"name", "status", "firmware"}, current)
}

func strPtr(s string) *string { return &s }
