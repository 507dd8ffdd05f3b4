package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadSort(t *testing.T) {
	def := SortDescriptor{Field: "name", Direction: Ascending}

	testCases := []struct {
		name     string
		stored   *string
		expected SortDescriptor
	}{
		{
			name:     "missing value falls back to default",
			stored:   nil,
			expected: def,
		},
		{
			name:     "unparsable value falls back to default",
			stored:   strPtr(`sort by name please`),
			expected: def,
		},
		{
			name:     "invalid direction falls back to default",
			stored:   strPtr(`{"field":"status","direction":"sideways"}`),
			expected: def,
		},
		{
			name:     "empty field falls back to default",
			stored:   strPtr(`{"field":"","direction":"desc"}`),
			expected: def,
		},
		{
			name:     "valid descriptor is restored",
			stored:   strPtr(`{"field":"lastPinged","direction":"desc"}`),
			expected: SortDescriptor{Field: "lastPinged", Direction: Descending},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			if tc.stored != nil {
				store.values["devices:sort"] = *tc.stored
			}
			got := LoadSort(store, "devices:sort", def)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSaveLoadSortRoundTrip(t *testing.T) {
	store := newMemStore()
	d := SortDescriptor{Field: "firmware", Direction: Descending}

	SaveSort(store, "junctions:sort", d)
	got := LoadSort(store, "junctions:sort", DefaultDescriptor)

	assert.Equal(t, d, got)
}

func TestNextDescriptor(t *testing.T) {
	testCases := []struct {
		name     string
		current  SortDescriptor
		clicked  string
		expected SortDescriptor
	}{
		{
			name:     "same field flips ascending to descending",
			current:  SortDescriptor{Field: "status", Direction: Ascending},
			clicked:  "status",
			expected: SortDescriptor{Field: "status", Direction: Descending},
		},
		{
			name:     "same field flips descending back to ascending",
			current:  SortDescriptor{Field: "status", Direction: Descending},
			clicked:  "status",
			expected: SortDescriptor{Field: "status", Direction: Ascending},
		},
		{
			name:     "new field resets to ascending",
			current:  SortDescriptor{Field: "status", Direction: Descending},
			clicked:  "name",
			expected: SortDescriptor{Field: "name", Direction: Ascending},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextDescriptor(tc.current, tc.clicked))
		})
	}
}
