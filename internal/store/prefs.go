package store

import "context"

// PreferenceStore adapts the Store's preference table to the view engine's
// KeyedStore port, so column and sort preferences persist server-side the
// same way a browser table would use localStorage.
type PreferenceStore struct {
	store Store
}

// NewPreferenceStore wraps s as a view.KeyedStore.
func NewPreferenceStore(s Store) *PreferenceStore {
	return &PreferenceStore{store: s}
}

// Get returns the value stored under key. Absent, corrupt or unreachable
// storage all degrade to "no preference"; the engine falls back to defaults.
func (p *PreferenceStore) Get(key string) (string, bool) {
	value, err := p.store.GetPreference(context.Background(), key)
	if err != nil {
		return "", false
	}
	return value, true
}

// Set persists the value under key.
func (p *PreferenceStore) Set(key, value string) error {
	return p.store.SetPreference(context.Background(), key, value)
}
