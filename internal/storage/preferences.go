package storage

import "fyne.io/fyne/v2"

// PreferencesStore keeps values in the fyne application preferences, which
// fyne persists per application ID.
type PreferencesStore struct {
	prefs  fyne.Preferences
	prefix string
}

// NewPreferencesStore wraps prefs. Keys are namespaced with prefix.
func NewPreferencesStore(prefs fyne.Preferences, prefix string) *PreferencesStore {
	return &PreferencesStore{prefs: prefs, prefix: prefix}
}

func (store *PreferencesStore) Get(key string) ([]byte, error) {
	value := store.prefs.String(store.prefix + key)
	if value == "" {
		return nil, ErrNotFound
	}
	return []byte(value), nil
}

func (store *PreferencesStore) Set(key string, value []byte) error {
	store.prefs.SetString(store.prefix+key, string(value))
	return nil
}
