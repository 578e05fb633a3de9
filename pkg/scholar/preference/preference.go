package preference

import (
	"context"
	"encoding/json"
	"fmt"

	"niv-scholar-be/pkg/storage"
)

const StorageKey = "niv-scholar-preferences"

// Preferences are the UI's display settings. The scholar core only reads them.
type Preferences map[string]any

// FontSize is the base font size the UI applies, if set.
func (p Preferences) FontSize() (string, bool) {
	v, ok := p["fontSize"].(string)
	return v, ok && v != ""
}

// Load returns an empty set when nothing has been stored.
func Load(ctx context.Context, s storage.Storage) (Preferences, error) {
	raw, ok, err := s.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	prefs := Preferences{}
	if !ok || raw == "" {
		return prefs, nil
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", StorageKey, err)
	}
	if prefs == nil {
		prefs = Preferences{}
	}
	return prefs, nil
}

// Store replaces the stored preferences. Only the UI collaborator calls this.
func Store(ctx context.Context, s storage.Storage, prefs Preferences) error {
	if prefs == nil {
		prefs = Preferences{}
	}
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", StorageKey, err)
	}
	return s.Set(ctx, StorageKey, string(data))
}
