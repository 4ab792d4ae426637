// Package kv defines the key-value storage area the task store is kept in,
// modelled on the browser extension sync storage.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Storage is an asynchronous key-value storage area. Values are raw JSON.
type Storage interface {
	// Get returns the values of the keys that exist. Missing keys are omitted.
	Get(ctx context.Context, keys ...string) (map[string]json.RawMessage, error)

	// Set writes every item, replacing existing values.
	Set(ctx context.Context, items map[string]json.RawMessage) error

	// Remove deletes keys. Removing a missing key is not an error.
	Remove(ctx context.Context, keys ...string) error

	// Close releases the backend.
	Close() error
}

// ErrEmptyKey is returned when an operation is given an empty key.
var ErrEmptyKey = errors.New("kv: empty key")

// checkKeys rejects empty keys.
func checkKeys(keys []string) error {
	for _, k := range keys {
		if k == "" {
			return ErrEmptyKey
		}
	}
	return nil
}

// sortedKeys returns the keys of items in sorted order so that backends
// write deterministically.
func sortedKeys(items map[string]json.RawMessage) ([]string, error) {
	keys := make([]string, 0, len(items))
	for k, v := range items {
		if k == "" {
			return nil, ErrEmptyKey
		}
		if !json.Valid(v) {
			return nil, fmt.Errorf("kv: value for %q is not valid JSON", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
