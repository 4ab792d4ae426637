// Package store keeps the task list in a key-value storage area.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"taskpop/internal/kv"
	"taskpop/internal/service"
)

// KV implements service.Store on top of a kv.Storage, holding the whole
// list as one JSON array under service.TasksKey.
type KV struct {
	storage kv.Storage
	newID   func() string
}

// Option configures a KV store.
type Option func(*KV)

// WithIDGenerator overrides how ids are minted for legacy records.
func WithIDGenerator(fn func() string) Option {
	return func(s *KV) { s.newID = fn }
}

// NewKV returns a Store backed by storage.
func NewKV(storage kv.Storage, opts ...Option) *KV {
	s := &KV{storage: storage}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Storage returns the underlying storage area.
func (s *KV) Storage() kv.Storage { return s.storage }

// Load implements service.Store. Ids minted for legacy records are written
// back at once so later loads see the same ids.
func (s *KV) Load(ctx context.Context) (service.TaskList, error) {
	items, err := s.storage.Get(ctx, service.TasksKey)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	raw, ok := items[service.TasksKey]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return service.TaskList{}, nil
	}
	tasks, minted, err := decodeList(raw, s.newID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if minted {
		if err := s.Save(ctx, tasks); err != nil {
			return nil, fmt.Errorf("store minted ids: %w", err)
		}
	}
	return tasks, nil
}

// Save implements service.Store.
func (s *KV) Save(ctx context.Context, tasks service.TaskList) error {
	raw, err := EncodeList(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.storage.Set(ctx, map[string]json.RawMessage{service.TasksKey: raw}); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// Clear implements service.Store.
func (s *KV) Clear(ctx context.Context) error {
	if err := s.storage.Remove(ctx, service.TasksKey); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	return nil
}

// Close closes the underlying storage.
func (s *KV) Close() error {
	return s.storage.Close()
}
