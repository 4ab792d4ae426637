// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskpop/internal/priority"
	"taskpop/internal/service"
)

// ErrInjected is a convenience error for failure injection.
var ErrInjected = errors.New("injected failure")

// FakeStore is an in-memory implementation of service.Store for testing.
type FakeStore struct {
	mu      sync.RWMutex
	tasks   service.TaskList
	present bool

	// Call counters
	Loads  int
	Saves  int
	Clears int

	// Error injection for testing
	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

// AddTask appends a task directly, bypassing the service.
func (f *FakeStore) AddTask(id, text string, completed bool, p priority.Priority) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p == "" {
		p = priority.Unset
	}
	f.tasks = append(f.tasks, service.Task{ID: id, Text: text, Completed: completed, Priority: p})
	f.present = true
}

// Tasks returns a copy of the stored list.
func (f *FakeStore) Tasks() service.TaskList {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.tasks.Clone()
}

// Present reports whether a list is stored (as opposed to the key being absent).
func (f *FakeStore) Present() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.present
}

// Load implements service.Store.
func (f *FakeStore) Load(ctx context.Context) (service.TaskList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Loads++
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return f.tasks.Clone(), nil
}

// Save implements service.Store.
func (f *FakeStore) Save(ctx context.Context, tasks service.TaskList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.tasks = tasks.Clone()
	f.present = true
	return nil
}

// Clear implements service.Store.
func (f *FakeStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.tasks = nil
	f.present = false
	return nil
}
