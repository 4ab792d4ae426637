// Package service defines the backend-agnostic interface for task storage.
package service

import (
	"context"
	"errors"
)

// TasksKey is the storage key holding the task list.
const TasksKey = "tasks"

var (
	// ErrNotFound is returned when a referenced task does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when the stored task list cannot be decoded.
	ErrCorrupt = errors.New("stored task list is corrupt")

	// ErrAuth is returned when a remote backend rejects the credentials.
	ErrAuth = errors.New("not authorized")
)

// Store persists the whole task list as one value.
// All reads are full-list reads and all writes are full-list overwrites;
// concurrent writers are not coordinated and the last save wins.
type Store interface {
	// Load returns the persisted list, or an empty list if nothing is stored.
	Load(ctx context.Context) (TaskList, error)

	// Save overwrites the persisted list.
	Save(ctx context.Context, tasks TaskList) error

	// Clear deletes the persisted list.
	Clear(ctx context.Context) error
}
