// Package todo implements the task operations on top of a service.Store.
//
// Every operation loads the whole list, changes it in memory, saves the
// whole list back and then tells the View what to redraw.
package todo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"taskpop/internal/priority"
	"taskpop/internal/service"
)

// Service runs task operations against a store.
type Service struct {
	// mu serializes read-modify-write cycles within this process.
	mu     sync.Mutex
	store  service.Store
	view   View
	logger *log.Logger
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithView sets the view notified after each write.
func WithView(v View) Option {
	return func(s *Service) { s.view = v }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithIDGenerator overrides how task ids are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// New returns a Service over store.
func New(store service.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		view:  NopView{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// SetView replaces the view. The popup installs itself here once its model
// exists.
func (s *Service) SetView(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v == nil {
		v = NopView{}
	}
	s.view = v
}

// List loads the list and redraws it from scratch.
func (s *Service) List(ctx context.Context) (service.TaskList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.view.Reset(tasks)
	return tasks, nil
}

// Add appends a new open task. Blank text or an invalid priority returns a
// *ValidationError and leaves the store untouched.
func (s *Service) Add(ctx context.Context, text string, prio string) (service.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return service.Task{}, &ValidationError{Field: "text", Err: ErrEmptyText}
	}
	p, err := priority.Parse(prio)
	if err != nil {
		return service.Task{}, &ValidationError{Field: "priority", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return service.Task{}, err
	}
	task := service.Task{
		ID:       s.newID(),
		Text:     text,
		Priority: p,
	}
	tasks = append(tasks, task)
	if err := s.store.Save(ctx, tasks); err != nil {
		return service.Task{}, err
	}
	s.logger.Debug("task added", "id", task.ID, "priority", task.Priority, "count", len(tasks))
	s.view.Append(task)
	return task, nil
}

// Toggle flips the completion flag of the task with id.
func (s *Service) Toggle(ctx context.Context, id string) (service.Task, error) {
	return s.toggle(ctx, func(tasks service.TaskList) int {
		return tasks.IndexByID(id)
	}, id)
}

// ToggleText flips the completion flag of the first task whose text is
// exactly text. Later tasks with the same text are left alone.
func (s *Service) ToggleText(ctx context.Context, text string) (service.Task, error) {
	return s.toggle(ctx, func(tasks service.TaskList) int {
		return tasks.IndexByText(text)
	}, text)
}

func (s *Service) toggle(ctx context.Context, find func(service.TaskList) int, ref string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return service.Task{}, err
	}
	i := find(tasks)
	if i < 0 {
		return service.Task{}, fmt.Errorf("task %q: %w", ref, service.ErrNotFound)
	}
	tasks[i].Completed = !tasks[i].Completed
	if err := s.store.Save(ctx, tasks); err != nil {
		return service.Task{}, err
	}
	s.logger.Debug("task toggled", "id", tasks[i].ID, "completed", tasks[i].Completed)
	s.view.Update(tasks[i])
	return tasks[i], nil
}

// ClearAll deletes the stored list.
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.logger.Debug("tasks cleared")
	s.view.Reset(service.TaskList{})
	return nil
}

// ClearCompleted removes every completed task, keeping the order of the
// rest, and returns how many were removed.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	open := tasks.Open()
	if err := s.store.Save(ctx, open); err != nil {
		return 0, err
	}
	removed := len(tasks) - len(open)
	s.logger.Debug("completed tasks cleared", "removed", removed)
	s.view.Reset(open)
	return removed, nil
}

// Replace overwrites the stored list, as an import does.
func (s *Service) Replace(ctx context.Context, tasks service.TaskList) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, tasks); err != nil {
		return err
	}
	s.view.Reset(tasks)
	return nil
}
