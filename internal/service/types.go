// Package service defines the backend-agnostic interface for task storage.
package service

import "taskpop/internal/priority"

// Task represents a single to-do entry.
type Task struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Completed bool              `json:"completed"`
	Priority  priority.Priority `json:"priority"`
}

// TaskList is an ordered sequence of tasks in insertion order.
type TaskList []Task

// Document is the persisted shape of the task list.
type Document struct {
	Tasks TaskList `json:"tasks"`
}

// Open returns the tasks that are not completed, preserving order.
func (l TaskList) Open() TaskList {
	out := make(TaskList, 0, len(l))
	for _, t := range l {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// IndexByID returns the index of the task with id, or -1.
func (l TaskList) IndexByID(id string) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// IndexByText returns the index of the first task whose text equals text, or -1.
func (l TaskList) IndexByText(text string) int {
	for i, t := range l {
		if t.Text == text {
			return i
		}
	}
	return -1
}

// Clone returns a copy of l that shares no backing array with it.
func (l TaskList) Clone() TaskList {
	if l == nil {
		return TaskList{}
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}
