package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskpop/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num      int    // 1-based position in the full list, 0 if IDPrefix is set
	IDPrefix string // leading characters of a task id
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// minIDPrefix is the shortest id prefix accepted.
const minIDPrefix = 4

// ParseTaskRef parses a task reference from args.
//
// An all-digit first argument is a task number as printed by list. Anything
// else of at least minIDPrefix characters is an id prefix.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("too many arguments: %s", strings.Join(args[1:], " "))
	}

	ref := strings.TrimSpace(args[0])
	if ref == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Num: num}, nil
	}

	if len(ref) < minIDPrefix || strings.ContainsFunc(ref, unicode.IsSpace) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
	}
	return TaskRef{IDPrefix: strings.ToLower(ref)}, nil
}

// Resolve finds the task ref points at.
func (r TaskRef) Resolve(tasks service.TaskList) (service.Task, error) {
	if r.IDPrefix == "" {
		if r.Num < 1 || r.Num > len(tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", r.Num)
		}
		return tasks[r.Num-1], nil
	}

	var matches []service.Task
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), r.IDPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return service.Task{}, fmt.Errorf("task %s: %w", r.IDPrefix, service.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("ambiguous task reference: %s", r.IDPrefix)
	}
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
