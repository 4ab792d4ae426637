// Package priority defines task priority levels and their display colours.
package priority

import (
	"fmt"
	"strconv"
	"strings"
)

// Priority is "unset" or a decimal integer from 1 (most urgent) to 10.
type Priority string

const (
	// Unset is the priority of a task created without one.
	Unset Priority = "unset"

	// Min and Max bound numeric priorities.
	Min = 1
	Max = 10
)

// Parse validates s and returns the matching Priority.
// Surrounding whitespace is ignored and an empty string means Unset.
func Parse(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(Unset)) {
		return Unset, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return "", fmt.Errorf("invalid priority: %q (want unset or %d-%d)", s, Min, Max)
	}
	if n < Min || n > Max {
		return "", fmt.Errorf("invalid priority: %d (want unset or %d-%d)", n, Min, Max)
	}
	return Priority(strconv.Itoa(n)), nil
}

// IsUnset reports whether p carries no urgency.
func (p Priority) IsUnset() bool {
	return p == Unset || p == ""
}

// Level returns the numeric urgency and true, or 0 and false for Unset
// and values that do not parse.
func (p Priority) Level() (int, bool) {
	if p.IsUnset() {
		return 0, false
	}
	n, err := strconv.Atoi(string(p))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p Priority) String() string {
	if p == "" {
		return string(Unset)
	}
	return string(p)
}

// All returns every selectable priority in selector order.
func All() []Priority {
	out := []Priority{Unset}
	for i := Min; i <= Max; i++ {
		out = append(out, Priority(strconv.Itoa(i)))
	}
	return out
}
