// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpop/internal/priority"
	"taskpop/internal/service"
)

// EmptyMessage is printed when a list has no tasks.
const EmptyMessage = "no tasks found"

// Formatter renders task lines. Swatch, when set, prefixes each line with a
// block in the task's priority colour.
type Formatter struct {
	Swatch  bool
	Palette *priority.Palette
}

// FormatTask formats a task line.
// Format: "{N:>4}  [{x| }] {TEXT} [Priority: {P}]\n"
func (f Formatter) FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	line := fmt.Sprintf("%4d  [%s] %s [Priority: %s]", num, mark, normalizeText(task.Text), task.Priority)
	if f.Swatch {
		line = f.swatch(task.Priority) + " " + line
	}
	fmt.Fprintln(w, line)
}

// FormatList formats every task, numbered from 1.
func (f Formatter) FormatList(w io.Writer, tasks service.TaskList) {
	for i, task := range tasks {
		f.FormatTask(w, i+1, task)
	}
}

func (f Formatter) swatch(p priority.Priority) string {
	pl := f.Palette
	if pl == nil {
		pl = priority.NewPalette(nil)
	}
	hex := pl.ColorFor(p).Hex()
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// normalizeText normalizes a task text for display.
// - Empty or whitespace-only texts become "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
