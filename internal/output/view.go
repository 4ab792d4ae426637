package output

import (
	"fmt"
	"io"

	"taskpop/internal/service"
)

// TextView is a todo.View that prints to a writer. Reset prints the whole
// list; Append and Update print only the affected line with its position.
type TextView struct {
	w     io.Writer
	f     Formatter
	quiet bool
	tasks service.TaskList
}

// NewTextView returns a TextView writing to w. Quiet suppresses the empty
// list message.
func NewTextView(w io.Writer, f Formatter, quiet bool) *TextView {
	return &TextView{w: w, f: f, quiet: quiet}
}

// Tasks returns the list as last rendered.
func (v *TextView) Tasks() service.TaskList {
	return v.tasks.Clone()
}

// Reset implements todo.View.
func (v *TextView) Reset(tasks service.TaskList) {
	v.tasks = tasks.Clone()
	if len(tasks) == 0 {
		if !v.quiet {
			fmt.Fprintln(v.w, EmptyMessage)
		}
		return
	}
	v.f.FormatList(v.w, tasks)
}

// Append implements todo.View.
func (v *TextView) Append(task service.Task) {
	v.tasks = append(v.tasks, task)
	v.f.FormatTask(v.w, len(v.tasks), task)
}

// Update implements todo.View.
func (v *TextView) Update(task service.Task) {
	i := v.tasks.IndexByID(task.ID)
	if i < 0 {
		v.tasks = append(v.tasks, task)
		i = len(v.tasks) - 1
	} else {
		v.tasks[i] = task
	}
	v.f.FormatTask(v.w, i+1, task)
}
