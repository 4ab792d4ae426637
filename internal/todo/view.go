package todo

import "taskpop/internal/service"

// View receives rendering updates after each successful write.
type View interface {
	// Reset redraws the whole list.
	Reset(tasks service.TaskList)

	// Append draws one new task at the end of the list.
	Append(task service.Task)

	// Update redraws one existing task in place.
	Update(task service.Task)
}

// NopView discards all updates.
type NopView struct{}

func (NopView) Reset(service.TaskList) {}
func (NopView) Append(service.Task)    {}
func (NopView) Update(service.Task)    {}

// RecordingView keeps the rendered list in memory. It is the canonical
// client-side copy of what was last drawn.
type RecordingView struct {
	Tasks   service.TaskList
	Resets  int
	Appends int
	Updates int
}

// Reset implements View.
func (v *RecordingView) Reset(tasks service.TaskList) {
	v.Tasks = tasks.Clone()
	v.Resets++
}

// Append implements View.
func (v *RecordingView) Append(task service.Task) {
	v.Tasks = append(v.Tasks, task)
	v.Appends++
}

// Update implements View.
func (v *RecordingView) Update(task service.Task) {
	if i := v.Tasks.IndexByID(task.ID); i >= 0 {
		v.Tasks[i] = task
	}
	v.Updates++
}
