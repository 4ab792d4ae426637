package ui

import (
	"taskpop/internal/priority"
	"taskpop/internal/service"
)

// row is a drawn task. Its colour is picked once when the row is drawn, so
// a random gradient endpoint does not flicker between frames.
type row struct {
	task  service.Task
	color priority.Color
}

// board holds the drawn rows. It is the todo.View of the popup's service,
// so every store write redraws only the rows it touched.
type board struct {
	rows    []row
	palette *priority.Palette
}

// Reset implements todo.View.
func (b *board) Reset(tasks service.TaskList) {
	b.rows = make([]row, 0, len(tasks))
	for _, t := range tasks {
		b.rows = append(b.rows, b.draw(t))
	}
}

// Append implements todo.View.
func (b *board) Append(task service.Task) {
	b.rows = append(b.rows, b.draw(task))
}

// Update implements todo.View. Only the row with the task's id is redrawn.
func (b *board) Update(task service.Task) {
	for i := range b.rows {
		if b.rows[i].task.ID == task.ID {
			b.rows[i] = b.draw(task)
			return
		}
	}
	b.Append(task)
}

func (b *board) draw(t service.Task) row {
	return row{task: t, color: b.palette.ColorFor(t.Priority)}
}

func (b *board) tasks() service.TaskList {
	out := make(service.TaskList, len(b.rows))
	for i, r := range b.rows {
		out[i] = r.task
	}
	return out
}
