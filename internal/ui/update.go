package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"taskpop/internal/priority"
	"taskpop/internal/todo"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.settings != nil {
			return m.updateSettings(msg)
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)

	case jokeMsg:
		m.joke = msg.joke
		m.jokeLoading = false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-10)
		return m, nil
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.addTask()
		return m, nil
	case "up":
		m.setPriority(m.prioIdx - 1)
		return m, nil
	case "down":
		m.setPriority(m.prioIdx + 1)
		return m, nil
	case "tab", "esc":
		m.focus = focusList
		m.input.Blur()
		m.status = "space toggle • c clear • x clear completed • s settings • j joke • tab input • q quit"
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.board.rows)
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "a":
		m.focus = focusInput
		m.status = "enter add • up/down priority • tab list • ctrl+c quit"
		return m, m.input.Focus()
	case "up":
		m.cursor = clampCursor(m.cursor-1, n)
	case "down":
		m.cursor = clampCursor(m.cursor+1, n)
	case " ", "enter":
		m.toggleSelected()
	case "c":
		m.clearAll()
	case "x":
		m.clearCompleted()
	case "s":
		m.openSettings()
	case "j":
		if m.jokes == nil || !m.cfg.Settings.ShowJoke {
			m.status = "jokes are off"
			return m, nil
		}
		return m, m.fetchJoke()
	}
	return m, nil
}

func (m *Model) addTask() {
	ctx, cancel := m.opContext()
	defer cancel()

	text := m.input.Value()
	if _, err := m.svc.Add(ctx, text, string(m.Priority())); err != nil {
		m.reportError("add", err)
		return
	}
	m.input.SetValue("")
	m.setPriority(priorityIndex(priority.Priority(m.cfg.Settings.DefaultPriority)))
	m.cursor = len(m.board.rows) - 1
	m.status = "added task"
}

func (m *Model) toggleSelected() {
	if len(m.board.rows) == 0 {
		return
	}
	ctx, cancel := m.opContext()
	defer cancel()

	task := m.board.rows[m.cursor].task
	updated, err := m.svc.Toggle(ctx, task.ID)
	if err != nil {
		m.reportError("toggle", err)
		return
	}
	if updated.Completed {
		m.status = "completed " + quote(updated.Text)
	} else {
		m.status = "reopened " + quote(updated.Text)
	}
}

func (m *Model) clearAll() {
	ctx, cancel := m.opContext()
	defer cancel()

	if err := m.svc.ClearAll(ctx); err != nil {
		m.reportError("clear", err)
		return
	}
	m.cursor = 0
	m.status = "cleared all tasks"
}

func (m *Model) clearCompleted() {
	ctx, cancel := m.opContext()
	defer cancel()

	removed, err := m.svc.ClearCompleted(ctx)
	if err != nil {
		m.reportError("clear completed", err)
		return
	}
	m.cursor = clampCursor(m.cursor, len(m.board.rows))
	m.status = fmt.Sprintf("removed %d", removed)
}

func (m *Model) reportError(op string, err error) {
	if todo.IsValidation(err) {
		m.status = err.Error()
		return
	}
	m.logger.Error("popup operation failed", "op", op, "err", err)
	m.status = fmt.Sprintf("%s failed: %v", op, err)
}

func quote(s string) string {
	return `"` + strings.TrimSpace(s) + `"`
}
