package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	faintStyle     = lipgloss.NewStyle().Faint(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	modalStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	jokeStyle      = lipgloss.NewStyle().Italic(true)
	punchlineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("  ")
	b.WriteString(m.renderPriority())
	b.WriteString("\n\n")

	if m.settings != nil {
		b.WriteString(m.renderSettings())
	} else {
		b.WriteString(m.renderRows())
	}

	if m.jokes != nil && m.cfg.Settings.ShowJoke {
		b.WriteString("\n")
		b.WriteString(m.renderJoke())
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render(m.status))
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderPriority() string {
	label := fmt.Sprintf("Priority: %s", m.Priority())
	if !m.cfg.Settings.Color {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.prioColor.Hex())).Render(label)
}

func (m *Model) renderRows() string {
	if len(m.board.rows) == 0 {
		return faintStyle.Render("No tasks yet.") + "\n"
	}

	var b strings.Builder
	for i, r := range m.board.rows {
		cursor := " "
		if m.focus == focusList && i == m.cursor {
			cursor = ">"
		}
		mark := "[ ]"
		if r.task.Completed {
			mark = "[x]"
		}

		swatch := "  "
		if m.cfg.Settings.Color {
			swatch = lipgloss.NewStyle().Background(lipgloss.Color(r.color.Hex())).Render("  ")
		}

		text := fmt.Sprintf("%s [Priority: %s]", r.task.Text, r.task.Priority)
		switch {
		case r.task.Completed:
			text = doneStyle.Render(text)
		case m.focus == focusList && i == m.cursor:
			text = selectedStyle.Render(text)
		}

		fmt.Fprintf(&b, "%s %s %s %s\n", cursor, swatch, mark, text)
	}
	return b.String()
}

func (m *Model) renderSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	for i, key := range settingsFields {
		cursor := " "
		if i == m.settings.cursor {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %-17s %s\n", cursor, key, m.settingValue(key))
	}
	return modalStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func (m *Model) renderJoke() string {
	if m.jokeLoading && m.joke.Setup == "" {
		return faintStyle.Render("Fetching a joke...") + "\n"
	}
	if m.joke.Setup == "" && m.joke.Punchline == "" {
		return ""
	}
	return jokeStyle.Render(m.joke.Setup) + "\n" + punchlineStyle.Render(m.joke.Punchline) + "\n"
}
