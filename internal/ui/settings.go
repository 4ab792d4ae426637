package ui

import (
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"taskpop/internal/priority"
)

// settingsState is the open settings modal.
type settingsState struct {
	cursor  int
	changed []string
}

// settingsFields are the keys editable from the modal.
var settingsFields = []string{"show_joke", "default_priority", "color"}

func (m *Model) openSettings() {
	m.settings = &settingsState{}
	m.status = "up/down select • space change • esc close"
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.settings
	switch msg.String() {
	case "esc", "s":
		m.settings = nil
		if err := m.cfg.SaveSettings(st.changed...); err != nil {
			m.logger.Error("failed to save settings", "err", err)
			m.status = "settings not saved: " + err.Error()
			return m, nil
		}
		m.status = "settings saved"
		return m, nil
	case "up":
		st.cursor = wrapIndex(st.cursor-1, len(settingsFields))
	case "down":
		st.cursor = wrapIndex(st.cursor+1, len(settingsFields))
	case " ", "enter", "right":
		m.changeSetting(settingsFields[st.cursor], 1)
	case "left":
		m.changeSetting(settingsFields[st.cursor], -1)
	}
	return m, nil
}

func (m *Model) changeSetting(key string, step int) {
	if !slices.Contains(m.settings.changed, key) {
		m.settings.changed = append(m.settings.changed, key)
	}
	s := &m.cfg.Settings
	switch key {
	case "show_joke":
		s.ShowJoke = !s.ShowJoke
	case "color":
		s.Color = !s.Color
	case "default_priority":
		all := priority.All()
		i := wrapIndex(priorityIndex(priority.Priority(s.DefaultPriority))+step, len(all))
		s.DefaultPriority = string(all[i])
		m.setPriority(i)
	}
}

func (m *Model) settingValue(key string) string {
	s := m.cfg.Settings
	switch key {
	case "show_joke":
		return strconv.FormatBool(s.ShowJoke)
	case "color":
		return strconv.FormatBool(s.Color)
	default:
		return s.DefaultPriority
	}
}
