package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKey applies exactly one transition for one key press.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	m.state.Notice = ""

	switch m.state.Mode {
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeEditing:
		return m.handleEditingKey(msg)
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e":
		m.state.Mode = ModeEditing
	case "q":
		return m.quit()
	case "s":
		m.exportChart(".png")
	case "t":
		m.exportChart(".txt")
	}
	return m, nil
}

func (m model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.submit()

	case tea.KeyBackspace, tea.KeyCtrlH:
		m.state.PathBuffer = dropLastRune(m.state.PathBuffer)

	case tea.KeyEsc:
		m.state.Mode = ModeNormal

	case tea.KeyCtrlU:
		m.state.PathBuffer = ""

	case tea.KeyCtrlV:
		text, err := m.readClipboard()
		if err != nil {
			log.Printf("clipboard: %v", err)
			m.state.Notice = "Clipboard unavailable"
			return m, nil
		}
		m.state.PathBuffer += cleanPathText(text)

	case tea.KeySpace:
		if !msg.Alt {
			m.state.PathBuffer += " "
		}

	case tea.KeyRunes:
		if !msg.Alt {
			m.state.PathBuffer += cleanPathText(string(msg.Runes))
		}
	}
	return m, nil
}
