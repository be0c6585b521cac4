package tui

import tea "github.com/charmbracelet/bubbletea/v2"

// FieldChangedMsg reports that a field published a new snapshot.
type FieldChangedMsg struct {
	FieldID string
}

// listenForChanges waits for the next field change from the broker.
func (m *Model) listenForChanges() tea.Cmd {
	sub := m.changes
	return func() tea.Msg {
		id, ok := <-sub
		if !ok {
			return nil
		}
		return FieldChangedMsg{FieldID: id}
	}
}
