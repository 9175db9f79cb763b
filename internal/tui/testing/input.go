// Package testing provides helpers for driving the dashboard model in tests
// without a terminal.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyPress creates a message typing text.
func KeyPress(text string) tea.KeyMsg {
	return tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune(text),
	}
}

// Key creates a message for a special key such as tea.KeyEnter or tea.KeyF5.
func Key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// WindowSize creates a window size message.
func WindowSize(width, height int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  width,
		Height: height,
	}
}

// Drain runs cmd and every command it batches, returning the non-nil
// messages in order. Commands inside a batch run one after another.
func Drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	switch msg := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var messages []tea.Msg
		for _, c := range msg {
			messages = append(messages, Drain(c)...)
		}
		return messages
	default:
		return []tea.Msg{msg}
	}
}
