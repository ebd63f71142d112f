package view

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/pfms/cmd/tui/internal/client"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// SessionExpiredMsg sends the user back to the login screen.
type SessionExpiredMsg struct{}

// checkSession turns an unauthorized error into a SessionExpiredMsg command.
func checkSession(err error) tea.Cmd {
	if !errors.Is(err, client.ErrUnauthorized) {
		return nil
	}

	return func() tea.Msg { return SessionExpiredMsg{} }
}
