package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns to the dashboard.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenAddMsg and OpenExportMsg ask the root model to switch screen.
type (
	OpenAddMsg    struct{}
	OpenExportMsg struct{}
)

// SessionChangedMsg carries a session change into the program; User is nil after sign out.
type SessionChangedMsg struct {
	User *identity.User
}

// WaitForSession blocks on changes and delivers the next one as a message.
// The root model re-issues it after every delivery.
func WaitForSession(changes <-chan *identity.User) tea.Cmd {
	return func() tea.Msg {
		return SessionChangedMsg{User: <-changes}
	}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	panelStyle   = lipgloss.NewStyle().Padding(1)
)
