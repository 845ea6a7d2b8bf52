package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

var (
	_ View = AuthModel{}
	_ View = DashboardModel{}
	_ View = AddModel{}
	_ View = ExportModel{}
)
