package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/ebenezer-app/ebenezer/cmd/tui/internal/view"
	"github.com/ebenezer-app/ebenezer/internal/app"
	"github.com/ebenezer-app/ebenezer/internal/config"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type model struct {
	app     *app.App
	session *identity.Session
	changes <-chan *identity.User

	user          *identity.User
	currentScreen Screen
	size          tea.WindowSizeMsg

	authView      view.AuthModel
	dashboardView view.DashboardModel
	addView       view.AddModel
	exportView    view.ExportModel
}

type Screen int

const (
	ScreenAuth      Screen = 0
	ScreenDashboard Screen = 1
	ScreenAdd       Screen = 2
	ScreenExport    Screen = 3
)

func initialModel(a *app.App) model {
	sess := identity.NewSession(a.Identity)

	// OnChange fires immediately with the current user, so the buffer must
	// hold that first value before the program starts reading.
	changes := make(chan *identity.User, 8)
	sess.OnChange(func(u *identity.User) { changes <- u })

	return model{
		app:           a,
		session:       sess,
		changes:       changes,
		currentScreen: ScreenAuth,
		authView:      view.NewAuthModel(sess),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(view.WaitForSession(m.changes), m.authView.Init())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.SessionChangedMsg:
		return m.onSession(msg.User)
	case view.BackMsg, view.MovementAddedMsg:
		return m.showDashboard()
	case view.OpenAddMsg:
		m.currentScreen = ScreenAdd
		m.addView = view.NewAddModel(m.app.Movements, m.user)

		return m, m.addView.Init()
	case view.OpenExportMsg:
		m.currentScreen = ScreenExport
		m.exportView = view.NewExportModel(m.app.Export, m.user, m.app.Config.Export.Dir)

		return m, m.exportView.Init()
	}

	switch m.currentScreen {
	case ScreenAuth:
		var newModel tea.Model
		newModel, cmd = m.authView.Update(msg)
		m.authView = newModel.(view.AuthModel)
	case ScreenDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ScreenAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ScreenExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// onSession routes to the dashboard after sign in and back to the auth
// screen after sign out, then waits for the next change.
func (m model) onSession(u *identity.User) (tea.Model, tea.Cmd) {
	m.user = u
	wait := view.WaitForSession(m.changes)

	if u == nil {
		m.currentScreen = ScreenAuth
		m.authView = view.NewAuthModel(m.session)

		return m, tea.Batch(wait, m.authView.Init())
	}

	next, cmd := m.showDashboard()

	return next, tea.Batch(wait, cmd)
}

func (m model) showDashboard() (tea.Model, tea.Cmd) {
	if m.user == nil {
		m.currentScreen = ScreenAuth
		return m, nil
	}

	m.currentScreen = ScreenDashboard
	m.dashboardView = view.NewDashboardModel(m.app.Movements, m.app.Export, m.session, m.user)

	cmds := []tea.Cmd{m.dashboardView.Init()}
	if m.size.Height > 0 {
		size := m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	switch m.currentScreen {
	case ScreenAuth:
		return m.authView.View()
	case ScreenDashboard:
		return m.dashboardView.View()
	case ScreenAdd:
		return m.addView.View()
	case ScreenExport:
		return m.exportView.View()
	}

	return "Unknown Screen"
}

func main() {
	if err := run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = tea.NewProgram(initialModel(a), tea.WithAltScreen()).Run()

	return err
}
