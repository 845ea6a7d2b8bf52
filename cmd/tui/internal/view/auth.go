package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebenezer-app/ebenezer/internal/identity"
)

const (
	authModeSignIn = "signin"
	authModeSignUp = "signup"
)

type authInput struct {
	mode     string
	email    string
	password string
}

// AuthModel signs a user in or up. On success the session notifies its
// subscribers and the root model switches to the dashboard.
type AuthModel struct {
	CommonModel
	session *identity.Session

	input   *authInput
	form    *huh.Form
	err     error
	pending bool
}

func NewAuthModel(sess *identity.Session) AuthModel {
	input := &authInput{mode: authModeSignIn}

	return AuthModel{
		session: sess,
		input:   input,
		form:    buildAuthForm(input),
	}
}

func (m AuthModel) Title() string { return "Ebenezer" }

func (m AuthModel) ShortHelp() string { return "Invio: conferma | Ctrl+C: esci" }

func (m AuthModel) Init() tea.Cmd {
	return m.form.Init()
}

type authResultMsg struct {
	err error
}

func (m AuthModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(authResultMsg); ok {
		m.pending = false
		if result.err == nil {
			return m, nil
		}

		// Keep the email, ask again for the password.
		m.err = result.err
		m.input.password = ""
		m.form = buildAuthForm(m.input)

		return m, m.form.Init()
	}

	if m.pending {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.pending = true
	m.err = nil

	return m, m.submitCmd(*m.input)
}

func (m AuthModel) submitCmd(in authInput) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		var err error
		if in.mode == authModeSignUp {
			_, err = m.session.SignUp(ctx, in.email, in.password)
		} else {
			_, err = m.session.SignIn(ctx, in.email, in.password)
		}

		return authResultMsg{err: err}
	}
}

func buildAuthForm(in *authInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Accesso").
				Options(
					huh.NewOption("Accedi", authModeSignIn),
					huh.NewOption("Registrati", authModeSignUp),
				).
				Value(&in.mode),
			huh.NewInput().
				Title("Email").
				Placeholder("nome@esempio.it").
				Value(&in.email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&in.password),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AuthModel) View() string {
	parts := []string{titleStyle.Render("Ebenezer - Gestione movimenti"), "", m.form.View()}

	if m.pending {
		parts = append(parts, "", faintStyle.Render("Verifica in corso..."))
	}

	if m.err != nil {
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("Errore: %v", m.err)))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
