package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportInput lives on the heap so the form bindings survive model copies.
type exportInput struct {
	format string
	dir    string
}

type ExportModel struct {
	CommonModel
	exportService *export.Service
	user          *identity.User

	state   exportState
	err     error
	input   *exportInput
	form    *huh.Form
	spinner spinner.Model
	path    string
}

func NewExportModel(svc *export.Service, user *identity.User, dir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	input := &exportInput{format: string(export.FormatCSV), dir: dir}

	return ExportModel{
		exportService: svc,
		user:          user,
		state:         exportStateForm,
		input:         input,
		form:          buildExportForm(input),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Esporta movimenti" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: indietro"
	case exportStateExporting:
		return "Esportazione..."
	}

	return "Esc: indietro | Invio: conferma"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(export.Format(m.input.format), m.input.dir))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.path = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func buildExportForm(in *exportInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Formato").
				Options(
					huh.NewOption("CSV", string(export.FormatCSV)),
					huh.NewOption("PDF", string(export.FormatPDF)),
				).
				Value(&in.format),
			huh.NewInput().
				Title("Cartella di destinazione").
				Description("Verrà creata se non esiste").
				Placeholder("./exports").
				Value(&in.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return panelStyle.Render(m.form.View())

	case exportStateExporting:
		return panelStyle.Render(fmt.Sprintf("%s Esportazione in corso...", m.spinner.View()))

	case exportStateResult:
		if m.err != nil {
			return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Errore: %v", m.err)))
		}

		return panelStyle.Render(
			lipgloss.JoinVertical(lipgloss.Left,
				successStyle.Render("Esportazione completata"),
				"",
				m.path,
			),
		)
	}

	return ""
}

type exportResultMsg struct {
	path string
	err  error
}

func (m ExportModel) runExportCmd(f export.Format, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		doc, err := m.exportService.Export(ctx, m.user.ID, f, time.Now())
		if err != nil {
			return exportResultMsg{err: err}
		}

		path, err := export.WriteFile(dir, doc)

		return exportResultMsg{path: path, err: err}
	}
}
