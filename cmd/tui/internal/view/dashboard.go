package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebenezer-app/ebenezer/internal/export"
	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

// Reserved lines around the table: header, totals, bars and help.
const dashboardChrome = 16

type DashboardModel struct {
	CommonModel
	movements *movement.Service
	exports   *export.Service
	session   *identity.Session
	user      *identity.User

	overview  *export.Overview
	table     table.Model
	loading   bool
	confirm   bool
	err       error
	statusMsg string
}

func NewDashboardModel(movements *movement.Service, exports *export.Service, sess *identity.Session, user *identity.User) DashboardModel {
	columns := []table.Column{
		{Title: "Data", Width: 10},
		{Title: "Tipo", Width: 8},
		{Title: "Settore", Width: 14},
		{Title: "Pagamento", Width: 9},
		{Title: "Descrizione", Width: 28},
		{Title: "Categoria", Width: 12},
		{Title: "Importo", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return DashboardModel{
		movements: movements,
		exports:   exports,
		session:   sess,
		user:      user,
		table:     t,
		loading:   true,
	}
}

func (m DashboardModel) Title() string { return "Movimenti" }

func (m DashboardModel) ShortHelp() string {
	if m.confirm {
		return "y: conferma eliminazione | altro tasto: annulla"
	}

	return "a: aggiungi | d: elimina | e: esporta | r: aggiorna | l: esci dall'account | q: chiudi"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type overviewLoadedMsg struct {
	overview *export.Overview
	err      error
}

type movementDeletedMsg struct {
	err error
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(max(msg.Height-dashboardChrome, 3))

		return m, nil

	case overviewLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.overview = msg.overview
			m.table.SetRows(movementRows(msg.overview.Movements))
		}

		return m, nil

	case movementDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.statusMsg = "Movimento eliminato"

		return m, m.loadCmd()

	case tea.KeyMsg:
		if m.confirm {
			m.confirm = false
			if msg.String() == "y" {
				return m, m.deleteCmd()
			}

			return m, nil
		}

		switch msg.String() {
		case "a":
			return m, func() tea.Msg { return OpenAddMsg{} }
		case "e":
			return m, func() tea.Msg { return OpenExportMsg{} }
		case "r":
			m.loading = true
			m.statusMsg = ""

			return m, m.loadCmd()
		case "d":
			if m.selected() != nil {
				m.confirm = true
			}

			return m, nil
		case "l":
			m.session.SignOut()
			return m, nil
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// selected returns the movement under the cursor; rows mirror overview.Movements.
func (m DashboardModel) selected() *movement.Movement {
	if m.overview == nil {
		return nil
	}

	i := m.table.Cursor()
	if i < 0 || i >= len(m.overview.Movements) {
		return nil
	}

	return m.overview.Movements[i]
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		ov, err := m.exports.Overview(ctx, m.user.ID)

		return overviewLoadedMsg{overview: ov, err: err}
	}
}

func (m DashboardModel) deleteCmd() tea.Cmd {
	mv := m.selected()
	if mv == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return movementDeletedMsg{err: m.movements.Delete(ctx, mv.ID, m.user.ID)}
	}
}

func movementRows(ms []*movement.Movement) []table.Row {
	rows := make([]table.Row, len(ms))
	for i, mv := range ms {
		rows[i] = table.Row(export.Row(mv))
	}

	return rows
}

func (m DashboardModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Ebenezer"))
	b.WriteString(faintStyle.Render("  " + m.user.Email))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Errore: %v", m.err)))
		b.WriteString("\n\n")
	case m.loading && m.overview == nil:
		b.WriteString("Caricamento movimenti...\n\n")
	}

	if m.overview != nil {
		b.WriteString(m.viewTotals())
		b.WriteString("\n\n")
		b.WriteString(m.viewCategories())
		b.WriteString("\n")

		if len(m.overview.Movements) == 0 {
			b.WriteString(faintStyle.Render("Nessun movimento registrato. Premi a per aggiungerne uno."))
		} else {
			b.WriteString(m.table.View())
		}

		b.WriteString("\n")
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + successStyle.Render(m.statusMsg) + "\n")
	}

	b.WriteString("\n" + faintStyle.Render(m.ShortHelp()))

	return panelStyle.Render(b.String())
}

func (m DashboardModel) viewTotals() string {
	s := m.overview.Summary

	saldo := incomeStyle
	if s.Saldo < 0 {
		saldo = expenseStyle
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		"Entrate "+incomeStyle.Render(movement.FormatAmount(s.TotalEntrate)),
		"    Uscite "+expenseStyle.Render(movement.FormatAmount(s.TotalUscite)),
		"    Saldo "+saldo.Bold(true).Render(movement.FormatAmount(s.Saldo)),
	)
}

func (m DashboardModel) viewCategories() string {
	cats := m.overview.Summary.SortedCategories()
	if len(cats) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("Uscite per categoria\n")

	for _, c := range cats {
		b.WriteString(CategoryBar(m.overview.Summary, c, barWidth))
		b.WriteString("\n")
	}

	return b.String()
}
