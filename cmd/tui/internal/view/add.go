package view

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/ebenezer-app/ebenezer/internal/identity"
	"github.com/ebenezer-app/ebenezer/internal/movement"
)

type addInput struct {
	tipo        movement.Type
	settore     movement.Sector
	metodo      movement.PaymentMethod
	categoria   movement.Category
	descrizione string
	importo     string
	data        string
}

// params converts the raw form values; the form validators already accepted them.
func (in *addInput) params() (movement.CreateParams, error) {
	cents, err := movement.ParseAmount(in.importo)
	if err != nil {
		return movement.CreateParams{}, err
	}

	date, err := ParseDate(in.data)
	if err != nil {
		return movement.CreateParams{}, fmt.Errorf("data non valida: %w", err)
	}

	return movement.CreateParams{
		Type:          in.tipo,
		Sector:        in.settore,
		PaymentMethod: in.metodo,
		Category:      in.categoria,
		Description:   strings.TrimSpace(in.descrizione),
		Amount:        cents,
		Date:          date,
	}, nil
}

// MovementAddedMsg is sent once a movement has been stored.
type MovementAddedMsg struct {
	Movement *movement.Movement
}

type AddModel struct {
	CommonModel
	movements *movement.Service
	user      *identity.User

	input   *addInput
	form    *huh.Form
	err     error
	pending bool
}

func NewAddModel(svc *movement.Service, user *identity.User) AddModel {
	input := &addInput{
		tipo:      movement.TypeUscita,
		settore:   movement.SectorBar,
		metodo:    movement.PaymentContanti,
		categoria: movement.CategoryAltro,
	}

	return AddModel{
		movements: svc,
		user:      user,
		input:     input,
		form:      buildAddForm(input),
	}
}

func (m AddModel) Title() string { return "Nuovo movimento" }

func (m AddModel) ShortHelp() string { return "Esc: annulla | Invio: conferma" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

type addResultMsg struct {
	movement *movement.Movement
	err      error
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(addResultMsg); ok {
		m.pending = false
		if result.err == nil {
			return m, func() tea.Msg { return MovementAddedMsg{Movement: result.movement} }
		}

		m.err = result.err
		m.form = buildAddForm(m.input)

		return m, m.form.Init()
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
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

	return m, m.createCmd(*m.input)
}

func (m AddModel) createCmd(in addInput) tea.Cmd {
	return func() tea.Msg {
		params, err := in.params()
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		mv, err := m.movements.Create(ctx, m.user.ID, params)

		return addResultMsg{movement: mv, err: err}
	}
}

func labelOptions[T interface {
	~string
	Label() string
}](values []T) []huh.Option[T] {
	opts := make([]huh.Option[T], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v.Label(), v)
	}

	return opts
}

func validateAmount(s string) error {
	_, err := movement.ParseAmount(s)
	return err
}

func validateDate(s string) error {
	if _, err := ParseDate(s); err != nil {
		return errors.New("usa il formato GG/MM/AAAA")
	}

	return nil
}

func validateDescription(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("la descrizione è obbligatoria")
	}

	return nil
}

func buildAddForm(in *addInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[movement.Type]().
				Title("Tipo").
				Options(labelOptions(movement.Types)...).
				Value(&in.tipo),
			huh.NewSelect[movement.Sector]().
				Title("Settore").
				Options(labelOptions(movement.Sectors)...).
				Value(&in.settore),
			huh.NewSelect[movement.PaymentMethod]().
				Title("Metodo di pagamento").
				Options(labelOptions(movement.PaymentMethods)...).
				Value(&in.metodo),
			huh.NewSelect[movement.Category]().
				Title("Categoria").
				Options(labelOptions(movement.Categories)...).
				Value(&in.categoria),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Descrizione").
				Validate(validateDescription).
				Value(&in.descrizione),
			huh.NewInput().
				Title("Importo").
				Placeholder("12,50").
				Validate(validateAmount).
				Value(&in.importo),
			huh.NewInput().
				Title("Data").
				Description("GG/MM/AAAA, vuoto per oggi").
				Validate(validateDate).
				Value(&in.data),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m AddModel) View() string {
	parts := []string{titleStyle.Render(m.Title()), "", m.form.View()}

	if m.err != nil {
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("Errore: %v", m.err)))
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
