package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// InitialAmountModel edits the starting balance both series begin from.
type InitialAmountModel struct {
	session Session
	form    *huh.Form
	amount  *string
	status  string
	err     error
}

func NewInitialAmountModel(session Session) InitialAmountModel {
	ctx, cancel := StoreCtx()
	defer cancel()

	amount := session.Budgets.Snapshot(ctx, session.UserID).InitialAmount

	m := InitialAmountModel{session: session, amount: &amount}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Initial amount").
				Description("Balance on the first day of any comparison; may be negative").
				Value(m.amount).
				Validate(func(s string) error {
					if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a number")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	return m
}

func (m InitialAmountModel) Title() string { return "Initial Amount" }

func (m InitialAmountModel) Init() tea.Cmd {
	return m.form.Init()
}

type initialSavedMsg struct {
	err error
}

func (m InitialAmountModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case initialSavedMsg:
		m.err = msg.err
		m.status = "Saved."

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.form.State == huh.StateCompleted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	amount := strings.TrimSpace(*m.amount)

	return m, func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return initialSavedMsg{err: m.session.Budgets.SetInitialAmount(ctx, m.session.UserID, amount)}
	}
}

func (m InitialAmountModel) View() string {
	content := m.form.View()

	switch {
	case m.err != nil:
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)"
	case m.status != "":
		content = okStyle.Render(fmt.Sprintf("Initial amount set to %s", strings.TrimSpace(*m.amount))) + "\n\n(Esc to go back)"
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
