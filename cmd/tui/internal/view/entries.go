package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

type entriesState int

const (
	entriesStateBrowse entriesState = iota
	entriesStateForm
)

// entryForm holds the huh field bindings. It lives behind a pointer so the
// bindings survive the model being copied between updates.
type entryForm struct {
	id          string
	description string
	amount      string
	kind        budget.Kind
	date        string
	recurring   bool
	periodicity budget.Periodicity
}

func newEntryForm(e *budget.Entry, loc *time.Location) *entryForm {
	if e == nil {
		return &entryForm{
			kind:        budget.KindExpense,
			date:        FormatDate(time.Now().In(loc)),
			periodicity: budget.PeriodicityMonthly,
		}
	}

	f := &entryForm{
		id:          e.ID,
		description: e.Description,
		amount:      e.Amount,
		kind:        e.Kind,
		date:        FormatDate(e.Date.In(loc)),
		recurring:   e.IsRecurring,
		periodicity: e.Periodicity,
	}

	if f.periodicity == "" {
		f.periodicity = budget.PeriodicityMonthly
	}

	return f
}

func (f *entryForm) entry(loc *time.Location) (budget.Entry, error) {
	date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(f.date), loc)
	if err != nil {
		return budget.Entry{}, errors.New("date must be YYYY-MM-DD")
	}

	e := budget.Entry{
		ID:          f.id,
		Description: strings.TrimSpace(f.description),
		Amount:      strings.TrimSpace(f.amount),
		Kind:        f.kind,
		Date:        date,
		IsRecurring: f.recurring,
	}

	if f.recurring {
		e.Periodicity = f.periodicity
	}

	return e, e.Validate()
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return errors.New("enter a non-negative number")
	}

	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

// EntriesModel lists one collection and edits it in place.
type EntriesModel struct {
	session    Session
	collection budget.Collection

	state   entriesState
	table   table.Model
	entries []budget.Entry
	form    *huh.Form
	values  *entryForm

	kindFilter int
	loading    bool
	err        error
	status     string
}

var kindFilters = []struct {
	label string
	kind  *budget.Kind
}{
	{"All", nil},
	{"Income", func() *budget.Kind { k := budget.KindIncome; return &k }()},
	{"Expense", func() *budget.Kind { k := budget.KindExpense; return &k }()},
}

func NewEntriesModel(session Session, c budget.Collection) EntriesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Repeats", Width: 9},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return EntriesModel{
		session:    session,
		collection: c,
		table:      t,
		loading:    true,
	}
}

func (m EntriesModel) Title() string {
	if m.collection == budget.CollectionActual {
		return "Actual Entries"
	}

	return "Planned Entries"
}

func (m EntriesModel) ShortHelp() string {
	if m.state == entriesStateForm {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | k: kind filter | r: refresh"
}

func (m EntriesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m EntriesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries
		m.refreshTable()

		return m, nil

	case entrySavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = entriesStateBrowse
		m.form = nil
		m.values = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil
	}

	if m.state == entriesStateForm {
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m EntriesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.openForm(nil)
		case "e":
			if e, ok := m.current(); ok {
				return m.openForm(&e)
			}

			return m, nil
		case "x":
			if e, ok := m.current(); ok {
				return m, m.deleteCmd(e)
			}

			return m, nil
		case "k":
			m.kindFilter = (m.kindFilter + 1) % len(kindFilters)
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m EntriesModel) current() (budget.Entry, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return budget.Entry{}, false
	}

	return m.entries[idx], true
}

func (m EntriesModel) openForm(e *budget.Entry) (tea.Model, tea.Cmd) {
	m.values = newEntryForm(e, m.session.Budgets.Location())
	m.form = buildEntryForm(m.values)
	m.state = entriesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func buildEntryForm(v *entryForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&v.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.amount).
				Validate(validateAmount),
			huh.NewSelect[budget.Kind]().
				Title("Kind").
				Options(
					huh.NewOption("Expense", budget.KindExpense),
					huh.NewOption("Income", budget.KindIncome),
				).
				Value(&v.kind),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&v.date).
				Validate(validateDate),
			huh.NewConfirm().
				Title("Recurring?").
				Value(&v.recurring),
		),
		huh.NewGroup(
			huh.NewSelect[budget.Periodicity]().
				Title("Repeats").
				Options(
					huh.NewOption("Daily", budget.PeriodicityDaily),
					huh.NewOption("Weekly", budget.PeriodicityWeekly),
					huh.NewOption("Monthly", budget.PeriodicityMonthly),
					huh.NewOption("Yearly", budget.PeriodicityYearly),
				).
				Value(&v.periodicity),
		).WithHideFunc(func() bool { return !v.recurring }),
	).WithWidth(45).WithShowHelp(false)
}

func (m EntriesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = entriesStateBrowse
		m.form = nil
		m.values = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd(m.values)
}

func (m EntriesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading entries...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := fmt.Sprintf("%s  |  [k] Kind: %s  |  %d entries",
		m.Title(),
		activeStyle.Render(kindFilters[m.kindFilter].label),
		len(m.entries),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		faintStyle.Render(m.ShortHelp()),
	)

	if m.state == entriesStateForm && m.form != nil {
		title := "New Entry"
		if m.values != nil && m.values.id != "" {
			title = "Edit Entry"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *EntriesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for _, e := range m.entries {
		repeats := "-"
		if e.IsRecurring {
			repeats = string(e.Periodicity)
		}

		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Kind),
			FormatAmount(budget.ParseAmount(e.Amount)),
			repeats,
			e.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

type entriesLoadedMsg struct {
	entries []budget.Entry
	err     error
}

type entrySavedMsg struct {
	status string
	err    error
}

func (m EntriesModel) loadCmd() tea.Cmd {
	filter := budget.ListFilter{Kind: kindFilters[m.kindFilter].kind}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		entries, err := m.session.Budgets.ListEntries(ctx, m.session.UserID, m.collection, filter)

		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func (m EntriesModel) saveCmd(v *entryForm) tea.Cmd {
	loc := m.session.Budgets.Location()

	return func() tea.Msg {
		e, err := v.entry(loc)
		if err != nil {
			return entrySavedMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		if e.ID == "" {
			_, err = m.session.Budgets.AddEntry(ctx, m.session.UserID, m.collection, e)
			return entrySavedMsg{status: "Added " + e.Description, err: err}
		}

		_, err = m.session.Budgets.UpdateEntry(ctx, m.session.UserID, m.collection, e)

		return entrySavedMsg{status: "Saved " + e.Description, err: err}
	}
}

func (m EntriesModel) deleteCmd(e budget.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		err := m.session.Budgets.DeleteEntry(ctx, m.session.UserID, m.collection, e.ID)

		return entrySavedMsg{status: "Deleted " + e.Description, err: err}
	}
}
