package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer"
)

const importTimeout = 2 * time.Minute

type importStep int

const (
	importStepBank importStep = iota
	importStepFile
	importStepParsing
	importStepPreview
	importStepSaving
	importStepDone
)

// ImportModel walks a bank export through parse, preview and commit into the
// actual entries.
type ImportModel struct {
	session  Session
	importer *importer.Service

	step    importStep
	bank    *importer.Bank
	form    *huh.Form
	picker  filepicker.Model
	spinner spinner.Model
	preview table.Model

	path   string
	parsed []budget.Entry
	saved  int
	err    error
}

func NewImportModel(session Session, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".CSV"}
	fp.FileAllowed = true
	fp.DirAllowed = false
	fp.Height = 15

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = activeStyle

	preview := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Kind", Width: 8},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	bank := new(importer.Bank)

	banks := impSvc.Banks()
	if len(banks) > 0 {
		*bank = banks[0]
	}

	return ImportModel{
		session:  session,
		importer: impSvc,
		bank:     bank,
		form:     newBankForm(banks, bank),
		picker:   fp,
		spinner:  s,
		preview:  preview,
	}
}

func newBankForm(banks []importer.Bank, into *importer.Bank) *huh.Form {
	options := make([]huh.Option[importer.Bank], 0, len(banks))
	for _, b := range banks {
		options = append(options, huh.NewOption(string(b), b))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[importer.Bank]().
				Title("Bank").
				Description("Format of the exported statement").
				Options(options...).
				Value(into),
		),
	).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import Bank Export" }

func (m ImportModel) ShortHelp() string {
	if m.step == importStepPreview {
		return "Enter: import all | Esc: discard"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.back()
		}

	case parsedMsg:
		if msg.err != nil {
			m.step, m.err = importStepDone, msg.err
			return m, nil
		}

		m.parsed = msg.entries
		m.step = importStepPreview
		m.fillPreview()

		return m, nil

	case importedMsg:
		m.step = importStepDone
		m.saved, m.err = msg.count, msg.err

		return m, nil
	}

	switch m.step {
	case importStepBank:
		return m.updateBank(msg)

	case importStepFile:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		if ok, path := m.picker.DidSelectFile(msg); ok {
			m.path = path
			m.step = importStepParsing

			return m, tea.Batch(m.spinner.Tick, m.parseCmd(*m.bank, path))
		}

		return m, cmd

	case importStepParsing, importStepSaving:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case importStepPreview:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
			m.step = importStepSaving
			return m, tea.Batch(m.spinner.Tick, m.commitCmd(m.parsed))
		}

		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ImportModel) updateBank(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.step = importStepFile

	return m, m.picker.Init()
}

func (m ImportModel) back() (tea.Model, tea.Cmd) {
	switch m.step {
	case importStepBank, importStepParsing, importStepSaving:
		return m, Back
	case importStepFile:
		// a completed huh form cannot be reopened, so start over
		fresh := NewImportModel(m.session, m.importer)
		return fresh, fresh.Init()
	}

	m.step = importStepFile
	m.parsed = nil
	m.err = nil

	return m, m.picker.Init()
}

func (m *ImportModel) fillPreview() {
	rows := make([]table.Row, 0, len(m.parsed))
	for _, e := range m.parsed {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Kind),
			e.Amount,
			e.Description,
		})
	}

	m.preview.SetRows(rows)
	m.preview.SetCursor(0)
}

func (m ImportModel) View() string {
	var content string

	switch m.step {
	case importStepBank:
		content = m.form.View()

	case importStepFile:
		content = fmt.Sprintf("Select the %s export:\n\n%s", *m.bank, m.picker.View())

	case importStepParsing:
		content = m.spinner.View() + " Reading " + m.path

	case importStepPreview:
		if len(m.parsed) == 0 {
			content = faintStyle.Render("No entries found in the file.") + "\n\n(Esc to pick another file)"
			break
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			activeStyle.Render(fmt.Sprintf("%d entries ready to import", len(m.parsed))),
			"",
			m.preview.View(),
			"",
			faintStyle.Render(m.ShortHelp()),
		)

	case importStepSaving:
		content = m.spinner.View() + " Saving actual entries..."

	case importStepDone:
		if m.err != nil {
			content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		} else {
			content = okStyle.Render(fmt.Sprintf("Imported %d actual entries.", m.saved))
		}

		content += "\n\n(Esc to import another file)"
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type parsedMsg struct {
	entries []budget.Entry
	err     error
}

type importedMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(bank importer.Bank, path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		entries, err := m.importer.Import(bank, f)

		return parsedMsg{entries: entries, err: err}
	}
}

func (m ImportModel) commitCmd(entries []budget.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.session.Budgets.ImportActual(ctx, m.session.UserID, entries)

		return importedMsg{count: len(created), err: err}
	}
}
