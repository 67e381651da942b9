package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/export"
)

type comparisonState int

const (
	comparisonStateTimeframe comparisonState = iota
	comparisonStateLoading
	comparisonStateResult
)

// ComparisonModel shows planned against actual, day by day, for a chosen range.
type ComparisonModel struct {
	session Session
	exports *export.Service

	state           comparisonState
	timeframePicker TimeframePicker
	spinner         spinner.Model
	table           table.Model

	start   time.Time
	end     time.Time
	points  []budget.DailyPoint
	summary string
	status  string
	err     error
}

func NewComparisonModel(session Session, exports *export.Service) ComparisonModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = activeStyle

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Plan +", Width: 10},
			{Title: "Plan -", Width: 10},
			{Title: "Actual +", Width: 10},
			{Title: "Actual -", Width: 10},
			{Title: "Planned", Width: 12},
			{Title: "Actual", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return ComparisonModel{
		session:         session,
		exports:         exports,
		state:           comparisonStateTimeframe,
		timeframePicker: NewTimeframePicker(session.Budgets.Location()),
		spinner:         s,
		table:           t,
	}
}

func (m ComparisonModel) Title() string { return "Planned vs Actual" }

func (m ComparisonModel) ShortHelp() string {
	if m.state == comparisonStateResult {
		return "Esc: change range | s: save CSV"
	}

	return "Esc: back | Enter: select"
}

func (m ComparisonModel) Init() tea.Cmd {
	return nil
}

func (m ComparisonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.start, m.end = msg.Start, msg.End
		m.state = comparisonStateLoading
		m.status = ""

		return m, tea.Batch(m.spinner.Tick, m.loadCmd())

	case seriesLoadedMsg:
		m.state = comparisonStateResult
		m.err = msg.err
		m.points = msg.points
		m.summary = msg.summary
		m.refreshTable()

		return m, nil

	case csvSavedMsg:
		m.status = okStyle.Render("Saved " + msg.path)
		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		}

		return m, nil
	}

	switch m.state {
	case comparisonStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd

	case comparisonStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case comparisonStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = comparisonStateTimeframe
				m.timeframePicker.Reset()

				return m, nil
			case "s":
				return m, m.saveCmd()
			}
		}

		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *ComparisonModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.points))
	for _, p := range m.points {
		rows = append(rows, table.Row{
			FormatDate(p.Date),
			FormatAmount(p.PlannedIncome),
			FormatAmount(p.PlannedExpense),
			FormatAmount(p.ActualIncome),
			FormatAmount(p.ActualExpense),
			FormatAmount(p.PlannedBalance),
			FormatAmount(p.ActualBalance),
		})
	}

	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m ComparisonModel) View() string {
	switch m.state {
	case comparisonStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case comparisonStateLoading:
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Building series...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to pick another range)",
		)
	}

	header := fmt.Sprintf("%s to %s", FormatDate(m.start), FormatDate(m.end))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	panel := lipgloss.NewStyle().
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Render(m.summary)

	content := lipgloss.JoinVertical(lipgloss.Left,
		activeStyle.Render(header),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tableView, panel),
		m.status,
		faintStyle.Render(m.ShortHelp()),
	)

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type seriesLoadedMsg struct {
	points  []budget.DailyPoint
	summary string
	err     error
}

type csvSavedMsg struct {
	path string
	err  error
}

func (m ComparisonModel) loadCmd() tea.Cmd {
	start, end := m.start, m.end

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		points, err := m.session.Budgets.Series(ctx, m.session.UserID, start, end)
		if err != nil {
			return seriesLoadedMsg{err: err}
		}

		return seriesLoadedMsg{
			points:  points,
			summary: m.exports.SummaryText(ctx, m.session.UserID, end),
		}
	}
}

func (m ComparisonModel) saveCmd() tea.Cmd {
	points := m.points
	name := fmt.Sprintf("series_%s_%s.csv", m.start.Format("20060102"), m.end.Format("20060102"))

	return func() tea.Msg {
		path, err := filepath.Abs(name)
		if err != nil {
			return csvSavedMsg{err: err}
		}

		f, err := os.Create(path)
		if err != nil {
			return csvSavedMsg{err: err}
		}
		defer f.Close()

		if err := export.WriteSeriesCSV(f, points); err != nil {
			return csvSavedMsg{err: err}
		}

		return csvSavedMsg{path: path}
	}
}
