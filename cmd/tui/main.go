package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pocketplan/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget/store"
	"github.com/MrJamesThe3rd/pocketplan/internal/config"
	"github.com/MrJamesThe3rd/pocketplan/internal/export"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer"
)

type model struct {
	session       view.Session
	importService *importer.Service
	exportService *export.Service

	currentView View

	plannedView    view.EntriesModel
	actualView     view.EntriesModel
	comparisonView view.ComparisonModel
	importView     view.ImportModel
	initialView    view.InitialAmountModel
}

type View int

const (
	ViewMenu       View = 0
	ViewPlanned    View = 1
	ViewActual     View = 2
	ViewComparison View = 3
	ViewImport     View = 4
	ViewInitial    View = 5
)

func initialModel() (model, io.Closer) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("failed to load timezone", "error", err)
		os.Exit(1)
	}

	st, closer, err := store.Open(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	budgets := budget.NewService(st, loc, cfg.Series.MaxDays)
	session := view.Session{Budgets: budgets, UserID: cfg.Auth.Login}
	impSvc := importer.NewService(loc)
	expSvc := export.NewService(budgets)

	return model{
		session:       session,
		importService: impSvc,
		exportService: expSvc,
		currentView:   ViewMenu,
	}, closer
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewPlanned
				m.plannedView = view.NewEntriesModel(m.session, budget.CollectionPlanned)

				return m, m.plannedView.Init()
			case "2":
				m.currentView = ViewActual
				m.actualView = view.NewEntriesModel(m.session, budget.CollectionActual)

				return m, m.actualView.Init()
			case "3":
				m.currentView = ViewComparison
				m.comparisonView = view.NewComparisonModel(m.session, m.exportService)

				return m, m.comparisonView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.session, m.importService)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewInitial
				m.initialView = view.NewInitialAmountModel(m.session)

				return m, m.initialView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewPlanned:
		var newModel tea.Model
		newModel, cmd = m.plannedView.Update(msg)
		m.plannedView = newModel.(view.EntriesModel)
	case ViewActual:
		var newModel tea.Model
		newModel, cmd = m.actualView.Update(msg)
		m.actualView = newModel.(view.EntriesModel)
	case ViewComparison:
		var newModel tea.Model
		newModel, cmd = m.comparisonView.Update(msg)
		m.comparisonView = newModel.(view.ComparisonModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewInitial:
		var newModel tea.Model
		newModel, cmd = m.initialView.Update(msg)
		m.initialView = newModel.(view.InitialAmountModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Pocketplan\n\n" +
				"1. Planned Entries\n" +
				"2. Actual Entries\n" +
				"3. Planned vs Actual\n" +
				"4. Import Bank Export\n" +
				"5. Initial Amount\n\n" +
				"q. Quit",
		)
	case ViewPlanned:
		return m.plannedView.View()
	case ViewActual:
		return m.actualView.View()
	case ViewComparison:
		return m.comparisonView.View()
	case ViewImport:
		return m.importView.View()
	case ViewInitial:
		return m.initialView.View()
	}

	return "Unknown View"
}

func main() {
	m, closer := initialModel()

	p := tea.NewProgram(m)
	_, err := p.Run()

	_ = closer.Close()

	if err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
