package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

// Session is the budget every screen works on.
type Session struct {
	Budgets *budget.Service
	UserID  string
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}
