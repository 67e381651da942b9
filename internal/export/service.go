package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

// Source is the part of the budget service exports read from.
type Source interface {
	Series(ctx context.Context, userID string, start, end time.Time) ([]budget.DailyPoint, error)
	Summary(ctx context.Context, userID string, asOf time.Time) budget.Summary
}

// Service renders the comparison series and summary for download.
type Service struct {
	budgets Source
}

func NewService(budgets Source) *Service {
	return &Service{budgets: budgets}
}

var seriesHeader = []string{
	"date",
	"planned_income",
	"planned_expense",
	"actual_income",
	"actual_expense",
	"planned_balance",
	"actual_balance",
}

// SeriesCSV writes the user's daily series for [start, end] to w as CSV.
func (s *Service) SeriesCSV(ctx context.Context, userID string, start, end time.Time, w io.Writer) error {
	points, err := s.budgets.Series(ctx, userID, start, end)
	if err != nil {
		return fmt.Errorf("building series: %w", err)
	}

	return WriteSeriesCSV(w, points)
}

// SummaryText returns the user's summary as of asOf as plain text.
func (s *Service) SummaryText(ctx context.Context, userID string, asOf time.Time) string {
	return FormatSummary(s.budgets.Summary(ctx, userID, asOf))
}

// WriteSeriesCSV writes one header row and one row per point.
func WriteSeriesCSV(w io.Writer, points []budget.DailyPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(seriesHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range points {
		row := []string{
			p.Date.Format(time.DateOnly),
			money(p.PlannedIncome),
			money(p.PlannedExpense),
			money(p.ActualIncome),
			money(p.ActualExpense),
			money(p.PlannedBalance),
			money(p.ActualBalance),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", row[0], err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// FormatSummary lays out a summary as aligned "label | amount €" lines.
func FormatSummary(s budget.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Summary as of %s\n", s.AsOf.Format(time.DateOnly))

	lines := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Initial amount", s.InitialAmount},
		{"Planned income", s.PlannedIncome},
		{"Planned expense", s.PlannedExpense},
		{"Planned balance", s.PlannedBalance},
		{"Actual income", s.ActualIncome},
		{"Actual expense", s.ActualExpense},
		{"Actual balance", s.ActualBalance},
		{"Difference", s.ActualBalance.Sub(s.PlannedBalance)},
	}

	for _, l := range lines {
		fmt.Fprintf(&sb, "* %-16s | %12s €\n", l.label, money(l.amount))
	}

	return sb.String()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
