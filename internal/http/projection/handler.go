package projection

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

type Handler struct {
	svc *budget.Service
	now func() time.Time
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

// Routes mounts the projection and series endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/projection", h.projection)
	r.Get("/series", h.series)
}

type summaryResponse struct {
	AsOf           string          `json:"as_of"`
	InitialAmount  decimal.Decimal `json:"initial_amount"`
	PlannedIncome  decimal.Decimal `json:"planned_income"`
	PlannedExpense decimal.Decimal `json:"planned_expense"`
	PlannedBalance decimal.Decimal `json:"planned_balance"`
	ActualIncome   decimal.Decimal `json:"actual_income"`
	ActualExpense  decimal.Decimal `json:"actual_expense"`
	ActualBalance  decimal.Decimal `json:"actual_balance"`
}

type pointResponse struct {
	Date           string          `json:"date"`
	PlannedIncome  decimal.Decimal `json:"planned_income"`
	PlannedExpense decimal.Decimal `json:"planned_expense"`
	ActualIncome   decimal.Decimal `json:"actual_income"`
	ActualExpense  decimal.Decimal `json:"actual_expense"`
	PlannedBalance decimal.Decimal `json:"planned_balance"`
	ActualBalance  decimal.Decimal `json:"actual_balance"`
}

func toSummaryResponse(s budget.Summary) summaryResponse {
	return summaryResponse{
		AsOf:           s.AsOf.Format(time.DateOnly),
		InitialAmount:  s.InitialAmount,
		PlannedIncome:  s.PlannedIncome,
		PlannedExpense: s.PlannedExpense,
		PlannedBalance: s.PlannedBalance,
		ActualIncome:   s.ActualIncome,
		ActualExpense:  s.ActualExpense,
		ActualBalance:  s.ActualBalance,
	}
}

func toPointResponses(points []budget.DailyPoint) []pointResponse {
	out := make([]pointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, pointResponse{
			Date:           p.Date.Format(time.DateOnly),
			PlannedIncome:  p.PlannedIncome,
			PlannedExpense: p.PlannedExpense,
			ActualIncome:   p.ActualIncome,
			ActualExpense:  p.ActualExpense,
			PlannedBalance: p.PlannedBalance,
			ActualBalance:  p.ActualBalance,
		})
	}

	return out
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	asOf := h.now().In(h.svc.Location())

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, h.svc.Location())
		if err != nil {
			http.Error(w, "as_of must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		asOf = t
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSummaryResponse(h.svc.Summary(r.Context(), userID, asOf))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, err := DateRange(r, h.svc.Location())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	points, err := h.svc.Series(r.Context(), userID, start, end)
	if err != nil {
		if errors.Is(err, budget.ErrRangeTooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPointResponses(points)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// DateRange reads the required start_date and end_date query parameters.
func DateRange(r *http.Request, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("start_date"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start_date must be YYYY-MM-DD")
	}

	end, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("end_date"), loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end_date must be YYYY-MM-DD")
	}

	return start, end, nil
}
