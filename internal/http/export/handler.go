package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/export"
	"github.com/MrJamesThe3rd/pocketplan/internal/http/projection"
)

type Handler struct {
	svc *export.Service
	loc *time.Location
	now func() time.Time
}

// NewHandler builds the export endpoints. Query dates are read in loc.
func NewHandler(svc *export.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/series", h.series)
	r.Get("/summary", h.summary)
}

func (h *Handler) series(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	start, end, err := projection.DateRange(r, h.loc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.SeriesCSV(r.Context(), userID, start, end, &buf); err != nil {
		if errors.Is(err, budget.ErrRangeTooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to export series", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"series_%s_%s.csv\"", start.Format("20060102"), end.Format("20060102")))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	asOf := h.now().In(h.loc)

	if s := r.URL.Query().Get("as_of"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, h.loc)
		if err != nil {
			http.Error(w, "as_of must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		asOf = t
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := fmt.Fprint(w, h.svc.SummaryText(r.Context(), userID, asOf)); err != nil {
		slog.Error("failed to write summary", "error", err)
	}
}
