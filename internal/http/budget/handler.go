package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.snapshot)
	r.Put("/", h.replace)
	r.Put("/initial-amount", h.setInitialAmount)

	r.Route("/{collection}/entries", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

type resultResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type initialAmountRequest struct {
	InitialAmount string `json:"initialAmount"`
}

type entryRequest struct {
	Description string             `json:"description"`
	Amount      string             `json:"amount"`
	Kind        budget.Kind        `json:"kind"`
	Date        string             `json:"date"`
	IsRecurring bool               `json:"isRecurring"`
	Periodicity budget.Periodicity `json:"periodicity,omitempty"`
}

// toEntry accepts both a plain date and an RFC 3339 timestamp.
func (req entryRequest) toEntry(loc *time.Location) (budget.Entry, error) {
	date, err := time.ParseInLocation(time.DateOnly, req.Date, loc)
	if err != nil {
		date, err = time.Parse(time.RFC3339, req.Date)
		if err != nil {
			return budget.Entry{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
		}
	}

	return budget.Entry{
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Date:        date,
		IsRecurring: req.IsRecurring,
		Periodicity: req.Periodicity,
	}, nil
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Snapshot(r.Context(), userID))
}

func (h *Handler) replace(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var snap budget.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.svc.ReplaceSnapshot(r.Context(), userID, &snap); err != nil {
		writeResult(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

func (h *Handler) setInitialAmount(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req initialAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, resultResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.svc.SetInitialAmount(r.Context(), userID, req.InitialAmount); err != nil {
		writeResult(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	loc := h.svc.Location()
	filter := budget.ListFilter{}

	if s := r.URL.Query().Get("kind"); s != "" {
		kind := budget.Kind(s)
		filter.Kind = &kind
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
			filter.StartDate = &t
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
			filter.EndDate = &t
		}
	}

	entries, err := h.svc.ListEntries(r.Context(), userID, collection(r), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	e, err := h.svc.GetEntry(r.Context(), userID, collection(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := req.toEntry(h.svc.Location())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.svc.AddEntry(r.Context(), userID, collection(r), e)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := req.toEntry(h.svc.Location())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e.ID = chi.URLParam(r, "id")

	updated, err := h.svc.UpdateEntry(r.Context(), userID, collection(r), e)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), userID, collection(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func collection(r *http.Request) budget.Collection {
	return budget.Collection(chi.URLParam(r, "collection"))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, budget.ErrNotFound), errors.Is(err, budget.ErrUnknownCollection):
		return http.StatusNotFound
	case errors.Is(err, budget.ErrInvalidEntry):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("budget request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// writeResult reports a failed snapshot write as {success:false}.
func writeResult(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("failed to save budget", "error", err)
		writeJSON(w, status, resultResponse{Error: "failed to save budget"})

		return
	}

	writeJSON(w, status, resultResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
