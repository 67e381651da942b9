package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	budgetSvc *budget.Service
}

func NewHandler(importSvc *importer.Service, budgetSvc *budget.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		budgetSvc: budgetSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/banks", h.banks)
	r.Post("/", h.importCSV)
}

type importResponse struct {
	Imported int            `json:"imported"`
	Entries  []budget.Entry `json:"entries"`
}

func (h *Handler) banks(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.importSvc.Banks()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		http.Error(w, "bank field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.budgetSvc.ImportActual(r.Context(), userID, parsed)
	if err != nil {
		if errors.Is(err, budget.ErrInvalidEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		slog.Error("failed to store imported entries", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if created == nil {
		created = []budget.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(importResponse{Imported: len(created), Entries: created}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
