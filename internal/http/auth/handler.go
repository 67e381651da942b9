package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
)

type Handler struct {
	creds  auth.Credentials
	tokens *auth.Tokens
}

func NewHandler(creds auth.Credentials, tokens *auth.Tokens) *Handler {
	return &Handler{creds: creds, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !auth.CheckCredentials(req.Login, req.Password, h.creds) {
		slog.Warn("failed login", "login", req.Login, "remote", r.RemoteAddr)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)

		return
	}

	token, expires, err := h.tokens.Issue(req.Login)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(loginResponse{Token: token, ExpiresAt: expires}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
