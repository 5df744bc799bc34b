package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/EatTrue/internal/application/scanning"
	"github.com/turtacn/EatTrue/internal/domain/risk"
)

// UserHandler serves per-user profile and history endpoints.
type UserHandler struct {
	svc scanning.Service
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc scanning.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

// HistoryResponse wraps a user's scan history.
type HistoryResponse struct {
	UserID  string       `json:"user_id"`
	Entries risk.History `json:"entries"`
	Total   int          `json:"total"`
}

// GetProfile handles GET /api/v1/users/{userID}/profile.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProfile handles PUT /api/v1/users/{userID}/profile.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var upd scanning.ProfileUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeAppError(w, r, err)
		return
	}
	p, err := h.svc.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), &upd)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetHistory handles GET /api/v1/users/{userID}/history?limit=N.
func (h *UserHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	userID := chi.URLParam(r, "userID")
	entries, err := h.svc.GetHistory(r.Context(), userID, limit)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{UserID: userID, Entries: entries, Total: len(entries)})
}

//Personal.AI order the ending
