package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/usecase"
)

type ClientHandler struct {
	Repo entity.ClientRepositoryInterface
}

func NewClientHandler(repo entity.ClientRepositoryInterface) *ClientHandler {
	return &ClientHandler{Repo: repo}
}

type createClientRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	MinTier    string `json:"min_tier"`
	AutoAssign bool   `json:"auto_assign"`
	SheetURL   string `json:"sheet_url"`
}

func (h *ClientHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}

	client, err := entity.NewClient(req.Name, req.Email, entity.Tier(req.MinTier), req.AutoAssign, req.SheetURL)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, err.Error())
		return
	}

	if err := h.Repo.Create(r.Context(), client); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to create client")
		return
	}

	writeJSON(w, http.StatusCreated, client)
}

type addBalanceRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// HandleAddBalance credits a buyer account. Negative amounts are corrections.
func (h *ClientHandler) HandleAddBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")

	var req addBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}
	if req.AmountCents == 0 {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "amount_cents must be non-zero")
		return
	}

	if err := h.Repo.AddBalance(r.Context(), id, req.AmountCents); err != nil {
		if errors.Is(err, entity.ErrClientNotFound) {
			writeErrorResponse(w, http.StatusNotFound, usecase.CodeClientNotFound, "client not found")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to update balance")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "client_id": id})
}

func (h *ClientHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "clientID")

	client, err := h.Repo.FindByID(r.Context(), id)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load client")
		return
	}
	if client == nil {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeClientNotFound, "client not found")
		return
	}

	writeJSON(w, http.StatusOK, client)
}
