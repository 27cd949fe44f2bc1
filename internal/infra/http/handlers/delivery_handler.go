package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/infra/http/middleware"
	"github.com/claimconnect/leadcore/internal/usecase"
)

type DeliveryHandler struct {
	DeliverUC  *usecase.DeliverLeadUseCase
	DisputeUC  *usecase.DisputeLeadUseCase
	ReplaceUC  *usecase.ReplaceLeadUseCase
	Deliveries entity.DeliveryRepositoryInterface
}

func NewDeliveryHandler(
	deliverUC *usecase.DeliverLeadUseCase,
	disputeUC *usecase.DisputeLeadUseCase,
	replaceUC *usecase.ReplaceLeadUseCase,
	deliveries entity.DeliveryRepositoryInterface,
) *DeliveryHandler {
	return &DeliveryHandler{
		DeliverUC:  deliverUC,
		DisputeUC:  disputeUC,
		ReplaceUC:  replaceUC,
		Deliveries: deliveries,
	}
}

func (h *DeliveryHandler) HandleDeliver(w http.ResponseWriter, r *http.Request) {
	var input usecase.DeliverLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}

	output, err := h.DeliverUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordDelivery(string(input.Method), "rejected")
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordDelivery(string(input.Method), "completed")
	writeJSON(w, http.StatusOK, output)
}

// HandleAudit lists the append-only delivery history of one lead.
func (h *DeliveryHandler) HandleAudit(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	if leadID == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "lead id is required")
		return
	}

	rows, err := h.Deliveries.FindByLeadID(r.Context(), leadID)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load deliveries")
		return
	}
	if rows == nil {
		rows = []*entity.Delivery{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"lead_id": leadID, "deliveries": rows})
}

func (h *DeliveryHandler) HandleDispute(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	if leadID == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "lead id is required")
		return
	}

	if err := h.DisputeUC.Execute(r.Context(), leadID); err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "lead_id": leadID})
}

func (h *DeliveryHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadID")
	if leadID == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "lead id is required")
		return
	}

	output, err := h.ReplaceUC.Execute(r.Context(), leadID)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
