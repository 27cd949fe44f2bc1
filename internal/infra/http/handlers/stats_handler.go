package handlers

import (
	"net/http"

	"github.com/claimconnect/leadcore/internal/entity"
)

// StatsHandler serves read-only projections over the ledger and the code
// store. No invariants of its own.
type StatsHandler struct {
	Leads entity.LeadRepositoryInterface
	Codes entity.CodeRepositoryInterface
}

func NewStatsHandler(leads entity.LeadRepositoryInterface, codes entity.CodeRepositoryInterface) *StatsHandler {
	return &StatsHandler{Leads: leads, Codes: codes}
}

func (h *StatsHandler) HandleLeadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Leads.Stats(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load lead stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) HandleCodeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Codes.CountByChannel(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "failed to load code stats")
		return
	}
	if stats == nil {
		stats = []entity.ChannelStats{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": stats})
}
