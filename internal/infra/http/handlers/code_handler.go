package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/claimconnect/leadcore/internal/infra/http/middleware"
	"github.com/claimconnect/leadcore/internal/usecase"
)

type CodeHandler struct {
	IssueUC  *usecase.IssueCodeUseCase
	VerifyUC *usecase.VerifyCodeUseCase
}

func NewCodeHandler(issueUC *usecase.IssueCodeUseCase, verifyUC *usecase.VerifyCodeUseCase) *CodeHandler {
	return &CodeHandler{IssueUC: issueUC, VerifyUC: verifyUC}
}

func (h *CodeHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	var input usecase.IssueCodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}

	output, err := h.IssueUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordCodeIssued(output.Channel)

	// The code travels over the carrier gateway only, never the response.
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"expires_at": output.ExpiresAt,
	})
}

func (h *CodeHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var input usecase.VerifyCodeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeInvalidInput, "invalid JSON")
		return
	}

	output, err := h.VerifyUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordCodeVerified()
	if output.Lead != nil {
		middleware.RecordLeadCreated(string(output.Lead.Tier))
	}

	writeJSON(w, http.StatusOK, output)
}
