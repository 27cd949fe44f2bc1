package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/claimconnect/leadcore/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// writeUseCaseError maps the error taxonomy onto HTTP. Every rejection keeps
// its stable kind so the UI can tell "fix input" from "wait" from "start
// over" without parsing messages.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if domainErr, ok := err.(*usecase.DomainError); ok {
		writeErrorResponse(w, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}
	if techErr, ok := err.(*usecase.TechnicalError); ok {
		log.Printf("technical error: %s: %s", techErr.Code, techErr.Message)
		if techErr.Code == usecase.CodeSendFailed {
			writeErrorResponse(w, http.StatusBadGateway, usecase.CodeSendFailed, "code could not be sent, try again")
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "something went wrong")
		return
	}
	log.Printf("unclassified error: %v", err)
	writeErrorResponse(w, http.StatusInternalServerError, "internal_error", "something went wrong")
}

func statusForCode(code string) int {
	switch code {
	case usecase.CodeRateLimited, usecase.CodeTooManyAttempts:
		return http.StatusTooManyRequests
	case usecase.CodeLeadNotFound, usecase.CodeClientNotFound:
		return http.StatusNotFound
	case usecase.CodeAlreadyDelivered, usecase.CodeInvalidState:
		return http.StatusConflict
	default:
		// invalid_input, expired, invalid_code, no_sheets_configured
		return http.StatusBadRequest
	}
}
