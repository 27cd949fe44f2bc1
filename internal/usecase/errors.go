package usecase

import "fmt"

// Stable error kinds surfaced to callers. The UI distinguishes "fix your
// input" from "wait" from "start a new flow" by the code alone.
const (
	CodeInvalidInput     = "invalid_input"
	CodeRateLimited      = "rate_limited"
	CodeSendFailed       = "send_failed"
	CodeExpired          = "expired"
	CodeInvalidCode      = "invalid_code"
	CodeTooManyAttempts  = "too_many_attempts"
	CodeAlreadyDelivered = "already_delivered"
	CodeLeadNotFound     = "lead_not_found"
	CodeClientNotFound   = "client_not_found"
	CodeNoSheets         = "no_sheets_configured"
	CodeInvalidState     = "invalid_state"
)

// DomainError is a business rejection: the request was understood and refused.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure the caller did not cause.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
