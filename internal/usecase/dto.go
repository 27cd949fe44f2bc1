package usecase

import (
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
)

type IssueCodeInput struct {
	Phone   string `json:"phone"`
	Channel string `json:"channel"`
}

type IssueCodeOutput struct {
	Destination string    `json:"destination"`
	Channel     string    `json:"channel"`
	ExpiresAt   time.Time `json:"expires_at"`

	// Code is surfaced to callers inside the process (tests, the verifier
	// round-trip); the HTTP layer never echoes it back.
	Code string `json:"-"`
}

type VerifyCodeInput struct {
	Phone   string              `json:"phone"`
	Code    string              `json:"code"`
	Email   string              `json:"email,omitempty"`
	Answers *entity.QuizAnswers `json:"answers,omitempty"`
}

type VerifyCodeOutput struct {
	Verified     bool   `json:"verified"`
	SessionToken string `json:"session_token,omitempty"`

	Disqualified bool   `json:"disqualified,omitempty"`
	Reason       string `json:"reason,omitempty"`

	Lead         *entity.Lead `json:"lead,omitempty"`
	Score        int          `json:"score,omitempty"`
	Tier         entity.Tier  `json:"tier,omitempty"`
	EstimateLow  int          `json:"estimate_low,omitempty"`
	EstimateHigh int          `json:"estimate_high,omitempty"`

	// LeadSaved is false on the degraded-success path: the code was consumed
	// but the lead row could not be persisted.
	LeadSaved bool   `json:"lead_saved"`
	Warning   string `json:"warning,omitempty"`
}

type DeliverLeadInput struct {
	LeadID   string                `json:"lead_id"`
	ClientID string                `json:"client_id"`
	Method   entity.DeliveryMethod `json:"method"`
}

type DeliverLeadOutput struct {
	DeliveryID string `json:"delivery_id"`
	LeadID     string `json:"lead_id"`
	ClientID   string `json:"client_id"`
}

type ReplaceLeadOutput struct {
	OriginalID    string `json:"original_id"`
	ReplacementID string `json:"replacement_id"`
}
