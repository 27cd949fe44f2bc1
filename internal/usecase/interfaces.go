package usecase

import (
	"context"

	"github.com/claimconnect/leadcore/internal/entity"
)

// CodeSender carries the passcode to the destination. Transport mechanics are
// outside the core; a hanging or failing send is reported as one bounded
// error and the issuance rolls back.
type CodeSender interface {
	SendCode(ctx context.Context, destination string, channel entity.Channel, code string) error
}

// TokenIssuer wraps a successful verification in a session token. Format and
// expiry policy belong to the auth layer, not here.
type TokenIssuer interface {
	IssueToken(phone string) (string, error)
}

// EventProducer announces a freshly verified lead for asynchronous
// distribution.
type EventProducer interface {
	PublishLeadVerified(ctx context.Context, payload LeadVerifiedPayload) error
}

type LeadVerifiedPayload struct {
	LeadID       string `json:"lead_id"`
	Phone        string `json:"phone"`
	Tier         string `json:"tier"`
	Score        int    `json:"score"`
	EstimateLow  int    `json:"estimate_low"`
	EstimateHigh int    `json:"estimate_high"`
	Source       string `json:"source"`
}

// LeadEmailSender pushes a delivered lead to the buyer's inbox.
type LeadEmailSender interface {
	SendLead(to string, lead *entity.Lead) error
}

// SheetsPusher appends a delivered lead to the buyer's configured sheet.
type SheetsPusher interface {
	PushLead(ctx context.Context, sheetURL string, lead *entity.Lead) error
}
