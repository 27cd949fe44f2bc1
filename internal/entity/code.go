package entity

import (
	"context"
	"time"
)

type CodeState string

const (
	CodeActive   CodeState = "ACTIVE"
	CodeConsumed CodeState = "CONSUMED"
	CodeExpired  CodeState = "EXPIRED" // derived, never stored
)

const (
	CodeTTL         = 10 * time.Minute
	MaxCodeAttempts = 5
)

type VerificationCode struct {
	ID          string    `json:"id"`
	Destination string    `json:"destination"` // normalized 10-digit phone
	Code        string    `json:"-"`
	Channel     string    `json:"channel"`
	State       CodeState `json:"state"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// EffectiveState folds expiry into the stored state. Rows are written as
// ACTIVE or CONSUMED only; EXPIRED is a function of the clock.
func (c *VerificationCode) EffectiveState(now time.Time) CodeState {
	if c.State == CodeActive && now.After(c.ExpiresAt) {
		return CodeExpired
	}
	return c.State
}

func (c *VerificationCode) AttemptsRemaining() int {
	remaining := MaxCodeAttempts - c.Attempts
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Channel describes one carrier email-to-SMS gateway. The code is delivered
// as an email to <destination>@<GatewayDomain>.
type Channel struct {
	Name          string
	GatewayDomain string
	CodeDigits    int
}

// Channels is the allow-list of carriers the funnel knows how to reach.
var Channels = map[string]Channel{
	"verizon":    {Name: "verizon", GatewayDomain: "vtext.com", CodeDigits: 6},
	"att":        {Name: "att", GatewayDomain: "txt.att.net", CodeDigits: 6},
	"tmobile":    {Name: "tmobile", GatewayDomain: "tmomail.net", CodeDigits: 6},
	"sprint":     {Name: "sprint", GatewayDomain: "messaging.sprintpcs.com", CodeDigits: 6},
	"boost":      {Name: "boost", GatewayDomain: "sms.myboostmobile.com", CodeDigits: 6},
	"cricket":    {Name: "cricket", GatewayDomain: "sms.cricketwireless.net", CodeDigits: 6},
	"metro":      {Name: "metro", GatewayDomain: "mymetropcs.com", CodeDigits: 6},
	"uscellular": {Name: "uscellular", GatewayDomain: "email.uscc.net", CodeDigits: 4},
}

func LookupChannel(name string) (Channel, bool) {
	ch, ok := Channels[name]
	return ch, ok
}

type CodeRepositoryInterface interface {
	Create(ctx context.Context, code *VerificationCode) error
	Delete(ctx context.Context, id string) error

	// FindActiveByDestination returns the most recent ACTIVE, unexpired row
	// for the destination, or nil when none exists.
	FindActiveByDestination(ctx context.Context, destination string) (*VerificationCode, error)

	// InvalidateActive marks every ACTIVE, unexpired row for the destination
	// as CONSUMED in a single statement, keyed by destination+state so it is
	// race-safe under concurrent issuance.
	InvalidateActive(ctx context.Context, destination string) error

	// IncrementAttempts bumps the attempts counter atomically and returns the
	// new value.
	IncrementAttempts(ctx context.Context, id string) (int, error)

	MarkConsumed(ctx context.Context, id string) error

	// CountRecentByDestination counts rows created after the cutoff,
	// regardless of state. Issuance history is retained for exactly this.
	CountRecentByDestination(ctx context.Context, destination string, since time.Time) (int, error)

	CountByChannel(ctx context.Context) ([]ChannelStats, error)
}

type ChannelStats struct {
	Channel  string `json:"channel"`
	Issued   int    `json:"issued"`
	Consumed int    `json:"consumed"`
}
