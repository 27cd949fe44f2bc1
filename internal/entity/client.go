package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Client is a buyer account. BalanceCents and the counters move together with
// deliveries; any other correction is administrative.
type Client struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	BalanceCents   int64     `json:"balance_cents"`
	LeadsPurchased int       `json:"leads_purchased"`
	LeadsDelivered int       `json:"leads_delivered"`
	AutoAssign     bool      `json:"auto_assign"`
	MinTier        Tier      `json:"min_tier"`
	SheetURL       string    `json:"sheet_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewClient(name, email string, minTier Tier, autoAssign bool, sheetURL string) (*Client, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	switch minTier {
	case TierHot, TierWarm, TierCold:
	default:
		return nil, errors.New("min_tier must be HOT, WARM or COLD")
	}
	return &Client{
		ID:         uuid.New().String(),
		Name:       name,
		Email:      email,
		MinTier:    minTier,
		AutoAssign: autoAssign,
		SheetURL:   sheetURL,
		CreatedAt:  time.Now(),
	}, nil
}

// Accepts reports whether a lead of the given tier clears the client's floor.
func (c *Client) Accepts(tier Tier) bool {
	rank := map[Tier]int{TierCold: 0, TierWarm: 1, TierHot: 2}
	return rank[tier] >= rank[c.MinTier]
}

type ClientRepositoryInterface interface {
	Create(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)

	// FindNextEligible picks the auto-assign client with the fewest delivered
	// leads whose tier floor accepts the given tier, or nil when none.
	FindNextEligible(ctx context.Context, tier Tier) (*Client, error)

	AddBalance(ctx context.Context, id string, deltaCents int64) error
}
