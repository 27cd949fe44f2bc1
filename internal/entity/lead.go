package entity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LeadState string

const (
	LeadPending   LeadState = "PENDING"
	LeadDelivered LeadState = "DELIVERED"
	LeadDisputed  LeadState = "DISPUTED"
	LeadReplaced  LeadState = "REPLACED"
)

type Tier string

const (
	TierHot  Tier = "HOT"
	TierWarm Tier = "WARM"
	TierCold Tier = "COLD"
)

// Lead is the durable record of a verified prospect. One row is created per
// successful verification; delivery fields are mutated only through the
// distribution flow, dispute/replace only through the admin flow.
type Lead struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`

	Score        int  `json:"score"`
	Tier         Tier `json:"tier"`
	EstimateLow  int  `json:"estimate_low"`
	EstimateHigh int  `json:"estimate_high"`

	State       LeadState  `json:"state"`
	ClientID    *string    `json:"client_id,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`

	Source     FunnelSource `json:"source"`
	Answers    QuizAnswers  `json:"answers"`
	ReplacedBy *string      `json:"replaced_by,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func NewLead(phone, email string, answers QuizAnswers, score int, tier Tier, estLow, estHigh int) *Lead {
	return &Lead{
		ID:           uuid.New().String(),
		Phone:        phone,
		Email:        email,
		Score:        score,
		Tier:         tier,
		EstimateLow:  estLow,
		EstimateHigh: estHigh,
		State:        LeadPending,
		Source:       answers.Source,
		Answers:      answers,
		CreatedAt:    time.Now(),
	}
}

// Delivered reports whether the lead has been assigned to a buyer at some
// point. Disputed and replaced leads keep their delivery.
func (l *Lead) Delivered() bool {
	return l.State == LeadDelivered || l.State == LeadDisputed || l.State == LeadReplaced
}

// Replacement builds the new pending lead issued to a buyer in place of a
// disputed one. Identity is fresh; the classification snapshot carries over.
func (l *Lead) Replacement() *Lead {
	return NewLead(l.Phone, l.Email, l.Answers, l.Score, l.Tier, l.EstimateLow, l.EstimateHigh)
}

// CanTransition rejects illegal lifecycle moves up front so callers do not
// depend on scattered flag checks.
func (l *Lead) CanTransition(to LeadState) error {
	switch to {
	case LeadDelivered:
		if l.State != LeadPending {
			return fmt.Errorf("lead %s is %s, not pending", l.ID, l.State)
		}
	case LeadDisputed:
		if l.State != LeadDelivered {
			return fmt.Errorf("lead %s is %s, only delivered leads can be disputed", l.ID, l.State)
		}
	case LeadReplaced:
		if l.State != LeadDisputed {
			return fmt.Errorf("lead %s is %s, only disputed leads can be replaced", l.ID, l.State)
		}
	default:
		return fmt.Errorf("no transition into state %s", to)
	}
	return nil
}

type LeadStats struct {
	Total     int `json:"total"`
	Hot       int `json:"hot"`
	Warm      int `json:"warm"`
	Cold      int `json:"cold"`
	Delivered int `json:"delivered"`
	Disputed  int `json:"disputed"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)

	// ClaimForDelivery flips the lead from PENDING to DELIVERED, records the
	// winning client, increments that client's delivered counter and appends
	// the audit row in one transaction. The guard is a compare-and-set on the
	// state column: of two concurrent claims exactly one succeeds, the other
	// gets ErrAlreadyDelivered.
	ClaimForDelivery(ctx context.Context, leadID, clientID string, delivery *Delivery) error

	MarkDisputed(ctx context.Context, leadID string) error

	// Replace marks the original REPLACED, records the replacement's id on it
	// and inserts the replacement row in the same transaction.
	Replace(ctx context.Context, original *Lead, replacement *Lead) error

	Stats(ctx context.Context) (*LeadStats, error)

	// FindUnreconciled returns ids of delivered leads with no matching audit
	// row. A non-empty result is a consistency violation, never normal.
	FindUnreconciled(ctx context.Context) ([]string, error)
}
