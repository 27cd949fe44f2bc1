package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type DeliveryMethod string

const (
	DeliveryEmail  DeliveryMethod = "email"
	DeliverySheets DeliveryMethod = "sheets"
)

type DeliveryStatus string

const (
	DeliveryCompleted DeliveryStatus = "COMPLETED"
	DeliveryDisputed  DeliveryStatus = "DISPUTED"
	DeliveryReplaced  DeliveryStatus = "REPLACED"
)

// Delivery is one append-only audit row. Disputes and replacements add new
// rows referencing the same lead; existing rows are never edited.
type Delivery struct {
	ID          string         `json:"id"`
	LeadID      string         `json:"lead_id"`
	ClientID    string         `json:"client_id"`
	Method      DeliveryMethod `json:"method"`
	Status      DeliveryStatus `json:"status"`
	DeliveredAt time.Time      `json:"delivered_at"`
}

func NewDelivery(leadID, clientID string, method DeliveryMethod, status DeliveryStatus) *Delivery {
	return &Delivery{
		ID:          uuid.New().String(),
		LeadID:      leadID,
		ClientID:    clientID,
		Method:      method,
		Status:      status,
		DeliveredAt: time.Now(),
	}
}

func (m DeliveryMethod) Valid() bool {
	return m == DeliveryEmail || m == DeliverySheets
}

type DeliveryRepositoryInterface interface {
	// Append inserts the audit row. Rows created as part of a claim go
	// through LeadRepositoryInterface.ClaimForDelivery instead so they share
	// the claim's transaction.
	Append(ctx context.Context, d *Delivery) error
	FindByLeadID(ctx context.Context, leadID string) ([]*Delivery, error)
}
