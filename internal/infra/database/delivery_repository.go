package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/claimconnect/leadcore/internal/entity"
)

type DeliveryRepository struct {
	DB *sql.DB
}

func NewDeliveryRepository(db *sql.DB) *DeliveryRepository {
	return &DeliveryRepository{DB: db}
}

// Append inserts an audit row. There is no update or delete on this table.
func (r *DeliveryRepository) Append(ctx context.Context, d *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, lead_id, client_id, method, status, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.ID,
		d.LeadID,
		d.ClientID,
		d.Method,
		d.Status,
		d.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("append delivery: %w", err)
	}
	return nil
}

func (r *DeliveryRepository) FindByLeadID(ctx context.Context, leadID string) ([]*entity.Delivery, error) {
	query := `
		SELECT id, lead_id, client_id, method, status, delivered_at
		FROM deliveries
		WHERE lead_id = $1
		ORDER BY delivered_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("find deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		err := rows.Scan(&d.ID, &d.LeadID, &d.ClientID, &d.Method, &d.Status, &d.DeliveredAt)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, &d)
	}
	return deliveries, rows.Err()
}
