package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claimconnect/leadcore/internal/entity"
)

type ClientRepository struct {
	DB *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{DB: db}
}

func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, name, email, balance_cents, leads_purchased, leads_delivered,
		                     auto_assign, min_tier, sheet_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.Email,
		client.BalanceCents,
		client.LeadsPurchased,
		client.LeadsDelivered,
		client.AutoAssign,
		client.MinTier,
		client.SheetURL,
		client.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

const clientColumns = `id, name, email, balance_cents, leads_purchased, leads_delivered,
	auto_assign, min_tier, COALESCE(sheet_url, ''), created_at`

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	client, err := scanClient(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

// FindNextEligible spreads auto-assigned leads across buyers by picking the
// one with the fewest deliveries whose tier floor accepts the lead.
func (r *ClientRepository) FindNextEligible(ctx context.Context, tier entity.Tier) (*entity.Client, error) {
	tierRank := map[entity.Tier]int{entity.TierCold: 0, entity.TierWarm: 1, entity.TierHot: 2}

	query := `SELECT ` + clientColumns + `
		FROM clients
		WHERE auto_assign = TRUE
		  AND balance_cents > 0
		  AND CASE min_tier WHEN 'COLD' THEN 0 WHEN 'WARM' THEN 1 ELSE 2 END <= $1
		ORDER BY leads_delivered ASC, created_at ASC
		LIMIT 1
	`
	client, err := scanClient(r.DB.QueryRowContext(ctx, query, tierRank[tier]))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find eligible client: %w", err)
	}
	return client, nil
}

// AddBalance applies the delta in SQL so concurrent adjustments cannot lose
// an update.
func (r *ClientRepository) AddBalance(ctx context.Context, id string, deltaCents int64) error {
	query := `UPDATE clients SET balance_cents = balance_cents + $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, deltaCents)
	if err != nil {
		return fmt.Errorf("add balance: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return entity.ErrClientNotFound
	}
	return nil
}

func scanClient(row *sql.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.BalanceCents,
		&c.LeadsPurchased,
		&c.LeadsDelivered,
		&c.AutoAssign,
		&c.MinTier,
		&c.SheetURL,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
