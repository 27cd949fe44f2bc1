package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/claimconnect/leadcore/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	answers, err := json.Marshal(lead.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query := `
		INSERT INTO leads (id, phone, email, score, tier, estimate_low, estimate_high,
		                   state, source, answers, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Phone,
		lead.Email,
		lead.Score,
		lead.Tier,
		lead.EstimateLow,
		lead.EstimateHigh,
		lead.State,
		lead.Source,
		answers,
		lead.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("duplicate lead id %s: %w", lead.ID, err)
		}
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

const leadColumns = `id, phone, COALESCE(email, ''), score, tier, estimate_low, estimate_high,
	state, client_id, delivered_at, source, answers, replaced_by, created_at`

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lead: %w", err)
	}
	return lead, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var answers []byte
	err := row.Scan(
		&lead.ID,
		&lead.Phone,
		&lead.Email,
		&lead.Score,
		&lead.Tier,
		&lead.EstimateLow,
		&lead.EstimateHigh,
		&lead.State,
		&lead.ClientID,
		&lead.DeliveredAt,
		&lead.Source,
		&answers,
		&lead.ReplacedBy,
		&lead.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(answers, &lead.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &lead, nil
}

// ClaimForDelivery is the one place the at-most-once guarantee lives. The
// UPDATE's WHERE state = 'PENDING' is the compare-and-set: under two
// concurrent claims the row matches for exactly one of them, and the client
// counter and audit row commit or roll back with it.
func (r *LeadRepository) ClaimForDelivery(ctx context.Context, leadID, clientID string, delivery *entity.Delivery) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin claim tx: %w", err)
	}
	defer tx.Rollback()

	claim := `
		UPDATE leads
		SET state = 'DELIVERED', client_id = $2, delivered_at = NOW()
		WHERE id = $1 AND state = 'PENDING'
	`
	res, err := tx.ExecContext(ctx, claim, leadID, clientID)
	if err != nil {
		return fmt.Errorf("claim lead: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim lead rows: %w", err)
	}
	if affected == 0 {
		// Lost the race or the id is gone; tell them apart.
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)`, leadID).Scan(&exists); err != nil {
			return fmt.Errorf("check lead exists: %w", err)
		}
		if !exists {
			return entity.ErrLeadNotFound
		}
		return entity.ErrAlreadyDelivered
	}

	counter := `
		UPDATE clients
		SET leads_delivered = leads_delivered + 1
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, counter, clientID); err != nil {
		return fmt.Errorf("increment client counter: %w", err)
	}

	audit := `
		INSERT INTO deliveries (id, lead_id, client_id, method, status, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, audit,
		delivery.ID,
		delivery.LeadID,
		delivery.ClientID,
		delivery.Method,
		delivery.Status,
		delivery.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("append delivery audit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit claim: %w", err)
	}
	return nil
}

func (r *LeadRepository) MarkDisputed(ctx context.Context, leadID string) error {
	query := `UPDATE leads SET state = 'DISPUTED' WHERE id = $1 AND state = 'DELIVERED'`
	res, err := r.DB.ExecContext(ctx, query, leadID)
	if err != nil {
		return fmt.Errorf("mark disputed: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("lead %s is not in a disputable state", leadID)
	}
	return nil
}

func (r *LeadRepository) Replace(ctx context.Context, original *entity.Lead, replacement *entity.Lead) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace tx: %w", err)
	}
	defer tx.Rollback()

	mark := `UPDATE leads SET state = 'REPLACED', replaced_by = $2 WHERE id = $1 AND state = 'DISPUTED'`
	res, err := tx.ExecContext(ctx, mark, original.ID, replacement.ID)
	if err != nil {
		return fmt.Errorf("mark replaced: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("lead %s is not in a replaceable state", original.ID)
	}

	answers, err := json.Marshal(replacement.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	insert := `
		INSERT INTO leads (id, phone, email, score, tier, estimate_low, estimate_high,
		                   state, source, answers, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = tx.ExecContext(ctx, insert,
		replacement.ID,
		replacement.Phone,
		replacement.Email,
		replacement.Score,
		replacement.Tier,
		replacement.EstimateLow,
		replacement.EstimateHigh,
		replacement.State,
		replacement.Source,
		answers,
		replacement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert replacement: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func (r *LeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE tier = 'HOT'),
		       COUNT(*) FILTER (WHERE tier = 'WARM'),
		       COUNT(*) FILTER (WHERE tier = 'COLD'),
		       COUNT(*) FILTER (WHERE state IN ('DELIVERED', 'DISPUTED', 'REPLACED')),
		       COUNT(*) FILTER (WHERE state = 'DISPUTED')
		FROM leads
	`
	var stats entity.LeadStats
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.Total,
		&stats.Hot,
		&stats.Warm,
		&stats.Cold,
		&stats.Delivered,
		&stats.Disputed,
	)
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	return &stats, nil
}

// FindUnreconciled surfaces leads the claim transaction should have made
// impossible: delivered with no audit row. Reported, never auto-repaired.
func (r *LeadRepository) FindUnreconciled(ctx context.Context) ([]string, error) {
	query := `
		SELECT l.id
		FROM leads l
		WHERE l.state IN ('DELIVERED', 'DISPUTED', 'REPLACED')
		  AND NOT EXISTS (SELECT 1 FROM deliveries d WHERE d.lead_id = l.id)
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("find unreconciled leads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unreconciled id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
