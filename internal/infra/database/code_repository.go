package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
)

type CodeRepository struct {
	DB *sql.DB
}

func NewCodeRepository(db *sql.DB) *CodeRepository {
	return &CodeRepository{DB: db}
}

func (r *CodeRepository) Create(ctx context.Context, code *entity.VerificationCode) error {
	query := `
		INSERT INTO verification_codes (id, destination, code, channel, state, attempts, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		code.ID,
		code.Destination,
		code.Code,
		code.Channel,
		code.State,
		code.Attempts,
		code.CreatedAt,
		code.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create verification code: %w", err)
	}
	return nil
}

// Delete exists only for the issuance rollback path. Consumed and expired
// rows are retained for rate limiting and audit.
func (r *CodeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM verification_codes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}

func (r *CodeRepository) FindActiveByDestination(ctx context.Context, destination string) (*entity.VerificationCode, error) {
	query := `
		SELECT id, destination, code, channel, state, attempts, created_at, expires_at
		FROM verification_codes
		WHERE destination = $1 AND state = 'ACTIVE' AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRowContext(ctx, query, destination)

	var code entity.VerificationCode
	err := row.Scan(
		&code.ID,
		&code.Destination,
		&code.Code,
		&code.Channel,
		&code.State,
		&code.Attempts,
		&code.CreatedAt,
		&code.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find active code: %w", err)
	}
	return &code, nil
}

// InvalidateActive is keyed by destination and state, not by a snapshot held
// in memory, so concurrent issuances cannot leave an old code guessable.
func (r *CodeRepository) InvalidateActive(ctx context.Context, destination string) error {
	query := `
		UPDATE verification_codes
		SET state = 'CONSUMED'
		WHERE destination = $1 AND state = 'ACTIVE' AND expires_at > NOW()
	`
	if _, err := r.DB.ExecContext(ctx, query, destination); err != nil {
		return fmt.Errorf("invalidate active codes: %w", err)
	}
	return nil
}

// IncrementAttempts bumps the counter in the database, not in application
// code, so concurrent wrong guesses cannot lose an update.
func (r *CodeRepository) IncrementAttempts(ctx context.Context, id string) (int, error) {
	query := `
		UPDATE verification_codes
		SET attempts = attempts + 1
		WHERE id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("increment attempts: %w", err)
	}
	return attempts, nil
}

func (r *CodeRepository) MarkConsumed(ctx context.Context, id string) error {
	query := `UPDATE verification_codes SET state = 'CONSUMED' WHERE id = $1`
	if _, err := r.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("mark code consumed: %w", err)
	}
	return nil
}

func (r *CodeRepository) CountRecentByDestination(ctx context.Context, destination string, since time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM verification_codes
		WHERE destination = $1 AND created_at > $2
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, destination, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recent codes: %w", err)
	}
	return count, nil
}

func (r *CodeRepository) CountByChannel(ctx context.Context) ([]entity.ChannelStats, error) {
	query := `
		SELECT channel,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE state = 'CONSUMED')
		FROM verification_codes
		GROUP BY channel
		ORDER BY channel
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count codes by channel: %w", err)
	}
	defer rows.Close()

	var stats []entity.ChannelStats
	for rows.Next() {
		var s entity.ChannelStats
		if err := rows.Scan(&s.Channel, &s.Issued, &s.Consumed); err != nil {
			return nil, fmt.Errorf("scan channel stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
