package usecase

import (
	"context"
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
)

const (
	defaultIssueLimit  = 3
	defaultIssueWindow = time.Hour
)

// RateLimiter gates code issuance per destination. It is a pure read over the
// code store: issuance history is retained precisely so this count works.
type RateLimiter struct {
	Codes  entity.CodeRepositoryInterface
	Limit  int
	Window time.Duration
}

func NewRateLimiter(codes entity.CodeRepositoryInterface) *RateLimiter {
	return &RateLimiter{
		Codes:  codes,
		Limit:  defaultIssueLimit,
		Window: defaultIssueWindow,
	}
}

// CanIssue reports whether the destination is under the ceiling.
func (rl *RateLimiter) CanIssue(ctx context.Context, destination string) (bool, error) {
	since := time.Now().Add(-rl.Window)
	count, err := rl.Codes.CountRecentByDestination(ctx, destination, since)
	if err != nil {
		return false, err
	}
	return count < rl.Limit, nil
}
