package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/claimconnect/leadcore/internal/entity"
)

type IssueCodeUseCase struct {
	Codes   entity.CodeRepositoryInterface
	Limiter *RateLimiter
	Sender  CodeSender
}

func NewIssueCodeUseCase(
	codes entity.CodeRepositoryInterface,
	limiter *RateLimiter,
	sender CodeSender,
) *IssueCodeUseCase {
	return &IssueCodeUseCase{
		Codes:   codes,
		Limiter: limiter,
		Sender:  sender,
	}
}

func (uc *IssueCodeUseCase) Execute(ctx context.Context, input IssueCodeInput) (*IssueCodeOutput, error) {
	destination, ok := NormalizePhone(input.Phone)
	if !ok {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "phone must normalize to exactly 10 digits",
		}
	}

	channel, ok := entity.LookupChannel(input.Channel)
	if !ok {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: fmt.Sprintf("unknown channel %q", input.Channel),
		}
	}

	allowed, err := uc.Limiter.CanIssue(ctx, destination)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "rate limit check failed: " + err.Error()}
	}
	if !allowed {
		return nil, &DomainError{
			Code: CodeRateLimited,
			Message: fmt.Sprintf("too many codes requested, try again in %d minutes",
				int(uc.Limiter.Window.Minutes())),
		}
	}

	// One active code per destination: anything still guessable dies before
	// the new code exists.
	if err := uc.Codes.InvalidateActive(ctx, destination); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "invalidate prior codes: " + err.Error()}
	}

	code, err := generateCode(channel.CodeDigits)
	if err != nil {
		return nil, &TechnicalError{Code: "RNG_ERROR", Message: "generate code: " + err.Error()}
	}

	now := time.Now()
	record := &entity.VerificationCode{
		ID:          uuid.New().String(),
		Destination: destination,
		Code:        code,
		Channel:     channel.Name,
		State:       entity.CodeActive,
		Attempts:    0,
		CreatedAt:   now,
		ExpiresAt:   now.Add(entity.CodeTTL),
	}

	txn := NewTransaction()

	txn.AddOperation("persist_code", func(ctx context.Context) error {
		return uc.Codes.Create(ctx, record)
	})
	txn.AddCompensation("delete_code", func(ctx context.Context) error {
		return uc.Codes.Delete(ctx, record.ID)
	})

	txn.AddOperation("send_code", func(ctx context.Context) error {
		return uc.Sender.SendCode(ctx, destination, channel, code)
	})

	if err := txn.Execute(ctx); err != nil {
		if FailedOperation(err) == "send_code" {
			// row already rolled back, safe for the caller to retry
			return nil, &TechnicalError{Code: CodeSendFailed, Message: "code could not be sent: " + err.Error()}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return &IssueCodeOutput{
		Destination: destination,
		Channel:     channel.Name,
		ExpiresAt:   record.ExpiresAt,
		Code:        code,
	}, nil
}

// generateCode draws uniformly from the full digit space, leading zeros
// included.
func generateCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
