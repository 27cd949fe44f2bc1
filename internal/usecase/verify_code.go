package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/scoring"
)

type VerifyCodeUseCase struct {
	Codes  entity.CodeRepositoryInterface
	Leads  entity.LeadRepositoryInterface
	Tokens TokenIssuer
	Events EventProducer
}

func NewVerifyCodeUseCase(
	codes entity.CodeRepositoryInterface,
	leads entity.LeadRepositoryInterface,
	tokens TokenIssuer,
	events EventProducer,
) *VerifyCodeUseCase {
	return &VerifyCodeUseCase{
		Codes:  codes,
		Leads:  leads,
		Tokens: tokens,
		Events: events,
	}
}

func (uc *VerifyCodeUseCase) Execute(ctx context.Context, input VerifyCodeInput) (*VerifyCodeOutput, error) {
	destination, ok := NormalizePhone(input.Phone)
	if !ok {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "phone must normalize to exactly 10 digits",
		}
	}

	submitted, ok := NormalizeCode(input.Code)
	if !ok {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: "code must be 4 to 6 digits",
		}
	}

	// Input problems must not burn the outstanding code, so answers are
	// validated before the row is touched.
	if input.Answers != nil {
		if verrs := ValidateAnswers(*input.Answers); len(verrs) > 0 {
			return nil, &DomainError{
				Code:    CodeInvalidInput,
				Message: "answers: " + verrs[0].Error(),
			}
		}
	}

	record, err := uc.Codes.FindActiveByDestination(ctx, destination)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lookup code: " + err.Error()}
	}
	if record == nil {
		// No active code: never issued, already consumed, or timed out. The
		// only way forward is a fresh code.
		return nil, &DomainError{
			Code:    CodeExpired,
			Message: "code expired or already used, request a new one",
		}
	}

	// Checked before the comparison so a brute-forcer gains nothing from a
	// counter that was bumped without an immediate retry.
	if record.Attempts >= entity.MaxCodeAttempts {
		return nil, &DomainError{
			Code:    CodeTooManyAttempts,
			Message: "too many wrong attempts, request a new code",
		}
	}

	if record.Code != submitted {
		attempts, err := uc.Codes.IncrementAttempts(ctx, record.ID)
		if err != nil {
			return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "increment attempts: " + err.Error()}
		}
		remaining := entity.MaxCodeAttempts - attempts
		if remaining < 0 {
			remaining = 0
		}
		return nil, &DomainError{
			Code:    CodeInvalidCode,
			Message: fmt.Sprintf("invalid code, %d attempts remaining", remaining),
		}
	}

	if err := uc.Codes.MarkConsumed(ctx, record.ID); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "consume code: " + err.Error()}
	}

	output := &VerifyCodeOutput{Verified: true}

	if uc.Tokens != nil {
		token, err := uc.Tokens.IssueToken(destination)
		if err != nil {
			log.Printf("WARNING: session token issue failed for %s: %v", destination, err)
		} else {
			output.SessionToken = token
		}
	}

	if input.Answers == nil {
		return output, nil
	}
	answers := *input.Answers

	if reason, disqualified := scoring.Disqualify(answers); disqualified {
		output.Disqualified = true
		output.Reason = string(reason)
		return output, nil
	}

	score, tier := scoring.Classify(answers)
	estLow, estHigh := scoring.Estimate(answers)
	lead := entity.NewLead(destination, input.Email, answers, score, tier, estLow, estHigh)

	output.Score = score
	output.Tier = tier
	output.EstimateLow = estLow
	output.EstimateHigh = estHigh

	// The code is consumed either way. If the lead row cannot be written we
	// return a degraded success instead of re-enabling the code; retrying
	// would need a fresh code anyway.
	if err := uc.Leads.Create(ctx, lead); err != nil {
		log.Printf("CRITICAL: verified %s but lead persist failed: %v", destination, err)
		output.LeadSaved = false
		output.Warning = "verification succeeded but the submission could not be recorded"
		return output, nil
	}
	output.Lead = lead
	output.LeadSaved = true

	if uc.Events != nil {
		payload := LeadVerifiedPayload{
			LeadID:       lead.ID,
			Phone:        lead.Phone,
			Tier:         string(lead.Tier),
			Score:        lead.Score,
			EstimateLow:  lead.EstimateLow,
			EstimateHigh: lead.EstimateHigh,
			Source:       string(lead.Source),
		}
		if err := uc.Events.PublishLeadVerified(ctx, payload); err != nil {
			// lead is safe in the ledger, distribution can be done manually
			log.Printf("WARNING: lead %s saved but queue publish failed: %v", lead.ID, err)
		}
	}

	return output, nil
}
