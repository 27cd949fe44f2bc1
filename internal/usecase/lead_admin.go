package usecase

import (
	"context"

	"github.com/claimconnect/leadcore/internal/entity"
)

// Admin transitions. A dispute keeps the delivery on the books and appends a
// new audit row; a replacement is a brand-new lead, never an edit of the
// original.

type DisputeLeadUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Deliveries entity.DeliveryRepositoryInterface
}

func NewDisputeLeadUseCase(
	leads entity.LeadRepositoryInterface,
	deliveries entity.DeliveryRepositoryInterface,
) *DisputeLeadUseCase {
	return &DisputeLeadUseCase{Leads: leads, Deliveries: deliveries}
}

func (uc *DisputeLeadUseCase) Execute(ctx context.Context, leadID string) error {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "lookup lead: " + err.Error()}
	}
	if lead == nil {
		return &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
	}
	if err := lead.CanTransition(entity.LeadDisputed); err != nil {
		return &DomainError{Code: CodeInvalidState, Message: err.Error()}
	}

	if err := uc.Leads.MarkDisputed(ctx, leadID); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "mark disputed: " + err.Error()}
	}

	audit := entity.NewDelivery(lead.ID, *lead.ClientID, entity.DeliveryEmail, entity.DeliveryDisputed)
	if err := uc.Deliveries.Append(ctx, audit); err != nil {
		return &TechnicalError{Code: "DATABASE_ERROR", Message: "append dispute audit: " + err.Error()}
	}
	return nil
}

type ReplaceLeadUseCase struct {
	Leads      entity.LeadRepositoryInterface
	Deliveries entity.DeliveryRepositoryInterface
}

func NewReplaceLeadUseCase(
	leads entity.LeadRepositoryInterface,
	deliveries entity.DeliveryRepositoryInterface,
) *ReplaceLeadUseCase {
	return &ReplaceLeadUseCase{Leads: leads, Deliveries: deliveries}
}

func (uc *ReplaceLeadUseCase) Execute(ctx context.Context, leadID string) (*ReplaceLeadOutput, error) {
	lead, err := uc.Leads.FindByID(ctx, leadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lookup lead: " + err.Error()}
	}
	if lead == nil {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
	}
	if err := lead.CanTransition(entity.LeadReplaced); err != nil {
		return nil, &DomainError{Code: CodeInvalidState, Message: err.Error()}
	}

	replacement := lead.Replacement()
	if err := uc.Leads.Replace(ctx, lead, replacement); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "replace lead: " + err.Error()}
	}

	audit := entity.NewDelivery(lead.ID, *lead.ClientID, entity.DeliveryEmail, entity.DeliveryReplaced)
	if err := uc.Deliveries.Append(ctx, audit); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "append replace audit: " + err.Error()}
	}

	return &ReplaceLeadOutput{
		OriginalID:    lead.ID,
		ReplacementID: replacement.ID,
	}, nil
}
