package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/claimconnect/leadcore/internal/entity"
)

type DeliverLeadUseCase struct {
	Leads   entity.LeadRepositoryInterface
	Clients entity.ClientRepositoryInterface
	Email   LeadEmailSender
	Sheets  SheetsPusher
}

func NewDeliverLeadUseCase(
	leads entity.LeadRepositoryInterface,
	clients entity.ClientRepositoryInterface,
	email LeadEmailSender,
	sheets SheetsPusher,
) *DeliverLeadUseCase {
	return &DeliverLeadUseCase{
		Leads:   leads,
		Clients: clients,
		Email:   email,
		Sheets:  sheets,
	}
}

// Execute assigns a verified lead to exactly one buyer. The claim itself is a
// compare-and-set inside the repository transaction; everything before it is
// fail-fast validation and everything after it is best-effort outbound push.
func (uc *DeliverLeadUseCase) Execute(ctx context.Context, input DeliverLeadInput) (*DeliverLeadOutput, error) {
	if !input.Method.Valid() {
		return nil, &DomainError{
			Code:    CodeInvalidInput,
			Message: fmt.Sprintf("unknown delivery method %q", input.Method),
		}
	}

	lead, err := uc.Leads.FindByID(ctx, input.LeadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lookup lead: " + err.Error()}
	}
	if lead == nil {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
	}

	client, err := uc.Clients.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "lookup client: " + err.Error()}
	}
	if client == nil {
		return nil, &DomainError{Code: CodeClientNotFound, Message: "client not found"}
	}

	if input.Method == entity.DeliverySheets && client.SheetURL == "" {
		return nil, &DomainError{
			Code:    CodeNoSheets,
			Message: "client has no spreadsheet destination configured",
		}
	}

	// Fail fast on a lead we already know is taken. The transaction below is
	// still the authority under races.
	if lead.Delivered() {
		return nil, &DomainError{Code: CodeAlreadyDelivered, Message: "lead was already delivered"}
	}

	delivery := entity.NewDelivery(lead.ID, client.ID, input.Method, entity.DeliveryCompleted)

	err = uc.Leads.ClaimForDelivery(ctx, lead.ID, client.ID, delivery)
	switch {
	case errors.Is(err, entity.ErrAlreadyDelivered):
		return nil, &DomainError{Code: CodeAlreadyDelivered, Message: "lead was already delivered"}
	case errors.Is(err, entity.ErrLeadNotFound):
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "lead not found"}
	case err != nil:
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "claim lead: " + err.Error()}
	}

	// The claim is committed; a failed push never unwinds it. The audit row
	// is the source of truth and the push can be redone by hand.
	switch input.Method {
	case entity.DeliveryEmail:
		if uc.Email != nil {
			if err := uc.Email.SendLead(client.Email, lead); err != nil {
				log.Printf("WARNING: lead %s delivered to %s but email push failed: %v", lead.ID, client.ID, err)
			}
		}
	case entity.DeliverySheets:
		if uc.Sheets != nil {
			if err := uc.Sheets.PushLead(ctx, client.SheetURL, lead); err != nil {
				log.Printf("WARNING: lead %s delivered to %s but sheets push failed: %v", lead.ID, client.ID, err)
			}
		}
	}

	return &DeliverLeadOutput{
		DeliveryID: delivery.ID,
		LeadID:     lead.ID,
		ClientID:   client.ID,
	}, nil
}
