package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/infra/http/middleware"
	"github.com/claimconnect/leadcore/internal/usecase"
)

// LeadDeliverer is the distribution entry point the worker shares with the
// manual API path. Both go through the same compare-and-set claim.
type LeadDeliverer interface {
	Execute(ctx context.Context, input usecase.DeliverLeadInput) (*usecase.DeliverLeadOutput, error)
}

// Worker consumes lead.verified events and auto-assigns each lead to the
// next eligible buyer.
type Worker struct {
	Channel   *amqp.Channel
	Clients   entity.ClientRepositoryInterface
	Deliverer LeadDeliverer
}

func NewWorker(ch *amqp.Channel, clients entity.ClientRepositoryInterface, deliverer LeadDeliverer) *Worker {
	return &Worker{
		Channel:   ch,
		Clients:   clients,
		Deliverer: deliverer,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register queue consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload usecase.LeadVerifiedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[worker] invalid JSON, dropping message: %s", err)
				// malformed, requeueing would wedge the queue
				d.Nack(false, false)
				continue
			}

			log.Printf("[worker] assigning lead %s (tier %s)", payload.LeadID, payload.Tier)

			if err := w.assignLead(context.Background(), payload); err != nil {
				log.Printf("[worker] assignment failed for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false) // off to the DLQ
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf("[worker] waiting on queue '%s'", queueName)
	<-forever
}

// assignLead returns an error only for technical failures; business outcomes
// (no buyer, lost race) are final for this event and get an ack.
func (w *Worker) assignLead(ctx context.Context, payload usecase.LeadVerifiedPayload) error {
	client, err := w.Clients.FindNextEligible(ctx, entity.Tier(payload.Tier))
	if err != nil {
		return err
	}
	if client == nil {
		log.Printf("[worker] no eligible buyer for tier %s, lead %s stays pending", payload.Tier, payload.LeadID)
		return nil
	}

	method := entity.DeliveryEmail
	if client.SheetURL != "" {
		method = entity.DeliverySheets
	}

	_, err = w.Deliverer.Execute(ctx, usecase.DeliverLeadInput{
		LeadID:   payload.LeadID,
		ClientID: client.ID,
		Method:   method,
	})
	if err != nil {
		if usecase.IsDomainError(err) {
			// already delivered through the manual path, or gone; either way
			// this event is settled
			log.Printf("[worker] lead %s not assignable: %s", payload.LeadID, err)
			return nil
		}
		middleware.RecordIntegrationError("assignment")
		return err
	}

	middleware.RecordDelivery(string(method), "auto_assigned")
	log.Printf("[worker] lead %s delivered to client %s via %s", payload.LeadID, client.ID, method)
	return nil
}
