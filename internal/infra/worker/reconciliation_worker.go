package worker

import (
	"context"
	"log"
	"time"

	"github.com/claimconnect/leadcore/internal/entity"
	"github.com/claimconnect/leadcore/internal/infra/http/middleware"
)

// ReconciliationWorker periodically looks for leads marked delivered with no
// audit row. The claim transaction should make that impossible, so any hit is
// corruption: it is logged and counted, never repaired silently.
type ReconciliationWorker struct {
	leads        entity.LeadRepositoryInterface
	tickInterval time.Duration
}

func NewReconciliationWorker(leads entity.LeadRepositoryInterface) *ReconciliationWorker {
	return &ReconciliationWorker{
		leads:        leads,
		tickInterval: 5 * time.Minute,
	}
}

func (w *ReconciliationWorker) Start(ctx context.Context) {
	log.Println("ledger reconciliation worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("ledger reconciliation worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *ReconciliationWorker) scan(ctx context.Context) {
	ids, err := w.leads.FindUnreconciled(ctx)
	if err != nil {
		log.Printf("[reconcile] scan failed: %v", err)
		return
	}

	for _, id := range ids {
		middleware.RecordConsistencyViolation()
		log.Printf("CRITICAL: lead %s is delivered but has no delivery audit row", id)
	}
}
