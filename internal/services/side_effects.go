package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/cache"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/events"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

// SideEffects lists the best-effort work that follows a decision. Nil fields are skipped.
type SideEffects struct {
	Approved     *models.TransactionApprovedEvent
	Rejected     *models.TransactionRejectedEvent
	RejectionLog *models.CreateWebhookRejectionLogInput
	Card         *models.Card
	Organization *models.Organization
}

// SideEffectDispatcher runs side effects concurrently and waits for them. Every failure is logged and dropped.
type SideEffectDispatcher struct {
	publisher     events.Publisher
	lookup        *cache.Lookup
	rejectionLogs repository.RejectionLogRepository
	timeout       time.Duration
}

func NewSideEffectDispatcher(publisher events.Publisher, lookup *cache.Lookup, rejectionLogs repository.RejectionLogRepository, timeout time.Duration) *SideEffectDispatcher {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &SideEffectDispatcher{
		publisher:     publisher,
		lookup:        lookup,
		rejectionLogs: rejectionLogs,
		timeout:       timeout,
	}
}

// Dispatch detaches from the caller's cancellation so a client disconnect cannot cut side effects short.
func (d *SideEffectDispatcher) Dispatch(ctx context.Context, effects SideEffects) {
	ctx = context.WithoutCancel(ctx)
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	var wg sync.WaitGroup
	run := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[PROCESSOR] Side effect %s panicked: %v", name, r)
				}
			}()
			if err := fn(ctx); err != nil {
				log.Printf("[PROCESSOR] Side effect %s failed: %v", name, err)
			}
		}()
	}

	if effects.Approved != nil {
		event := *effects.Approved
		run("publish approved", func(ctx context.Context) error {
			return d.publisher.PublishApproved(ctx, event)
		})
	}
	if effects.Rejected != nil {
		event := *effects.Rejected
		run("publish rejected", func(ctx context.Context) error {
			return d.publisher.PublishRejected(ctx, event)
		})
	}
	if effects.RejectionLog != nil && d.rejectionLogs != nil {
		entry := *effects.RejectionLog
		run("rejection log", func(ctx context.Context) error {
			return d.rejectionLogs.Create(ctx, entry)
		})
	}
	if d.lookup != nil && (effects.Card != nil || effects.Organization != nil) {
		run("cache refresh", func(ctx context.Context) error {
			d.lookup.PutCard(ctx, effects.Card)
			d.lookup.PutOrganization(ctx, effects.Organization)
			return nil
		})
	}

	wg.Wait()
}
