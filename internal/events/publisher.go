// Package events publishes transaction decisions to downstream consumers.
package events

import (
	"context"
	"log"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

const (
	TopicApproved = "transaction.approved"
	TopicRejected = "transaction.rejected"
)

// Publisher is invoked after the decision is final. Errors are reported but never change the decision.
type Publisher interface {
	PublishApproved(ctx context.Context, event models.TransactionApprovedEvent) error
	PublishRejected(ctx context.Context, event models.TransactionRejectedEvent) error
}

// NoopPublisher discards every event
type NoopPublisher struct{}

func (NoopPublisher) PublishApproved(context.Context, models.TransactionApprovedEvent) error {
	return nil
}

func (NoopPublisher) PublishRejected(context.Context, models.TransactionRejectedEvent) error {
	return nil
}

// LogPublisher writes one line per event
type LogPublisher struct {
	logger *log.Logger
}

func NewLogPublisher(logger *log.Logger) *LogPublisher {
	if logger == nil {
		logger = log.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishApproved(_ context.Context, event models.TransactionApprovedEvent) error {
	p.logger.Printf("[EVENTS] %s requestId=%s transactionId=%s organizationId=%s cardId=%s amount=%s",
		TopicApproved, event.RequestID, event.TransactionID, event.OrganizationID, event.CardID, event.Amount)
	return nil
}

func (p *LogPublisher) PublishRejected(_ context.Context, event models.TransactionRejectedEvent) error {
	p.logger.Printf("[EVENTS] %s requestId=%s reason=%s message=%s",
		TopicRejected, event.RequestID, event.Reason, event.Message)
	return nil
}
