// Package audit writes one JSON line per transaction decision and per infrastructure failure.
package audit

import (
	"encoding/json"
	"log"
	"time"
)

const (
	EventApproved = "TRANSACTION_APPROVED"
	EventRejected = "TRANSACTION_REJECTED"
	EventReplayed = "TRANSACTION_REPLAYED"
	EventError    = "ERROR"
)

type AuditEvent struct {
	Timestamp     time.Time `json:"timestamp"`
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CardID        string    `json:"card_id,omitempty"`
	Amount        int64     `json:"amount"`
	Status        string    `json:"status"`
	Details       any       `json:"details,omitempty"`
}

type AuditLogger struct {
	logger *log.Logger
	now    func() time.Time
}

func NewAuditLogger(logger *log.Logger) *AuditLogger {
	if logger == nil {
		logger = log.Default()
	}
	return &AuditLogger{logger: logger, now: time.Now}
}

// LogDecision records an approval or rejection. amount is in minor units.
func (a *AuditLogger) LogDecision(requestID, transactionID, cardID string, amount int64, status, reason, message string) {
	eventType := EventApproved
	if reason != "" {
		eventType = EventRejected
	}
	details := map[string]string{"message": message}
	if reason != "" {
		details["reason"] = reason
	}
	a.log(AuditEvent{
		Timestamp:     a.now(),
		EventType:     eventType,
		RequestID:     requestID,
		TransactionID: transactionID,
		CardID:        cardID,
		Amount:        amount,
		Status:        status,
		Details:       details,
	})
}

func (a *AuditLogger) LogReplay(requestID, transactionID string, amount int64, status string) {
	a.log(AuditEvent{
		Timestamp:     a.now(),
		EventType:     EventReplayed,
		RequestID:     requestID,
		TransactionID: transactionID,
		Amount:        amount,
		Status:        status,
	})
}

func (a *AuditLogger) LogError(requestID, cardID string, err error) {
	a.log(AuditEvent{
		Timestamp: a.now(),
		EventType: EventError,
		RequestID: requestID,
		CardID:    cardID,
		Status:    "FAILED",
		Details:   map[string]string{"error": err.Error()},
	})
}

func (a *AuditLogger) log(event AuditEvent) {
	data, _ := json.Marshal(event)
	a.logger.Printf("AUDIT: %s", string(data))
}
