package models

import "time"

// WebhookRejectionLog is a best-effort audit record of a rejected webhook
type WebhookRejectionLog struct {
	ID            string          `json:"id" db:"id"`
	RequestID     string          `json:"request_id" db:"request_id"`
	CardNumber    string          `json:"card_number" db:"card_number"`
	Amount        string          `json:"amount" db:"amount"`
	StationID     string          `json:"station_id" db:"station_id"`
	TransactionAt *time.Time      `json:"transaction_at" db:"transaction_at"`
	Reason        RejectionReason `json:"reason" db:"reason"`
	Message       string          `json:"message" db:"message"`
	RawPayload    string          `json:"raw_payload" db:"raw_payload"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

type CreateWebhookRejectionLogInput struct {
	RequestID     string
	CardNumber    string
	Amount        string
	StationID     string
	TransactionAt *time.Time
	Reason        RejectionReason
	Message       string
	RawPayload    string
}
