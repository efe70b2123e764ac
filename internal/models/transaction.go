package models

import (
	"time"
)

type TransactionStatus string

const (
	TransactionApproved TransactionStatus = "APPROVED"
	TransactionRejected TransactionStatus = "REJECTED"
)

type RejectionReason string

const (
	ReasonCardNotFound         RejectionReason = "CARD_NOT_FOUND"
	ReasonOrganizationNotFound RejectionReason = "ORGANIZATION_NOT_FOUND"
	ReasonInsufficientBalance  RejectionReason = "INSUFFICIENT_BALANCE"
	ReasonDailyLimitExceeded   RejectionReason = "DAILY_LIMIT_EXCEEDED"
	ReasonMonthlyLimitExceeded RejectionReason = "MONTHLY_LIMIT_EXCEEDED"
	ReasonDuplicateRequest     RejectionReason = "DUPLICATE_REQUEST"
)

// Transaction is the single authoritative outcome stored per request id
type Transaction struct {
	ID              string            `json:"id" db:"id"`
	RequestID       string            `json:"request_id" db:"request_id"`
	OrganizationID  string            `json:"organization_id" db:"organization_id"`
	CardID          string            `json:"card_id" db:"card_id"`
	StationID       string            `json:"station_id" db:"station_id"`
	Amount          string            `json:"amount" db:"amount"`
	TrxAt           time.Time         `json:"trx_at" db:"trx_at"`
	Status          TransactionStatus `json:"status" db:"status"`
	RejectionReason *RejectionReason  `json:"rejection_reason" db:"rejection_reason"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
}

// CreateTransactionInput carries the columns shared by approved and rejected rows
type CreateTransactionInput struct {
	RequestID      string
	OrganizationID string
	CardID         string
	StationID      string
	Amount         string
	TrxAt          time.Time
}
