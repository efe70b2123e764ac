package models

import (
	"time"
)

type BalanceLedgerType string

const (
	LedgerDebit  BalanceLedgerType = "DEBIT"
	LedgerCredit BalanceLedgerType = "CREDIT"
)

// LedgerReferenceTransaction marks ledger rows written for a fuel transaction
const LedgerReferenceTransaction = "TRANSACTION"

type BalanceLedger struct {
	ID             string            `json:"id" db:"id"`
	OrganizationID string            `json:"organization_id" db:"organization_id"`
	Type           BalanceLedgerType `json:"type" db:"type"`
	Amount         string            `json:"amount" db:"amount"`
	BeforeBalance  string            `json:"before_balance" db:"before_balance"`
	AfterBalance   string            `json:"after_balance" db:"after_balance"`
	ReferenceType  string            `json:"reference_type" db:"reference_type"`
	ReferenceID    string            `json:"reference_id" db:"reference_id"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

type CreateBalanceLedgerInput struct {
	OrganizationID string
	Type           BalanceLedgerType
	Amount         string
	BeforeBalance  string
	AfterBalance   string
	ReferenceType  string
	ReferenceID    string
}
