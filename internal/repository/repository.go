// Package repository defines the data-access contracts the transaction processor depends on.
//
// Every method is a suspension point. Implementations bound to a unit of work are handed to
// the callback of DataServices.RunInTransaction; implementations outside it read autocommitted.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

var (
	// ErrDuplicateRequestID is returned when a transaction row with the same request id already exists.
	ErrDuplicateRequestID = errors.New("duplicate request id")
	// ErrLockTimeout covers lock-wait timeouts, deadlocks and serialization failures. Callers may retry.
	ErrLockTimeout = errors.New("lock wait timeout")
	// ErrNotFound is returned by updates that matched no row.
	ErrNotFound = errors.New("record not found")
)

type CardRepository interface {
	// FindByCardNumber returns nil, nil when no card matches.
	FindByCardNumber(ctx context.Context, cardNumber string) (*models.Card, error)
	FindByID(ctx context.Context, id string) (*models.Card, error)
	GetUsageSnapshot(ctx context.Context, cardID string, trxAt time.Time) (*models.CardUsageSnapshot, error)
	AddUsage(ctx context.Context, cardID string, trxAt time.Time, amount string) error
	LockByID(ctx context.Context, cardID string) error
}

type OrganizationRepository interface {
	// FindByID returns nil, nil when no organization matches.
	FindByID(ctx context.Context, id string) (*models.Organization, error)
	UpdateBalance(ctx context.Context, id string, newBalance string) error
	LockByID(ctx context.Context, id string) error
}

type TransactionRepository interface {
	// FindByRequestID returns nil, nil when the request id was never processed.
	FindByRequestID(ctx context.Context, requestID string) (*models.Transaction, error)
	CreateApproved(ctx context.Context, input models.CreateTransactionInput) (*models.Transaction, error)
	CreateRejected(ctx context.Context, input models.CreateTransactionInput, reason models.RejectionReason) (*models.Transaction, error)
}

type LedgerRepository interface {
	Create(ctx context.Context, input models.CreateBalanceLedgerInput) (*models.BalanceLedger, error)
}

type RejectionLogRepository interface {
	Create(ctx context.Context, input models.CreateWebhookRejectionLogInput) error
}

// Store is a bundle of repository handles sharing one connection scope.
type Store interface {
	Cards() CardRepository
	Organizations() OrganizationRepository
	Transactions() TransactionRepository
	Ledgers() LedgerRepository
	RejectionLogs() RejectionLogRepository
}

// DataServices is the entry point of the persistence layer.
type DataServices interface {
	Store

	// RunInTransaction calls fn with a Store scoped to a single atomic unit of work.
	// The unit commits when fn returns nil and rolls back otherwise.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
