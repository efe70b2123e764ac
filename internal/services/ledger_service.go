package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/money"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

// ErrInsufficientBalance is returned when a debit would take the balance below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// BalanceLedgerService moves organization balances and keeps the append-only ledger in step with them.
type BalanceLedgerService struct{}

func NewBalanceLedgerService() *BalanceLedgerService {
	return &BalanceLedgerService{}
}

// DebitTx debits amount from the locked organization and appends the matching DEBIT entry.
// It must run inside a unit of work that already holds the organization row lock.
// It returns the organization as it reads after the debit.
func (s *BalanceLedgerService) DebitTx(ctx context.Context, tx repository.Store, org *models.Organization, amount int64, transactionID string) (*models.Organization, error) {
	before, err := money.ToMinorUnits(org.CurrentBalance)
	if err != nil {
		return nil, fmt.Errorf("organization %s balance: %w", org.ID, err)
	}

	if before < amount {
		return nil, fmt.Errorf("%w: organization %s", ErrInsufficientBalance, org.ID)
	}
	after := before - amount

	if err := tx.Organizations().UpdateBalance(ctx, org.ID, money.FromMinorUnits(after)); err != nil {
		return nil, err
	}

	_, err = tx.Ledgers().Create(ctx, models.CreateBalanceLedgerInput{
		OrganizationID: org.ID,
		Type:           models.LedgerDebit,
		Amount:         money.FromMinorUnits(amount),
		BeforeBalance:  money.FromMinorUnits(before),
		AfterBalance:   money.FromMinorUnits(after),
		ReferenceType:  models.LedgerReferenceTransaction,
		ReferenceID:    transactionID,
	})
	if err != nil {
		return nil, err
	}

	updated := *org
	updated.CurrentBalance = money.FromMinorUnits(after)
	return &updated, nil
}
