package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

type LedgerRepository struct {
	db querier
}

func NewLedgerRepository(db querier) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Create(ctx context.Context, input models.CreateBalanceLedgerInput) (*models.BalanceLedger, error) {
	entry := &models.BalanceLedger{
		ID:             uuid.NewString(),
		OrganizationID: input.OrganizationID,
		Type:           input.Type,
		Amount:         input.Amount,
		BeforeBalance:  input.BeforeBalance,
		AfterBalance:   input.AfterBalance,
		ReferenceType:  input.ReferenceType,
		ReferenceID:    input.ReferenceID,
		CreatedAt:      time.Now(),
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO balance_ledgers (id, organization_id, type, amount, before_balance, after_balance, reference_type, reference_id, created_at)
		VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric, $7, $8, $9)
	`, entry.ID, entry.OrganizationID, string(entry.Type), entry.Amount, entry.BeforeBalance,
		entry.AfterBalance, entry.ReferenceType, entry.ReferenceID, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert ledger entry: %w", classifyError(err))
	}

	return entry, nil
}
