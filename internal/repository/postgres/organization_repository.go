package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

type OrganizationRepository struct {
	db querier
}

func NewOrganizationRepository(db querier) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) FindByID(ctx context.Context, id string) (*models.Organization, error) {
	var org models.Organization
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, current_balance::text, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`, id).Scan(&org.ID, &org.Name, &org.CurrentBalance, &org.CreatedAt, &org.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find organization %s: %w", id, classifyError(err))
	}
	return &org, nil
}

func (r *OrganizationRepository) UpdateBalance(ctx context.Context, id string, newBalance string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE organizations
		SET current_balance = $1::numeric, updated_at = $2
		WHERE id = $3
	`, newBalance, time.Now(), id)
	if err != nil {
		return fmt.Errorf("update organization balance: %w", classifyError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("update organization %s balance: %w", id, repository.ErrNotFound)
	}
	return nil
}

// LockByID takes an exclusive row lock on the organization for the rest of the transaction.
func (r *OrganizationRepository) LockByID(ctx context.Context, id string) error {
	var lockedID string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM organizations WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock organization %s: %w", id, classifyError(err))
	}
	return nil
}
