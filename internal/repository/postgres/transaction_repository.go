package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

type TransactionRepository struct {
	db querier
}

func NewTransactionRepository(db querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) FindByRequestID(ctx context.Context, requestID string) (*models.Transaction, error) {
	var (
		tx     models.Transaction
		reason sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, request_id, organization_id, card_id, station_id, amount::text, trx_at, status, rejection_reason, created_at
		FROM transactions
		WHERE request_id = $1
	`, requestID).Scan(&tx.ID, &tx.RequestID, &tx.OrganizationID, &tx.CardID, &tx.StationID,
		&tx.Amount, &tx.TrxAt, &tx.Status, &reason, &tx.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find transaction by request id: %w", classifyError(err))
	}

	if reason.Valid {
		rr := models.RejectionReason(reason.String)
		tx.RejectionReason = &rr
	}
	return &tx, nil
}

func (r *TransactionRepository) CreateApproved(ctx context.Context, input models.CreateTransactionInput) (*models.Transaction, error) {
	return r.create(ctx, input, models.TransactionApproved, nil)
}

func (r *TransactionRepository) CreateRejected(ctx context.Context, input models.CreateTransactionInput, reason models.RejectionReason) (*models.Transaction, error) {
	return r.create(ctx, input, models.TransactionRejected, &reason)
}

func (r *TransactionRepository) create(ctx context.Context, input models.CreateTransactionInput, status models.TransactionStatus, reason *models.RejectionReason) (*models.Transaction, error) {
	tx := &models.Transaction{
		ID:              uuid.NewString(),
		RequestID:       input.RequestID,
		OrganizationID:  input.OrganizationID,
		CardID:          input.CardID,
		StationID:       input.StationID,
		Amount:          input.Amount,
		TrxAt:           input.TrxAt,
		Status:          status,
		RejectionReason: reason,
		CreatedAt:       time.Now(),
	}

	var reasonCol sql.NullString
	if reason != nil {
		reasonCol = sql.NullString{String: string(*reason), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (id, request_id, organization_id, card_id, station_id, amount, trx_at, status, rejection_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10)
	`, tx.ID, tx.RequestID, tx.OrganizationID, tx.CardID, tx.StationID, tx.Amount, tx.TrxAt,
		string(tx.Status), reasonCol, tx.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert %s transaction: %w", status, classifyError(err))
	}

	return tx, nil
}
