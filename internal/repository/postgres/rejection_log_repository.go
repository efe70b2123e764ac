package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

type RejectionLogRepository struct {
	db querier
}

func NewRejectionLogRepository(db querier) *RejectionLogRepository {
	return &RejectionLogRepository{db: db}
}

func (r *RejectionLogRepository) Create(ctx context.Context, input models.CreateWebhookRejectionLogInput) error {
	var trxAt sql.NullTime
	if input.TransactionAt != nil {
		trxAt = sql.NullTime{Time: *input.TransactionAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO webhook_rejection_logs (id, request_id, card_number, amount, station_id, transaction_at, reason, message, raw_payload, created_at)
		VALUES ($1, $2, $3, NULLIF($4, '')::numeric, $5, $6, $7, $8, $9, $10)
	`, uuid.NewString(), input.RequestID, input.CardNumber, input.Amount, input.StationID,
		trxAt, string(input.Reason), input.Message, input.RawPayload, time.Now())
	if err != nil {
		return fmt.Errorf("insert rejection log: %w", classifyError(err))
	}
	return nil
}
