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

const cardColumns = `id, organization_id, card_number, daily_limit::text, monthly_limit::text, is_active, created_at, updated_at`

type CardRepository struct {
	db querier
}

func NewCardRepository(db querier) *CardRepository {
	return &CardRepository{db: db}
}

func (r *CardRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE card_number = $1
	`, cardNumber)
	return scanCard(row)
}

func (r *CardRepository) FindByID(ctx context.Context, id string) (*models.Card, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+cardColumns+`
		FROM cards
		WHERE id = $1
	`, id)
	return scanCard(row)
}

func scanCard(row *sql.Row) (*models.Card, error) {
	var card models.Card
	err := row.Scan(&card.ID, &card.OrganizationID, &card.CardNumber, &card.DailyLimit,
		&card.MonthlyLimit, &card.IsActive, &card.CreatedAt, &card.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan card: %w", classifyError(err))
	}
	return &card, nil
}

// GetUsageSnapshot reads the day and month totals for the UTC period containing trxAt.
// A period without a row has used nothing.
func (r *CardRepository) GetUsageSnapshot(ctx context.Context, cardID string, trxAt time.Time) (*models.CardUsageSnapshot, error) {
	snapshot := &models.CardUsageSnapshot{DailyUsedAmount: "0", MonthlyUsedAmount: "0"}

	err := r.db.QueryRowContext(ctx, `
		SELECT used_amount::text FROM card_daily_usages
		WHERE card_id = $1 AND usage_date = $2
	`, cardID, models.UsageDate(trxAt)).Scan(&snapshot.DailyUsedAmount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read daily usage: %w", classifyError(err))
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT used_amount::text FROM card_monthly_usages
		WHERE card_id = $1 AND usage_month = $2
	`, cardID, models.UsageMonth(trxAt)).Scan(&snapshot.MonthlyUsedAmount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read monthly usage: %w", classifyError(err))
	}

	return snapshot, nil
}

// AddUsage increments both usage counters, creating the period rows on first use.
func (r *CardRepository) AddUsage(ctx context.Context, cardID string, trxAt time.Time, amount string) error {
	now := time.Now()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO card_daily_usages (id, card_id, usage_date, used_amount, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (card_id, usage_date)
		DO UPDATE SET used_amount = card_daily_usages.used_amount + EXCLUDED.used_amount, updated_at = EXCLUDED.updated_at
	`, uuid.NewString(), cardID, models.UsageDate(trxAt), amount, now)
	if err != nil {
		return fmt.Errorf("add daily usage: %w", classifyError(err))
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO card_monthly_usages (id, card_id, usage_month, used_amount, updated_at)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (card_id, usage_month)
		DO UPDATE SET used_amount = card_monthly_usages.used_amount + EXCLUDED.used_amount, updated_at = EXCLUDED.updated_at
	`, uuid.NewString(), cardID, models.UsageMonth(trxAt), amount, now)
	if err != nil {
		return fmt.Errorf("add monthly usage: %w", classifyError(err))
	}

	return nil
}

// LockByID takes an exclusive row lock on the card for the rest of the transaction.
// A missing card is not an error; the following FindByID reports it as nil.
func (r *CardRepository) LockByID(ctx context.Context, cardID string) error {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM cards WHERE id = $1 FOR UPDATE`, cardID).Scan(&id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("lock card %s: %w", cardID, classifyError(err))
	}
	return nil
}
