package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/audit"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/cache"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/money"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

// ErrInvalidPayload is returned when the amount or timestamp cannot be interpreted.
var ErrInvalidPayload = errors.New("invalid transaction payload")

// TransactionProcessor decides each fuel purchase exactly once per request id.
//
// Pre-lock reads go through the cache-aside lookup. The decision itself runs in one unit of work
// holding the card row lock and then the organization row lock, always in that order.
type TransactionProcessor struct {
	data    repository.DataServices
	lookup  *cache.Lookup
	ledger  *BalanceLedgerService
	effects *SideEffectDispatcher
	audit   *audit.AuditLogger
}

func NewTransactionProcessor(data repository.DataServices, lookup *cache.Lookup, effects *SideEffectDispatcher, auditLogger *audit.AuditLogger) *TransactionProcessor {
	if effects == nil {
		effects = NewSideEffectDispatcher(nil, lookup, data.RejectionLogs(), 0)
	}
	if auditLogger == nil {
		auditLogger = audit.NewAuditLogger(nil)
	}
	return &TransactionProcessor{
		data:    data,
		lookup:  lookup,
		ledger:  NewBalanceLedgerService(),
		effects: effects,
		audit:   auditLogger,
	}
}

type transactionRequest struct {
	payload models.ProcessTransactionPayload
	amount  int64
	trxAt   time.Time
}

func (r transactionRequest) amountText() string {
	return money.FromMinorUnits(r.amount)
}

// decision is what the locked unit of work settled on
type decision struct {
	response     *models.WebhookResponse
	card         *models.Card
	organization *models.Organization
}

func parseRequest(payload models.ProcessTransactionPayload) (transactionRequest, error) {
	amount, err := money.ToMinorUnits(payload.Amount)
	if err != nil {
		return transactionRequest{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if amount <= 0 {
		return transactionRequest{}, fmt.Errorf("%w: amount must be positive", ErrInvalidPayload)
	}

	trxAt, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(payload.TransactionAt))
	if err != nil {
		return transactionRequest{}, fmt.Errorf("%w: transactionAt: %v", ErrInvalidPayload, err)
	}

	return transactionRequest{
		payload: payload,
		amount:  amount,
		// stored timestamps keep microsecond precision
		trxAt: trxAt.Truncate(time.Microsecond),
	}, nil
}

// Process returns a business outcome for every approval or rejection. An error means the
// outcome could not be decided and nothing was committed.
func (p *TransactionProcessor) Process(ctx context.Context, payload models.ProcessTransactionPayload) (*models.WebhookResponse, error) {
	req, err := parseRequest(payload)
	if err != nil {
		return nil, err
	}

	existing, err := p.data.Transactions().FindByRequestID(ctx, payload.RequestID)
	if err != nil {
		p.audit.LogError(payload.RequestID, "", err)
		return nil, fmt.Errorf("idempotency lookup: %w", err)
	}
	if existing != nil {
		return p.handleExisting(ctx, req, existing)
	}

	card, err := p.lookup.GetCard(ctx, payload.CardNumber)
	if err != nil {
		p.audit.LogError(payload.RequestID, "", err)
		return nil, fmt.Errorf("card lookup: %w", err)
	}
	if card == nil || !card.IsActive {
		return p.rejectEarly(ctx, req, models.ReasonCardNotFound, EventContext{Amount: req.amountText()}), nil
	}

	org, err := p.lookup.GetOrganization(ctx, card.OrganizationID)
	if err != nil {
		p.audit.LogError(payload.RequestID, card.ID, err)
		return nil, fmt.Errorf("organization lookup: %w", err)
	}
	if org == nil {
		return p.rejectEarly(ctx, req, models.ReasonOrganizationNotFound, EventContext{
			CardID: card.ID,
			Amount: req.amountText(),
		}), nil
	}

	var d decision
	err = p.data.RunInTransaction(ctx, func(ctx context.Context, tx repository.Store) error {
		d = decision{}
		return p.decide(ctx, tx, req, card, &d)
	})

	ec := EventContext{OrganizationID: card.OrganizationID, CardID: card.ID, Amount: req.amountText()}

	if errors.Is(err, repository.ErrDuplicateRequestID) {
		log.Printf("[PROCESSOR] Concurrent duplicate for requestId=%s resolved as %s", payload.RequestID, models.ReasonDuplicateRequest)
		resp := BuildRejected(payload.RequestID, models.ReasonDuplicateRequest)
		p.audit.LogDecision(payload.RequestID, "", card.ID, req.amount, string(resp.Status), string(resp.ReasonCode()), resp.Message)
		p.effects.Dispatch(ctx, p.rejectionEffects(req, resp, ec))
		return resp, nil
	}
	if err != nil {
		p.audit.LogError(payload.RequestID, card.ID, err)
		return nil, fmt.Errorf("process transaction %s: %w", payload.RequestID, err)
	}

	resp := d.response
	p.audit.LogDecision(payload.RequestID, resp.TxID(), card.ID, req.amount, string(resp.Status), string(resp.ReasonCode()), resp.Message)

	if resp.Success {
		event := BuildApprovedEvent(payload, resp, ec)
		p.effects.Dispatch(ctx, SideEffects{
			Approved:     &event,
			Card:         d.card,
			Organization: d.organization,
		})
		return resp, nil
	}

	effects := p.rejectionEffects(req, resp, ec)
	effects.Card = d.card
	p.effects.Dispatch(ctx, effects)
	return resp, nil
}

// decide runs under the unit of work. Business rejections are recorded in d and return nil so
// the unit commits the rejected row; only infrastructure failures abort it.
func (p *TransactionProcessor) decide(ctx context.Context, tx repository.Store, req transactionRequest, snapshot *models.Card, d *decision) error {
	requestID := req.payload.RequestID

	if err := tx.Cards().LockByID(ctx, snapshot.ID); err != nil {
		return err
	}
	if err := tx.Organizations().LockByID(ctx, snapshot.OrganizationID); err != nil {
		return err
	}

	card, err := tx.Cards().FindByID(ctx, snapshot.ID)
	if err != nil {
		return err
	}

	input := models.CreateTransactionInput{
		RequestID:      requestID,
		OrganizationID: snapshot.OrganizationID,
		CardID:         snapshot.ID,
		StationID:      req.payload.StationID,
		Amount:         req.amountText(),
		TrxAt:          req.trxAt,
	}

	if card == nil {
		// no row: transactions.card_id cannot reference a deleted card
		d.response = BuildRejected(requestID, models.ReasonCardNotFound)
		return nil
	}
	if !card.IsActive {
		row, err := tx.Transactions().CreateRejected(ctx, input, models.ReasonCardNotFound)
		if err != nil {
			return err
		}
		d.response = BuildRejectedWithTransactionID(requestID, models.ReasonCardNotFound, row.ID)
		d.card = card
		return nil
	}

	org, err := tx.Organizations().FindByID(ctx, snapshot.OrganizationID)
	if err != nil {
		return err
	}
	if org == nil {
		// no row: the organization vanished between lookup and lock
		d.response = BuildRejected(requestID, models.ReasonOrganizationNotFound)
		return nil
	}

	usage, err := tx.Cards().GetUsageSnapshot(ctx, card.ID, req.trxAt)
	if err != nil {
		return err
	}

	limits, err := readLimits(card, org, usage)
	if err != nil {
		return err
	}

	if reason, rejected := limits.evaluate(req.amount); rejected {
		row, err := tx.Transactions().CreateRejected(ctx, input, reason)
		if err != nil {
			return err
		}
		d.response = BuildRejectedWithTransactionID(requestID, reason, row.ID)
		return nil
	}

	row, err := tx.Transactions().CreateApproved(ctx, input)
	if err != nil {
		return err
	}

	updated, err := p.ledger.DebitTx(ctx, tx, org, req.amount, row.ID)
	if err != nil {
		return err
	}

	if err := tx.Cards().AddUsage(ctx, card.ID, req.trxAt, req.amountText()); err != nil {
		return err
	}

	d.response = BuildApproved(requestID, row.ID)
	d.card = card
	d.organization = updated
	return nil
}

// limitSnapshot holds every figure the checks compare, in minor units
type limitSnapshot struct {
	balance      int64
	dailyLimit   int64
	monthlyLimit int64
	dailyUsed    int64
	monthlyUsed  int64
}

func readLimits(card *models.Card, org *models.Organization, usage *models.CardUsageSnapshot) (limitSnapshot, error) {
	var (
		l   limitSnapshot
		err error
	)
	fields := []struct {
		name  string
		value string
		dest  *int64
	}{
		{"balance", org.CurrentBalance, &l.balance},
		{"daily limit", card.DailyLimit, &l.dailyLimit},
		{"monthly limit", card.MonthlyLimit, &l.monthlyLimit},
		{"daily usage", usage.DailyUsedAmount, &l.dailyUsed},
		{"monthly usage", usage.MonthlyUsedAmount, &l.monthlyUsed},
	}
	for _, f := range fields {
		if *f.dest, err = money.ToMinorUnits(f.value); err != nil {
			return limitSnapshot{}, fmt.Errorf("read %s: %w", f.name, err)
		}
	}
	return l, nil
}

// evaluate applies the checks in their fixed order; the first failure wins.
func (l limitSnapshot) evaluate(amount int64) (models.RejectionReason, bool) {
	switch {
	case l.balance < amount:
		return models.ReasonInsufficientBalance, true
	case l.dailyUsed+amount > l.dailyLimit:
		return models.ReasonDailyLimitExceeded, true
	case l.monthlyUsed+amount > l.monthlyLimit:
		return models.ReasonMonthlyLimitExceeded, true
	}
	return "", false
}

func (p *TransactionProcessor) handleExisting(ctx context.Context, req transactionRequest, existing *models.Transaction) (*models.WebhookResponse, error) {
	requestID := req.payload.RequestID

	if !samePayload(req, existing) {
		return p.rejectEarly(ctx, req, models.ReasonDuplicateRequest, EventContext{Amount: req.amountText()}), nil
	}

	card, err := p.data.Cards().FindByID(ctx, existing.CardID)
	if err != nil {
		p.audit.LogError(requestID, existing.CardID, err)
		return nil, fmt.Errorf("replay card check: %w", err)
	}

	var resp *models.WebhookResponse
	switch {
	case card == nil || !card.IsActive:
		resp = BuildRejected(requestID, models.ReasonCardNotFound)
	case existing.Status == models.TransactionApproved:
		resp = BuildApproved(requestID, existing.ID)
	default:
		reason := models.ReasonDuplicateRequest
		if existing.RejectionReason != nil {
			reason = *existing.RejectionReason
		}
		resp = BuildRejectedWithTransactionID(requestID, reason, existing.ID)
	}

	p.audit.LogReplay(requestID, resp.TxID(), req.amount, string(resp.Status))
	return resp, nil
}

func samePayload(req transactionRequest, existing *models.Transaction) bool {
	if existing.StationID != req.payload.StationID {
		return false
	}
	stored, err := money.ToMinorUnits(existing.Amount)
	if err != nil || stored != req.amount {
		return false
	}
	return existing.TrxAt.Equal(req.trxAt)
}

// rejectEarly handles rejections decided before the unit of work. They persist no transaction
// row; the rejection log is written before returning and the event follows as a side effect.
func (p *TransactionProcessor) rejectEarly(ctx context.Context, req transactionRequest, reason models.RejectionReason, ec EventContext) *models.WebhookResponse {
	resp := BuildRejected(req.payload.RequestID, reason)
	p.audit.LogDecision(req.payload.RequestID, "", ec.CardID, req.amount, string(resp.Status), string(reason), resp.Message)

	entry := p.rejectionLogEntry(req, resp)
	if err := p.data.RejectionLogs().Create(ctx, entry); err != nil {
		log.Printf("[PROCESSOR] Failed to write rejection log for requestId=%s: %v", req.payload.RequestID, err)
	}

	event := BuildRejectedEvent(req.payload, resp, ec)
	p.effects.Dispatch(ctx, SideEffects{Rejected: &event})
	return resp
}

func (p *TransactionProcessor) rejectionEffects(req transactionRequest, resp *models.WebhookResponse, ec EventContext) SideEffects {
	event := BuildRejectedEvent(req.payload, resp, ec)
	entry := p.rejectionLogEntry(req, resp)
	return SideEffects{Rejected: &event, RejectionLog: &entry}
}

func (p *TransactionProcessor) rejectionLogEntry(req transactionRequest, resp *models.WebhookResponse) models.CreateWebhookRejectionLogInput {
	raw, _ := json.Marshal(req.payload)
	trxAt := req.trxAt
	return models.CreateWebhookRejectionLogInput{
		RequestID:     req.payload.RequestID,
		CardNumber:    req.payload.CardNumber,
		Amount:        req.amountText(),
		StationID:     req.payload.StationID,
		TransactionAt: &trxAt,
		Reason:        resp.ReasonCode(),
		Message:       resp.Message,
		RawPayload:    string(raw),
	}
}
