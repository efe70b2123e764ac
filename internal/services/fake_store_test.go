package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/money"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

type fakeState struct {
	cards   map[string]models.Card
	orgs    map[string]models.Organization
	daily   map[string]int64
	monthly map[string]int64
	txs     map[string]models.Transaction
	ledgers []models.BalanceLedger
}

func (s *fakeState) clone() *fakeState {
	c := &fakeState{
		cards:   make(map[string]models.Card, len(s.cards)),
		orgs:    make(map[string]models.Organization, len(s.orgs)),
		daily:   make(map[string]int64, len(s.daily)),
		monthly: make(map[string]int64, len(s.monthly)),
		txs:     make(map[string]models.Transaction, len(s.txs)),
		ledgers: append([]models.BalanceLedger(nil), s.ledgers...),
	}
	for k, v := range s.cards {
		c.cards[k] = v
	}
	for k, v := range s.orgs {
		c.orgs[k] = v
	}
	for k, v := range s.daily {
		c.daily[k] = v
	}
	for k, v := range s.monthly {
		c.monthly[k] = v
	}
	for k, v := range s.txs {
		c.txs[k] = v
	}
	return c
}

// fakeDB is an in-memory repository.DataServices. Units of work run one at a time on a private
// copy of the state, which replaces the committed state only when the body succeeds.
type fakeDB struct {
	mu     sync.Mutex
	unitMu sync.Mutex
	seq    int

	state         *fakeState
	rejectionLogs []models.CreateWebhookRejectionLogInput
	locks         []string

	rejectionLogErr error
	commitErr       error
}

func newFakeDB() *fakeDB {
	return &fakeDB{state: (&fakeState{}).clone()}
}

func (db *fakeDB) nextID(prefix string) string {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

func (db *fakeDB) addOrganization(id, balance string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.orgs[id] = models.Organization{ID: id, Name: id, CurrentBalance: balance}
}

func (db *fakeDB) addCard(id, orgID, number, dailyLimit, monthlyLimit string, active bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.cards[id] = models.Card{
		ID:             id,
		OrganizationID: orgID,
		CardNumber:     number,
		DailyLimit:     dailyLimit,
		MonthlyLimit:   monthlyLimit,
		IsActive:       active,
	}
}

func (db *fakeDB) setCardActive(id string, active bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	card := db.state.cards[id]
	card.IsActive = active
	db.state.cards[id] = card
}

func (db *fakeDB) deleteCard(id string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.state.cards, id)
}

func (db *fakeDB) deleteOrganization(id string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.state.orgs, id)
}

func (db *fakeDB) setUsage(cardID string, trxAt time.Time, daily, monthly string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.state.daily[dailyKey(cardID, trxAt)] = mustMinor(daily)
	db.state.monthly[monthlyKey(cardID, trxAt)] = mustMinor(monthly)
}

func (db *fakeDB) balance(orgID string) string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.state.orgs[orgID].CurrentBalance
}

func (db *fakeDB) usage(cardID string, trxAt time.Time) (string, string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return money.FromMinorUnits(db.state.daily[dailyKey(cardID, trxAt)]),
		money.FromMinorUnits(db.state.monthly[monthlyKey(cardID, trxAt)])
}

func (db *fakeDB) transaction(requestID string) (models.Transaction, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	tx, ok := db.state.txs[requestID]
	return tx, ok
}

func (db *fakeDB) transactionCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.state.txs)
}

func (db *fakeDB) ledgerEntries() []models.BalanceLedger {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]models.BalanceLedger(nil), db.state.ledgers...)
}

func (db *fakeDB) rejectionLogEntries() []models.CreateWebhookRejectionLogInput {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]models.CreateWebhookRejectionLogInput(nil), db.rejectionLogs...)
}

func (db *fakeDB) lockTrace() []string {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]string(nil), db.locks...)
}

func dailyKey(cardID string, t time.Time) string {
	return cardID + "|" + models.UsageDate(t).Format("2006-01-02")
}

func monthlyKey(cardID string, t time.Time) string {
	return cardID + "|" + models.UsageMonth(t)
}

func mustMinor(s string) int64 {
	n, err := money.ToMinorUnits(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (db *fakeDB) autocommit() *fakeStore { return &fakeStore{db: db} }

func (db *fakeDB) Cards() repository.CardRepository { return db.autocommit() }
func (db *fakeDB) Organizations() repository.OrganizationRepository {
	return fakeOrganizations{db.autocommit()}
}
func (db *fakeDB) Transactions() repository.TransactionRepository {
	return fakeTransactions{db.autocommit()}
}
func (db *fakeDB) Ledgers() repository.LedgerRepository { return fakeLedgers{db.autocommit()} }
func (db *fakeDB) RejectionLogs() repository.RejectionLogRepository {
	return fakeRejectionLogs{db.autocommit()}
}

func (db *fakeDB) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	db.unitMu.Lock()
	defer db.unitMu.Unlock()

	db.mu.Lock()
	working := db.state.clone()
	db.mu.Unlock()

	if err := fn(ctx, &fakeStore{db: db, unit: working}); err != nil {
		return err
	}
	if db.commitErr != nil {
		return db.commitErr
	}

	db.mu.Lock()
	db.state = working
	db.mu.Unlock()
	return nil
}

// fakeStore reads and writes the unit's private copy when unit is set, the committed state otherwise.
type fakeStore struct {
	db   *fakeDB
	unit *fakeState
}

func (s *fakeStore) with(fn func(st *fakeState) error) error {
	if s.unit != nil {
		return fn(s.unit)
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return fn(s.db.state)
}

func (s *fakeStore) Cards() repository.CardRepository { return s }
func (s *fakeStore) Organizations() repository.OrganizationRepository {
	return fakeOrganizations{s}
}
func (s *fakeStore) Transactions() repository.TransactionRepository {
	return fakeTransactions{s}
}
func (s *fakeStore) Ledgers() repository.LedgerRepository { return fakeLedgers{s} }
func (s *fakeStore) RejectionLogs() repository.RejectionLogRepository {
	return fakeRejectionLogs{s}
}

func (s *fakeStore) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Card, error) {
	var found *models.Card
	s.with(func(st *fakeState) error {
		for _, c := range st.cards {
			if c.CardNumber == cardNumber {
				card := c
				found = &card
			}
		}
		return nil
	})
	return found, nil
}

func (s *fakeStore) FindByID(ctx context.Context, id string) (*models.Card, error) {
	var found *models.Card
	s.with(func(st *fakeState) error {
		if c, ok := st.cards[id]; ok {
			found = &c
		}
		return nil
	})
	return found, nil
}

func (s *fakeStore) GetUsageSnapshot(ctx context.Context, cardID string, trxAt time.Time) (*models.CardUsageSnapshot, error) {
	snapshot := &models.CardUsageSnapshot{}
	s.with(func(st *fakeState) error {
		snapshot.DailyUsedAmount = money.FromMinorUnits(st.daily[dailyKey(cardID, trxAt)])
		snapshot.MonthlyUsedAmount = money.FromMinorUnits(st.monthly[monthlyKey(cardID, trxAt)])
		return nil
	})
	return snapshot, nil
}

func (s *fakeStore) AddUsage(ctx context.Context, cardID string, trxAt time.Time, amount string) error {
	n, err := money.ToMinorUnits(amount)
	if err != nil {
		return err
	}
	return s.with(func(st *fakeState) error {
		st.daily[dailyKey(cardID, trxAt)] += n
		st.monthly[monthlyKey(cardID, trxAt)] += n
		return nil
	})
}

func (s *fakeStore) LockByID(ctx context.Context, cardID string) error {
	s.db.mu.Lock()
	s.db.locks = append(s.db.locks, "card:"+cardID)
	s.db.mu.Unlock()
	return nil
}

type fakeOrganizations struct{ s *fakeStore }

func (r fakeOrganizations) FindByID(ctx context.Context, id string) (*models.Organization, error) {
	var found *models.Organization
	r.s.with(func(st *fakeState) error {
		if o, ok := st.orgs[id]; ok {
			found = &o
		}
		return nil
	})
	return found, nil
}

func (r fakeOrganizations) UpdateBalance(ctx context.Context, id string, newBalance string) error {
	return r.s.with(func(st *fakeState) error {
		org, ok := st.orgs[id]
		if !ok {
			return repository.ErrNotFound
		}
		org.CurrentBalance = newBalance
		st.orgs[id] = org
		return nil
	})
}

func (r fakeOrganizations) LockByID(ctx context.Context, id string) error {
	r.s.db.mu.Lock()
	r.s.db.locks = append(r.s.db.locks, "organization:"+id)
	r.s.db.mu.Unlock()
	return nil
}

type fakeTransactions struct{ s *fakeStore }

func (r fakeTransactions) FindByRequestID(ctx context.Context, requestID string) (*models.Transaction, error) {
	var found *models.Transaction
	r.s.with(func(st *fakeState) error {
		if tx, ok := st.txs[requestID]; ok {
			found = &tx
		}
		return nil
	})
	return found, nil
}

func (r fakeTransactions) CreateApproved(ctx context.Context, input models.CreateTransactionInput) (*models.Transaction, error) {
	return r.create(input, models.TransactionApproved, nil)
}

func (r fakeTransactions) CreateRejected(ctx context.Context, input models.CreateTransactionInput, reason models.RejectionReason) (*models.Transaction, error) {
	return r.create(input, models.TransactionRejected, &reason)
}

func (r fakeTransactions) create(input models.CreateTransactionInput, status models.TransactionStatus, reason *models.RejectionReason) (*models.Transaction, error) {
	tx := models.Transaction{
		ID:              r.s.db.nextID("tx"),
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
	err := r.s.with(func(st *fakeState) error {
		if _, exists := st.txs[input.RequestID]; exists {
			return fmt.Errorf("insert transaction: %w", repository.ErrDuplicateRequestID)
		}
		st.txs[input.RequestID] = tx
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

type fakeLedgers struct{ s *fakeStore }

func (r fakeLedgers) Create(ctx context.Context, input models.CreateBalanceLedgerInput) (*models.BalanceLedger, error) {
	entry := models.BalanceLedger{
		ID:             r.s.db.nextID("ledger"),
		OrganizationID: input.OrganizationID,
		Type:           input.Type,
		Amount:         input.Amount,
		BeforeBalance:  input.BeforeBalance,
		AfterBalance:   input.AfterBalance,
		ReferenceType:  input.ReferenceType,
		ReferenceID:    input.ReferenceID,
		CreatedAt:      time.Now(),
	}
	r.s.with(func(st *fakeState) error {
		st.ledgers = append(st.ledgers, entry)
		return nil
	})
	return &entry, nil
}

type fakeRejectionLogs struct{ s *fakeStore }

func (r fakeRejectionLogs) Create(ctx context.Context, input models.CreateWebhookRejectionLogInput) error {
	r.s.db.mu.Lock()
	defer r.s.db.mu.Unlock()
	if r.s.db.rejectionLogErr != nil {
		return r.s.db.rejectionLogErr
	}
	r.s.db.rejectionLogs = append(r.s.db.rejectionLogs, input)
	return nil
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu       sync.Mutex
	approved []models.TransactionApprovedEvent
	rejected []models.TransactionRejectedEvent
	err      error
}

func (p *recordingPublisher) PublishApproved(ctx context.Context, event models.TransactionApprovedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.approved = append(p.approved, event)
	return p.err
}

func (p *recordingPublisher) PublishRejected(ctx context.Context, event models.TransactionRejectedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rejected = append(p.rejected, event)
	return p.err
}

func (p *recordingPublisher) counts() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.approved), len(p.rejected)
}
