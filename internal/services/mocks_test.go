package services

import (
	"context"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*models.Card, error) {
	args := m.Called(ctx, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) FindByID(ctx context.Context, id string) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) GetUsageSnapshot(ctx context.Context, cardID string, trxAt time.Time) (*models.CardUsageSnapshot, error) {
	args := m.Called(ctx, cardID, trxAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardUsageSnapshot), args.Error(1)
}

func (m *MockCardRepository) AddUsage(ctx context.Context, cardID string, trxAt time.Time, amount string) error {
	args := m.Called(ctx, cardID, trxAt, amount)
	return args.Error(0)
}

func (m *MockCardRepository) LockByID(ctx context.Context, cardID string) error {
	args := m.Called(ctx, cardID)
	return args.Error(0)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) FindByID(ctx context.Context, id string) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) UpdateBalance(ctx context.Context, id string, newBalance string) error {
	args := m.Called(ctx, id, newBalance)
	return args.Error(0)
}

func (m *MockOrganizationRepository) LockByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByRequestID(ctx context.Context, requestID string) (*models.Transaction, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreateApproved(ctx context.Context, input models.CreateTransactionInput) (*models.Transaction, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) CreateRejected(ctx context.Context, input models.CreateTransactionInput, reason models.RejectionReason) (*models.Transaction, error) {
	args := m.Called(ctx, input, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, input models.CreateBalanceLedgerInput) (*models.BalanceLedger, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BalanceLedger), args.Error(1)
}

type MockRejectionLogRepository struct {
	mock.Mock
}

func (m *MockRejectionLogRepository) Create(ctx context.Context, input models.CreateWebhookRejectionLogInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockDataServices hands the same repository mocks to the unit of work. RunInTransaction
// returns the configured error without calling the body when one is set.
type MockDataServices struct {
	mock.Mock
	CardRepo         *MockCardRepository
	OrganizationRepo *MockOrganizationRepository
	TransactionRepo  *MockTransactionRepository
	LedgerRepo       *MockLedgerRepository
	RejectionLogRepo *MockRejectionLogRepository
}

func NewMockDataServices() *MockDataServices {
	return &MockDataServices{
		CardRepo:         new(MockCardRepository),
		OrganizationRepo: new(MockOrganizationRepository),
		TransactionRepo:  new(MockTransactionRepository),
		LedgerRepo:       new(MockLedgerRepository),
		RejectionLogRepo: new(MockRejectionLogRepository),
	}
}

func (m *MockDataServices) Cards() repository.CardRepository                 { return m.CardRepo }
func (m *MockDataServices) Organizations() repository.OrganizationRepository { return m.OrganizationRepo }
func (m *MockDataServices) Transactions() repository.TransactionRepository   { return m.TransactionRepo }
func (m *MockDataServices) Ledgers() repository.LedgerRepository             { return m.LedgerRepo }
func (m *MockDataServices) RejectionLogs() repository.RejectionLogRepository { return m.RejectionLogRepo }

func (m *MockDataServices) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MockDataServices) AssertAllExpectations(t mock.TestingT) {
	m.AssertExpectations(t)
	m.CardRepo.AssertExpectations(t)
	m.OrganizationRepo.AssertExpectations(t)
	m.TransactionRepo.AssertExpectations(t)
	m.LedgerRepo.AssertExpectations(t)
	m.RejectionLogRepo.AssertExpectations(t)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishApproved(ctx context.Context, event models.TransactionApprovedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishRejected(ctx context.Context, event models.TransactionRejectedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
