// Package postgres implements the repository contracts on PostgreSQL through database/sql and lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type store struct {
	cards         *CardRepository
	organizations *OrganizationRepository
	transactions  *TransactionRepository
	ledgers       *LedgerRepository
	rejectionLogs *RejectionLogRepository
}

func newStore(q querier) *store {
	return &store{
		cards:         NewCardRepository(q),
		organizations: NewOrganizationRepository(q),
		transactions:  NewTransactionRepository(q),
		ledgers:       NewLedgerRepository(q),
		rejectionLogs: NewRejectionLogRepository(q),
	}
}

func (s *store) Cards() repository.CardRepository                 { return s.cards }
func (s *store) Organizations() repository.OrganizationRepository { return s.organizations }
func (s *store) Transactions() repository.TransactionRepository   { return s.transactions }
func (s *store) Ledgers() repository.LedgerRepository             { return s.ledgers }
func (s *store) RejectionLogs() repository.RejectionLogRepository { return s.rejectionLogs }

// DataServices wires every repository to one connection pool
type DataServices struct {
	*store
	db          *sql.DB
	lockTimeout time.Duration
}

// NewDataServices creates the data services. A positive lockTimeout bounds how long a unit of
// work waits on a row lock before failing with repository.ErrLockTimeout.
func NewDataServices(db *sql.DB, lockTimeout time.Duration) *DataServices {
	return &DataServices{
		store:       newStore(db),
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// RunInTransaction runs fn inside a READ COMMITTED transaction. Row locks taken by fn through
// LockByID are held until commit or rollback.
func (d *DataServices) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	tx, err := d.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", classifyError(err))
	}
	defer tx.Rollback()

	if d.lockTimeout > 0 {
		timeout := fmt.Sprintf("%dms", d.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, `SELECT set_config('lock_timeout', $1, true)`, timeout); err != nil {
			return fmt.Errorf("set lock timeout: %w", classifyError(err))
		}
	}

	if err := fn(ctx, newStore(tx)); err != nil {
		return classifyError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[DATABASE] Failed to commit transaction: %v", err)
		return fmt.Errorf("commit transaction: %w", classifyError(err))
	}

	return nil
}
