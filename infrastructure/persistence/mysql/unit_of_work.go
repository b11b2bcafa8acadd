package mysql

import (
	"context"
	"fmt"

	"commerce/domain/shared"
	"commerce/infrastructure/persistence"
	"commerce/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork implements the unit of work pattern with GORM. It manages the
// transaction boundary, collects domain events from registered aggregates and
// writes them to the outbox inside the same transaction.
//
// When the incoming context already carries a transaction, Execute joins it
// instead of opening a new one. Order placement relies on this: the order
// orchestrator opens the transaction and the catalog reservation runs inside
// it, so stock decrements and the order row commit or roll back together.
//
// An instance accumulates registered aggregates; mint one per use through
// the UnitOfWorkFactory instead of sharing it across requests.
type UnitOfWork struct {
	db               *gorm.DB
	aggregates       []shared.AggregateRoot
	outboxRepository *OutboxRepository
	retryConfig      retry.Config
}

// NewUnitOfWork creates a unit of work bound to db.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:               db,
		aggregates:       make([]shared.AggregateRoot, 0),
		outboxRepository: NewOutboxRepository(db),
		retryConfig:      retry.DefaultConfig,
	}
}

// SetRetryConfig replaces the retry policy.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// Execute runs fn inside a transaction and flushes collected events to the
// outbox before committing. Retryable failures (optimistic-lock conflicts,
// deadlocks) rerun the whole function with backoff.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	// Joining an ambient transaction: no commit, no rollback and no retry
	// here, the outermost unit of work owns all three.
	if tx := persistence.TxFromContext(ctx); tx != nil {
		if err := fn(ctx); err != nil {
			return err
		}
		return u.flushEvents(ctx)
	}

	executeOnce := func(ctx context.Context) error {
		u.aggregates = make([]shared.AggregateRoot, 0)

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		txCtx := persistence.ContextWithTx(ctx, tx)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := u.flushEvents(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}

		return nil
	}

	return retry.ExecuteWithRetry(ctx, u.retryConfig, executeOnce)
}

func (u *UnitOfWork) flushEvents(ctx context.Context) error {
	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			if err := u.outboxRepository.SaveEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to save event to outbox: %w", err)
			}
		}
	}
	u.aggregates = u.aggregates[:0]
	return nil
}

// RegisterNew registers a newly created aggregate for event collection.
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterDirty registers a modified aggregate for event collection.
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

// RegisterRemoved registers a deleted aggregate for event collection.
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.aggregates = append(u.aggregates, aggregate)
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)
