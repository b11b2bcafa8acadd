package shared

import "context"

// UnitOfWork manages the transaction boundary and collects domain events from
// the aggregates mutated within it.
//
// Execute runs fn inside a transaction: everything fn persists either commits
// together or rolls back together. Implementations must join an ambient
// transaction already present in ctx instead of opening a nested one, so that
// orchestrations spanning both bounded contexts stay atomic.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	RegisterNew(aggregate AggregateRoot)
	RegisterDirty(aggregate AggregateRoot)
	RegisterRemoved(aggregate AggregateRoot)
}

// UnitOfWorkFactory mints a fresh UnitOfWork per use. A UnitOfWork instance
// accumulates registered aggregates between Execute and the event flush, so
// it must never be shared across concurrent requests.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// OutboxRepository persists domain events transactionally alongside the
// aggregate changes that produced them.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}
