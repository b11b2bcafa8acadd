package memory

import (
	"context"

	"commerce/domain/shared"
)

// uowKey marks a context as already running inside a unit of work.
type uowKey struct{}

func inUnitOfWork(ctx context.Context) bool {
	_, ok := ctx.Value(uowKey{}).(bool)
	return ok
}

// UnitOfWork implements the unit of work over the in-memory store. A
// snapshot taken before fn runs serves as the rollback point, giving the
// same all-or-nothing guarantee as a database transaction. Nested Execute
// calls join the outer one: the outermost call owns snapshot and rollback.
//
// An instance accumulates registered aggregates; mint one per use through
// the UnitOfWorkFactory instead of sharing it across requests.
type UnitOfWork struct {
	store      *Store
	aggregates []shared.AggregateRoot
}

// NewUnitOfWork creates a unit of work bound to store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{
		store:      store,
		aggregates: make([]shared.AggregateRoot, 0),
	}
}

// UnitOfWorkFactory mints per-use units of work over one store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.store)
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// Execute runs fn, restoring the pre-call state on error. The outermost
// Execute holds the store's transaction lock exclusively from snapshot to
// commit or restore, so concurrent units of work serialize and a rollback
// only ever undoes this transaction's writes.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if inUnitOfWork(ctx) {
		if err := fn(ctx); err != nil {
			return err
		}
		u.flushEvents()
		return nil
	}

	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	u.aggregates = make([]shared.AggregateRoot, 0)
	snap := u.store.takeSnapshot()

	txCtx := context.WithValue(ctx, uowKey{}, true)
	if err := fn(txCtx); err != nil {
		u.store.restore(snap)
		return err
	}

	u.flushEvents()
	return nil
}

func (u *UnitOfWork) flushEvents() {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for _, agg := range u.aggregates {
		for _, event := range agg.PullEvents() {
			u.store.events = append(u.store.events, storedEvent{
				AggregateID: event.GetAggregateID(),
				EventType:   event.EventName(),
				Payload:     event.Payload(),
				OccurredOn:  event.OccurredOn(),
			})
		}
	}
	u.aggregates = u.aggregates[:0]
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
