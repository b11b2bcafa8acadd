/*
Package memory provides an in-memory persistence layer with the same
semantics as the MySQL one: optimistic-lock version checks, SKU uniqueness
and all-or-nothing units of work. It backs tests and database-less runs.
*/
package memory

import (
	"context"
	"sync"
	"time"

	"commerce/domain/catalog"
	"commerce/domain/order"
)

// storedEvent one outbox row.
type storedEvent struct {
	AggregateID string
	EventType   string
	Payload     map[string]interface{}
	OccurredOn  time.Time
}

// Store holds all state behind a single mutex. Aggregates are kept as
// reconstruction DTOs, so every read rebuilds a fresh aggregate and writers
// never alias stored state.
//
// txMu is the transaction lock: the outermost unit of work holds it
// exclusively from snapshot to commit or restore, and repository calls made
// outside any unit of work hold it shared. Units of work therefore
// serialize against each other, a rollback can never erase a concurrent
// commit, and no caller observes mid-transaction state.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.RWMutex
	products map[string]catalog.ReconstructionDTO
	orders   map[string]order.ReconstructionDTO
	events   []storedEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		products: make(map[string]catalog.ReconstructionDTO),
		orders:   make(map[string]order.ReconstructionDTO),
	}
}

// txGuard takes the shared side of the transaction lock for a repository
// call made outside any unit of work, blocking it while a transaction is in
// flight. Calls inside a unit of work already run under the exclusive side,
// acquired by Execute; taking it again here would deadlock.
func (s *Store) txGuard(ctx context.Context) func() {
	if inUnitOfWork(ctx) {
		return func() {}
	}
	s.txMu.RLock()
	return s.txMu.RUnlock
}

// snapshot captures the full store state for rollback.
type snapshot struct {
	products map[string]catalog.ReconstructionDTO
	orders   map[string]order.ReconstructionDTO
	events   []storedEvent
}

func (s *Store) takeSnapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make(map[string]catalog.ReconstructionDTO, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	orders := make(map[string]order.ReconstructionDTO, len(s.orders))
	for k, v := range s.orders {
		orders[k] = v
	}
	events := make([]storedEvent, len(s.events))
	copy(events, s.events)

	return snapshot{products: products, orders: orders, events: events}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = snap.products
	s.orders = snap.orders
	s.events = snap.events
}

// EventCount returns the number of stored outbox events. Not for use inside
// a unit of work; it waits for in-flight transactions.
func (s *Store) EventCount() int {
	s.txMu.RLock()
	defer s.txMu.RUnlock()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// EventTypes returns the stored event types in insertion order. Not for use
// inside a unit of work; it waits for in-flight transactions.
func (s *Store) EventTypes() []string {
	s.txMu.RLock()
	defer s.txMu.RUnlock()
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, len(s.events))
	for i, e := range s.events {
		types[i] = e.EventType
	}
	return types
}
