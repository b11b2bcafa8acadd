package shared

// AggregateRoot is the entry point of an aggregate. It owns the consistency
// boundary: all mutations of the aggregate's data go through its methods.
type AggregateRoot interface {
	// ID returns the globally unique identity of the aggregate root.
	ID() string

	// Version returns the current version number used for optimistic locking.
	Version() int

	// PullEvents returns and clears the domain events recorded by the
	// aggregate. The unit of work collects them inside the transaction.
	PullEvents() []DomainEvent
}

// Entity has identity; equality is by ID, not by attribute values.
type Entity interface {
	ID() string
}

// ValueObject has no identity and is immutable; equality is by value.
// Go cannot enforce immutability, so value objects keep their fields
// unexported and expose no mutators.
type ValueObject interface {
	Equals(other interface{}) bool
}
