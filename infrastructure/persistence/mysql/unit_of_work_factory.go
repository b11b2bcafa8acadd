package mysql

import (
	"commerce/domain/shared"
	"commerce/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWorkFactory mints per-use units of work sharing one connection pool
// and retry policy. Units of work accumulate registered aggregates, so a
// fresh instance per request keeps concurrent transactions from flushing or
// wiping each other's events.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		db:          db,
		retryConfig: retryConfig,
	}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	uow := NewUnitOfWork(f.db)
	uow.SetRetryConfig(f.retryConfig)
	return uow
}

var _ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
