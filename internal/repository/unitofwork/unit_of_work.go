package unitofwork

import (
	"context"

	"mindwel-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	HistoryRepository() contract.HistoryRepository
	HandoffRepository() contract.HandoffRepository
	WellnessRepository() contract.WellnessRepository
}
