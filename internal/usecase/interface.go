package usecase

import (
	"context"

	"cashradar/internal/domain"
)

// LedgerRepository defines the interface for fetching raw CSV rows.
// The usecase layer depends on this interface, not on a concrete
// implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go LedgerRepository
type LedgerRepository interface {
	GetTransactionRows(ctx context.Context, path string) ([]domain.TransactionRow, error)
	GetInvoiceRows(ctx context.Context, path string) ([]domain.InvoiceRow, error)
}
