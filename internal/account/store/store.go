// Package store persists accounts. Implementations return sentinel.ErrNotFound
// for missing accounts and sentinel.ErrConflict for duplicate identifiers.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankapi/internal/account/models"
)

// Store is the persistence contract shared by the memory, postgres and cached
// implementations.
type Store interface {
	Create(ctx context.Context, account *models.Account) error
	FindBySortCodeAndNumber(ctx context.Context, sortCode, accountNumber string) (*models.Account, error)
	FindByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error
}
