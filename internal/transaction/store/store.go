// Package store records applied transactions.
package store

import (
	"context"

	"bankapi/internal/transaction/models"
)

type Store interface {
	Append(ctx context.Context, tx models.Transaction) error
	ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error)
}
