package ports

//go:generate mockgen -source=transactions.go -destination=mocks/transactions.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	accountmodels "bankapi/internal/account/models"
	"bankapi/internal/transaction/models"
)

// TransactionPort mutates balances. UpdateAccountBalance is assumed to succeed
// once called unless the backing store fails.
type TransactionPort interface {
	IsAmountAvailable(amount, balance decimal.Decimal) bool
	UpdateAccountBalance(ctx context.Context, account *accountmodels.Account, amount decimal.Decimal, action models.Action) error
	MakeTransfer(ctx context.Context, in models.TransferInput) (bool, error)
}
