package ports

//go:generate mockgen -source=accounts.go -destination=mocks/accounts.go -package=mocks

import (
	"context"

	"bankapi/internal/account/models"
)

// AccountPort looks up and opens accounts. A nil account with a nil error
// means "absent"; errors are reserved for infrastructure failures.
type AccountPort interface {
	GetAccount(ctx context.Context, sortCode, accountNumber string) (*models.Account, error)
	GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	CreateAccount(ctx context.Context, bankName, ownerName string) (*models.Account, error)
}
