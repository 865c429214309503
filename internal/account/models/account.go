package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a bank account as held by the account store.
type Account struct {
	ID             uuid.UUID       `json:"id"`
	SortCode       string          `json:"sort_code"`
	AccountNumber  string          `json:"account_number"`
	BankName       string          `json:"bank_name"`
	OwnerName      string          `json:"owner_name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Verified reports whether every identifying field is populated. An account
// that exists but fails this check indicates a data-integrity problem.
func (a *Account) Verified() bool {
	if a == nil {
		return false
	}
	return !isBlank(a.OwnerName) && !isBlank(a.SortCode) && !isBlank(a.AccountNumber)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
