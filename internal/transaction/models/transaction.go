package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action is the direction of a single-account balance change.
type Action string

const (
	ActionWithdraw Action = "withdraw"
	ActionDeposit  Action = "deposit"
)

// Kind classifies a recorded transaction.
type Kind string

const (
	KindTransfer Kind = "transfer"
	KindWithdraw Kind = "withdraw"
	KindDeposit  Kind = "deposit"
)

// AccountRef identifies an account by sort code and account number.
type AccountRef struct {
	SortCode      string `json:"sort_code"`
	AccountNumber string `json:"account_number"`
}

// TransferInput moves Amount from SourceAccount to TargetAccount.
type TransferInput struct {
	SourceAccount AccountRef
	TargetAccount AccountRef
	Amount        decimal.Decimal
}

// Transaction is an applied balance change. SourceAccount is empty for
// deposits and TargetAccount is empty for withdrawals.
type Transaction struct {
	ID            uuid.UUID
	Kind          Kind
	SourceAccount string
	TargetAccount string
	Amount        decimal.Decimal
	InitiatedAt   time.Time
}
