package handler

import (
	"bankapi/internal/decision"
	txmodels "bankapi/internal/transaction/models"
)

// Validate tags are structural limits only. Blank and malformed values are
// left to the evaluators so they show up in the decision trail.

// AccountLookupRequest is the body of POST /accounts.
type AccountLookupRequest struct {
	SortCode      string `json:"sort_code" validate:"max=128"`
	AccountNumber string `json:"account_number" validate:"max=128"`
}

func (r *AccountLookupRequest) Input() decision.LookupInput {
	return decision.LookupInput{SortCode: r.SortCode, AccountNumber: r.AccountNumber}
}

// CreateAccountRequest is the body of PUT /accounts.
type CreateAccountRequest struct {
	BankName  string `json:"bank_name" validate:"max=128"`
	OwnerName string `json:"owner_name" validate:"max=128"`
}

func (r *CreateAccountRequest) Input() decision.CreateAccountInput {
	return decision.CreateAccountInput{BankName: r.BankName, OwnerName: r.OwnerName}
}

type AccountRefRequest struct {
	SortCode      string `json:"sort_code" validate:"max=128"`
	AccountNumber string `json:"account_number" validate:"max=128"`
}

func (r AccountRefRequest) ref() txmodels.AccountRef {
	return txmodels.AccountRef{SortCode: r.SortCode, AccountNumber: r.AccountNumber}
}

// TransferRequest is the body of POST /transactions.
type TransferRequest struct {
	SourceAccount AccountRefRequest `json:"source_account"`
	TargetAccount AccountRefRequest `json:"target_account"`
	Amount        *float64          `json:"amount" validate:"required"`
}

func (r *TransferRequest) Input() decision.TransferInput {
	return decision.TransferInput{
		SourceAccount: r.SourceAccount.ref(),
		TargetAccount: r.TargetAccount.ref(),
		Amount:        *r.Amount,
	}
}

// WithdrawRequest is the body of POST /withdraw.
type WithdrawRequest struct {
	SortCode      string   `json:"sort_code" validate:"max=128"`
	AccountNumber string   `json:"account_number" validate:"max=128"`
	Amount        *float64 `json:"amount" validate:"required"`
}

func (r *WithdrawRequest) Input() decision.WithdrawInput {
	return decision.WithdrawInput{
		SortCode:      r.SortCode,
		AccountNumber: r.AccountNumber,
		Amount:        *r.Amount,
	}
}

// DepositRequest is the body of POST /deposit.
type DepositRequest struct {
	TargetAccountNo string   `json:"target_account_no" validate:"max=128"`
	Amount          *float64 `json:"amount" validate:"required"`
}

func (r *DepositRequest) Input() decision.DepositInput {
	return decision.DepositInput{TargetAccountNo: r.TargetAccountNo, Amount: *r.Amount}
}
