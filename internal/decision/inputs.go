package decision

import txmodels "bankapi/internal/transaction/models"

// LookupInput identifies an account by sort code and account number.
type LookupInput struct {
	SortCode      string
	AccountNumber string
}

type CreateAccountInput struct {
	BankName  string
	OwnerName string
}

type WithdrawInput struct {
	SortCode      string
	AccountNumber string
	Amount        float64
}

// TransferInput carries the raw requested amount. It becomes a decimal only
// once the amount pipeline has accepted it.
type TransferInput struct {
	SourceAccount txmodels.AccountRef
	TargetAccount txmodels.AccountRef
	Amount        float64
}

// DepositInput targets an account by number alone.
type DepositInput struct {
	TargetAccountNo string
	Amount          float64
}
