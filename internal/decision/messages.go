package decision

import (
	"fmt"

	"bankapi/internal/decision/amount"
)

// Messages is the catalog of user-facing texts attached to outcomes. The
// transport falls back to the same catalog when an outcome carries none.
type Messages struct {
	NoAccountFound        string
	InvalidSearchCriteria string
	InsufficientBalance   string
	Success               string
	InvalidTransaction    string
	CreateAccountFailed   string
	VerificationFailed    string
	BankNameTooShort      string
	OwnerNameTooShort     string
	AmountInvalidFormat   string
	AmountTooSmall        string
	AmountTooLarge        string
}

// DefaultMessages renders the catalog for the configured limits.
func DefaultMessages(bounds amount.Bounds, minNameLength int) Messages {
	return Messages{
		NoAccountFound:        "Unable to find an account matching this sort code and account number",
		InvalidSearchCriteria: "The provided sort code or account number did not match the expected format",
		InsufficientBalance:   "Insufficient account balance",
		Success:               "Operation completed successfully",
		InvalidTransaction:    "Account information is invalid or transaction has been denied for your protection. Please try again.",
		CreateAccountFailed:   "Error occurred while creating account",
		VerificationFailed:    "Account details are incomplete and could not be verified",
		BankNameTooShort:      fmt.Sprintf("Bank name must be at least %d characters", minNameLength),
		OwnerNameTooShort:     fmt.Sprintf("Owner name must be at least %d characters", minNameLength),
		AmountInvalidFormat:   "Transaction amount must be a valid number",
		AmountTooSmall:        "Transaction amount must be at least " + bounds.Min.StringFixed(bounds.Scale),
		AmountTooLarge:        "Transaction amount must not exceed " + bounds.Max.StringFixed(bounds.Scale),
	}
}

// forAmount picks the message for an amount rejection reason.
func (m Messages) forAmount(reason amount.Reason) string {
	switch reason {
	case amount.ReasonBelowMinimum:
		return m.AmountTooSmall
	case amount.ReasonAboveMaximum:
		return m.AmountTooLarge
	default:
		return m.AmountInvalidFormat
	}
}
