package ports

import "bankapi/internal/transaction/models"

// InputValidator checks the format of trimmed inputs.
type InputValidator interface {
	ValidSearchCriteria(sortCode, accountNumber string) bool
	ValidAccountNumber(accountNumber string) bool
	ValidCreateCriteria(bankName, ownerName string) bool
	ValidTransfer(in models.TransferInput) bool
}
