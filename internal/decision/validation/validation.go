// Package validation implements format checks on already-trimmed banking
// inputs: sort codes, account numbers, names and transfer requests.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	txmodels "bankapi/internal/transaction/models"
)

var (
	sortCodePattern      = regexp.MustCompile(`^[0-9]{2}-[0-9]{2}-[0-9]{2}$`)
	accountNumberPattern = regexp.MustCompile(`^[0-9]{8}$`)
)

const (
	tagSortCode      = "sortcode"
	tagAccountNumber = "accountno"

	nameRules = "required,max=128"
)

// Validator checks input shape. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(tagSortCode, func(fl validator.FieldLevel) bool {
		return sortCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(tagAccountNumber, func(fl validator.FieldLevel) bool {
		return accountNumberPattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// ValidSearchCriteria reports whether the pair identifies an account in the
// expected NN-NN-NN / 8-digit format.
func (v *Validator) ValidSearchCriteria(sortCode, accountNumber string) bool {
	return v.validate.Var(sortCode, "required,"+tagSortCode) == nil &&
		v.ValidAccountNumber(accountNumber)
}

func (v *Validator) ValidAccountNumber(accountNumber string) bool {
	return v.validate.Var(accountNumber, "required,"+tagAccountNumber) == nil
}

func (v *Validator) ValidCreateCriteria(bankName, ownerName string) bool {
	return v.validate.Var(bankName, nameRules) == nil &&
		v.validate.Var(ownerName, nameRules) == nil
}

// ValidTransfer requires both accounts to be well formed and distinct.
func (v *Validator) ValidTransfer(in txmodels.TransferInput) bool {
	if !v.ValidSearchCriteria(in.SourceAccount.SortCode, in.SourceAccount.AccountNumber) {
		return false
	}
	if !v.ValidSearchCriteria(in.TargetAccount.SortCode, in.TargetAccount.AccountNumber) {
		return false
	}
	return in.SourceAccount != in.TargetAccount
}
