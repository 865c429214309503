package decision

import (
	"context"
	"net/http"
	"time"
	"unicode/utf8"

	"bankapi/internal/account/models"
	"bankapi/internal/decision/outcome"
	"bankapi/pkg/platform/audit"
)

// LookupAccount finds an account by sort code and account number. A found
// account must also pass verification before it is returned.
func (s *Service) LookupAccount(ctx context.Context, in LookupInput) (outcome.Outcome[*models.Account], error) {
	const op = audit.OperationLookup
	ctx, span := s.start(ctx, op)
	defer span.End()
	started := time.Now()

	b := outcome.Begin[*models.Account]().Record(PointPreValidation)

	sortCode := trim(b, in.SortCode, PointSortCodeSanitized)
	accountNumber := trim(b, in.AccountNumber, PointAccountNumberSanitized)
	if sortCode == "" || accountNumber == "" {
		b.Record(PointValidationFailedMissing)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}
	if !s.validator.ValidSearchCriteria(sortCode, accountNumber) {
		b.Record(PointValidationFailedGeneric)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}

	b.Record(PointAccountLookup)
	account, err := s.accounts.GetAccount(ctx, sortCode, accountNumber)
	if err != nil {
		return outcome.Outcome[*models.Account]{}, s.collaboratorError(ctx, span, op, "account lookup failed", err)
	}
	if account == nil {
		b.Record(PointResultEmpty)
		return finish(ctx, s, span, op, started, b.Empty(http.StatusNotFound, s.messages.NoAccountFound)), nil
	}
	b.Record(PointAccountFound)

	return finish(ctx, s, span, op, started, s.verified(b, account, PointResultSuccess, http.StatusOK)), nil
}

// CreateAccount opens an account for the given bank and owner. The created
// account is verified like a looked-up one.
func (s *Service) CreateAccount(ctx context.Context, in CreateAccountInput) (outcome.Outcome[*models.Account], error) {
	const op = audit.OperationCreate
	ctx, span := s.start(ctx, op)
	defer span.End()
	started := time.Now()

	b := outcome.Begin[*models.Account]().Record(PointPreValidation)

	bankName := trim(b, in.BankName, PointBankNameSanitized)
	ownerName := trim(b, in.OwnerName, PointOwnerNameSanitized)
	if bankName == "" || ownerName == "" {
		b.Record(PointValidationFailedMissing)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}
	if !s.validator.ValidCreateCriteria(bankName, ownerName) {
		b.Record(PointValidationFailedGeneric)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}
	if utf8.RuneCountInString(bankName) < s.minNameLength {
		b.Record(PointBankNameTooShort)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.BankNameTooShort)), nil
	}
	if utf8.RuneCountInString(ownerName) < s.minNameLength {
		b.Record(PointOwnerNameTooShort)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.OwnerNameTooShort)), nil
	}

	b.Record(PointCreationAttempt)
	account, err := s.accounts.CreateAccount(ctx, bankName, ownerName)
	if err != nil {
		return outcome.Outcome[*models.Account]{}, s.collaboratorError(ctx, span, op, "account creation failed", err)
	}
	if account == nil {
		b.Record(PointCreationFailure)
		return finish(ctx, s, span, op, started, b.Empty(http.StatusNotFound, s.messages.CreateAccountFailed)), nil
	}
	b.Record(PointAccountCreated)

	return finish(ctx, s, span, op, started, s.verified(b, account, PointCreationSuccess, http.StatusCreated)), nil
}

// verified closes b as a failure when the account is missing an identifier
// or owner, and as a success otherwise.
func (s *Service) verified(b *outcome.Builder[*models.Account], account *models.Account, success outcome.Point, status int) outcome.Outcome[*models.Account] {
	b.Record(PointVerificationStarted)
	if !account.Verified() {
		b.Record(PointVerificationFailed)
		return b.Failure(http.StatusUnprocessableEntity, s.messages.VerificationFailed)
	}
	b.Record(PointVerificationPassed).Record(success)
	return b.Success(account, status)
}
