package decision

import (
	"context"
	"net/http"
	"time"

	"bankapi/internal/decision/outcome"
	"bankapi/internal/transaction/models"
	"bankapi/pkg/platform/audit"
)

// Transfer moves money between two accounts. A refused transfer is reported
// as a failure without echoing account data.
func (s *Service) Transfer(ctx context.Context, in TransferInput) (outcome.Outcome[bool], error) {
	const op = audit.OperationTransfer
	ctx, span := s.start(ctx, op)
	defer span.End()
	started := time.Now()

	b := outcome.Begin[bool]().Record(PointPreValidation)

	in.SourceAccount.SortCode = trim(b, in.SourceAccount.SortCode, PointSortCodeSanitized)
	in.SourceAccount.AccountNumber = trim(b, in.SourceAccount.AccountNumber, PointAccountNumberSanitized)
	in.TargetAccount.SortCode = trim(b, in.TargetAccount.SortCode, PointSortCodeSanitized)
	in.TargetAccount.AccountNumber = trim(b, in.TargetAccount.AccountNumber, PointAccountNumberSanitized)
	if in.SourceAccount.SortCode == "" || in.SourceAccount.AccountNumber == "" ||
		in.TargetAccount.SortCode == "" || in.TargetAccount.AccountNumber == "" {
		b.Record(PointValidationFailedMissing)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidTransaction)), nil
	}
	transfer := models.TransferInput{SourceAccount: in.SourceAccount, TargetAccount: in.TargetAccount}
	if !s.validator.ValidTransfer(transfer) {
		b.Record(PointValidationFailedGeneric)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidTransaction)), nil
	}

	res := checkAmount(s, b, op, in.Amount)
	if !res.Valid() {
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.forAmount(res.Reason))), nil
	}
	transfer.Amount = res.Amount

	b.Record(PointTransferAttempt)
	ok, err := s.transactions.MakeTransfer(ctx, transfer)
	if err != nil {
		return outcome.Outcome[bool]{}, s.collaboratorError(ctx, span, op, "transfer failed", err)
	}
	if !ok {
		b.Record(PointTransferFailed)
		return finish(ctx, s, span, op, started, b.Failure(http.StatusUnprocessableEntity, s.messages.InvalidTransaction)), nil
	}
	b.Record(PointTransferCompleted).Record(PointResultSuccess)

	return finish(ctx, s, span, op, started, b.Success(true, http.StatusOK)), nil
}

// Withdraw debits an account identified by sort code and account number.
// Funds are checked before any mutation; a shortfall is never clamped.
func (s *Service) Withdraw(ctx context.Context, in WithdrawInput) (outcome.Outcome[string], error) {
	const op = audit.OperationWithdraw
	ctx, span := s.start(ctx, op)
	defer span.End()
	started := time.Now()

	b := outcome.Begin[string]().Record(PointPreValidation)

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

	res := checkAmount(s, b, op, in.Amount)
	if !res.Valid() {
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.forAmount(res.Reason))), nil
	}

	b.Record(PointAccountLookup)
	account, err := s.accounts.GetAccount(ctx, sortCode, accountNumber)
	if err != nil {
		return outcome.Outcome[string]{}, s.collaboratorError(ctx, span, op, "account lookup failed", err)
	}
	if account == nil {
		b.Record(PointResultEmpty)
		return finish(ctx, s, span, op, started, b.Empty(http.StatusNotFound, s.messages.NoAccountFound)), nil
	}
	b.Record(PointAccountFound)

	b.Record(PointBalanceCheck)
	if !s.transactions.IsAmountAvailable(res.Amount, account.CurrentBalance) {
		b.Record(PointInsufficientFunds)
		return finish(ctx, s, span, op, started, b.Failure(http.StatusUnprocessableEntity, s.messages.InsufficientBalance)), nil
	}

	b.Record(PointBalanceUpdate)
	if err := s.transactions.UpdateAccountBalance(ctx, account, res.Amount, models.ActionWithdraw); err != nil {
		return outcome.Outcome[string]{}, s.collaboratorError(ctx, span, op, "balance update failed", err)
	}
	b.Record(PointBalanceUpdated).Record(PointResultSuccess)

	return finish(ctx, s, span, op, started, b.Success(s.messages.Success, http.StatusOK)), nil
}

// Deposit credits the account with the given number.
func (s *Service) Deposit(ctx context.Context, in DepositInput) (outcome.Outcome[string], error) {
	const op = audit.OperationDeposit
	ctx, span := s.start(ctx, op)
	defer span.End()
	started := time.Now()

	b := outcome.Begin[string]().Record(PointPreValidation)

	accountNumber := trim(b, in.TargetAccountNo, PointAccountNumberSanitized)
	if accountNumber == "" {
		b.Record(PointValidationFailedMissing)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}
	if !s.validator.ValidAccountNumber(accountNumber) {
		b.Record(PointValidationFailedGeneric)
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.InvalidSearchCriteria)), nil
	}

	res := checkAmount(s, b, op, in.Amount)
	if !res.Valid() {
		return finish(ctx, s, span, op, started, b.Invalid(http.StatusBadRequest, s.messages.forAmount(res.Reason))), nil
	}

	b.Record(PointAccountLookup)
	account, err := s.accounts.GetAccountByNumber(ctx, accountNumber)
	if err != nil {
		return outcome.Outcome[string]{}, s.collaboratorError(ctx, span, op, "account lookup failed", err)
	}
	if account == nil {
		b.Record(PointResultEmpty)
		return finish(ctx, s, span, op, started, b.Empty(http.StatusNotFound, s.messages.NoAccountFound)), nil
	}
	b.Record(PointAccountFound)

	b.Record(PointBalanceUpdate)
	if err := s.transactions.UpdateAccountBalance(ctx, account, res.Amount, models.ActionDeposit); err != nil {
		return outcome.Outcome[string]{}, s.collaboratorError(ctx, span, op, "balance update failed", err)
	}
	b.Record(PointBalanceUpdated).Record(PointResultSuccess)

	return finish(ctx, s, span, op, started, b.Success(s.messages.Success, http.StatusOK)), nil
}
