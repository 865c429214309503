package decision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	accountmodels "bankapi/internal/account/models"
	"bankapi/internal/decision/metrics"
	"bankapi/internal/decision/outcome"
	"bankapi/internal/decision/ports/mocks"
	txmodels "bankapi/internal/transaction/models"
	dErrors "bankapi/pkg/domain-errors"
	"bankapi/pkg/platform/audit"
	"bankapi/pkg/platform/audit/publisher"
	"bankapi/pkg/platform/audit/store/memory"
	"bankapi/pkg/requestcontext"
)

// =============================================================================
// Decision Service Test Suite
// =============================================================================
// The evaluators are pure orchestration over the account and transaction
// ports. Tests pin the decision sequence (trail), the terminal kind and status,
// and which collaborator calls happen at all.

type DecisionServiceSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	accounts     *mocks.MockAccountPort
	transactions *mocks.MockTransactionPort
	auditStore   *memory.InMemoryStore
	metrics      *metrics.Metrics
	service      *Service
	ctx          context.Context
}

func TestDecisionServiceSuite(t *testing.T) {
	suite.Run(t, new(DecisionServiceSuite))
}

func (s *DecisionServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accounts = mocks.NewMockAccountPort(s.ctrl)
	s.transactions = mocks.NewMockTransactionPort(s.ctrl)
	s.auditStore = memory.NewInMemoryStore()
	s.metrics = metrics.NewWith(prometheus.NewRegistry())
	s.ctx = requestcontext.WithRequestID(context.Background(), "req-test")

	svc, err := New(s.accounts, s.transactions,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditor(publisher.NewPublisher(s.auditStore)),
	)
	s.Require().NoError(err)
	s.service = svc
}

func (s *DecisionServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func verifiedAccount(balance string) *accountmodels.Account {
	return &accountmodels.Account{
		SortCode:       "53-68-92",
		AccountNumber:  "73084635",
		BankName:       "Some Bank",
		OwnerName:      "Paul Dobsen",
		CurrentBalance: decimal.RequireFromString(balance),
	}
}

func points(ps ...outcome.Point) []outcome.Point {
	return ps
}

// decimalEq matches decimals by value rather than representation.
type decimalEq struct {
	want decimal.Decimal
}

func amountOf(v string) gomock.Matcher {
	return decimalEq{want: decimal.RequireFromString(v)}
}

func (m decimalEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalEq) String() string {
	return fmt.Sprintf("is decimal %s", m.want)
}

// =============================================================================
// Constructor Tests
// =============================================================================

func (s *DecisionServiceSuite) TestNew() {
	s.Run("nil account port returns error", func() {
		_, err := New(nil, s.transactions)
		s.Error(err)
		s.Contains(err.Error(), "account port is required")
	})

	s.Run("nil transaction port returns error", func() {
		_, err := New(s.accounts, nil)
		s.Error(err)
		s.Contains(err.Error(), "transaction port is required")
	})

	s.Run("default messages follow configured limits", func() {
		svc, err := New(s.accounts, s.transactions, WithMinNameLength(5))
		s.Require().NoError(err)
		s.Equal("Bank name must be at least 5 characters", svc.Messages().BankNameTooShort)
		s.Equal("Transaction amount must not exceed 1000000.00", svc.Messages().AmountTooLarge)
	})

	s.Run("explicit messages replace defaults", func() {
		svc, err := New(s.accounts, s.transactions, WithMessages(Messages{Success: "done"}))
		s.Require().NoError(err)
		s.Equal("done", svc.Messages().Success)
	})
}

// =============================================================================
// Account Lookup
// =============================================================================

func (s *DecisionServiceSuite) TestLookupAccount() {
	s.Run("blank sort code is rejected before any lookup", func() {
		out, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "   ", AccountNumber: "73084635"})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(http.StatusBadRequest, out.Status())
		s.Equal(points(PointPreValidation, PointSortCodeSanitized, PointValidationFailedMissing), out.Trail())
		s.NotContains(out.Trail(), PointAccountLookup)
	})

	s.Run("malformed sort code fails shape validation", func() {
		out, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "536892", AccountNumber: "73084635"})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(points(PointPreValidation, PointValidationFailedGeneric), out.Trail())
	})

	s.Run("trimmed identifiers are used for the lookup", func() {
		account := verifiedAccount("10.00")
		s.accounts.EXPECT().GetAccount(gomock.Any(), "53-68-92", "73084635").Return(account, nil)

		out, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: " 53-68-92", AccountNumber: "73084635 "})
		s.Require().NoError(err)

		s.True(out.IsSuccess())
		payload, ok := out.Payload()
		s.True(ok)
		s.Same(account, payload)
		s.Equal(points(
			PointPreValidation,
			PointSortCodeSanitized,
			PointAccountNumberSanitized,
			PointAccountLookup,
			PointAccountFound,
			PointVerificationStarted,
			PointVerificationPassed,
			PointResultSuccess,
		), out.Trail())
	})

	s.Run("unknown account is an empty result", func() {
		s.accounts.EXPECT().GetAccount(gomock.Any(), "53-68-92", "11111111").Return(nil, nil)

		out, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "53-68-92", AccountNumber: "11111111"})
		s.Require().NoError(err)

		s.Equal(outcome.KindEmptyResult, out.Kind())
		s.Equal(http.StatusNotFound, out.Status())
		msg, ok := out.Message()
		s.True(ok)
		s.Equal(s.service.Messages().NoAccountFound, msg)
	})

	s.Run("account missing its owner fails verification", func() {
		account := verifiedAccount("10.00")
		account.OwnerName = " "
		s.accounts.EXPECT().GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(account, nil)

		out, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "53-68-92", AccountNumber: "73084635"})
		s.Require().NoError(err)

		s.Equal(outcome.KindFailure, out.Kind())
		s.Equal(http.StatusUnprocessableEntity, out.Status())
		_, hasPayload := out.Payload()
		s.False(hasPayload, "failed verification must not echo the account")
		s.Equal(PointVerificationFailed, out.Trail()[len(out.Trail())-1])
	})

	s.Run("store failure surfaces as internal error", func() {
		s.accounts.EXPECT().GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "53-68-92", AccountNumber: "73084635"})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// =============================================================================
// Account Creation
// =============================================================================

func (s *DecisionServiceSuite) TestCreateAccount() {
	s.Run("blank owner name is invalid input", func() {
		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "Some Bank", OwnerName: ""})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(points(PointPreValidation, PointValidationFailedMissing), out.Trail())
	})

	s.Run("short bank name has its own message", func() {
		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "AB", OwnerName: "Paul Dobsen"})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		msg, _ := out.Message()
		s.Equal(s.service.Messages().BankNameTooShort, msg)
		s.Equal(PointBankNameTooShort, out.Trail()[len(out.Trail())-1])
	})

	s.Run("short owner name after trimming has its own message", func() {
		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "Some Bank", OwnerName: "  Al  "})
		s.Require().NoError(err)

		s.Equal(points(PointPreValidation, PointOwnerNameSanitized, PointOwnerNameTooShort), out.Trail())
		msg, _ := out.Message()
		s.Equal(s.service.Messages().OwnerNameTooShort, msg)
	})

	s.Run("created account is verified and returned", func() {
		account := verifiedAccount("0")
		s.accounts.EXPECT().CreateAccount(gomock.Any(), "Some Bank", "Paul Dobsen").Return(account, nil)

		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "Some Bank", OwnerName: "Paul Dobsen"})
		s.Require().NoError(err)

		s.True(out.IsSuccess())
		s.Equal(http.StatusCreated, out.Status())
		s.Equal(points(
			PointPreValidation,
			PointCreationAttempt,
			PointAccountCreated,
			PointVerificationStarted,
			PointVerificationPassed,
			PointCreationSuccess,
		), out.Trail())
	})

	s.Run("created account with blank owner is a failure, not empty or success", func() {
		account := verifiedAccount("0")
		account.OwnerName = ""
		s.accounts.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(account, nil)

		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "Some Bank", OwnerName: "Paul Dobsen"})
		s.Require().NoError(err)

		s.Equal(outcome.KindFailure, out.Kind())
		s.Contains(out.Trail(), PointVerificationFailed)
	})

	s.Run("creation without an account is an empty result", func() {
		s.accounts.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		out, err := s.service.CreateAccount(s.ctx, CreateAccountInput{BankName: "Some Bank", OwnerName: "Paul Dobsen"})
		s.Require().NoError(err)

		s.Equal(outcome.KindEmptyResult, out.Kind())
		s.Equal(PointCreationFailure, out.Trail()[len(out.Trail())-1])
	})
}

// =============================================================================
// Transfer
// =============================================================================

func validTransfer(amount float64) TransferInput {
	return TransferInput{
		SourceAccount: txmodels.AccountRef{SortCode: "53-68-92", AccountNumber: "73084635"},
		TargetAccount: txmodels.AccountRef{SortCode: "65-93-37", AccountNumber: "21956204"},
		Amount:        amount,
	}
}

func (s *DecisionServiceSuite) TestTransfer() {
	s.Run("normalized amount is handed to the transfer", func() {
		s.transactions.EXPECT().
			MakeTransfer(gomock.Any(), gomock.Cond(func(in txmodels.TransferInput) bool {
				return in.Amount.Equal(decimal.RequireFromString("27.13")) &&
					in.SourceAccount.AccountNumber == "73084635"
			})).
			Return(true, nil)

		out, err := s.service.Transfer(s.ctx, validTransfer(27.125))
		s.Require().NoError(err)

		s.True(out.IsSuccess())
		payload, _ := out.Payload()
		s.True(payload)
		s.Equal(points(
			PointPreValidation,
			PointAmountValidation,
			PointAmountSanitized,
			PointTransferAttempt,
			PointTransferCompleted,
			PointResultSuccess,
		), out.Trail())
	})

	s.Run("refused transfer is a message-only failure", func() {
		s.transactions.EXPECT().MakeTransfer(gomock.Any(), gomock.Any()).Return(false, nil)

		out, err := s.service.Transfer(s.ctx, validTransfer(10))
		s.Require().NoError(err)

		s.Equal(outcome.KindFailure, out.Kind())
		_, hasPayload := out.Payload()
		s.False(hasPayload)
		msg, _ := out.Message()
		s.Equal(s.service.Messages().InvalidTransaction, msg)
	})

	s.Run("same source and target is invalid", func() {
		in := validTransfer(10)
		in.TargetAccount = in.SourceAccount

		out, err := s.service.Transfer(s.ctx, in)
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(PointValidationFailedGeneric, out.Trail()[len(out.Trail())-1])
	})

	s.Run("amount above maximum has its own message", func() {
		out, err := s.service.Transfer(s.ctx, validTransfer(1_000_000.01))
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(PointAmountTooLarge, out.Trail()[len(out.Trail())-1])
		msg, _ := out.Message()
		s.Equal(s.service.Messages().AmountTooLarge, msg)
		s.Equal(1.0, promtest.ToFloat64(s.metrics.AmountRejected.WithLabelValues("transfer", "above_maximum")))
	})

	s.Run("transfer backend failure is an error", func() {
		s.transactions.EXPECT().MakeTransfer(gomock.Any(), gomock.Any()).Return(false, errors.New("timeout"))

		_, err := s.service.Transfer(s.ctx, validTransfer(10))
		s.Error(err)
	})
}

// =============================================================================
// Withdraw
// =============================================================================

func (s *DecisionServiceSuite) TestWithdraw() {
	s.Run("insufficient funds fails without touching the balance", func() {
		account := verifiedAccount("50.00")
		s.accounts.EXPECT().GetAccount(gomock.Any(), "53-68-92", "73084635").Return(account, nil)
		s.transactions.EXPECT().IsAmountAvailable(amountOf("100.00"), amountOf("50.00")).Return(false)
		s.transactions.EXPECT().UpdateAccountBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		out, err := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: 100.00})
		s.Require().NoError(err)

		s.Equal(outcome.KindFailure, out.Kind())
		s.Equal(http.StatusUnprocessableEntity, out.Status())
		msg, _ := out.Message()
		s.Equal(s.service.Messages().InsufficientBalance, msg)
		s.Equal(points(
			PointPreValidation,
			PointAmountValidation,
			PointAccountLookup,
			PointAccountFound,
			PointBalanceCheck,
			PointInsufficientFunds,
		), out.Trail())
	})

	s.Run("sufficient funds debits the account", func() {
		account := verifiedAccount("50.00")
		s.accounts.EXPECT().GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(account, nil)
		s.transactions.EXPECT().IsAmountAvailable(amountOf("20.00"), amountOf("50.00")).Return(true)
		s.transactions.EXPECT().UpdateAccountBalance(gomock.Any(), account, amountOf("20.00"), txmodels.ActionWithdraw).Return(nil)

		out, err := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: 20})
		s.Require().NoError(err)

		s.True(out.IsSuccess())
		payload, _ := out.Payload()
		s.Equal(s.service.Messages().Success, payload)
		s.Equal(PointResultSuccess, out.Trail()[len(out.Trail())-1])
	})

	s.Run("zero amount is below minimum", func() {
		out, err := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: 0})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(PointAmountTooSmall, out.Trail()[len(out.Trail())-1])
	})

	s.Run("NaN amount is a format error", func() {
		out, err := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: math.NaN()})
		s.Require().NoError(err)

		msg, _ := out.Message()
		s.Equal(s.service.Messages().AmountInvalidFormat, msg)
		s.Equal(PointAmountInvalidFormat, out.Trail()[len(out.Trail())-1])
	})

	s.Run("unknown account is an empty result", func() {
		s.accounts.EXPECT().GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		out, err := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: 5})
		s.Require().NoError(err)

		s.Equal(outcome.KindEmptyResult, out.Kind())
	})
}

// =============================================================================
// Deposit
// =============================================================================

func (s *DecisionServiceSuite) TestDeposit() {
	s.Run("amount with extra precision is rounded before the update", func() {
		account := verifiedAccount("1.00")
		s.accounts.EXPECT().GetAccountByNumber(gomock.Any(), "73084635").Return(account, nil)
		s.transactions.EXPECT().UpdateAccountBalance(gomock.Any(), account, amountOf("10.56"), txmodels.ActionDeposit).Return(nil)

		out, err := s.service.Deposit(s.ctx, DepositInput{TargetAccountNo: "73084635", Amount: 10.555})
		s.Require().NoError(err)

		s.True(out.IsSuccess())
		s.Equal(points(
			PointPreValidation,
			PointAmountValidation,
			PointAmountSanitized,
			PointAccountLookup,
			PointAccountFound,
			PointBalanceUpdate,
			PointBalanceUpdated,
			PointResultSuccess,
		), out.Trail())
		s.Equal(1.0, promtest.ToFloat64(s.metrics.AmountSanitized.WithLabelValues("deposit")))
	})

	s.Run("malformed account number fails validation", func() {
		out, err := s.service.Deposit(s.ctx, DepositInput{TargetAccountNo: "12AB", Amount: 5})
		s.Require().NoError(err)

		s.Equal(outcome.KindInvalidInput, out.Kind())
		s.Equal(points(PointPreValidation, PointValidationFailedGeneric), out.Trail())
	})

	s.Run("balance update failure is an error", func() {
		account := verifiedAccount("1.00")
		s.accounts.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Any()).Return(account, nil)
		s.transactions.EXPECT().UpdateAccountBalance(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		_, err := s.service.Deposit(s.ctx, DepositInput{TargetAccountNo: "73084635", Amount: 5})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

// =============================================================================
// Cross-cutting
// =============================================================================

func (s *DecisionServiceSuite) TestEveryOutcomeStartsWithPreValidation() {
	s.accounts.EXPECT().GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.accounts.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	s.transactions.EXPECT().MakeTransfer(gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()

	var trails [][]outcome.Point
	lookup, _ := s.service.LookupAccount(s.ctx, LookupInput{SortCode: "53-68-92", AccountNumber: "73084635"})
	trails = append(trails, lookup.Trail())
	create, _ := s.service.CreateAccount(s.ctx, CreateAccountInput{})
	trails = append(trails, create.Trail())
	transfer, _ := s.service.Transfer(s.ctx, validTransfer(1))
	trails = append(trails, transfer.Trail())
	withdraw, _ := s.service.Withdraw(s.ctx, WithdrawInput{SortCode: "53-68-92", AccountNumber: "73084635", Amount: -1})
	trails = append(trails, withdraw.Trail())
	deposit, _ := s.service.Deposit(s.ctx, DepositInput{TargetAccountNo: "73084635", Amount: 1})
	trails = append(trails, deposit.Trail())

	for _, trail := range trails {
		s.Require().NotEmpty(trail)
		s.Equal(PointPreValidation, trail[0])
	}
}

func (s *DecisionServiceSuite) TestOutcomesAreAudited() {
	s.accounts.EXPECT().GetAccountByNumber(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err := s.service.Deposit(s.ctx, DepositInput{TargetAccountNo: "73084635", Amount: 5})
	s.Require().NoError(err)

	events, err := s.auditStore.ListByOperation(s.ctx, audit.OperationDeposit)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal("empty_result", events[0].Kind)
	s.Equal("req-test", events[0].RequestID)
	s.Equal(http.StatusNotFound, events[0].Status)
	s.Equal([]string{"PRE_VALIDATION", "AMOUNT_VALIDATION", "ACCOUNT_LOOKUP", "RESULT_EMPTY"}, events[0].Trail)
	s.Equal(1.0, promtest.ToFloat64(s.metrics.Outcomes.WithLabelValues("empty_result", "deposit")))
}

func (s *DecisionServiceSuite) TestAuditFailureDoesNotChangeOutcome() {
	svc, err := New(s.accounts, s.transactions, WithAuditor(failingAuditor{}))
	s.Require().NoError(err)

	out, err := svc.LookupAccount(s.ctx, LookupInput{})
	s.Require().NoError(err)
	s.Equal(outcome.KindInvalidInput, out.Kind())
}

type failingAuditor struct{}

func (failingAuditor) Emit(context.Context, audit.Event) error {
	return errors.New("sink down")
}
