package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	accountmodels "bankapi/internal/account/models"
	accountstore "bankapi/internal/account/store"
	"bankapi/internal/transaction/models"
	"bankapi/internal/transaction/store"
	dErrors "bankapi/pkg/domain-errors"
	"bankapi/pkg/platform/sentinel"
	txctx "bankapi/pkg/platform/tx"
)

// Service applies balance changes and records them as transactions. The
// writes of one change share a unit of work; they are atomic only when the
// runner is transactional.
type Service struct {
	accounts     accountstore.Store
	transactions store.Store
	runner       txctx.Runner
	clock        func() time.Time
	logger       *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTxRunner sets the unit of work balance writes run in.
func WithTxRunner(runner txctx.Runner) Option {
	return func(s *Service) {
		if runner != nil {
			s.runner = runner
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func New(accounts accountstore.Store, transactions store.Store, opts ...Option) (*Service, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account store is required")
	}
	if transactions == nil {
		return nil, fmt.Errorf("transaction store is required")
	}
	s := &Service{
		accounts:     accounts,
		transactions: transactions,
		runner:       txctx.NopRunner{},
		clock:        time.Now,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// IsAmountAvailable reports whether amount can be taken from balance.
func (s *Service) IsAmountAvailable(amount, balance decimal.Decimal) bool {
	return amount.LessThanOrEqual(balance)
}

// UpdateAccountBalance withdraws from or deposits to account and records the
// transaction. account.CurrentBalance is updated in place on success.
func (s *Service) UpdateAccountBalance(ctx context.Context, account *accountmodels.Account, amount decimal.Decimal, action models.Action) error {
	tx := models.Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		InitiatedAt: s.clock(),
	}

	var balance decimal.Decimal
	switch action {
	case models.ActionWithdraw:
		balance = account.CurrentBalance.Sub(amount)
		tx.Kind = models.KindWithdraw
		tx.SourceAccount = account.AccountNumber
	case models.ActionDeposit:
		balance = account.CurrentBalance.Add(amount)
		tx.Kind = models.KindDeposit
		tx.TargetAccount = account.AccountNumber
	default:
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("unknown balance action %q", action))
	}

	err := s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.accounts.UpdateBalance(ctx, account.ID, balance); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update account balance")
		}
		if err := s.transactions.Append(ctx, tx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transaction")
		}
		return nil
	})
	if err != nil {
		return err
	}
	account.CurrentBalance = balance

	s.logger.InfoContext(ctx, "account balance updated",
		"transaction_id", tx.ID,
		"action", action,
		"account_id", account.ID,
	)
	return nil
}

// MakeTransfer moves in.Amount between two accounts. It returns false when
// either account is missing or the source cannot cover the amount.
func (s *Service) MakeTransfer(ctx context.Context, in models.TransferInput) (bool, error) {
	amount := in.Amount

	source, target, err := s.loadParties(ctx, in)
	if err != nil {
		return false, err
	}
	if source == nil || target == nil {
		s.logger.DebugContext(ctx, "transfer party not found",
			"source_found", source != nil,
			"target_found", target != nil,
		)
		return false, nil
	}
	if !s.IsAmountAvailable(amount, source.CurrentBalance) {
		return false, nil
	}

	tx := models.Transaction{
		ID:            uuid.New(),
		Kind:          models.KindTransfer,
		SourceAccount: source.AccountNumber,
		TargetAccount: target.AccountNumber,
		Amount:        amount,
		InitiatedAt:   s.clock(),
	}
	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.accounts.UpdateBalance(ctx, source.ID, source.CurrentBalance.Sub(amount)); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit source account")
		}
		if err := s.accounts.UpdateBalance(ctx, target.ID, target.CurrentBalance.Add(amount)); err != nil {
			s.restore(ctx, source)
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to credit target account")
		}
		if err := s.transactions.Append(ctx, tx); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transfer")
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logger.InfoContext(ctx, "transfer completed", "transaction_id", tx.ID)
	return true, nil
}

// restore puts back the source balance after a failed credit. Inside a SQL
// transaction the rollback does this instead.
func (s *Service) restore(ctx context.Context, source *accountmodels.Account) {
	if _, inTx := txctx.From(ctx); inTx {
		return
	}
	if err := s.accounts.UpdateBalance(ctx, source.ID, source.CurrentBalance); err != nil {
		s.logger.ErrorContext(ctx, "failed to restore source balance after failed credit",
			"account_id", source.ID,
			"error", err,
		)
	}
}

// loadParties fetches both accounts concurrently. A missing account is
// reported as nil, not as an error.
func (s *Service) loadParties(ctx context.Context, in models.TransferInput) (*accountmodels.Account, *accountmodels.Account, error) {
	var source, target *accountmodels.Account
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		source, err = s.find(gctx, in.SourceAccount)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = s.find(gctx, in.TargetAccount)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load transfer accounts")
	}
	return source, target, nil
}

func (s *Service) find(ctx context.Context, ref models.AccountRef) (*accountmodels.Account, error) {
	account, err := s.accounts.FindBySortCodeAndNumber(ctx, ref.SortCode, ref.AccountNumber)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, nil
	}
	return account, err
}
