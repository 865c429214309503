package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankapi/internal/account/models"
	"bankapi/internal/account/store"
	dErrors "bankapi/pkg/domain-errors"
	"bankapi/pkg/platform/sentinel"
)

// maxCreateAttempts bounds retries when a generated account number collides.
const maxCreateAttempts = 5

// Generator produces identifiers for new accounts.
type Generator interface {
	SortCode() string
	AccountNumber() string
}

// Service looks up and opens accounts.
type Service struct {
	store     store.Store
	generator Generator
	clock     func() time.Time
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithGenerator(g Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
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

func New(st store.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("account store is required")
	}
	s := &Service{
		store:     st,
		generator: randomGenerator{},
		clock:     time.Now,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetAccount returns the account matching both identifiers, or nil when none
// exists.
func (s *Service) GetAccount(ctx context.Context, sortCode, accountNumber string) (*models.Account, error) {
	account, err := s.store.FindBySortCodeAndNumber(ctx, sortCode, accountNumber)
	return absentIfNotFound(account, err)
}

// GetAccountByNumber returns the account with the given number, or nil.
func (s *Service) GetAccountByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	account, err := s.store.FindByNumber(ctx, accountNumber)
	return absentIfNotFound(account, err)
}

// CreateAccount opens a zero-balance account with generated identifiers. It
// returns nil without error when no free account number could be found.
func (s *Service) CreateAccount(ctx context.Context, bankName, ownerName string) (*models.Account, error) {
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		account := &models.Account{
			ID:             uuid.New(),
			SortCode:       s.generator.SortCode(),
			AccountNumber:  s.generator.AccountNumber(),
			BankName:       bankName,
			OwnerName:      ownerName,
			CurrentBalance: decimal.Zero,
			CreatedAt:      s.clock(),
		}
		err := s.store.Create(ctx, account)
		if err == nil {
			s.logger.InfoContext(ctx, "account created",
				"account_id", account.ID,
				"attempt", attempt,
			)
			return account, nil
		}
		if !errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create account")
		}
		s.logger.DebugContext(ctx, "generated account number collided", "attempt", attempt)
	}
	s.logger.WarnContext(ctx, "account creation gave up after collisions", "attempts", maxCreateAttempts)
	return nil, nil
}

func absentIfNotFound(account *models.Account, err error) (*models.Account, error) {
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load account")
	}
	return account, nil
}

type randomGenerator struct{}

func (randomGenerator) SortCode() string {
	return fmt.Sprintf("%02d-%02d-%02d", rand.IntN(100), rand.IntN(100), rand.IntN(100))
}

func (randomGenerator) AccountNumber() string {
	return fmt.Sprintf("%08d", rand.IntN(100_000_000))
}
