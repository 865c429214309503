package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"bankapi/internal/account/models"
	"bankapi/internal/account/store"
	dErrors "bankapi/pkg/domain-errors"
)

type fixedGenerator struct {
	numbers []string
	next    int
}

func (g *fixedGenerator) SortCode() string { return "53-68-92" }

func (g *fixedGenerator) AccountNumber() string {
	n := g.numbers[g.next%len(g.numbers)]
	g.next++
	return n
}

type failingStore struct {
	store.Store
}

func (failingStore) FindByNumber(context.Context, string) (*models.Account, error) {
	return nil, errors.New("connection reset")
}

type AccountServiceSuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
	now     time.Time
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) SetupTest() {
	s.store = store.NewInMemory()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	var err error
	s.service, err = New(s.store,
		WithGenerator(&fixedGenerator{numbers: []string{"73084635"}}),
		WithClock(func() time.Time { return s.now }),
	)
	s.Require().NoError(err)
}

func (s *AccountServiceSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)
	s.Contains(err.Error(), "account store is required")
}

func (s *AccountServiceSuite) TestLookups() {
	ctx := context.Background()
	s.store.Seed(&models.Account{
		ID:             uuid.New(),
		SortCode:       "65-93-37",
		AccountNumber:  "21956204",
		OwnerName:      "Grace Hopper",
		CurrentBalance: decimal.RequireFromString("10"),
	})

	s.Run("missing account is absent, not an error", func() {
		account, err := s.service.GetAccount(ctx, "00-00-00", "00000000")
		s.NoError(err)
		s.Nil(account)
	})

	s.Run("found by sort code and number", func() {
		account, err := s.service.GetAccount(ctx, "65-93-37", "21956204")
		s.Require().NoError(err)
		s.Equal("Grace Hopper", account.OwnerName)
	})

	s.Run("found by number", func() {
		account, err := s.service.GetAccountByNumber(ctx, "21956204")
		s.Require().NoError(err)
		s.NotNil(account)
	})

	s.Run("store failures are internal errors", func() {
		svc, err := New(failingStore{Store: s.store})
		s.Require().NoError(err)

		_, err = svc.GetAccountByNumber(ctx, "21956204")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *AccountServiceSuite) TestCreateAccount() {
	ctx := context.Background()

	s.Run("opens zero balance account", func() {
		account, err := s.service.CreateAccount(ctx, "Monzo", "Ada Lovelace")
		s.Require().NoError(err)
		s.Require().NotNil(account)
		s.Equal("73084635", account.AccountNumber)
		s.Equal("53-68-92", account.SortCode)
		s.True(account.CurrentBalance.IsZero())
		s.Equal(s.now, account.CreatedAt)
		s.True(account.Verified())
	})

	s.Run("gives up as absent when every number collides", func() {
		account, err := s.service.CreateAccount(ctx, "Monzo", "Someone Else")
		s.NoError(err)
		s.Nil(account)
	})
}
