package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bankapi/internal/account/models"
	"bankapi/pkg/platform/sentinel"
)

// InMemory keeps accounts in process memory, keyed by account number.
type InMemory struct {
	mu       sync.RWMutex
	byNumber map[string]*models.Account
	byID     map[uuid.UUID]string
}

func NewInMemory() *InMemory {
	return &InMemory{
		byNumber: make(map[string]*models.Account),
		byID:     make(map[uuid.UUID]string),
	}
}

func (s *InMemory) Create(_ context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byNumber[account.AccountNumber]; exists {
		return sentinel.ErrConflict
	}
	if _, exists := s.byID[account.ID]; exists {
		return sentinel.ErrConflict
	}
	stored := *account
	s.byNumber[account.AccountNumber] = &stored
	s.byID[account.ID] = account.AccountNumber
	return nil
}

func (s *InMemory) FindBySortCodeAndNumber(_ context.Context, sortCode, accountNumber string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byNumber[accountNumber]
	if !ok || account.SortCode != sortCode {
		return nil, sentinel.ErrNotFound
	}
	found := *account
	return &found, nil
}

func (s *InMemory) FindByNumber(_ context.Context, accountNumber string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.byNumber[accountNumber]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *account
	return &found, nil
}

func (s *InMemory) UpdateBalance(_ context.Context, id uuid.UUID, balance decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	number, ok := s.byID[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	s.byNumber[number].CurrentBalance = balance
	return nil
}

// Seed inserts accounts directly, skipping duplicate checks. Used for local
// runs and tests.
func (s *InMemory) Seed(accounts ...*models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, account := range accounts {
		stored := *account
		s.byNumber[account.AccountNumber] = &stored
		s.byID[account.ID] = account.AccountNumber
	}
}
