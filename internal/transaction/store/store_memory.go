package store

import (
	"context"
	"sync"

	"bankapi/internal/transaction/models"
)

type InMemory struct {
	mu           sync.RWMutex
	transactions []models.Transaction
}

func NewInMemory() *InMemory {
	return &InMemory{}
}

func (s *InMemory) Append(_ context.Context, tx models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, tx)
	return nil
}

// ListByAccount returns transactions touching the account, oldest first.
func (s *InMemory) ListByAccount(_ context.Context, accountNumber string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Transaction
	for _, tx := range s.transactions {
		if tx.SourceAccount == accountNumber || tx.TargetAccount == accountNumber {
			out = append(out, tx)
		}
	}
	return out, nil
}
