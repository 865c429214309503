package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"bankapi/internal/transaction/models"
	txctx "bankapi/pkg/platform/tx"
)

// Schema creates the transactions table and its indexes when missing.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		id             UUID PRIMARY KEY,
		kind           TEXT NOT NULL,
		source_account TEXT NOT NULL DEFAULT '',
		target_account TEXT NOT NULL DEFAULT '',
		amount         NUMERIC(14, 2) NOT NULL,
		initiated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_source_idx ON transactions (source_account)`,
	`CREATE INDEX IF NOT EXISTS transactions_target_idx ON transactions (target_account)`,
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, tx models.Transaction) error {
	_, err := txctx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO transactions (id, kind, source_account, target_account, amount, initiated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, tx.ID, string(tx.Kind), tx.SourceAccount, tx.TargetAccount, tx.Amount.StringFixed(2), tx.InitiatedAt)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByAccount(ctx context.Context, accountNumber string) ([]models.Transaction, error) {
	rows, err := txctx.Conn(ctx, s.db).QueryContext(ctx, `
		SELECT id, kind, source_account, target_account, amount, initiated_at
		FROM transactions
		WHERE source_account = $1 OR target_account = $1
		ORDER BY initiated_at ASC
	`, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var (
			tx     models.Transaction
			kind   string
			amount string
		)
		if err := rows.Scan(&tx.ID, &kind, &tx.SourceAccount, &tx.TargetAccount, &amount, &tx.InitiatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Kind = models.Kind(kind)
		if tx.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", amount, err)
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}
