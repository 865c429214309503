package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"bankapi/internal/account/models"
	"bankapi/pkg/platform/sentinel"
	txctx "bankapi/pkg/platform/tx"
)

const uniqueViolation = "23505"

// Schema creates the accounts table when missing.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id              UUID PRIMARY KEY,
		sort_code       TEXT NOT NULL,
		account_number  TEXT NOT NULL UNIQUE,
		bank_name       TEXT NOT NULL,
		owner_name      TEXT NOT NULL,
		current_balance NUMERIC(14, 2) NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL
	)`,
}

// PostgresStore persists accounts in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed account store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, account *models.Account) error {
	_, err := txctx.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO accounts (id, sort_code, account_number, bank_name, owner_name, current_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, account.ID, account.SortCode, account.AccountNumber, account.BankName, account.OwnerName,
		account.CurrentBalance.StringFixed(2), account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindBySortCodeAndNumber(ctx context.Context, sortCode, accountNumber string) (*models.Account, error) {
	row := txctx.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, sort_code, account_number, bank_name, owner_name, current_balance, created_at
		FROM accounts
		WHERE sort_code = $1 AND account_number = $2
	`, sortCode, accountNumber)
	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("find account by sort code and number: %w", err)
	}
	return account, nil
}

func (s *PostgresStore) FindByNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	row := txctx.Conn(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, sort_code, account_number, bank_name, owner_name, current_balance, created_at
		FROM accounts
		WHERE account_number = $1
	`, accountNumber)
	account, err := scanAccount(row)
	if err != nil {
		return nil, fmt.Errorf("find account by number: %w", err)
	}
	return account, nil
}

func (s *PostgresStore) UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	res, err := txctx.Conn(ctx, s.db).ExecContext(ctx, `UPDATE accounts SET current_balance = $2 WHERE id = $1`, id, balance.StringFixed(2))
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func scanAccount(row *sql.Row) (*models.Account, error) {
	var (
		account models.Account
		balance string
	)
	err := row.Scan(&account.ID, &account.SortCode, &account.AccountNumber,
		&account.BankName, &account.OwnerName, &balance, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	account.CurrentBalance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", balance, err)
	}
	return &account, nil
}
