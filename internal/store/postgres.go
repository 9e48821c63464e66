package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"github.com/vault-x/vaultx/internal/store/migrations"
)

// NewPostgresPool configures and returns a PostgreSQL connection pool.
func NewPostgresPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is required")
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return pool, nil
}

// RunMigrations applies the embedded goose migrations over a short-lived
// database/sql connection, since goose does not speak pgxpool.
func RunMigrations(ctx context.Context, url string) error {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("open postgres for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// PostgresStore persists users and transactions in PostgreSQL.
type PostgresStore struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres builds a Postgres-backed store.
func NewPostgres(db *pgxpool.Pool, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// GetUser fetches a user record by normalized username.
func (s *PostgresStore) GetUser(ctx context.Context, username string) (UserRecord, error) {
	row := s.db.QueryRow(ctx, `SELECT username, salt, password_hash, balance::text
        FROM users WHERE username = $1`, username)

	var record UserRecord
	var balance string
	if err := row.Scan(&record.Username, &record.Salt, &record.PasswordHash, &balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrNotFound
		}
		return UserRecord{}, err
	}

	amount, err := decimal.NewFromString(balance)
	if err != nil {
		// Corrupt balance column: surface the record as absent rather than
		// crashing the caller.
		s.logger.Error("corrupt balance, treating user as absent", "username", username, "error", err)
		return UserRecord{}, ErrNotFound
	}
	record.Balance = amount
	return record, nil
}

// PutUser upserts a user record keyed by username.
func (s *PostgresStore) PutUser(ctx context.Context, record UserRecord) error {
	_, err := s.db.Exec(ctx, `INSERT INTO users (username, salt, password_hash, balance)
        VALUES ($1, $2, $3, $4::numeric)
        ON CONFLICT (username) DO UPDATE
        SET salt = EXCLUDED.salt, password_hash = EXCLUDED.password_hash, balance = EXCLUDED.balance`,
		record.Username, record.Salt, record.PasswordHash, record.Balance.StringFixed(2))
	return err
}

// AppendTransaction inserts a ledger entry; insertion order is the display order.
func (s *PostgresStore) AppendTransaction(ctx context.Context, username string, at time.Time, action string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO transactions (username, created_at, action)
        VALUES ($1, $2, $3)`, username, at.UTC(), action)
	return err
}

// ListTransactions returns the user's ledger entries ordered by insertion sequence.
func (s *PostgresStore) ListTransactions(ctx context.Context, username string) ([]TransactionRecord, error) {
	rows, err := s.db.Query(ctx, `SELECT created_at, action FROM transactions
        WHERE username = $1 ORDER BY id ASC`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []TransactionRecord
	for rows.Next() {
		var record TransactionRecord
		if err := rows.Scan(&record.Timestamp, &record.Action); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
