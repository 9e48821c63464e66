// Package account implements the per-user ledger: a balance plus an
// append-only transaction history.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vault-x/vaultx/internal/store"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// TimestampLayout is the display format shared by every history surface.
const TimestampLayout = "2006-01-02 15:04"

// Service exposes ledger operations over the persistence port. Every mutation
// persists the new balance before returning, so a successful response is never
// lost to a crash.
type Service struct {
	records store.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewService builds an account service instance.
func NewService(records store.Store, logger *slog.Logger) *Service {
	return &Service{records: records, logger: logger, now: time.Now}
}

// Deposit increases the balance by amount and appends a ledger entry.
func (s *Service) Deposit(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}

	record.Balance = record.Balance.Add(amount)
	if err := s.records.PutUser(ctx, record); err != nil {
		return decimal.Zero, fmt.Errorf("persist balance: %w", err)
	}
	s.append(ctx, username, "Deposited: $"+Format(amount))

	return record.Balance, nil
}

// Withdraw decreases the balance by amount. Withdrawing the exact balance
// succeeds and leaves it at zero.
func (s *Service) Withdraw(ctx context.Context, username string, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.GreaterThan(record.Balance) {
		return decimal.Zero, ErrInsufficientFunds
	}

	record.Balance = record.Balance.Sub(amount)
	if err := s.records.PutUser(ctx, record); err != nil {
		return decimal.Zero, fmt.Errorf("persist balance: %w", err)
	}
	s.append(ctx, username, "Withdrawn: $"+Format(amount))

	return record.Balance, nil
}

// Balance is a pure read with no ledger side effect.
func (s *Service) Balance(ctx context.Context, username string) (decimal.Decimal, error) {
	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}
	return record.Balance, nil
}

// CheckBalance reads the balance and records the inspection itself, matching
// the interactive surface where every balance check is loggable.
func (s *Service) CheckBalance(ctx context.Context, username string) (decimal.Decimal, error) {
	balance, err := s.Balance(ctx, username)
	if err != nil {
		return decimal.Zero, err
	}
	s.append(ctx, username, "Checked balance: $"+Format(balance))
	return balance, nil
}

// History returns the user's transactions in insertion order.
func (s *Service) History(ctx context.Context, username string) ([]store.TransactionRecord, error) {
	return s.records.ListTransactions(ctx, username)
}

func (s *Service) append(ctx context.Context, username, action string) {
	// The balance write has already landed; a failed history append must not
	// fail the operation after the fact.
	if err := s.records.AppendTransaction(ctx, username, s.now(), action); err != nil {
		s.logger.Error("append transaction", "username", username, "action", action, "error", err)
	}
}

// Format renders an amount with two decimals for display.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRecord renders one history line the way every surface displays it.
func FormatRecord(record store.TransactionRecord) string {
	return "[" + record.Timestamp.Format(TimestampLayout) + "] " + record.Action
}
