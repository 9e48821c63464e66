package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates no user record exists for the requested username.
	ErrNotFound = errors.New("user record not found")
)

// UserRecord is the persisted shape of a user: credentials material plus balance.
// Usernames are stored normalized to lowercase.
type UserRecord struct {
	Username     string
	Salt         []byte
	PasswordHash []byte
	Balance      decimal.Decimal
}

// TransactionRecord is one append-only ledger entry.
type TransactionRecord struct {
	Timestamp time.Time
	Action    string
}

// Store is the persistence port consumed by the credential and account layers.
// Implementations must keep transactions in insertion order.
type Store interface {
	GetUser(ctx context.Context, username string) (UserRecord, error)
	PutUser(ctx context.Context, record UserRecord) error
	AppendTransaction(ctx context.Context, username string, at time.Time, action string) error
	ListTransactions(ctx context.Context, username string) ([]TransactionRecord, error)
}
