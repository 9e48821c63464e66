// Package credential manages per-user salted password material: creation at
// signup and verification at login.
package credential

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/argon2"

	"github.com/vault-x/vaultx/internal/store"
)

var (
	ErrUsernameTaken   = errors.New("username already exists")
	ErrInvalidUsername = errors.New("username is empty or contains reserved characters")
	ErrWeakPassword    = errors.New("password must be at least 6 characters")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("incorrect password")
)

const (
	saltSize          = 16
	minPasswordLength = 6

	// argon2id parameters
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// Normalize canonicalizes a username for storage and lookup.
func Normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Store creates and verifies user credentials against the persistence port.
type Store struct {
	records store.Store
}

// New builds a credential store over the given persistence backend.
func New(records store.Store) *Store {
	return &Store{records: records}
}

// Create provisions a new user with a fresh random salt, a salted password
// digest and a zero balance.
func (s *Store) Create(ctx context.Context, username, password string) error {
	username = Normalize(username)
	if username == "" || strings.Contains(username, "|") {
		return ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	if _, err := s.records.GetUser(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	record := store.UserRecord{
		Username:     username,
		Salt:         salt,
		PasswordHash: hash(password, salt),
		Balance:      decimal.Zero,
	}
	if err := s.records.PutUser(ctx, record); err != nil {
		return fmt.Errorf("persist user: %w", err)
	}
	return nil
}

// Verify recomputes the digest over the stored salt and compares it in
// constant time against the stored hash.
func (s *Store) Verify(ctx context.Context, username, password string) (store.UserRecord, error) {
	username = Normalize(username)

	record, err := s.records.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.UserRecord{}, ErrUserNotFound
		}
		return store.UserRecord{}, fmt.Errorf("load user: %w", err)
	}

	if subtle.ConstantTimeCompare(record.PasswordHash, hash(password, record.Salt)) != 1 {
		return store.UserRecord{}, ErrWrongPassword
	}
	return record, nil
}

func hash(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
