// Package auth orchestrates signup, login and logout around the credential
// store and the process session.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vault-x/vaultx/internal/credential"
	"github.com/vault-x/vaultx/internal/session"
	"github.com/vault-x/vaultx/internal/store"
)

var (
	ErrEmptyFields      = errors.New("all fields are required")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrInvalidCredentials deliberately covers both unknown-user and
	// wrong-password so login responses cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Service struct {
	creds  *credential.Store
	sess   *session.Session
	logger *slog.Logger
}

func NewService(creds *credential.Store, sess *session.Session, logger *slog.Logger) *Service {
	return &Service{creds: creds, sess: sess, logger: logger}
}

// SignUp validates the signup form and creates the account. The distinct
// sentinel errors let callers present the specific reason.
func (s *Service) SignUp(ctx context.Context, username, password, confirm string) error {
	if credential.Normalize(username) == "" || password == "" || confirm == "" {
		return ErrEmptyFields
	}
	if password != confirm {
		return ErrPasswordMismatch
	}
	if err := s.creds.Create(ctx, username, password); err != nil {
		return err
	}
	s.logger.Info("account created", "username", credential.Normalize(username))
	return nil
}

// LogIn verifies credentials and binds the session to the user. A login while
// another session is active replaces it; all ledger state is persisted
// per-operation, so nothing needs flushing first.
func (s *Service) LogIn(ctx context.Context, username, password string) (store.UserRecord, error) {
	if credential.Normalize(username) == "" || password == "" {
		return store.UserRecord{}, ErrEmptyFields
	}

	record, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, credential.ErrUserNotFound) || errors.Is(err, credential.ErrWrongPassword) {
			s.logger.Info("login rejected", "username", credential.Normalize(username))
			return store.UserRecord{}, ErrInvalidCredentials
		}
		return store.UserRecord{}, fmt.Errorf("verify credentials: %w", err)
	}

	s.sess.Bind(record.Username)
	s.logger.Info("login", "username", record.Username)
	return record, nil
}

// LogOut clears the session. Idempotent: with no active session it is a no-op.
// Ledger state persists per-operation, so there is nothing left to flush here.
func (s *Service) LogOut() {
	if username, ok := s.sess.Current(); ok {
		s.logger.Info("logout", "username", username)
	}
	s.sess.Clear()
}

// Session exposes the session this service guards.
func (s *Service) Session() *session.Session {
	return s.sess
}
