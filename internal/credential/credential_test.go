package credential

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vault-x/vaultx/internal/store"
)

func TestCreateRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"empty username", "", "secret1", ErrInvalidUsername},
		{"whitespace username", "   ", "secret1", ErrInvalidUsername},
		{"delimiter in username", "al|ex", "secret1", ErrInvalidUsername},
		{"delimiter with valid password", "a|b", "perfectly-fine-password", ErrInvalidUsername},
		{"five char password", "alex", "12345", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(store.NewMemory())
			err := s.Create(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateSixCharPasswordSucceeds(t *testing.T) {
	s := New(store.NewMemory())
	require.NoError(t, s.Create(context.Background(), "alex", "123456"))
}

func TestCreateDuplicateUsernameCaseInsensitive(t *testing.T) {
	s := New(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "Alex", "secret1"))
	assert.ErrorIs(t, s.Create(ctx, "ALEX", "other-secret"), ErrUsernameTaken)
	assert.ErrorIs(t, s.Create(ctx, "alex", "other-secret"), ErrUsernameTaken)
}

func TestCreateStoresSaltedDigest(t *testing.T) {
	records := store.NewMemory()
	s := New(records)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "alex", "secret1"))

	record, err := records.GetUser(ctx, "alex")
	require.NoError(t, err)
	assert.Len(t, record.Salt, saltSize)
	assert.NotEqual(t, record.Salt, record.PasswordHash)
	assert.NotEqual(t, []byte("secret1"), record.PasswordHash)
	assert.True(t, record.Balance.IsZero())
}

func TestSaltIsUniquePerUser(t *testing.T) {
	records := store.NewMemory()
	s := New(records)
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "alex", "secret1"))
	require.NoError(t, s.Create(ctx, "sam", "secret1"))

	alex, err := records.GetUser(ctx, "alex")
	require.NoError(t, err)
	sam, err := records.GetUser(ctx, "sam")
	require.NoError(t, err)

	assert.False(t, bytes.Equal(alex.Salt, sam.Salt))
	// same password, different salt, different digest
	assert.False(t, bytes.Equal(alex.PasswordHash, sam.PasswordHash))
}

func TestVerify(t *testing.T) {
	s := New(store.NewMemory())
	ctx := context.Background()

	require.NoError(t, s.Create(ctx, "alex", "secret1"))

	record, err := s.Verify(ctx, "alex", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alex", record.Username)

	// username lookup is case-insensitive
	_, err = s.Verify(ctx, "  ALEX ", "secret1")
	assert.NoError(t, err)

	_, err = s.Verify(ctx, "alex", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = s.Verify(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
