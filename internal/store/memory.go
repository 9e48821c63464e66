package store

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu           sync.RWMutex
	users        map[string]UserRecord
	transactions map[string][]TransactionRecord
}

// NewMemory constructs an in-memory store used by unit tests and as the
// development fallback when no backend is configured.
func NewMemory() Store {
	return &memoryStore{
		users:        make(map[string]UserRecord),
		transactions: make(map[string][]TransactionRecord),
	}
}

func (s *memoryStore) GetUser(_ context.Context, username string) (UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.users[username]
	if !ok {
		return UserRecord{}, ErrNotFound
	}
	return record, nil
}

func (s *memoryStore) PutUser(_ context.Context, record UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[record.Username] = record
	return nil
}

func (s *memoryStore) AppendTransaction(_ context.Context, username string, at time.Time, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[username] = append(s.transactions[username], TransactionRecord{Timestamp: at, Action: action})
	return nil
}

func (s *memoryStore) ListTransactions(_ context.Context, username string) ([]TransactionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.transactions[username]
	out := make([]TransactionRecord, len(records))
	copy(out, records)
	return out, nil
}
