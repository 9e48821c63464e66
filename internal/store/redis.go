package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	userKeyPrefix = "vaultx:user:"
	txKeyPrefix   = "vaultx:tx:"
)

// NewRedisClient configures a Redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

// RedisStore keeps each user in a hash and the ledger in a list; RPUSH
// preserves insertion order, which is the ledger's display order.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis builds a Redis-backed store.
func NewRedis(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

type redisTransaction struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"`
}

// GetUser loads a user hash. A missing key or an undecodable balance both
// report the record as absent.
func (s *RedisStore) GetUser(ctx context.Context, username string) (UserRecord, error) {
	fields, err := s.client.HGetAll(ctx, userKeyPrefix+username).Result()
	if err != nil {
		return UserRecord{}, err
	}
	if len(fields) == 0 {
		return UserRecord{}, ErrNotFound
	}

	balance, err := decimal.NewFromString(fields["balance"])
	if err != nil {
		s.logger.Error("corrupt balance, treating user as absent", "username", username, "error", err)
		return UserRecord{}, ErrNotFound
	}

	return UserRecord{
		Username:     username,
		Salt:         []byte(fields["salt"]),
		PasswordHash: []byte(fields["password_hash"]),
		Balance:      balance,
	}, nil
}

// PutUser upserts the user hash.
func (s *RedisStore) PutUser(ctx context.Context, record UserRecord) error {
	return s.client.HSet(ctx, userKeyPrefix+record.Username,
		"salt", record.Salt,
		"password_hash", record.PasswordHash,
		"balance", record.Balance.StringFixed(2),
	).Err()
}

// AppendTransaction pushes a JSON-encoded ledger entry onto the user's list.
func (s *RedisStore) AppendTransaction(ctx context.Context, username string, at time.Time, action string) error {
	payload, err := json.Marshal(redisTransaction{At: at.UTC(), Action: action})
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, txKeyPrefix+username, payload).Err()
}

// ListTransactions reads the full ledger list in insertion order. Entries that
// no longer decode are skipped, not fatal.
func (s *RedisStore) ListTransactions(ctx context.Context, username string) ([]TransactionRecord, error) {
	raw, err := s.client.LRange(ctx, txKeyPrefix+username, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]TransactionRecord, 0, len(raw))
	for _, item := range raw {
		var tx redisTransaction
		if err := json.Unmarshal([]byte(item), &tx); err != nil {
			s.logger.Warn("skipping corrupt transaction entry", "username", username, "error", err)
			continue
		}
		records = append(records, TransactionRecord{Timestamp: tx.At, Action: tx.Action})
	}
	return records, nil
}
