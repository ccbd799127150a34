package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jsquie/eighty-six/internal/model"

	"github.com/redis/go-redis/v9"
)

// SessionRedisKeyPrefix is the Redis key prefix for session records.
const SessionRedisKeyPrefix = "eightysix:session:"

// RedisStore is a Redis-backed implementation of Store, for deployments
// running more than one board instance.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis session store over an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	log.Printf("[RedisStore] Initialized with prefix: %s", SessionRedisKeyPrefix)
	return &RedisStore{client: client}
}

func redisKey(id string) string {
	return SessionRedisKeyPrefix + id
}

// Get retrieves a session by id.
func (s *RedisStore) Get(ctx context.Context, id string) (*model.Session, error) {
	jsonData, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var sess model.Session
	if err := json.Unmarshal(jsonData, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse session data: %w", err)
	}

	return &sess, nil
}

// Put stores a session with the given TTL.
func (s *RedisStore) Put(ctx context.Context, sess *model.Session, ttl time.Duration) error {
	jsonData, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.ID), jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session by id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, redisKey(id)).Err()
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements Store
var _ Store = (*RedisStore)(nil)
