package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "sess:%s"

// RedisStore keeps sessions in Redis so they survive restarts and are
// shared across replicas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a session store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(sid string) string {
	return fmt.Sprintf(redisKeyPrefix, sid)
}

// Create writes the sid -> userID mapping with TTL.
func (s *RedisStore) Create(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(sid), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// Get resolves the session id to a user id.
func (s *RedisStore) Get(ctx context.Context, sid string) (uint, bool, error) {
	val, err := s.client.Get(ctx, redisKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt session value %q: %w", val, err)
	}
	return uint(userID), true, nil
}

// Destroy removes the session mapping.
func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, redisKey(sid)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
