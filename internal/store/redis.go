package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/akarpov/mentor-labs/internal/domain"
	"github.com/redis/go-redis/v9"
)

const redisProfilePrefix = "profile:"

// RedisStore implements Repository using Redis. Snapshots are stored as
// JSON strings under "profile:{userID}" with no expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed repository.
func NewRedis(addr string) (Repository, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: client}, nil
}

// NewRedisWithClient wraps an existing client. Used by tests.
func NewRedisWithClient(client *redis.Client) Repository {
	return &RedisStore{client: client}
}

func redisProfileKey(userID string) string {
	return redisProfilePrefix + userID
}

// Ping verifies backend connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// LoadProfile retrieves a profile snapshot by user ID.
func (s *RedisStore) LoadProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	val, err := s.client.Get(ctx, redisProfileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return nil, fmt.Errorf("decode profile snapshot: %w", err)
	}
	return &profile, nil
}

// SaveProfile creates or replaces the profile snapshot.
func (s *RedisStore) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	snapshot, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile snapshot: %w", err)
	}
	if err := s.client.Set(ctx, redisProfileKey(profile.UserID), snapshot, 0).Err(); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// DeleteProfile removes the profile snapshot.
func (s *RedisStore) DeleteProfile(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, redisProfileKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Close closes the client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
