package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "otp:"

type redisStore struct {
	client *redis.Client
}

// NewRedisStore returns a store backed by Redis key TTLs, surviving
// process restarts.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Put(ctx context.Context, email string, entry *Entry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+email, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp entry: %w", err)
	}
	return nil
}

func (s *redisStore) Get(ctx context.Context, email string) (*Entry, error) {
	payload, err := s.client.Get(ctx, keyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get otp entry: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal otp entry: %w", err)
	}
	return &entry, nil
}

func (s *redisStore) Update(ctx context.Context, email string, entry *Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal otp entry: %w", err)
	}

	// KeepTTL preserves the original expiry window.
	set, err := s.client.SetArgs(ctx, keyPrefix+email, payload, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update otp entry: %w", err)
	}
	if set == "" {
		return ErrNotFound
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, keyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete otp entry: %w", err)
	}
	return nil
}
