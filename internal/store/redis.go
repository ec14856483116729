package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	internalErrors "github.com/akylbek/payment-system/payment-broker/internal/errors"
	"github.com/akylbek/payment-system/payment-broker/internal/models"
)

const keyPrefix = "payment:"

// RedisStore keeps one record per session under payment:{id} with the TTL
// enforced natively by Redis, so expired sessions simply stop existing.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, details models.SettlementDetails) (string, error) {
	id := uuid.New().String()

	data, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("failed to marshal settlement details: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store payment session: %w", err)
	}

	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.PaymentSession, error) {
	data, err := s.client.Get(ctx, keyPrefix+id).Result()
	if err == redis.Nil {
		return nil, internalErrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment session: %w", err)
	}

	var details models.SettlementDetails
	if err := json.Unmarshal([]byte(data), &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settlement details: %w", err)
	}

	// Redis owns the expiry; reconstruct the timestamps from the
	// remaining TTL for callers that want them.
	expiresAt := time.Now().Add(s.ttl)
	if remaining, err := s.client.PTTL(ctx, keyPrefix+id).Result(); err == nil && remaining > 0 {
		expiresAt = time.Now().Add(remaining)
	}

	return &models.PaymentSession{
		ID:        id,
		Details:   details,
		CreatedAt: expiresAt.Add(-s.ttl),
		ExpiresAt: expiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to delete payment session: %w", err)
	}
	return removed > 0, nil
}
