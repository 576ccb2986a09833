package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"staking-eligibility-service/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// CategoryCache implements ports.CategoryCache using Redis. Records are stored
// as JSON under a per-address key; a miss is a nil record, not an error.
type CategoryCache struct {
	client *goredis.Client
	prefix string
}

// NewCategoryCache creates a new Redis-backed category cache.
func NewCategoryCache(client *goredis.Client) *CategoryCache {
	return &CategoryCache{
		client: client,
		prefix: "wallet:category:",
	}
}

// Get retrieves a cached wallet record by address.
// Returns nil, nil if the address is not cached.
func (c *CategoryCache) Get(ctx context.Context, address string) (*domain.WalletRecord, error) {
	val, err := c.client.Get(ctx, c.prefix+address).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis category get: %w", err)
	}

	var rec domain.WalletRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, fmt.Errorf("decoding cached wallet record: %w", err)
	}
	return &rec, nil
}

// Set stores a wallet record with TTL.
func (c *CategoryCache) Set(ctx context.Context, record *domain.WalletRecord, ttl time.Duration) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding wallet record: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+record.Address, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis category set: %w", err)
	}
	return nil
}
