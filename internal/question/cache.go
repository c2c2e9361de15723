package question

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultBankTTL = 10 * time.Minute

// BankCache provides Redis-backed caching of per-exam-type question ID pools,
// keeping attempt creation off the DB for the common case.
type BankCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBankCache builds a cache; ttl <= 0 selects the default.
func NewBankCache(client *redis.Client, ttl time.Duration) *BankCache {
	if ttl <= 0 {
		ttl = defaultBankTTL
	}
	return &BankCache{client: client, ttl: ttl}
}

func bankKey(examType string) string {
	return fmt.Sprintf("qbank:%s", examType)
}

// GetIDs returns the cached pool, or (nil, nil) on a miss.
func (c *BankCache) GetIDs(ctx context.Context, examType string) ([]string, error) {
	raw, err := c.client.Get(ctx, bankKey(examType)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode cached bank: %w", err)
	}
	return ids, nil
}

// SetIDs stores the pool with the configured TTL.
func (c *BankCache) SetIDs(ctx context.Context, examType string, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bankKey(examType), raw, c.ttl).Err()
}

// Invalidate drops the cached pool, e.g. after reseeding.
func (c *BankCache) Invalidate(ctx context.Context, examType string) error {
	return c.client.Del(ctx, bankKey(examType)).Err()
}
