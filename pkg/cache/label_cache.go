package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// LabelCacheTTL is the time-to-live for cached labels.
	LabelCacheTTL = 24 * time.Hour

	labelCacheKeyPrefix = "label"
)

// CachedLabel is the read model of the latest label of an item, stored as a
// Redis hash. Nutrients and allergens are kept as their JSON encodings.
type CachedLabel struct {
	ID           uuid.UUID       `json:"id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Nutrients    json.RawMessage `json:"nutrients"`
	Allergens    json.RawMessage `json:"allergens"`
	Declaration  string          `json:"declaration"`
	LeafCount    int             `json:"leaf_count"`
	SkippedCount int             `json:"skipped_count"`
	ComputedAt   time.Time       `json:"computed_at"`
}

// LabelCache stores the latest label per item code.
// Key format: "{service}:label:{itemCode}"
type LabelCache struct {
	client *RedisClient
}

// NewLabelCache creates a new LabelCache backed by the given RedisClient.
func NewLabelCache(r *RedisClient) *LabelCache {
	return &LabelCache{client: r}
}

// Get retrieves the cached label of an item.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *LabelCache) Get(ctx context.Context, itemCode string) (*CachedLabel, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(itemCode)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	leafCount, err := strconv.Atoi(vals["leaf_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse leaf_count: %w", err)
	}
	skippedCount, err := strconv.Atoi(vals["skipped_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse skipped_count: %w", err)
	}
	computedAt, err := time.Parse(time.RFC3339Nano, vals["computed_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse computed_at: %w", err)
	}

	return &CachedLabel{
		ID:           id,
		ItemCode:     vals["item_code"],
		ItemName:     vals["item_name"],
		Nutrients:    json.RawMessage(vals["nutrients"]),
		Allergens:    json.RawMessage(vals["allergens"]),
		Declaration:  vals["declaration"],
		LeafCount:    leafCount,
		SkippedCount: skippedCount,
		ComputedAt:   computedAt,
	}, nil
}

// Set writes the label as a Redis hash with LabelCacheTTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *LabelCache) Set(ctx context.Context, label *CachedLabel) error {
	key := c.key(label.ItemCode)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key,
		"id", label.ID.String(),
		"item_code", label.ItemCode,
		"item_name", label.ItemName,
		"nutrients", string(label.Nutrients),
		"allergens", string(label.Allergens),
		"declaration", label.Declaration,
		"leaf_count", strconv.Itoa(label.LeafCount),
		"skipped_count", strconv.Itoa(label.SkippedCount),
		"computed_at", label.ComputedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, LabelCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes the cached label of an item.
func (c *LabelCache) Delete(ctx context.Context, itemCode string) error {
	if err := c.client.Client().Del(ctx, c.key(itemCode)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *LabelCache) key(itemCode string) string {
	return c.client.Key(labelCacheKeyPrefix, itemCode)
}
