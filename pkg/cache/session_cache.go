package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionCacheKeyPrefix = "sap:session"

// SAPSession is a Service Layer session id and the time it stops being valid.
type SAPSession struct {
	ID        string
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *SAPSession) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// SessionCache shares one SAP session between processes logged in as the
// same user. Entries expire together with the session.
// Key format: "{service}:sap:session:{companyDB}:{username}"
type SessionCache struct {
	client *RedisClient
	key    string
}

// NewSessionCache creates a SessionCache for the given company database and user.
func NewSessionCache(r *RedisClient, companyDB, username string) *SessionCache {
	return &SessionCache{
		client: r,
		key:    r.Key(sessionCacheKeyPrefix, companyDB, username),
	}
}

// Get returns the stored session, or nil when none is stored.
func (c *SessionCache) Get(ctx context.Context) (*SAPSession, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, fmt.Errorf("session cache parse expires_at: %w", err)
	}
	return &SAPSession{ID: vals["id"], ExpiresAt: expiresAt}, nil
}

// Set stores the session until it expires.
func (c *SessionCache) Set(ctx context.Context, s *SAPSession) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, c.key,
		"id", s.ID,
		"expires_at", s.ExpiresAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, c.key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session cache set: %w", err)
	}
	return nil
}

// Delete removes the stored session.
func (c *SessionCache) Delete(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("session cache delete: %w", err)
	}
	return nil
}
