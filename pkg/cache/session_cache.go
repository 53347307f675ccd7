package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSessionCacheTTL applies when NewSessionCache is given a zero TTL.
	DefaultSessionCacheTTL = time.Hour

	sessionCacheKeyPrefix = "restock_session"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CachedItem is one line of a cached restock session.
type CachedItem struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	SupplierID    string `json:"supplier_id"`
	SupplierName  string `json:"supplier_name"`
	SupplierEmail string `json:"supplier_email"`
	Notes         string `json:"notes,omitempty"`
}

// CachedSession is the read model of a restock session stored in Redis as JSON.
type CachedSession struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Name      string       `json:"name"`
	Status    string       `json:"status"`
	Items     []CachedItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// SessionCache stores restock sessions keyed by owner so one manager can never
// read another's entry. Key format: "restock_session:{userID}:{sessionID}".
type SessionCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewSessionCache returns a SessionCache with the given entry TTL.
func NewSessionCache(r *RedisClient, ttl time.Duration) *SessionCache {
	if ttl <= 0 {
		ttl = DefaultSessionCacheTTL
	}
	return &SessionCache{client: r, ttl: ttl}
}

// Get returns the cached session or ErrCacheMiss.
func (c *SessionCache) Get(ctx context.Context, userID, sessionID string) (*CachedSession, error) {
	raw, err := c.client.Client().Get(ctx, SessionKey(userID, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var s CachedSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &s, nil
}

// Set writes s with the cache TTL, replacing any previous entry.
func (c *SessionCache) Set(ctx context.Context, s *CachedSession) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, SessionKey(s.UserID, s.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached session. Deleting a missing key is not an error.
func (c *SessionCache) Delete(ctx context.Context, userID, sessionID string) error {
	if err := c.client.Client().Del(ctx, SessionKey(userID, sessionID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// SessionKey builds the Redis key for a session.
func SessionKey(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s:%s", sessionCacheKeyPrefix, userID, sessionID)
}
