package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Invalidator is the narrow surface the lifecycle service needs: after a
// successful status write, cached read views of the assignment and of the
// owning customer's portal must be dropped so subsequent reads see the
// latest known write.
type Invalidator interface {
	InvalidateAssignmentViews(ctx context.Context, assignmentID, customerID string)
}

// ViewCache stores serialized read views in Redis with a short TTL.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewViewCache builds a cache around an existing Redis client. A nil client
// yields a cache that misses on every read and ignores writes.
func NewViewCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ViewCache {
	return &ViewCache{client: client, ttl: ttl, logger: logger}
}

// AssignmentKey names the cached detail view of one assignment.
func AssignmentKey(assignmentID string) string {
	return "view:assignment:" + assignmentID
}

// PortalKey names the cached portal view of one customer.
func PortalKey(customerID string) string {
	return "view:portal:" + customerID
}

// GetJSON loads a cached view into v. The boolean reports a cache hit.
func (c *ViewCache) GetJSON(ctx context.Context, key string, v any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores a view. Failures are logged, never surfaced: the cache is
// an optimization, not a source of truth.
func (c *ViewCache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("view cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("view cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops cached views.
func (c *ViewCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("view cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateAssignmentViews implements Invalidator.
func (c *ViewCache) InvalidateAssignmentViews(ctx context.Context, assignmentID, customerID string) {
	c.Invalidate(ctx, AssignmentKey(assignmentID), PortalKey(customerID))
}
