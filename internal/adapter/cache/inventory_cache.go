package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/srgjo27/seat_hold/internal/core/ports"
)

const DefaultTTL = 2 * time.Second

// CachedInventory keeps a short-lived copy of each event's seat map in redis.
// Any hold, purchase or release drops the copy so the next read goes to the
// inventory. Redis failures degrade to direct reads.
type CachedInventory struct {
	next   ports.InventoryService
	rdb    redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedInventory(next ports.InventoryService, rdb redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedInventory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CachedInventory{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func SeatsKey(eventID string) string {
	return fmt.Sprintf("seats:%s", eventID)
}

func (c *CachedInventory) GetSeats(ctx context.Context, eventID string) (*domain.Snapshot, error) {
	key := SeatsKey(eventID)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var snap domain.Snapshot
		if jerr := json.Unmarshal(raw, &snap); jerr == nil {
			return &snap, nil
		}
		c.logger.Warn("discarding unreadable cached seat map", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("seat map cache read failed", "key", key, "error", err)
	}

	snap, err := c.next.GetSeats(ctx, eventID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return snap, nil
	}

	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("seat map cache write failed", "key", key, "error", err)
	}

	return snap, nil
}

func (c *CachedInventory) Hold(ctx context.Context, eventID string, seats []domain.SeatKey) (*domain.HoldGrant, error) {
	defer c.invalidate(ctx, eventID)
	return c.next.Hold(ctx, eventID, seats)
}

func (c *CachedInventory) Purchase(ctx context.Context, eventID string, seats []domain.SeatKey) ([]domain.Ticket, error) {
	defer c.invalidate(ctx, eventID)
	return c.next.Purchase(ctx, eventID, seats)
}

func (c *CachedInventory) Release(ctx context.Context, eventID string, seats []domain.SeatKey) error {
	defer c.invalidate(ctx, eventID)
	return c.next.Release(ctx, eventID, seats)
}

func (c *CachedInventory) invalidate(ctx context.Context, eventID string) {
	key := SeatsKey(eventID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("seat map cache invalidation failed", "key", key, "error", err)
	}
}
