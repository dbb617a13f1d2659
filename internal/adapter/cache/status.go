package cache

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const statusPrefix = "ledger:status:"

// StatusCache stores fully approved targets in redis. Keys never expire:
// FullyApproved is terminal, and only that state is ever written.
type StatusCache struct {
	rdb *redis.Client
}

func NewStatusCache(rdb *redis.Client) *StatusCache { return &StatusCache{rdb: rdb} }

func statusKey(targetID uint64) string { return statusPrefix + strconv.FormatUint(targetID, 10) }

func (c *StatusCache) IsFullyApproved(ctx context.Context, targetID uint64) (bool, error) {
	v, err := c.rdb.Get(ctx, statusKey(targetID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

func (c *StatusCache) MarkFullyApproved(ctx context.Context, targetID uint64) error {
	return c.rdb.Set(ctx, statusKey(targetID), "1", 0).Err()
}
