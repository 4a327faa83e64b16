// Package cache provides the shared availability cache.  One instance is
// built at startup and handed to the reservation service; entries live in
// Redis so they survive restarts and stay visible to every worker.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/campsite-reservation/internal/config"
)

// AvailabilityCache maps an availability window (startDate, endDate) to
// the list of free days inside it.  Entries expire after a fixed idle
// period and the total entry count is bounded with least-recently-used
// eviction; both are pure resource limits.  Correctness is maintained
// separately through InvalidateWindow after every successful mutation.
//
// Every operation is best effort: on any Redis failure the cache reports
// a miss or skips the write, and the service recomputes from the store.
type AvailabilityCache struct {
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int64
	prefix     string
}

// New builds an AvailabilityCache on top of the given Redis client.
func New(rdb *redis.Client, cfg config.CacheConfig) *AvailabilityCache {
	if rdb == nil {
		panic("nil redis client passed to cache.New")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 120 * time.Second
	}
	maxEntries := int64(cfg.MaxEntries)
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "availability"
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl, maxEntries: maxEntries, prefix: prefix}
}

// Get returns the cached free-day list for the window, refreshing the
// entry's idle timer and recency on a hit.  The second return is false on
// a miss or on any Redis failure.
func (c *AvailabilityCache) Get(ctx context.Context, start, end time.Time) ([]time.Time, bool) {
	member := windowMember(start, end)
	data, err := c.rdb.Get(ctx, c.keyFor(member)).Bytes()
	if errors.Is(err, redis.Nil) {
		// The value expired; drop the dangling index member.
		_ = c.rdb.ZRem(ctx, c.indexKey(), member).Err()
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	var days []time.Time
	if err := json.Unmarshal(data, &days); err != nil {
		return nil, false
	}
	pipe := c.rdb.Pipeline()
	pipe.Expire(ctx, c.keyFor(member), c.ttl)
	pipe.ZAdd(ctx, c.indexKey(), redis.Z{Score: float64(time.Now().UnixMilli()), Member: member})
	_, _ = pipe.Exec(ctx)
	return days, true
}

// Set stores the free-day list for the window and trims the cache back to
// its maximum entry count, evicting the least recently used windows first.
func (c *AvailabilityCache) Set(ctx context.Context, start, end time.Time, days []time.Time) {
	data, err := json.Marshal(days)
	if err != nil {
		return
	}
	member := windowMember(start, end)
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, c.keyFor(member), data, c.ttl)
	pipe.ZAdd(ctx, c.indexKey(), redis.Z{Score: float64(time.Now().UnixMilli()), Member: member})
	if _, err := pipe.Exec(ctx); err != nil {
		return
	}
	c.trim(ctx)
}

// InvalidateWindow evicts every cached window whose start or end day
// falls strictly between the mutated reservation's start and end.  The
// heuristic is conservative: a window overlapping the mutation without
// containing one of its boundary points can stay stale until the idle TTL
// expires it, which bounds the imprecision without ever affecting a
// booking decision.
func (c *AvailabilityCache) InvalidateWindow(ctx context.Context, start, end time.Time) {
	members, err := c.rdb.ZRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return
	}
	var stale []string
	for _, member := range members {
		winStart, winEnd, ok := parseMember(member)
		if !ok {
			stale = append(stale, member)
			continue
		}
		if strictlyBetween(winStart, start, end) || strictlyBetween(winEnd, start, end) {
			stale = append(stale, member)
		}
	}
	if len(stale) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for _, member := range stale {
		pipe.Del(ctx, c.keyFor(member))
	}
	pipe.ZRem(ctx, c.indexKey(), toAny(stale)...)
	_, _ = pipe.Exec(ctx)
}

// trim drops the oldest-accessed windows once the index exceeds the
// maximum entry count.
func (c *AvailabilityCache) trim(ctx context.Context) {
	n, err := c.rdb.ZCard(ctx, c.indexKey()).Result()
	if err != nil || n <= c.maxEntries {
		return
	}
	oldest, err := c.rdb.ZRange(ctx, c.indexKey(), 0, n-c.maxEntries-1).Result()
	if err != nil || len(oldest) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for _, member := range oldest {
		pipe.Del(ctx, c.keyFor(member))
	}
	pipe.ZRem(ctx, c.indexKey(), toAny(oldest)...)
	_, _ = pipe.Exec(ctx)
}

func (c *AvailabilityCache) keyFor(member string) string { return c.prefix + ":" + member }

func (c *AvailabilityCache) indexKey() string { return c.prefix + ":index" }

// windowMember encodes a window as "startUnix:endUnix".  Windows are
// noon-aligned before they reach the cache, so second precision is exact.
func windowMember(start, end time.Time) string {
	return fmt.Sprintf("%d:%d", start.Unix(), end.Unix())
}

func parseMember(member string) (start, end time.Time, ok bool) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false
	}
	s, err1 := strconv.ParseInt(parts[0], 10, 64)
	e, err2 := strconv.ParseInt(parts[1], 10, 64)
	if err1 != nil || err2 != nil {
		return time.Time{}, time.Time{}, false
	}
	return time.Unix(s, 0).UTC(), time.Unix(e, 0).UTC(), true
}

func strictlyBetween(t, start, end time.Time) bool {
	return t.After(start) && t.Before(end)
}

func toAny(members []string) []interface{} {
	out := make([]interface{}, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}
