package daystatus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	MonthKeyPrefix   = "attendance:summary:"
	VersionKeyPrefix = "attendance:summary-version:"
	// AllVersionKey is bumped when every month goes stale at once.
	AllVersionKey = VersionKeyPrefix + "all"
)

func MonthKey(year, month int) string {
	return fmt.Sprintf("%s%04d-%02d", MonthKeyPrefix, year, month)
}

func VersionKey(year, month int) string {
	return fmt.Sprintf("%s%04d-%02d", VersionKeyPrefix, year, month)
}

// Stamp is the invalidation version of a month, read before a grid is built.
// Set drops the grid when either counter moved while the build ran.
type Stamp struct {
	Month string
	All   string
}

// setIfCurrent writes KEYS[1] only when the version keys still hold the
// stamp the caller read.
var setIfCurrent = redis.NewScript(`
local month = redis.call('GET', KEYS[2]) or '0'
local all = redis.call('GET', KEYS[3]) or '0'
if month ~= ARGV[1] or all ~= ARGV[2] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[3], 'PX', ARGV[4])
return 1
`)

// MonthCache stores rendered month grids in Redis. A nil cache or client
// turns every call into a miss or a no-op.
type MonthCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewMonthCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *MonthCache {
	l := zap.L().Named("daystatus.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("daystatus.cache")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MonthCache{rdb: rdb, ttl: ttl, logger: l}
}

func (c *MonthCache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the cached grid into dest and reports whether it was a hit.
func (c *MonthCache) Get(ctx context.Context, year, month int, dest any) bool {
	if !c.enabled() {
		return false
	}
	raw, err := c.rdb.Get(ctx, MonthKey(year, month)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("month cache get failed", zap.String("key", MonthKey(year, month)), zap.Error(err))
		}
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Stamp reads the current versions of a month. Missing counters read as "0".
func (c *MonthCache) Stamp(ctx context.Context, year, month int) Stamp {
	stamp := Stamp{Month: "0", All: "0"}
	if !c.enabled() {
		return stamp
	}
	vals, err := c.rdb.MGet(ctx, VersionKey(year, month), AllVersionKey).Result()
	if err != nil {
		c.logger.Warn("month cache stamp failed", zap.String("key", VersionKey(year, month)), zap.Error(err))
		return stamp
	}
	if v, ok := vals[0].(string); ok {
		stamp.Month = v
	}
	if v, ok := vals[1].(string); ok {
		stamp.All = v
	}
	return stamp
}

// Set stores the grid unless the month was invalidated after stamp was read.
func (c *MonthCache) Set(ctx context.Context, year, month int, stamp Stamp, value any) {
	if !c.enabled() {
		return
	}
	body, err := json.Marshal(value)
	if err != nil {
		return
	}
	keys := []string{MonthKey(year, month), VersionKey(year, month), AllVersionKey}
	stored, err := setIfCurrent.Run(ctx, c.rdb, keys, stamp.Month, stamp.All, string(body), c.ttl.Milliseconds()).Int()
	if err != nil {
		c.logger.Warn("month cache set failed", zap.String("key", keys[0]), zap.Error(err))
		return
	}
	if stored == 0 {
		c.logger.Debug("month cache set skipped, month invalidated during build", zap.String("key", keys[0]))
	}
}

// Invalidate drops the grids of the months the given days fall in.
func (c *MonthCache) Invalidate(ctx context.Context, days ...time.Time) {
	if !c.enabled() || len(days) == 0 {
		return
	}
	keys := make([]string, 0, len(days))
	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		d = d.UTC()
		key := MonthKey(d.Year(), int(d.Month()))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
		if err := c.rdb.Incr(ctx, VersionKey(d.Year(), int(d.Month()))).Err(); err != nil {
			c.logger.Error("month cache version bump failed", zap.String("key", key), zap.Error(err))
		}
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("month cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateAll drops every cached grid, used when the employee list changes.
func (c *MonthCache) InvalidateAll(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, AllVersionKey).Err(); err != nil {
		c.logger.Error("month cache version bump failed", zap.String("key", AllVersionKey), zap.Error(err))
	}
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, MonthKeyPrefix+"*", 100).Result()
		if err != nil {
			c.logger.Error("month cache scan failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				c.logger.Error("month cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
				return
			}
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
