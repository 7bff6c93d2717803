package daystatus_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-truck-business/internal/daystatus"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "attendance:summary:2025-01", daystatus.MonthKey(2025, 1))
}

func TestMonthCache_Get(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := daystatus.NewMonthCache(rdb, time.Minute)

	mock.ExpectGet("attendance:summary:2025-01").SetVal(`{"days":31}`)
	var got map[string]int
	assert.True(t, cache.Get(ctx, 2025, 1, &got))
	assert.Equal(t, 31, got["days"])

	mock.ExpectGet("attendance:summary:2025-02").RedisNil()
	assert.False(t, cache.Get(ctx, 2025, 2, &got))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthCache_InvalidateDedupesMonths(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := daystatus.NewMonthCache(rdb, time.Minute)

	mock.ExpectIncr("attendance:summary-version:2025-01").SetVal(1)
	mock.ExpectIncr("attendance:summary-version:2025-02").SetVal(1)
	mock.ExpectDel("attendance:summary:2025-01", "attendance:summary:2025-02").SetVal(2)
	cache.Invalidate(ctx, jan10, jan10.AddDate(0, 0, 5), jan10.AddDate(0, 1, 0))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthCache_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	rdb, mock := redismock.NewClientMock()
	cache := daystatus.NewMonthCache(rdb, time.Minute)

	mock.ExpectIncr(daystatus.AllVersionKey).SetVal(4)
	mock.ExpectScan(0, "attendance:summary:*", 100).SetVal([]string{"attendance:summary:2025-01"}, 7)
	mock.ExpectDel("attendance:summary:2025-01").SetVal(1)
	mock.ExpectScan(7, "attendance:summary:*", 100).SetVal([]string{}, 0)
	cache.InvalidateAll(ctx)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMonthCache_NilIsNoop(t *testing.T) {
	var cache *daystatus.MonthCache
	var dest map[string]int
	assert.False(t, cache.Get(context.Background(), 2025, 1, &dest))
	assert.Equal(t, daystatus.Stamp{Month: "0", All: "0"}, cache.Stamp(context.Background(), 2025, 1))
	cache.Set(context.Background(), 2025, 1, daystatus.Stamp{}, dest)
	cache.Invalidate(context.Background(), jan10)
	cache.InvalidateAll(context.Background())
}

func TestMonthCache_RedisErrorIsMiss(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cache := daystatus.NewMonthCache(rdb, time.Minute)

	mock.ExpectGet("attendance:summary:2025-01").SetErr(errors.New("connection reset"))
	var got map[string]int
	assert.False(t, cache.Get(context.Background(), 2025, 1, &got))
}
