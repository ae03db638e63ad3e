package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"hookgenie-api/internal/domain/entity"
)

// 默认使用进程内 miniredis；设置 HOOKGENIE_TEST_REDIS_ADDR 时连接真实 Redis
func newTestClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("HOOKGENIE_TEST_REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis not reachable: %v", err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClientFromRedis(rdb)
}

func TestKeys(t *testing.T) {
	if got := UsageKey("s1"); got != "hookgenie-generations:s1" {
		t.Errorf("UsageKey = %q", got)
	}
	if got := HistoryKey("s1"); got != "hookgenie-history:s1" {
		t.Errorf("HistoryKey = %q", got)
	}
}

func TestUsageCounterRepository(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	repo := NewUsageCounterRepository(c)
	session := "test-" + uuid.NewString()
	t.Cleanup(func() { c.Redis().Del(ctx, UsageKey(session)) })

	got, err := repo.Get(ctx, session)
	if err != nil || got != nil {
		t.Fatalf("Get() on empty = %v, %v", got, err)
	}

	for i := 1; i <= 2; i++ {
		n, ok, err := repo.IncrementIfBelow(ctx, session, "2026-10-17", 2)
		if err != nil || !ok || n != i {
			t.Fatalf("IncrementIfBelow #%d = %d, %v, %v", i, n, ok, err)
		}
	}
	if _, ok, _ := repo.IncrementIfBelow(ctx, session, "2026-10-17", 2); ok {
		t.Fatal("expected limit reached")
	}

	// 日期变化后重新计数
	n, ok, err := repo.IncrementIfBelow(ctx, session, "2026-10-18", 2)
	if err != nil || !ok || n != 1 {
		t.Fatalf("after rollover = %d, %v, %v", n, ok, err)
	}
}

func TestUsageCounterIgnoresGarbageCount(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	repo := NewUsageCounterRepository(c)
	session := "test-" + uuid.NewString()
	t.Cleanup(func() { c.Redis().Del(ctx, UsageKey(session)) })

	c.Redis().HSet(ctx, UsageKey(session), "date", "2026-10-17", "count", "abc")

	n, ok, err := repo.IncrementIfBelow(ctx, session, "2026-10-17", 2)
	if err != nil || !ok || n != 1 {
		t.Fatalf("IncrementIfBelow on garbage = %d, %v, %v", n, ok, err)
	}
	got, err := repo.Get(ctx, session)
	if err != nil || got == nil || got.Count != 1 || got.Date != "2026-10-17" {
		t.Fatalf("Get() = %+v, %v", got, err)
	}
	if ttl := c.Redis().TTL(ctx, UsageKey(session)).Val(); ttl <= 0 {
		t.Errorf("expected expiry on usage key, got %v", ttl)
	}
}

func TestHistoryRepository(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	repo := NewHistoryRepository(c)
	session := "test-" + uuid.NewString()
	t.Cleanup(func() { c.Redis().Del(ctx, HistoryKey(session)) })

	ids := make([]string, 4)
	for i := range ids {
		ids[i] = uuid.NewString()
		if err := repo.Prepend(ctx, session, &entity.HistoryEntry{ID: ids[i], Timestamp: time.Now(), Script: "s"}, 3); err != nil {
			t.Fatalf("Prepend() error = %v", err)
		}
	}
	// 无法解析的脏数据应被忽略
	c.Redis().RPush(ctx, HistoryKey(session), "not json")

	list, err := repo.List(ctx, session, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].ID != ids[3] || list[2].ID != ids[1] {
		t.Fatalf("unexpected list: %+v", list)
	}

	ok, err := repo.Delete(ctx, session, ids[2])
	if err != nil || !ok {
		t.Fatalf("Delete() = %v, %v", ok, err)
	}
	if err := repo.Clear(ctx, session); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	list, _ = repo.List(ctx, session, 0)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
}

func TestRateLimiter(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	l := NewRateLimiter(c)
	key := RateLimitKey(uuid.NewString(), "generate")
	t.Cleanup(func() { c.Redis().Del(ctx, key) })

	for i := 0; i < 2; i++ {
		if ok, err := l.Allow(ctx, key, 2, time.Minute); err != nil || !ok {
			t.Fatalf("Allow #%d = %v, %v", i, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, key, 2, time.Minute); ok {
		t.Fatal("third request should be rejected")
	}
	if n, _ := l.Remaining(ctx, key, 2, time.Minute); n != 0 {
		t.Errorf("Remaining = %d, want 0", n)
	}
}
