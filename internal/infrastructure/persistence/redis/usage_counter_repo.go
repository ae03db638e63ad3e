package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hookgenie-api/internal/domain/entity"
)

// usageTTL 计数只对当天有效，保留两天足够覆盖时区边界
const usageTTL = 48 * time.Hour

// incrementIfBelowScript 原子地“日期比对 + 阈值检查 + 自增”
// 返回 -1 表示已达上限，否则返回自增后的计数
var incrementIfBelowScript = redis.NewScript(`
local date = redis.call('HGET', KEYS[1], 'date')
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0') or 0
if date ~= ARGV[1] then count = 0 end
if count >= tonumber(ARGV[2]) then return -1 end
count = count + 1
redis.call('HSET', KEYS[1], 'date', ARGV[1], 'count', count)
redis.call('EXPIRE', KEYS[1], ARGV[3])
return count
`)

// UsageCounterRepository 每会话一个 hash {date, count}
type UsageCounterRepository struct {
	client *Client
}

func NewUsageCounterRepository(client *Client) *UsageCounterRepository {
	return &UsageCounterRepository{client: client}
}

// Get 读取计数；键不存在或内容无法解析时返回 nil
func (r *UsageCounterRepository) Get(ctx context.Context, sessionID string) (*entity.UsageCounter, error) {
	ctx, span := tracer.Start(ctx, "redis.UsageCounterRepository.Get",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	vals, err := r.client.rdb.HGetAll(ctx, UsageKey(sessionID)).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get usage counter: %w", err)
	}
	date, ok := vals["date"]
	if !ok {
		return nil, nil
	}
	count, err := strconv.Atoi(vals["count"])
	if err != nil || count < 0 {
		return nil, nil
	}
	return &entity.UsageCounter{Date: date, Count: count}, nil
}

// IncrementIfBelow 当日计数小于 limit 时自增
func (r *UsageCounterRepository) IncrementIfBelow(ctx context.Context, sessionID, day string, limit int) (int, bool, error) {
	ctx, span := tracer.Start(ctx, "redis.UsageCounterRepository.IncrementIfBelow",
		trace.WithAttributes(
			attribute.String("session.id", sessionID),
			attribute.String("usage.day", day),
			attribute.Int("usage.limit", limit),
		))
	defer span.End()

	res, err := incrementIfBelowScript.Run(ctx, r.client.rdb,
		[]string{UsageKey(sessionID)},
		day, limit, int(usageTTL.Seconds()),
	).Int()
	if err != nil {
		span.RecordError(err)
		return 0, false, fmt.Errorf("failed to increment usage counter: %w", err)
	}
	if res < 0 {
		span.SetAttributes(attribute.Bool("usage.reserved", false))
		return limit, false, nil
	}
	span.SetAttributes(attribute.Bool("usage.reserved", true), attribute.Int("usage.count", res))
	return res, true, nil
}
