package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hookgenie-api/internal/domain/entity"
)

const historyTTL = 30 * 24 * time.Hour

// HistoryRepository 每会话一个 list，头部为最新记录
type HistoryRepository struct {
	client *Client
}

func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

func (r *HistoryRepository) Prepend(ctx context.Context, sessionID string, entry *entity.HistoryEntry, capacity int) error {
	ctx, span := tracer.Start(ctx, "redis.HistoryRepository.Prepend",
		trace.WithAttributes(attribute.String("session.id", sessionID), attribute.Int("history.cap", capacity)))
	defer span.End()

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal history entry: %w", err)
	}

	key := HistoryKey(sessionID)
	pipe := r.client.rdb.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, int64(capacity-1))
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to prepend history entry: %w", err)
	}
	return nil
}

// List 返回最多 limit 条记录；无法解析的记录直接跳过
func (r *HistoryRepository) List(ctx context.Context, sessionID string, limit int) ([]*entity.HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "redis.HistoryRepository.List",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	raws, err := r.client.rdb.LRange(ctx, HistoryKey(sessionID), 0, stop).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*entity.HistoryEntry, 0, len(raws))
	for _, raw := range raws {
		if e, ok := decodeEntry(raw); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, sessionID, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "redis.HistoryRepository.Delete",
		trace.WithAttributes(attribute.String("session.id", sessionID), attribute.String("history.id", id)))
	defer span.End()

	key := HistoryKey(sessionID)
	raws, err := r.client.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to load history: %w", err)
	}
	for _, raw := range raws {
		e, ok := decodeEntry(raw)
		if !ok || e.ID != id {
			continue
		}
		n, err := r.client.rdb.LRem(ctx, key, 1, raw).Result()
		if err != nil {
			span.RecordError(err)
			return false, fmt.Errorf("failed to remove history entry: %w", err)
		}
		return n > 0, nil
	}
	return false, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "redis.HistoryRepository.Clear",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := r.client.rdb.Del(ctx, HistoryKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func decodeEntry(raw string) (*entity.HistoryEntry, bool) {
	var e entity.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil || e.ID == "" {
		return nil, false
	}
	return &e, true
}
