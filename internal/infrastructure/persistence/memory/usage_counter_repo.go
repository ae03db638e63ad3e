// Package memory 提供进程内仓储实现（未启用 Redis 时与测试使用）
package memory

import (
	"context"
	"sync"

	"hookgenie-api/internal/domain/entity"
)

type UsageCounterRepository struct {
	mu       sync.Mutex
	counters map[string]entity.UsageCounter
}

func NewUsageCounterRepository() *UsageCounterRepository {
	return &UsageCounterRepository{counters: make(map[string]entity.UsageCounter)}
}

func (r *UsageCounterRepository) Get(_ context.Context, sessionID string) (*entity.UsageCounter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.counters[sessionID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *UsageCounterRepository) IncrementIfBelow(_ context.Context, sessionID, day string, limit int) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := r.counters[sessionID].CountOn(day)
	if count >= limit {
		return count, false, nil
	}
	count++
	r.counters[sessionID] = entity.UsageCounter{Date: day, Count: count}
	return count, true, nil
}

// Set 直接写入计数（测试构造跨日数据用）
func (r *UsageCounterRepository) Set(sessionID string, c entity.UsageCounter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[sessionID] = c
}
