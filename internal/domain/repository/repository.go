// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"hookgenie-api/internal/domain/entity"
)

// UsageCounterRepository 每日生成计数存储
// 文档按会话隔离；读到的日期与当天不一致时由调用方视为 0。
type UsageCounterRepository interface {
	// Get 读取会话计数，不存在时返回 nil, nil
	Get(ctx context.Context, sessionID string) (*entity.UsageCounter, error)
	// IncrementIfBelow 当天计数 < limit 时原子加一，返回加一后的计数与是否成功
	// 日期不一致时先归零再判断。
	IncrementIfBelow(ctx context.Context, sessionID string, day string, limit int) (count int, reserved bool, err error)
}

// HistoryRepository 会话历史存储
type HistoryRepository interface {
	// Prepend 头插一条记录并截断到 cap 条
	Prepend(ctx context.Context, sessionID string, entry *entity.HistoryEntry, cap int) error
	// List 按最新优先返回最多 limit 条
	List(ctx context.Context, sessionID string, limit int) ([]*entity.HistoryEntry, error)
	// Delete 删除一条记录，返回是否存在
	Delete(ctx context.Context, sessionID string, id string) (bool, error)
	// Clear 清空会话历史
	Clear(ctx context.Context, sessionID string) error
}
