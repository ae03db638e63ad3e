package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"hookgenie-api/internal/domain/entity"
)

// historyEntryModel history_entries 表
type historyEntryModel struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)"`
	SessionID string         `gorm:"type:varchar(128);not null;index:idx_history_session_created,priority:1"`
	Script    string         `gorm:"type:text;not null"`
	Hooks     pq.StringArray `gorm:"type:text[]"`
	Goal      string         `gorm:"type:varchar(32)"`
	Platform  string         `gorm:"type:varchar(32)"`
	CreatedAt time.Time      `gorm:"not null;index:idx_history_session_created,priority:2,sort:desc"`
}

func (historyEntryModel) TableName() string {
	return "history_entries"
}

func toHistoryModel(sessionID string, e *entity.HistoryEntry) *historyEntryModel {
	return &historyEntryModel{
		ID:        e.ID,
		SessionID: sessionID,
		Script:    e.Script,
		Hooks:     pq.StringArray(e.Hooks),
		Goal:      string(e.Goal),
		Platform:  string(e.Platform),
		CreatedAt: e.Timestamp,
	}
}

func (m *historyEntryModel) toEntity() *entity.HistoryEntry {
	return &entity.HistoryEntry{
		ID:        m.ID,
		Timestamp: m.CreatedAt,
		Script:    m.Script,
		Hooks:     []string(m.Hooks),
		Goal:      entity.Goal(m.Goal),
		Platform:  entity.Platform(m.Platform),
	}
}

// HistoryRepository PostgreSQL 会话历史仓储
type HistoryRepository struct {
	client *Client
}

func NewHistoryRepository(client *Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Prepend 插入记录并删除超出容量的旧记录（同一事务）
func (r *HistoryRepository) Prepend(ctx context.Context, sessionID string, entry *entity.HistoryEntry, capacity int) error {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Prepend",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	err := r.client.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toHistoryModel(sessionID, entry)).Error; err != nil {
			return err
		}
		keep := tx.Model(&historyEntryModel{}).
			Select("id").
			Where("session_id = ?", sessionID).
			Order("created_at DESC, id DESC").
			Limit(capacity)
		return tx.Where("session_id = ? AND id NOT IN (?)", sessionID, keep).
			Delete(&historyEntryModel{}).Error
	})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to prepend history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, sessionID string, limit int) ([]*entity.HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.List",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	q := r.client.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []historyEntryModel
	if err := q.Find(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*entity.HistoryEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toEntity())
	}
	return entries, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, sessionID, id string) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Delete",
		trace.WithAttributes(attribute.String("session.id", sessionID), attribute.String("history.id", id)))
	defer span.End()

	res := r.client.db.WithContext(ctx).
		Where("session_id = ? AND id = ?", sessionID, id).
		Delete(&historyEntryModel{})
	if res.Error != nil {
		span.RecordError(res.Error)
		return false, fmt.Errorf("failed to delete history entry: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *HistoryRepository) Clear(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "postgres.HistoryRepository.Clear",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := r.client.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&historyEntryModel{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}
