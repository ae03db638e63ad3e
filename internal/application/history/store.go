// Package history 提供会话历史存储（最近 N 条，最新优先）
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hookgenie-api/internal/config"
	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/domain/repository"
	apperrors "hookgenie-api/pkg/errors"
	"hookgenie-api/pkg/logger"
	"hookgenie-api/pkg/metrics"
)

// EventKind 历史变更类型
type EventKind string

const (
	EventRecorded EventKind = "recorded"
	EventRemoved  EventKind = "removed"
	EventCleared  EventKind = "cleared"
)

// Event 历史变更通知
type Event struct {
	Kind      EventKind
	SessionID string
	EntryID   string
	Entry     *entity.HistoryEntry
}

// Listener 订阅者回调；在写入成功后同步调用
type Listener func(ctx context.Context, ev Event)

// Store 会话历史存储，变更通过订阅者广播
type Store struct {
	repo     repository.HistoryRepository
	capacity int
	now      func() time.Time

	mu        sync.RWMutex
	listeners map[uint64]Listener
	nextID    uint64
}

func NewStore(repo repository.HistoryRepository, cfg *config.Config) *Store {
	capacity := entity.DefaultHistoryCap
	if cfg != nil && cfg.Features.History.Cap > 0 {
		capacity = cfg.Features.History.Cap
	}
	return &Store{
		repo:      repo,
		capacity:  capacity,
		now:       time.Now,
		listeners: make(map[uint64]Listener),
	}
}

func (s *Store) Capacity() int {
	return s.capacity
}

// Subscribe 注册订阅者，返回取消函数
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) publish(ctx context.Context, ev Event) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx, ev)
	}
}

// NewEntry 由一次生成构造历史记录
func NewEntry(req entity.GenerationRequest, result entity.GenerationResult) *entity.HistoryEntry {
	return &entity.HistoryEntry{
		Script:   req.Script,
		Hooks:    append([]string(nil), result.Hooks...),
		Goal:     req.Goal,
		Platform: req.Platform,
	}
}

// Record 头插一条记录并截断到容量；ID 与时间为空时自动填充
func (s *Store) Record(ctx context.Context, sessionID string, entry *entity.HistoryEntry) (*entity.HistoryEntry, error) {
	if entry == nil {
		return nil, apperrors.ErrInvalidParam.WithDetail("history entry is nil")
	}
	e := *entry
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}

	if err := s.repo.Prepend(ctx, sessionID, &e, s.capacity); err != nil {
		metrics.HistoryOperationTotal.WithLabelValues("record", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to record history")
	}
	metrics.HistoryOperationTotal.WithLabelValues("record", "ok").Inc()
	logger.Debug(ctx, "history entry recorded", "entry_id", e.ID)

	s.publish(ctx, Event{Kind: EventRecorded, SessionID: sessionID, EntryID: e.ID, Entry: &e})
	return &e, nil
}

// List 最新优先返回会话历史
func (s *Store) List(ctx context.Context, sessionID string) ([]*entity.HistoryEntry, error) {
	entries, err := s.repo.List(ctx, sessionID, s.capacity)
	if err != nil {
		metrics.HistoryOperationTotal.WithLabelValues("list", "error").Inc()
		return nil, apperrors.Wrap(err, apperrors.CodeCacheError, "failed to list history")
	}
	metrics.HistoryOperationTotal.WithLabelValues("list", "ok").Inc()
	return entries, nil
}

// Get 按 ID 查找记录
func (s *Store) Get(ctx context.Context, sessionID, id string) (*entity.HistoryEntry, error) {
	entries, err := s.List(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, apperrors.ErrHistoryEntryNotFound.WithDetail(fmt.Sprintf("id=%s", id))
}

// Remove 删除一条记录
func (s *Store) Remove(ctx context.Context, sessionID, id string) error {
	ok, err := s.repo.Delete(ctx, sessionID, id)
	if err != nil {
		metrics.HistoryOperationTotal.WithLabelValues("remove", "error").Inc()
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to remove history entry")
	}
	if !ok {
		metrics.HistoryOperationTotal.WithLabelValues("remove", "not_found").Inc()
		return apperrors.ErrHistoryEntryNotFound.WithDetail(fmt.Sprintf("id=%s", id))
	}
	metrics.HistoryOperationTotal.WithLabelValues("remove", "ok").Inc()

	s.publish(ctx, Event{Kind: EventRemoved, SessionID: sessionID, EntryID: id})
	return nil
}

// Clear 清空会话历史
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		metrics.HistoryOperationTotal.WithLabelValues("clear", "error").Inc()
		return apperrors.Wrap(err, apperrors.CodeCacheError, "failed to clear history")
	}
	metrics.HistoryOperationTotal.WithLabelValues("clear", "ok").Inc()

	s.publish(ctx, Event{Kind: EventCleared, SessionID: sessionID})
	return nil
}
