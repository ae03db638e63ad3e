package wire

import (
	"context"

	"hookgenie-api/internal/application/history"
	"hookgenie-api/internal/config"
	"hookgenie-api/internal/domain/repository"
	"hookgenie-api/internal/infrastructure/persistence/memory"
	"hookgenie-api/internal/infrastructure/persistence/postgres"
	"hookgenie-api/internal/infrastructure/persistence/redis"
	"hookgenie-api/internal/interfaces/http/middleware"
	"hookgenie-api/pkg/logger"
)

const (
	HistoryBackendRedis    = "redis"
	HistoryBackendPostgres = "postgres"
	HistoryBackendMemory   = "memory"
)

// ProvidePostgresClient 提供 PostgreSQL 客户端；未启用时返回 nil
func ProvidePostgresClient(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	if !cfg.Database.Postgres.Enabled {
		return nil, func() {}, nil
	}
	client, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "postgres connected", "host", cfg.Database.Postgres.Host, "database", cfg.Database.Postgres.Database)
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	logger.Info(ctx, "redis connected", "host", cfg.Cache.Redis.Host, "port", cfg.Cache.Redis.Port)
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideUsageCounterRepository Redis 可用时使用 Redis，否则使用进程内存储
func ProvideUsageCounterRepository(ctx context.Context, rc *redis.Client) repository.UsageCounterRepository {
	if rc == nil {
		logger.Warn(ctx, "redis disabled, usage counters kept in memory")
		return memory.NewUsageCounterRepository()
	}
	return redis.NewUsageCounterRepository(rc)
}

// ProvideHistoryRepository 按配置选择历史存储；所选后端不可用时退回内存
func ProvideHistoryRepository(ctx context.Context, cfg *config.Config, rc *redis.Client, pg *postgres.Client) repository.HistoryRepository {
	backend := cfg.Features.History.Backend
	switch {
	case backend == HistoryBackendPostgres && pg != nil:
		return postgres.NewHistoryRepository(pg)
	case (backend == HistoryBackendRedis || backend == "") && rc != nil:
		return redis.NewHistoryRepository(rc)
	case backend == HistoryBackendMemory:
		return memory.NewHistoryRepository()
	default:
		logger.Warn(ctx, "history backend unavailable, falling back to memory", "backend", backend)
		return memory.NewHistoryRepository()
	}
}

// ProvideHistoryStore 创建历史存储并挂载审计日志订阅
func ProvideHistoryStore(repo repository.HistoryRepository, cfg *config.Config) *history.Store {
	store := history.NewStore(repo, cfg)
	store.Subscribe(func(ctx context.Context, ev history.Event) {
		logger.Info(ctx, "history changed", "kind", string(ev.Kind), "entry_id", ev.EntryID)
	})
	return store
}

// ProvideRateLimiter Redis 未启用时不限流
func ProvideRateLimiter(rc *redis.Client) middleware.RateLimiter {
	if rc == nil {
		return nil
	}
	return redis.NewRateLimiter(rc)
}

// ProvideRateLimitKeyFunc 限流 key 与其它会话数据共用命名规则
func ProvideRateLimitKeyFunc() middleware.KeyFunc {
	return redis.RateLimitKey
}
