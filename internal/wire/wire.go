//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"hookgenie-api/internal/application/genie"
	"hookgenie-api/internal/application/quota"
	"hookgenie-api/internal/config"
	"hookgenie-api/internal/infrastructure/llm"
	"hookgenie-api/internal/interfaces/http/handler"
	"hookgenie-api/internal/interfaces/http/router"
	"hookgenie-api/internal/workflow/port"
	"hookgenie-api/internal/workflow/prompt"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		StorageSet,
		GenieSet,
		RouterSet,
	)
	return nil, nil, nil
}

// StorageSet 存储提供者集合
var StorageSet = wire.NewSet(
	ProvidePostgresClient,
	ProvideRedisClient,
	ProvideUsageCounterRepository,
	ProvideHistoryRepository,
	ProvideHistoryStore,
	ProvideRateLimiter,
	ProvideRateLimitKeyFunc,
)

// GenieSet 生成流水线提供者集合
var GenieSet = wire.NewSet(
	llm.NewEinoFactory,
	wire.Bind(new(port.ChatModelFactory), new(*llm.EinoFactory)),
	prompt.NewRegistry,
	prompt.DefaultCatalog,
	prompt.NewBuilder,
	genie.NewGateway,
	quota.NewUsageGovernor,
	genie.NewService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewGenieHandler,
	handler.NewHistoryHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
