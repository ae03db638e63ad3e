// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/config"
	"hookgenie-api/internal/infrastructure/persistence/postgres"
	"hookgenie-api/internal/infrastructure/persistence/redis"
	"hookgenie-api/internal/workflow/port"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	pg       *postgres.Client
	redis    *redis.Client
	models   port.ChatModelFactory
	provider string
	version  string
}

// NewHealthHandler 创建健康检查处理器；pg / redis 未启用时为 nil
func NewHealthHandler(cfg *config.Config, pg *postgres.Client, redisClient *redis.Client, models port.ChatModelFactory) *HealthHandler {
	h := &HealthHandler{
		pg:     pg,
		redis:  redisClient,
		models: models,
	}
	if cfg != nil {
		h.provider = cfg.LLM.DefaultProvider
		h.version = cfg.App.Version
	}
	return h
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

type readinessCheck struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
}

type readinessResponse struct {
	Status string                     `json:"status"`
	Checks map[string]*readinessCheck `json:"checks,omitempty"`
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Health 健康检查接口
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: h.version,
	})
}

// Ready 就绪检查接口。已启用的存储必须可用；缺少 LLM 凭证只标记为 degraded。
// @Summary 就绪检查
// @Tags System
// @Produce json
// @Success 200 {object} readinessResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]*readinessCheck{
		"postgres": {Status: "disabled"},
		"redis":    {Status: "disabled"},
		"llm":      {Status: "ok"},
	}
	ready := true

	if h.pg != nil {
		checks["postgres"] = probe(ctx, h.pg)
		ready = ready && checks["postgres"].Status == "ok"
	}
	if h.redis != nil {
		checks["redis"] = probe(ctx, h.redis)
		ready = ready && checks["redis"].Status == "ok"
	}
	if h.models == nil || !h.models.HasCredential(h.provider) {
		checks["llm"] = &readinessCheck{Status: "degraded", Error: "API key not configured"}
	}

	resp := readinessResponse{Status: "ok", Checks: checks}
	if !ready {
		resp.Status = "not_ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Live 存活检查接口
// @Summary 存活检查
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func probe(ctx context.Context, hc healthChecker) *readinessCheck {
	start := time.Now()
	err := hc.HealthCheck(ctx)
	check := &readinessCheck{Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "error"
		check.Error = err.Error()
	}
	return check
}
