package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/application/history"
	"hookgenie-api/internal/interfaces/http/dto"
	"hookgenie-api/internal/interfaces/http/middleware"
	"hookgenie-api/pkg/logger"
)

// HistoryHandler 会话历史接口
type HistoryHandler struct {
	store *history.Store
	now   func() time.Time
}

// NewHistoryHandler 创建历史处理器
func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store, now: time.Now}
}

// List 最新优先的历史列表
// @Summary 历史列表
// @Tags History
// @Produce json
// @Success 200 {object} dto.Response[dto.HistoryListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/genie/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	entries, err := h.store.List(ctx, middleware.SessionID(c))
	if err != nil {
		logger.Error(ctx, "failed to list history", err)
		dto.AppError(c, err)
		return
	}

	now := h.now()
	items := make([]*dto.HistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, &dto.HistoryItem{HistoryEntry: e, TimeAgo: history.TimeAgo(now, e.Timestamp)})
	}
	dto.Success(c, dto.HistoryListResponse{Items: items, Capacity: h.store.Capacity()})
}

// Clear 清空历史
// @Summary 清空历史
// @Tags History
// @Success 204
// @Router /v1/genie/history [delete]
func (h *HistoryHandler) Clear(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.store.Clear(ctx, middleware.SessionID(c)); err != nil {
		logger.Error(ctx, "failed to clear history", err)
		dto.AppError(c, err)
		return
	}
	dto.NoContent(c)
}

// Remove 删除单条历史
// @Summary 删除历史
// @Tags History
// @Param id path string true "历史 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/genie/history/{id} [delete]
func (h *HistoryHandler) Remove(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), middleware.SessionID(c), c.Param("id")); err != nil {
		dto.AppError(c, err)
		return
	}
	dto.NoContent(c)
}

// Reload 从历史回填表单与 hooks
// @Summary 回填历史
// @Tags History
// @Produce json
// @Param id path string true "历史 ID"
// @Success 200 {object} dto.Response[dto.ReloadResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/genie/history/{id}/reload [get]
func (h *HistoryHandler) Reload(c *gin.Context) {
	entry, err := h.store.Get(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ReloadResponse{
		Script:   entry.Script,
		Goal:     entry.Goal,
		Platform: entry.Platform,
		Result:   history.Reload(entry),
	})
}
