package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hookgenie-api/internal/application/genie"
	"hookgenie-api/internal/application/history"
	"hookgenie-api/internal/application/quota"
	"hookgenie-api/internal/interfaces/http/dto"
	"hookgenie-api/internal/interfaces/http/middleware"
	"hookgenie-api/internal/workflow/prompt"
	"hookgenie-api/pkg/logger"
)

// GenieHandler 生成相关接口
type GenieHandler struct {
	svc      *genie.Service
	governor *quota.UsageGovernor
	history  *history.Store
	catalog  *prompt.Catalog
}

// NewGenieHandler 创建生成处理器
func NewGenieHandler(svc *genie.Service, governor *quota.UsageGovernor, store *history.Store, catalog *prompt.Catalog) *GenieHandler {
	return &GenieHandler{
		svc:      svc,
		governor: governor,
		history:  store,
		catalog:  catalog,
	}
}

// Generate 生成 hooks、口播稿与平台内容
// @Summary 生成
// @Description 上游失败时返回带 degraded 标记的固定内容，HTTP 状态仍为 200
// @Tags Genie
// @Accept json
// @Produce json
// @Param body body dto.GenerateRequest true "脚本与选项"
// @Success 200 {object} dto.Response[dto.GenerateResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/genie/generate [post]
func (h *GenieHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.SessionID(c)

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Script) == "" {
		dto.BadRequest(c, "script must not be empty")
		return
	}

	genReq := req.ToEntity()
	result := h.svc.Generate(ctx, sessionID, genReq)
	resp := dto.GenerateResponse{GenerationResult: result}

	if len(result.Hooks) > 0 && result.PolishedScript != "" {
		entry, err := h.history.Record(ctx, sessionID, history.NewEntry(genReq, result))
		if err != nil {
			// 历史写入失败不影响本次结果
			logger.Error(ctx, "failed to record history", err)
		} else {
			resp.HistoryID = entry.ID
		}
	}

	dto.Success(c, resp)
}

// Trim 按时长裁剪平台内容
// @Summary 裁剪
// @Tags Genie
// @Accept json
// @Produce json
// @Param body body dto.TrimRequest true "内容与目标时长 (7s, 15s, 30s, 60s)"
// @Success 200 {object} dto.Response[entity.PlatformContent]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/genie/trim [post]
func (h *GenieHandler) Trim(c *gin.Context) {
	var req dto.TrimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	trimReq := req.ToEntity()
	if !trimReq.Duration.Valid() {
		dto.BadRequest(c, "duration must be one of 7s, 15s, 30s, 60s")
		return
	}

	dto.Success(c, h.svc.Trim(c.Request.Context(), trimReq))
}

// Export 导出为社交文案、提词器与汇总文本
// @Summary 导出
// @Tags Genie
// @Accept json
// @Produce json
// @Param body body dto.ExportRequest true "生成结果"
// @Success 200 {object} dto.Response[dto.ExportResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/genie/export [post]
func (h *GenieHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	dto.Success(c, dto.ExportResponse{
		Caption:      genie.Caption(req.PolishedScript, req.Hashtags),
		Teleprompter: genie.Teleprompter(req.PolishedScript),
		CopyAll:      genie.CopyAll(req.Hooks, req.PolishedScript, req.Hashtags),
	})
}

// Usage 当日用量
// @Summary 当日用量
// @Tags Genie
// @Produce json
// @Success 200 {object} dto.Response[quota.Snapshot]
// @Router /v1/genie/usage [get]
func (h *GenieHandler) Usage(c *gin.Context) {
	dto.Success(c, h.governor.Snapshot(c.Request.Context(), middleware.SessionID(c)))
}

// Styles 可选的创作者风格
// @Summary 创作者风格列表
// @Tags Genie
// @Produce json
// @Success 200 {object} dto.Response[dto.StylesResponse]
// @Router /v1/genie/styles [get]
func (h *GenieHandler) Styles(c *gin.Context) {
	dto.Success(c, dto.StylesResponse{Styles: h.catalog.Styles()})
}
