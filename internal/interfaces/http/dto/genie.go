package dto

import (
	"strings"

	"hookgenie-api/internal/domain/entity"
)

// GenerateRequest 生成请求
type GenerateRequest struct {
	Script       string `json:"script" binding:"required"`
	Tone         string `json:"tone,omitempty"`
	Platform     string `json:"platform,omitempty"`
	Goal         string `json:"goal,omitempty"`
	CreatorStyle string `json:"creator_style,omitempty"`
}

// ToEntity 转换为领域请求（空字段取默认值）
func (r *GenerateRequest) ToEntity() entity.GenerationRequest {
	return entity.NewGenerationRequest(
		r.Script,
		entity.Tone(strings.TrimSpace(r.Tone)),
		entity.Platform(strings.TrimSpace(r.Platform)),
		entity.Goal(strings.TrimSpace(r.Goal)),
		entity.CreatorStyle(strings.TrimSpace(r.CreatorStyle)),
	)
}

// GenerateResponse 生成响应
type GenerateResponse struct {
	entity.GenerationResult
	HistoryID string `json:"history_id,omitempty"`
}

// TrimRequest 裁剪请求
type TrimRequest struct {
	Content  string `json:"content" binding:"required"`
	Duration string `json:"duration" binding:"required"`
	Platform string `json:"platform,omitempty"`
	Goal     string `json:"goal,omitempty"`
}

// ToEntity 转换为领域请求
func (r *TrimRequest) ToEntity() entity.TrimRequest {
	return entity.TrimRequest{
		Content:  r.Content,
		Duration: entity.Duration(strings.TrimSpace(r.Duration)),
		Platform: entity.Platform(strings.TrimSpace(r.Platform)),
		Goal:     entity.Goal(strings.TrimSpace(r.Goal)),
	}
}

// ExportRequest 导出请求
type ExportRequest struct {
	Hooks          []string `json:"hooks"`
	PolishedScript string   `json:"polished_script"`
	Hashtags       []string `json:"hashtags"`
}

// ExportResponse 三种导出格式
type ExportResponse struct {
	Caption      string `json:"caption"`
	Teleprompter string `json:"teleprompter"`
	CopyAll      string `json:"copy_all"`
}

// StylesResponse 可选创作者风格
type StylesResponse struct {
	Styles []entity.CreatorStyle `json:"styles"`
}

// HistoryItem 历史条目
type HistoryItem struct {
	*entity.HistoryEntry
	TimeAgo string `json:"time_ago"`
}

// HistoryListResponse 历史列表
type HistoryListResponse struct {
	Items    []*HistoryItem `json:"items"`
	Capacity int            `json:"capacity"`
}

// ReloadResponse 从历史回填
type ReloadResponse struct {
	Script   string                  `json:"script"`
	Goal     entity.Goal             `json:"goal"`
	Platform entity.Platform         `json:"platform"`
	Result   entity.GenerationResult `json:"result"`
}
