// Package entity 定义领域实体
package entity

import "strings"

// Tone 语气
type Tone string

const (
	ToneCasual      Tone = "Casual"
	ToneHype        Tone = "Hype"
	ToneEducational Tone = "Educational"
	ToneSarcastic   Tone = "Sarcastic"
)

// Platform 目标短视频平台
type Platform string

const (
	PlatformYouTubeShorts  Platform = "YouTube Shorts"
	PlatformTikTok         Platform = "TikTok"
	PlatformInstagramReels Platform = "Instagram Reels"
)

// Goal 脚本目标
type Goal string

const (
	GoalGoViral       Goal = "Go Viral"
	GoalSellSomething Goal = "Sell Something"
	GoalEducate       Goal = "Educate"
	GoalEntertain     Goal = "Entertain"
)

// CreatorStyle 模仿的创作者风格
type CreatorStyle string

const (
	CreatorNone        CreatorStyle = "None (Default)"
	CreatorMrBeast     CreatorStyle = "MrBeast"
	CreatorAlexHormozi CreatorStyle = "Alex Hormozi"
	CreatorGaryVee     CreatorStyle = "GaryVee"
	CreatorAliAbdaal   CreatorStyle = "Ali Abdaal"
)

// IsNone 未选择创作者风格（空值等同于默认）
func (c CreatorStyle) IsNone() bool {
	return c == "" || c == CreatorNone
}

// Duration 裁剪目标时长
type Duration string

const (
	Duration7s  Duration = "7s"
	Duration15s Duration = "15s"
	Duration30s Duration = "30s"
	Duration60s Duration = "60s"
)

// Valid 是否为支持的时长
func (d Duration) Valid() bool {
	switch d {
	case Duration7s, Duration15s, Duration30s, Duration60s:
		return true
	}
	return false
}

// GenerationRequest 一次生成请求（构建后不可变）
type GenerationRequest struct {
	Script       string
	Tone         Tone
	Platform     Platform
	Goal         Goal
	CreatorStyle CreatorStyle
}

// NewGenerationRequest 构建请求并填充默认值
func NewGenerationRequest(script string, tone Tone, platform Platform, goal Goal, creator CreatorStyle) GenerationRequest {
	if tone == "" {
		tone = ToneCasual
	}
	if platform == "" {
		platform = PlatformYouTubeShorts
	}
	if goal == "" {
		goal = GoalGoViral
	}
	if creator == "" {
		creator = CreatorNone
	}
	return GenerationRequest{
		Script:       script,
		Tone:         tone,
		Platform:     platform,
		Goal:         goal,
		CreatorStyle: creator,
	}
}

// Fingerprint 请求指纹原文，用于合并并发的相同请求
func (r GenerationRequest) Fingerprint() string {
	return strings.Join([]string{
		strings.TrimSpace(r.Script),
		string(r.Tone),
		string(r.Platform),
		string(r.Goal),
		string(r.CreatorStyle),
	}, "\x1f")
}

// TrimRequest 按时长裁剪平台内容的请求
type TrimRequest struct {
	Content  string
	Duration Duration
	Platform Platform
	Goal     Goal
}

// CreatorExample 创作者风格示例
type CreatorExample struct {
	Hook string `yaml:"hook" json:"hook"`
	Body string `yaml:"body" json:"body"`
}

// PlatformContent 平台格式化内容
type PlatformContent struct {
	Formatted string   `json:"formatted"`
	Hashtags  []string `json:"hashtags"`
}

// CreatorStyleResult 创作者风格脚本
type CreatorStyleResult struct {
	Hook    string       `json:"hook"`
	Body    string       `json:"body"`
	Creator CreatorStyle `json:"creator"`
}

// DegradedKind 降级结果类别
type DegradedKind string

const (
	DegradedNone              DegradedKind = ""
	DegradedCredentialMissing DegradedKind = "configuration_missing"
	DegradedUsageConservation DegradedKind = "usage_conservation"
	DegradedQuotaExceeded     DegradedKind = "quota_exceeded"
	DegradedConfiguration     DegradedKind = "configuration_error"
	DegradedGeneric           DegradedKind = "generic_failure"
)

// GenerationResult 一次生成的结果（构建后不再修改）
type GenerationResult struct {
	Hooks           []string            `json:"hooks"`
	PolishedScript  string              `json:"polished_script"`
	PlatformContent PlatformContent     `json:"platform_content"`
	CreatorStyle    *CreatorStyleResult `json:"creator_style,omitempty"`
	Degraded        DegradedKind        `json:"degraded,omitempty"`
}
