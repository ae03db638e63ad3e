package genie

import (
	"strings"

	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/workflow/node"
	"hookgenie-api/pkg/metrics"
)

// Shape 期望的模型输出结构
type Shape string

const (
	ShapeHooksTriple           Shape = "hooks_triple"
	ShapeHookBodyPair          Shape = "hook_body_pair"
	ShapeFormattedWithHashtags Shape = "formatted_with_hashtags"
	ShapeFreeform              Shape = "freeform"
)

// Tier 解析最终落在哪一层
type Tier string

const (
	TierJSON   Tier = "json"
	TierLines  Tier = "lines"
	TierCanned Tier = "canned"
)

const (
	hookCount      = 3
	hashtagCount   = 5
	maxHookLineLen = 60
)

func observeTier(shape Shape, tier Tier) {
	metrics.ParseTierTotal.WithLabelValues(string(shape), string(tier)).Inc()
}

// ParseHooks 提取 3 条 hook：JSON -> 短行 -> 固定兜底集。永不失败。
func ParseHooks(raw string) ([]string, Tier) {
	var payload struct {
		Hooks []string `json:"hooks"`
	}
	if node.DecodeJSONObjectWithKeys(raw, &payload, "hooks") && len(payload.Hooks) >= hookCount {
		observeTier(ShapeHooksTriple, TierJSON)
		return cloneStrings(payload.Hooks[:hookCount]), TierJSON
	}

	if lines := node.ShortLines(raw, maxHookLineLen); len(lines) >= hookCount {
		observeTier(ShapeHooksTriple, TierLines)
		return cloneStrings(lines[:hookCount]), TierLines
	}

	observeTier(ShapeHooksTriple, TierCanned)
	return cloneStrings(FallbackHooks), TierCanned
}

// ParseHookBody 提取创作者风格的 hook 与 body，二者均需非空
func ParseHookBody(raw string) (hook, body string, ok bool) {
	var payload struct {
		Hook string `json:"hook"`
		Body string `json:"body"`
	}
	if node.DecodeJSONObjectWithKeys(raw, &payload, "hook", "body") {
		hook, body = strings.TrimSpace(payload.Hook), strings.TrimSpace(payload.Body)
		if hook != "" && body != "" {
			observeTier(ShapeHookBodyPair, TierJSON)
			return hook, body, true
		}
	}
	observeTier(ShapeHookBodyPair, TierCanned)
	return "", "", false
}

// ParsePlatformContent 提取平台内容；formatted 与 hashtags 键缺一即视为失败，空数组由默认标签补齐
func ParsePlatformContent(raw string, platform entity.Platform) (entity.PlatformContent, bool) {
	var payload struct {
		Formatted string   `json:"formatted"`
		Hashtags  []string `json:"hashtags"`
	}
	if node.DecodeJSONObjectWithKeys(raw, &payload, "formatted", "hashtags") &&
		strings.TrimSpace(payload.Formatted) != "" {
		observeTier(ShapeFormattedWithHashtags, TierJSON)
		return entity.PlatformContent{
			Formatted: strings.TrimSpace(payload.Formatted),
			Hashtags:  NormalizeHashtags(payload.Hashtags, platform),
		}, true
	}
	observeTier(ShapeFormattedWithHashtags, TierCanned)
	return defaultPlatformContent(), false
}

// ParseFreeform 自由文本只做首尾空白裁剪
func ParseFreeform(raw string) string {
	return strings.TrimSpace(raw)
}

// NormalizeHashtags 规整为恰好 5 个带 # 前缀、不重复的标签，不足时用平台默认补齐
func NormalizeHashtags(tags []string, platform entity.Platform) []string {
	out := make([]string, 0, hashtagCount)
	seen := make(map[string]bool, hashtagCount)
	add := func(tag string) {
		tag = strings.TrimLeft(tag, "#")
		if tag == "" {
			return
		}
		tag = "#" + tag
		key := strings.ToLower(tag)
		if seen[key] || len(out) >= hashtagCount {
			return
		}
		seen[key] = true
		out = append(out, tag)
	}

	// 一个条目里可能塞了多个空白分隔的标签
	for _, t := range tags {
		for _, tok := range strings.Fields(t) {
			add(tok)
		}
	}
	for _, t := range padHashtags(platform) {
		add(t)
	}
	return out
}

func padHashtags(platform entity.Platform) []string {
	return []string{"#viral", "#trending", platformHashtag(platform), "#fyp", "#shorts", "#content"}
}
