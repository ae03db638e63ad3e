package genie

import (
	"fmt"
	"strings"

	"hookgenie-api/internal/domain/entity"
	"hookgenie-api/internal/workflow/node"
)

// 固定的兜底 hook 集
var (
	// PlaceholderHooks 未配置凭证或未知错误时使用
	PlaceholderHooks = []string{
		"You won't believe what happened next...",
		"This changed everything in 30 seconds",
		"Why does nobody talk about this?",
	}
	// FallbackHooks 模型输出无法提取出 3 条 hook 时使用
	FallbackHooks = []string{
		"This will blow your mind...",
		"Nobody expected this outcome",
		"What happens next is shocking",
	}
	// DefaultHashtags 通用话题标签
	DefaultHashtags = []string{"#viral", "#trending", "#content", "#fyp", "#shorts"}
)

const (
	placeholderPolishedScript = "Here's your script, but more conversational and easier to read aloud. Perfect for voice content!"
	placeholderFormatted      = "🎯 ATTENTION GRABBING opening for your script content here..."
	genericPolishedScript     = "Here's your script rewritten for better voice delivery. More natural, conversational, and easier to read aloud!"
	defaultFormatted          = "🎯 ATTENTION GRABBING opening for your content..."
	watchThisPrefix           = "🎯 WATCH THIS: "
)

// 降级识别用的标记子串
var degradedMarkers = []string{"🚨", "Free tier", "🔑", "⚠️"}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}

// placeholderResult 未配置凭证
func placeholderResult() entity.GenerationResult {
	return entity.GenerationResult{
		Hooks:          cloneStrings(PlaceholderHooks),
		PolishedScript: placeholderPolishedScript,
		PlatformContent: entity.PlatformContent{
			Formatted: placeholderFormatted,
			Hashtags:  cloneStrings(DefaultHashtags),
		},
		Degraded: entity.DegradedCredentialMissing,
	}
}

// conservationResult 当日用量接近上限，不发起真实调用
func conservationResult(script string, count, nominal int) entity.GenerationResult {
	left := nominal - count
	if left < 0 {
		left = 0
	}
	return entity.GenerationResult{
		Hooks: []string{
			fmt.Sprintf("🚨 Daily limit approaching (%d/%d)", count, nominal),
			"💡 Conserving generations for you",
			"⏰ Free tier resets at midnight",
		},
		PolishedScript: fmt.Sprintf("⚠️ Approaching Daily Limit\n\nTo preserve your remaining generations (%d left today), we're showing a preview. Your script is ready to use:\n\n%s\n\nTip: Each generation uses multiple AI requests. Upgrade to premium for unlimited access.", left, script),
		PlatformContent: entity.PlatformContent{
			Formatted: fmt.Sprintf("🚨 Generation Limit Conservation\n\n• %d generations remaining today\n• Your script is preserved above\n• Free tier resets at midnight UTC", left),
			Hashtags:  []string{"#conservation", "#freetier", "#preserved", "#midnight", "#upgrade"},
		},
		Degraded: entity.DegradedUsageConservation,
	}
}

// quotaExceededResult 上游返回配额超限
func quotaExceededResult(script string) entity.GenerationResult {
	return entity.GenerationResult{
		Hooks: []string{
			"🚨 Free tier limit reached - try again later",
			"💡 Upgrade for unlimited hook generation",
			"⏰ Daily limit resets at midnight",
		},
		PolishedScript: "⚠️ Free Tier Limit Reached\n\nYou've reached your daily limit for AI-powered content generation. Your script is preserved below for manual use.\n\nOptions:\n• Wait 24 hours for limit reset\n• Upgrade to premium for unlimited access\n• Use your original script as-is\n\nOriginal Script:\n" + script,
		PlatformContent: entity.PlatformContent{
			Formatted: "🚨 Daily Generation Limit Reached\n\n• Your original content is preserved above\n• Upgrade to premium for unlimited generations\n• Free tier resets daily at midnight UTC",
			Hashtags:  []string{"#freetier", "#upgrade", "#premium", "#unlimited", "#reset"},
		},
		Degraded: entity.DegradedQuotaExceeded,
	}
}

// configurationResult 凭证被上游拒绝
func configurationResult(script string) entity.GenerationResult {
	return entity.GenerationResult{
		Hooks: []string{
			"🔑 Service configuration issue",
			"⚙️ Please contact support",
			"📝 Service temporarily unavailable",
		},
		PolishedScript: "🔑 Service Configuration Issue\n\nThere seems to be a temporary service issue. Please try again later or contact support if the problem persists.\n\nYour original script: " + script,
		PlatformContent: entity.PlatformContent{
			Formatted: "🔑 Service Unavailable\n\n• Temporary configuration issue\n• Please try again later\n• Contact support if problem persists",
			Hashtags:  []string{"#service", "#support", "#temporary", "#tryagain", "#help"},
		},
		Degraded: entity.DegradedConfiguration,
	}
}

// genericResult 其它错误
func genericResult() entity.GenerationResult {
	return entity.GenerationResult{
		Hooks:          cloneStrings(PlaceholderHooks),
		PolishedScript: genericPolishedScript,
		PlatformContent: entity.PlatformContent{
			Formatted: defaultFormatted,
			Hashtags:  cloneStrings(DefaultHashtags),
		},
		Degraded: entity.DegradedGeneric,
	}
}

// styleCreatedHooks 创作者风格生成成功时展示的固定 hooks
func styleCreatedHooks(creator entity.CreatorStyle) []string {
	return []string{
		fmt.Sprintf("🎯 %s Style Hook Created", creator),
		"View your custom hook & script below",
		"Perfectly cloned writing style",
	}
}

func defaultPlatformContent() entity.PlatformContent {
	return entity.PlatformContent{
		Formatted: defaultFormatted,
		Hashtags:  cloneStrings(DefaultHashtags),
	}
}

// 裁剪降级内容

func trimNoCredential(content string) entity.PlatformContent {
	return entity.PlatformContent{
		Formatted: watchThisPrefix + node.TruncateByRunes(content, 100) + "...",
		Hashtags:  cloneStrings(DefaultHashtags),
	}
}

func trimUnparsed(content string, platform entity.Platform) entity.PlatformContent {
	return entity.PlatformContent{
		Formatted: watchThisPrefix + node.TruncateByRunes(content, 150) + "...",
		Hashtags:  []string{"#viral", "#trending", platformHashtag(platform), "#fyp", "#shorts"},
	}
}

func trimQuotaExceeded(content string) entity.PlatformContent {
	return entity.PlatformContent{
		Formatted: "🚨 Free Tier Limit Reached\n\n• Daily generation quota exceeded\n• Platform optimization unavailable\n• Your content is preserved below\n\n" + node.TruncateByRunes(content, 200) + "...",
		Hashtags:  []string{"#freetier", "#quota", "#upgrade", "#premium", "#preserved"},
	}
}

// platformHashtag "YouTube Shorts" -> "#youtubeshorts"
func platformHashtag(p entity.Platform) string {
	tag := strings.ToLower(strings.ReplaceAll(string(p), " ", ""))
	if tag == "" {
		return "#shorts"
	}
	return "#" + tag
}

// IsDegraded 结果是否为降级的固定内容
func IsDegraded(r entity.GenerationResult) bool {
	if r.Degraded != entity.DegradedNone {
		return true
	}
	if len(r.Hooks) == 0 {
		return false
	}
	for _, m := range degradedMarkers {
		if strings.Contains(r.Hooks[0], m) || strings.HasPrefix(r.PolishedScript, m) {
			return true
		}
	}
	return false
}
