package history

import (
	"fmt"
	"time"

	"hookgenie-api/internal/domain/entity"
)

const (
	ReloadPolishedScript = "Previous script loaded from history. Click ✨ Genie It to regenerate."
	ReloadFormatted      = "Load from history and regenerate to see platform content."
)

var reloadHashtags = []string{"#reload", "#regenerate"}

// Reload 历史记录回填结果：保留当时的 hooks，脚本与平台内容为提示文案
func Reload(e *entity.HistoryEntry) entity.GenerationResult {
	return entity.GenerationResult{
		Hooks:          append([]string(nil), e.Hooks...),
		PolishedScript: ReloadPolishedScript,
		PlatformContent: entity.PlatformContent{
			Formatted: ReloadFormatted,
			Hashtags:  append([]string(nil), reloadHashtags...),
		},
	}
}

// TimeAgo 相对时间："Just now" / "5m ago" / "3h ago" / "2d ago"
func TimeAgo(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	}
}
