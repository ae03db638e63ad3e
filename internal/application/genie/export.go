package genie

import (
	"fmt"
	"strings"
)

var captionEmojis = []string{"🔥", "✨", "💫", "🎯", "⚡", "🚀", "💥", "🌟"}

// Caption 社交平台文案：每句加轮换 emoji，末尾附话题标签
func Caption(script string, hashtags []string) string {
	sentences := strings.Split(script, ". ")
	lines := make([]string, 0, len(sentences))
	for i, s := range sentences {
		lines = append(lines, captionEmojis[i%len(captionEmojis)]+" "+strings.TrimSpace(s))
	}
	return strings.Join(lines, "\n\n") + "\n\n" + strings.Join(hashtags, " ")
}

// Teleprompter 提词器文本：一句一段，全部大写
func Teleprompter(script string) string {
	return strings.ToUpper(strings.ReplaceAll(script, ". ", ".\n\n"))
}

// CopyAll 汇总 hooks、口播稿与话题标签
func CopyAll(hooks []string, script string, hashtags []string) string {
	numbered := make([]string, 0, len(hooks))
	for i, h := range hooks {
		numbered = append(numbered, fmt.Sprintf("%d. %s", i+1, h))
	}
	var b strings.Builder
	b.WriteString("🎯 VIRAL HOOKS:\n")
	b.WriteString(strings.Join(numbered, "\n"))
	b.WriteString("\n\n🎤 VOICE SCRIPT:\n")
	b.WriteString(script)
	b.WriteString("\n\n📱 HASHTAGS:\n")
	b.WriteString(strings.Join(hashtags, " "))
	return b.String()
}
