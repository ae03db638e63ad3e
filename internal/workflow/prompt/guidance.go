package prompt

import "hookgenie-api/internal/domain/entity"

const goViralShort = "Script goal: Go Viral. Adjust structure, hooks, and CTAs accordingly. Add comment bait, cliffhangers, shock value."

var goalInstructions = map[entity.Goal]string{
	entity.GoalGoViral:       "Script goal: Go Viral. Adjust structure, hooks, and CTAs accordingly. Add comment bait, cliffhangers, shock value. Use curiosity gaps and controversial angles. Include 'wait for it' moments and opinion-splitting statements.",
	entity.GoalSellSomething: "Script goal: Sell Something. Adjust structure, hooks, and CTAs accordingly. Add urgency, social proof, scarcity. Include testimonials, before/after comparisons, and clear value propositions. Use sales psychology and FOMO tactics.",
	entity.GoalEducate:       "Script goal: Educate. Adjust structure, hooks, and CTAs accordingly. Simplify complex concepts, use analogies and step-by-step breakdowns. Include 'here's why' explanations and practical takeaways.",
	entity.GoalEntertain:     "Script goal: Entertain. Adjust structure, hooks, and CTAs accordingly. Add humor, memes, callbacks, and personality. Use storytelling, unexpected twists, and relatable situations for maximum engagement.",
}

// GoalInstructions 返回目标对应的指令块；未知目标回退到 Go Viral 简版
func GoalInstructions(goal entity.Goal) string {
	if s, ok := goalInstructions[goal]; ok {
		return s
	}
	return goViralShort
}

// PlatformTips 平台相关的三类提示
type PlatformTips struct {
	HookTips    string `json:"hook_tips"`
	VoiceTips   string `json:"voice_tips"`
	ContentTips string `json:"content_tips"`
}

var genericTips = PlatformTips{
	HookTips:    "optimized for platform trends and audience behavior",
	VoiceTips:   "adjust pacing and references for platform viewers",
	ContentTips: "platform-optimized formatting with trending elements",
}

var platformTips = map[entity.Platform]PlatformTips{
	entity.PlatformYouTubeShorts: {
		HookTips:    "Use question hooks, countdown formats, and 'Wait for it...' teasers. YouTube audience loves educational reveals and behind-the-scenes content.",
		VoiceTips:   "Speak clearly for YouTube's diverse age groups. Use educational tone. Include 'Subscribe if...' type calls-to-action naturally.",
		ContentTips: "Hook in first 3 seconds with question or bold statement. Use quick cuts in mind. Include educational value. YouTube Shorts perform best at 15-60 seconds.",
	},
	entity.PlatformTikTok: {
		HookTips:    "Use trending sounds, POV formats, 'Tell me you're X without telling me', challenges, and storytime hooks. TikTok loves relatable, authentic content.",
		VoiceTips:   "Match trending audio patterns. Use Gen-Z language and current slang. Fast-paced delivery with personality and attitude.",
		ContentTips: "Hook must work with music/sound. Quick transitions, trending dance moves or gestures. Vertical storytelling. 15-30 seconds optimal.",
	},
	entity.PlatformInstagramReels: {
		HookTips:    "Use lifestyle angles, before/after reveals, aesthetic presentations, and aspirational content. Instagram audience values polished, inspiring content.",
		VoiceTips:   "Polished, aspirational tone. Focus on lifestyle benefits. Use Instagram-specific terms like 'link in bio' naturally.",
		ContentTips: "Visually appealing from frame one. Lifestyle-focused angles. Instagram aesthetic important. 15-30 seconds with strong visual hooks.",
	},
}

// PlatformTipsFor 返回平台提示；未知平台返回通用提示
func PlatformTipsFor(platform entity.Platform) PlatformTips {
	if t, ok := platformTips[platform]; ok {
		return t
	}
	return genericTips
}
