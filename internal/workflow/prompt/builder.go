package prompt

import (
	"context"

	"hookgenie-api/internal/domain/entity"
)

// 期望的 JSON 返回结构，作为模板变量注入，模板本身不含花括号字面量
const (
	HooksJSONShape     = `{ "hooks": ["hook1", "hook2", "hook3"] }`
	HookBodyJSONShape  = `{ "hook": "string", "body": "string" }`
	FormattedJSONShape = `{ "formatted": "formatted script with emoji bullets", "hashtags": ["#tag1", "#tag2", "#tag3", "#tag4", "#tag5"] }`
)

// Builder 把生成请求渲染为模型 prompt
type Builder struct {
	registry *Registry
	catalog  *Catalog
}

func NewBuilder(registry *Registry, catalog *Catalog) *Builder {
	return &Builder{registry: registry, catalog: catalog}
}

// Catalog 返回构建器使用的风格目录
func (b *Builder) Catalog() *Catalog {
	return b.catalog
}

// FewShotBlock 渲染风格的 few-shot 段落；无示例时返回空串
func (b *Builder) FewShotBlock(ctx context.Context, style entity.CreatorStyle) (string, error) {
	examples := b.catalog.Examples(style)
	if len(examples) == 0 {
		return "", nil
	}
	return b.registry.Render(ctx, PromptCreatorFewShotV1, map[string]any{
		"creator":  string(style),
		"examples": formatExamples(examples),
	})
}

// BuildHooksPrompt 默认风格要求 3 个 hook；指定风格时要求 hook+body
func (b *Builder) BuildHooksPrompt(ctx context.Context, req entity.GenerationRequest) (string, error) {
	if req.CreatorStyle.IsNone() {
		return b.registry.Render(ctx, PromptHooksDefaultV1, map[string]any{
			"script":            req.Script,
			"goal_instructions": GoalInstructions(req.Goal),
			"hook_tips":         PlatformTipsFor(req.Platform).HookTips,
			"json_shape":        HooksJSONShape,
		})
	}

	fewShot, err := b.FewShotBlock(ctx, req.CreatorStyle)
	if err != nil {
		return "", err
	}
	return b.registry.Render(ctx, PromptHooksCreatorV1, map[string]any{
		"few_shot":          fewShot,
		"script":            req.Script,
		"tone":              string(req.Tone),
		"goal":              string(req.Goal),
		"goal_instructions": GoalInstructions(req.Goal),
		"json_shape":        HookBodyJSONShape,
	})
}

func (b *Builder) BuildVoicePrompt(ctx context.Context, req entity.GenerationRequest) (string, error) {
	return b.registry.Render(ctx, PromptVoiceV1, map[string]any{
		"script":            req.Script,
		"tone":              string(req.Tone),
		"goal_instructions": GoalInstructions(req.Goal),
		"voice_tips":        PlatformTipsFor(req.Platform).VoiceTips,
	})
}

func (b *Builder) BuildPlatformPrompt(ctx context.Context, req entity.GenerationRequest) (string, error) {
	return b.registry.Render(ctx, PromptPlatformV1, map[string]any{
		"script":            req.Script,
		"platform":          string(req.Platform),
		"goal_instructions": GoalInstructions(req.Goal),
		"content_tips":      PlatformTipsFor(req.Platform).ContentTips,
		"json_shape":        FormattedJSONShape,
	})
}

func (b *Builder) BuildTrimPrompt(ctx context.Context, req entity.TrimRequest) (string, error) {
	return b.registry.Render(ctx, PromptTrimV1, map[string]any{
		"content":           req.Content,
		"duration":          string(req.Duration),
		"platform":          string(req.Platform),
		"goal_instructions": GoalInstructions(req.Goal),
		"content_tips":      PlatformTipsFor(req.Platform).ContentTips,
		"json_shape":        FormattedJSONShape,
	})
}

// BuildGenerationPrompts 依次返回 hooks、voice、platform 三条 prompt
func (b *Builder) BuildGenerationPrompts(ctx context.Context, req entity.GenerationRequest) ([]string, error) {
	hooks, err := b.BuildHooksPrompt(ctx, req)
	if err != nil {
		return nil, err
	}
	voice, err := b.BuildVoicePrompt(ctx, req)
	if err != nil {
		return nil, err
	}
	platform, err := b.BuildPlatformPrompt(ctx, req)
	if err != nil {
		return nil, err
	}
	return []string{hooks, voice, platform}, nil
}
