package genie

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"hookgenie-api/internal/application/quota"
	"hookgenie-api/internal/config"
	"hookgenie-api/internal/domain/entity"
	einoobs "hookgenie-api/internal/observability/eino"
	"hookgenie-api/internal/workflow/prompt"
	apperrors "hookgenie-api/pkg/errors"
	"hookgenie-api/pkg/logger"
	"hookgenie-api/pkg/metrics"
	"hookgenie-api/pkg/tracer"
)

// Service 生成流水线。所有失败都在内部恢复为降级结果，不向调用方返回错误。
type Service struct {
	builder  *prompt.Builder
	gateway  *Gateway
	governor *quota.UsageGovernor
	coalesce bool
	group    singleflight.Group
}

func NewService(builder *prompt.Builder, gateway *Gateway, governor *quota.UsageGovernor, cfg *config.Config) *Service {
	coalesce := true
	if cfg != nil {
		coalesce = cfg.Features.Coalescing.Enabled
	}
	return &Service{
		builder:  builder,
		gateway:  gateway,
		governor: governor,
		coalesce: coalesce,
	}
}

// Generate 生成 hooks、口播稿与平台内容
func (s *Service) Generate(ctx context.Context, sessionID string, req entity.GenerationRequest) entity.GenerationResult {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "genie.Service.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("genie.platform", string(req.Platform)),
		attribute.String("genie.goal", string(req.Goal)),
		attribute.String("genie.creator", string(req.CreatorStyle)),
	)

	result := s.generate(ctx, sessionID, req)

	outcome := outcomeLabel(result.Degraded)
	span.SetAttributes(attribute.String("genie.outcome", outcome))
	metrics.GenerationTotal.WithLabelValues("generate", outcome).Inc()
	metrics.GenerationDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	return result
}

func (s *Service) generate(ctx context.Context, sessionID string, req entity.GenerationRequest) entity.GenerationResult {
	if !s.gateway.HasCredential() {
		logger.Warn(ctx, "no LLM credential configured, returning placeholder", "degraded", entity.DegradedCredentialMissing)
		return placeholderResult()
	}

	reservation := s.governor.Reserve(ctx, sessionID)
	if !reservation.Reserved {
		logger.Warn(ctx, "daily usage soft limit reached", "degraded", entity.DegradedUsageConservation, "count", reservation.Count)
		return conservationResult(req.Script, reservation.Count, s.governor.NominalLimit())
	}

	if !s.coalesce {
		return s.run(ctx, req)
	}

	// 相同请求在途时共享一次调用；首个调用方取消不影响其它等待者
	runCtx := context.WithoutCancel(ctx)
	v, _, shared := s.group.Do(fingerprintKey(req), func() (any, error) {
		return s.run(runCtx, req), nil
	})
	if shared {
		metrics.GenerationCoalesced.Inc()
	}
	return cloneResult(v.(entity.GenerationResult))
}

func (s *Service) run(ctx context.Context, req entity.GenerationRequest) entity.GenerationResult {
	ctx = einoobs.WithWorkflowProvider(ctx, "genie.generate", "")

	prompts, err := s.builder.BuildGenerationPrompts(ctx, req)
	if err != nil {
		logger.Error(ctx, "failed to build prompts", err, "degraded", entity.DegradedGeneric)
		return genericResult()
	}

	results := s.gateway.Dispatch(ctx, prompts...)
	if err := FirstError(results); err != nil {
		return s.degrade(ctx, req.Script, err)
	}

	hooksText, voiceText, platformText := results[0].Text, results[1].Text, results[2].Text

	result := entity.GenerationResult{
		PolishedScript: ParseFreeform(voiceText),
	}
	if req.CreatorStyle.IsNone() {
		result.Hooks, _ = ParseHooks(hooksText)
	} else if hook, body, ok := ParseHookBody(hooksText); ok {
		result.CreatorStyle = &entity.CreatorStyleResult{Hook: hook, Body: body, Creator: req.CreatorStyle}
		result.Hooks = styleCreatedHooks(req.CreatorStyle)
	} else {
		result.Hooks, _ = ParseHooks(hooksText)
	}
	result.PlatformContent, _ = ParsePlatformContent(platformText, req.Platform)
	return result
}

// degrade 按错误类别返回对应的降级结果
func (s *Service) degrade(ctx context.Context, script string, err error) entity.GenerationResult {
	var result entity.GenerationResult
	switch {
	case errors.Is(err, apperrors.ErrQuotaExceeded):
		result = quotaExceededResult(script)
	case errors.Is(err, apperrors.ErrCredentialMissing):
		result = configurationResult(script)
	default:
		result = genericResult()
	}
	logger.Warn(ctx, "generation degraded", "degraded", result.Degraded, "error", err.Error())
	return result
}

// Trim 把内容裁剪到指定时长；失败时返回保留原文的降级内容
func (s *Service) Trim(ctx context.Context, req entity.TrimRequest) entity.PlatformContent {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "genie.Service.Trim")
	defer span.End()
	span.SetAttributes(attribute.String("genie.duration", string(req.Duration)))

	if req.Goal == "" {
		req.Goal = entity.GoalGoViral
	}
	if req.Platform == "" {
		req.Platform = entity.PlatformYouTubeShorts
	}

	content, outcome := s.trim(ctx, req)
	metrics.GenerationTotal.WithLabelValues("trim", outcome).Inc()
	metrics.GenerationDuration.WithLabelValues("trim").Observe(time.Since(start).Seconds())
	return content
}

func (s *Service) trim(ctx context.Context, req entity.TrimRequest) (entity.PlatformContent, string) {
	if !s.gateway.HasCredential() {
		logger.Warn(ctx, "no LLM credential configured, returning trim placeholder")
		return trimNoCredential(req.Content), string(entity.DegradedCredentialMissing)
	}

	ctx = einoobs.WithWorkflowProvider(ctx, "genie.trim", "")
	p, err := s.builder.BuildTrimPrompt(ctx, req)
	if err != nil {
		logger.Error(ctx, "failed to build trim prompt", err)
		return trimNoCredential(req.Content), string(entity.DegradedGeneric)
	}

	res := s.gateway.Dispatch(ctx, p)[0]
	if res.Err != nil {
		logger.Warn(ctx, "trim degraded", "error", res.Err.Error())
		if errors.Is(res.Err, apperrors.ErrQuotaExceeded) {
			return trimQuotaExceeded(req.Content), string(entity.DegradedQuotaExceeded)
		}
		return trimNoCredential(req.Content), string(entity.DegradedGeneric)
	}

	content, ok := ParsePlatformContent(res.Text, req.Platform)
	if !ok {
		return trimUnparsed(req.Content, req.Platform), "unparsed"
	}
	return content, "ok"
}

func outcomeLabel(kind entity.DegradedKind) string {
	if kind == entity.DegradedNone {
		return "ok"
	}
	return string(kind)
}

// fingerprintKey 在途合并的键
func fingerprintKey(req entity.GenerationRequest) string {
	sum := sha256.Sum256([]byte(req.Fingerprint()))
	return hex.EncodeToString(sum[:])
}

func cloneResult(r entity.GenerationResult) entity.GenerationResult {
	r.Hooks = cloneStrings(r.Hooks)
	r.PlatformContent.Hashtags = cloneStrings(r.PlatformContent.Hashtags)
	if r.CreatorStyle != nil {
		cs := *r.CreatorStyle
		r.CreatorStyle = &cs
	}
	return r
}
