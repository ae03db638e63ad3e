// Package genie 实现 hook 生成流水线：prompt 构建、并发调用、输出恢复与降级
package genie

import (
	"context"
	"errors"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/schema"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"hookgenie-api/internal/config"
	einoobs "hookgenie-api/internal/observability/eino"
	"hookgenie-api/internal/workflow/node"
	"hookgenie-api/internal/workflow/port"
	apperrors "hookgenie-api/pkg/errors"
	"hookgenie-api/pkg/tracer"
)

// CallResult 单次模型调用的结果，Text 与 Err 互斥
type CallResult struct {
	Text string
	Err  error
}

// Gateway 把每条 prompt 作为一次独立的模型调用并发发出，全部结束后返回。
// 不重试；单个调用失败不会取消其它调用。
type Gateway struct {
	factory  port.ChatModelFactory
	provider string
}

func NewGateway(factory port.ChatModelFactory, cfg *config.Config) *Gateway {
	provider := ""
	if cfg != nil {
		provider = cfg.LLM.DefaultProvider
	}
	return &Gateway{factory: factory, provider: provider}
}

// HasCredential 是否配置了上游凭证
func (g *Gateway) HasCredential() bool {
	return g.factory.HasCredential(g.provider)
}

// Dispatch 每条 prompt 一次调用，结果按 prompt 顺序返回
func (g *Gateway) Dispatch(ctx context.Context, prompts ...string) []CallResult {
	ctx, span := tracer.Start(ctx, "genie.Gateway.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.Int("genie.calls", len(prompts)))

	results := make([]CallResult, len(prompts))

	chatModel, err := g.factory.Get(ctx, g.provider)
	if err != nil {
		err = classifyCallError(err)
		tracer.RecordError(span, err)
		for i := range results {
			results[i].Err = err
		}
		return results
	}

	provider := g.provider
	if provider == "" {
		provider = "default"
	}
	ctx = einoobs.WithWorkflowProvider(ctx, einoobs.WorkflowFromContext(ctx), provider)

	// 不使用 errgroup.WithContext：一个调用失败不应取消其它调用
	var eg errgroup.Group
	for i, p := range prompts {
		eg.Go(func() error {
			callCtx := einocallbacks.InitCallbacks(ctx, &einocallbacks.RunInfo{
				Name:      "genie.call",
				Type:      provider,
				Component: components.ComponentOfChatModel,
			})
			msg, err := chatModel.Generate(callCtx, []*schema.Message{schema.UserMessage(p)})
			if err != nil {
				results[i].Err = classifyCallError(err)
				return nil
			}
			if msg == nil {
				results[i].Err = apperrors.ErrMalformedResponse.WithDetail("empty model message")
				return nil
			}
			results[i].Text = msg.Content
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("genie.failed_calls", failed))
	return results
}

// classifyCallError 把上游错误归类到配额、凭证或通用调用失败
func classifyCallError(err error) error {
	switch {
	case err == nil:
		return nil
	case node.IsQuotaExceededError(err):
		return apperrors.ErrQuotaExceeded.WithError(err)
	case node.IsCredentialError(err):
		return apperrors.ErrCredentialMissing.WithError(err)
	default:
		return apperrors.ErrLLMCallFailed.WithError(err)
	}
}

// FirstError 按 配额 > 凭证 > 其它 的优先级返回一个错误
func FirstError(results []CallResult) error {
	var credential, other error
	for _, r := range results {
		switch {
		case r.Err == nil:
		case isQuota(r.Err):
			return r.Err
		case isCredential(r.Err):
			if credential == nil {
				credential = r.Err
			}
		default:
			if other == nil {
				other = r.Err
			}
		}
	}
	if credential != nil {
		return credential
	}
	return other
}

func isQuota(err error) bool {
	return errors.Is(err, apperrors.ErrQuotaExceeded)
}

func isCredential(err error) bool {
	return errors.Is(err, apperrors.ErrCredentialMissing)
}
