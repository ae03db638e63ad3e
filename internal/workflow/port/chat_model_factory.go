package port

import (
	"context"

	"github.com/cloudwego/eino/components/model"
)

// ChatModelFactory 定义应用层对 LLM ChatModel 的最小依赖（port）。
// name 为空表示默认提供商。
type ChatModelFactory interface {
	Get(ctx context.Context, name string) (model.BaseChatModel, error)
	// HasCredential 提供商是否配置了凭证；未配置时调用方应降级而不是发起调用
	HasCredential(name string) bool
}
