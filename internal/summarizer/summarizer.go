// Package summarizer condenses note text through a pluggable provider
// Package summarizer 文本摘要，提供方可替换
package summarizer

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Summarizer 摘要接口
type Summarizer interface {
	// Name 提供方名称
	Name() string
	// Summarize 返回 text 的摘要
	Summarize(ctx context.Context, text string) (string, error)
}

// Config 摘要配置
type Config struct {
	// Provider 提供方: lead, openai
	Provider string `yaml:"provider" default:"lead"`
	// Model openai 模型
	Model string `yaml:"model" default:"gpt-4o-mini"`
	// BaseURL openai 兼容接口地址，为空时使用官方地址
	BaseURL string `yaml:"base-url"`
	// APIKey openai 密钥，为空时读取 OPENAI_API_KEY
	APIKey string `yaml:"api-key"`
	// MaxTokens 摘要最大 token 数
	MaxTokens int `yaml:"max-tokens" default:"256"`
	// LeadSentences lead 提供方保留的句子数
	LeadSentences int `yaml:"lead-sentences" default:"3"`
}

// ErrEmptySummary 上游返回空结果
var ErrEmptySummary = errors.New("summarizer returned no content")

// New builds the provider named by c.Provider
// New 根据配置创建摘要提供方
func New(c Config, lg *zap.Logger) (Summarizer, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	switch c.Provider {
	case "", "lead":
		return NewLead(c.LeadSentences), nil
	case "openai":
		return NewOpenAI(c, lg)
	}
	return nil, errors.Errorf("unsupported summarizer provider %q", c.Provider)
}
