package summarizer

import (
	"context"
	"os"
	"strings"

	"github.com/haierkeys/fast-note-link-service/pkg/logger"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = "You summarize personal notes. Reply with a concise summary of the user's text " +
	"in the same language, without preamble."

// OpenAI summarizes through an OpenAI-compatible chat completion endpoint
// OpenAI 通过兼容 OpenAI 的对话接口生成摘要
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// NewOpenAI 创建 OpenAI 摘要提供方
func NewOpenAI(c Config, lg *zap.Logger) (*OpenAI, error) {
	apiKey := c.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" && c.BaseURL == "" {
		return nil, errors.New("openai summarizer requires api-key or OPENAI_API_KEY")
	}

	config := openai.DefaultConfig(apiKey)
	if c.BaseURL != "" {
		config.BaseURL = strings.TrimRight(c.BaseURL, "/")
	}
	if lg == nil {
		lg = zap.NewNop()
	}

	return &OpenAI{
		client:    openai.NewClientWithConfig(config),
		model:     c.Model,
		maxTokens: c.MaxTokens,
		logger:    lg,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Summarize sends one chat completion; failures are returned as-is, never retried
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   o.maxTokens,
		Temperature: 0.2,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		o.logger.Warn("openai summarize failed",
			zap.String(logger.FieldProvider, o.Name()),
			zap.String("model", o.model),
			zap.Error(err))
		return "", errors.Wrap(err, "openai chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptySummary
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", ErrEmptySummary
	}
	return summary, nil
}

var _ Summarizer = (*OpenAI)(nil)
