package ai

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider 通过 OpenAI 兼容接口完成文本生成。
// BaseURL 可指向任何兼容部署（官方、代理或自托管网关）。
type OpenAIProvider struct {
	client *openai.Client
	model  openai.ChatModel
}

// NewOpenAIProvider 构造 OpenAI Provider。baseURL 为空时使用官方端点。
func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

// Complete 发送单轮对话并返回首个补全。
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model: openai.F(p.model),
	}
	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
