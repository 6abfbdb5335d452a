package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/yankeguo/zhipu"
)

// ZhipuProvider 是智谱 GLM 的实现，与 OpenAIProvider 可互换。
type ZhipuProvider struct {
	client *zhipu.Client
	model  string
}

// NewZhipuProvider 构造智谱 Provider。
func NewZhipuProvider(apiKey, model string) (*ZhipuProvider, error) {
	client, err := zhipu.NewClient(zhipu.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init zhipu client: %w", err)
	}
	if model == "" {
		model = "glm-4-flash"
	}
	return &ZhipuProvider{client: client, model: model}, nil
}

func (p *ZhipuProvider) Name() string { return "zhipu" }

// Complete 发送单轮对话并返回首个补全。
func (p *ZhipuProvider) Complete(ctx context.Context, prompt string) (string, error) {
	svc := p.client.ChatCompletion(p.model).AddMessage(zhipu.ChatCompletionMessage{
		Role:    zhipu.RoleUser,
		Content: prompt,
	})
	completion, err := svc.Do(ctx)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return completion.Choices[0].Message.Content, nil
}
