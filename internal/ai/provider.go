// Package ai 把两个可互换的文本生成服务收敛为同一个能力接口。
// 错误从不越过本包边界：一律转换为 "Error: ..." 前缀的字符串结果，
// 调用侧（表单 UI）只处理字符串或字符串数组，没有异常路径。
package ai

import (
	"context"
	"strings"
)

// Provider 是文本生成后端的最小能力：一段提示词换一段补全。
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// 用户可见的失败分类文案。
const (
	msgQuota       = "Error: AI quota exceeded. Please try again later."
	msgAuth        = "Error: AI service authentication failed. Check the API key."
	msgUnavailable = "Error: AI service is temporarily unavailable. Please retry."
	msgGeneric     = "Error: failed to generate content. Please try again."
)

// categorize 按错误消息内容归类为用户可见文案。
// 上游 SDK 的错误类型不稳定，消息匹配是这里唯一可依赖的信号。
func categorize(err error) string {
	if err == nil {
		return msgGeneric
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") || strings.Contains(msg, "429"):
		return msgQuota
	case strings.Contains(msg, "unauthorized") || strings.Contains(msg, "api key") ||
		strings.Contains(msg, "invalid_api_key") || strings.Contains(msg, "401"):
		return msgAuth
	case strings.Contains(msg, "500") || strings.Contains(msg, "502") ||
		strings.Contains(msg, "503") || strings.Contains(msg, "server"):
		return msgUnavailable
	default:
		return msgGeneric
	}
}

// IsErrorResult 判断一个生成结果是否为错误文案。
func IsErrorResult(result string) bool {
	return strings.HasPrefix(result, "Error: ")
}
