package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service 是表单侧消费的草拟能力。所有方法都不返回 error。
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService 构造 Service。
func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// ExperienceInput 描述一段需要草拟描述的工作经历。
type ExperienceInput struct {
	Position string `json:"position"`
	Company  string `json:"company"`
}

// SuggestSummary 草拟个人摘要（2-3 句纯文本）。
func (s *Service) SuggestSummary(ctx context.Context, headline string, skills []string) string {
	prompt := fmt.Sprintf(
		"Write a concise professional resume summary (2-3 sentences, plain text, no preamble) for a %s.",
		orDefault(headline, "professional"),
	)
	if len(skills) > 0 {
		prompt += " Key skills: " + strings.Join(skills, ", ") + "."
	}
	return s.complete(ctx, "summary", prompt)
}

// SuggestExperience 为单段工作经历草拟 <ul><li> 形式的要点描述。
// 返回的 HTML 片段与编辑器产出的子集一致，富文本规整器能够消化。
func (s *Service) SuggestExperience(ctx context.Context, input ExperienceInput) string {
	prompt := fmt.Sprintf(
		"Write 3-4 resume bullet points for a %s at %s. "+
			"Respond with an HTML unordered list only: <ul><li>...</li></ul>. No preamble.",
		orDefault(input.Position, "professional"),
		orDefault(input.Company, "a company"),
	)
	return s.complete(ctx, "experience", prompt)
}

// SuggestExperienceBatch 逐条顺序请求，不并发，避免触发远端限流。
func (s *Service) SuggestExperienceBatch(ctx context.Context, inputs []ExperienceInput) []string {
	results := make([]string, 0, len(inputs))
	for _, input := range inputs {
		results = append(results, s.SuggestExperience(ctx, input))
	}
	return results
}

// SuggestSkills 草拟技能列表。失败时返回单元素的错误文案，
// 保持字符串数组的统一契约。
func (s *Service) SuggestSkills(ctx context.Context, headline string) []string {
	prompt := fmt.Sprintf(
		"List 8-10 relevant resume skills for a %s. "+
			"Respond with a single comma-separated line, no numbering, no preamble.",
		orDefault(headline, "professional"),
	)
	result := s.complete(ctx, "skills", prompt)
	if IsErrorResult(result) {
		return []string{result}
	}

	parts := strings.Split(result, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	return skills
}

func (s *Service) complete(ctx context.Context, kind, prompt string) string {
	result, err := s.provider.Complete(ctx, prompt)
	if err != nil {
		s.logger.Warn("ai completion failed",
			slog.String("provider", s.provider.Name()),
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		return categorize(err)
	}
	return strings.TrimSpace(result)
}

func orDefault(value, fallbackValue string) string {
	if strings.TrimSpace(value) == "" {
		return fallbackValue
	}
	return value
}
