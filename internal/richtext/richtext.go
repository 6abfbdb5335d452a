// Package richtext 负责把编辑器产出的富文本 HTML 规整为两种形态：
// 屏幕展示用的安全 HTML，以及 PDF 场景用的纯文本（带 "• " 项目符号）。
package richtext

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	liOpenRe     = regexp.MustCompile(`(?i)<li[^>]*>`)
	liCloseRe    = regexp.MustCompile(`(?i)</li\s*>`)
	ulRe         = regexp.MustCompile(`(?i)</?[uo]l[^>]*>`)
	pCloseRe     = regexp.MustCompile(`(?i)</p\s*>`)
	brRe         = regexp.MustCompile(`(?i)<br\s*/?>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	newlineRunRe = regexp.MustCompile(`\n[ \t\r]*(\n[ \t\r]*)+`)
)

// 编辑器只产出这个白名单内的标签，其余一律剥除。
var screenPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "ul", "ol", "li", "strong", "em", "u", "b", "i")
	return p
}()

// DecodeAndStripHTML 把富文本片段压平为纯文本。
// 先解码实体再剥标签，否则被编码过的标签会以字面文本残留。
// 对自身输出幂等：纯文本里不再含标签与实体。
func DecodeAndStripHTML(content string) string {
	if content == "" {
		return ""
	}

	// 按固定顺序解码六个实体。&amp; 排在 quot/#x27/#x2F 之前，
	// 前端二次编码的 "&amp;quot;" 会在同一趟内还原为引号。
	decoded := content
	decoded = strings.ReplaceAll(decoded, "&lt;", "<")
	decoded = strings.ReplaceAll(decoded, "&gt;", ">")
	decoded = strings.ReplaceAll(decoded, "&amp;", "&")
	decoded = strings.ReplaceAll(decoded, "&quot;", `"`)
	decoded = strings.ReplaceAll(decoded, "&#x27;", "'")
	decoded = strings.ReplaceAll(decoded, "&#x2F;", "/")

	text := liOpenRe.ReplaceAllString(decoded, "• ")
	text = liCloseRe.ReplaceAllString(text, "\n")
	text = ulRe.ReplaceAllString(text, "")
	text = pCloseRe.ReplaceAllString(text, "\n")
	text = brRe.ReplaceAllString(text, "\n")
	text = tagRe.ReplaceAllString(text, "")

	text = newlineRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// SanitizeHTML 返回可直接注入预览页的安全 HTML。
func SanitizeHTML(content string) string {
	if content == "" {
		return ""
	}
	return screenPolicy.Sanitize(content)
}
