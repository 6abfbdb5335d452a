package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"resumify/internal/auth"
)

// 浏览器直达预览页时可能携带的凭证 Cookie，按优先级排列。
var credentialCookies = []string{auth.AccessTokenCookie, "token", "resumify_auth"}

// ResolveAccessToken 从请求中提取访问令牌。
// 优先级：Authorization: Bearer 头 > 已知凭证 Cookie > 任意形如 JWT 的 Cookie。
// 最后一档兜底是为了容忍前端改名 Cookie 后旧页面仍能导出。
func ResolveAccessToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && parts[1] != "" {
			return parts[1]
		}
	}

	for _, name := range credentialCookies {
		if value, err := c.Cookie(name); err == nil && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}

	for _, cookie := range c.Request.Cookies() {
		if looksLikeJWT(cookie.Value) {
			return cookie.Value
		}
	}

	return ""
}

// looksLikeJWT 粗略判断值是否为三段式 JWT。
func looksLikeJWT(value string) bool {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}
