package auth

// AccessTokenCookie 是浏览器侧携带访问令牌的 Cookie 名。
// 登录响应、凭证解析与导出管线的 Cookie 注入都使用这个名字。
const AccessTokenCookie = "access_token"
