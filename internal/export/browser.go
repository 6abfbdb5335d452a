// Package export 驱动无头浏览器把渲染好的简历预览页导出为 PDF。
package export

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Cookie 是需要随导出请求传播到浏览器的认证 Cookie。
type Cookie struct {
	Name   string
	Value  string
	Domain string
	Path   string
}

// PageRequest 描述一次导出：目标预览页与调用方的会话 Cookie。
type PageRequest struct {
	URL     string
	Cookies []Cookie
}

// Browser 抽象无头浏览器能力，便于替换为池化实现或在测试中打桩。
// 实现必须保证浏览器进程在任何退出路径上都被回收。
type Browser interface {
	RenderPDF(ctx context.Context, req PageRequest) ([]byte, error)
}

var (
	// ErrRenderTimeout 表示导航或等待内容就绪在重试耗尽后仍超时。
	ErrRenderTimeout = errors.New("render timeout")
	// ErrBrowser 表示浏览器启动或 PDF 生成本身失败，不做自动重试。
	ErrBrowser = errors.New("browser failure")
)

var nonFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Filename 由简历标题与 ID 派生下载文件名，剔除所有非字母数字字符。
func Filename(title string, id uint) string {
	sanitized := nonFilenameRe.ReplaceAllString(title, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		sanitized = "resume"
	}
	return sanitized + "_" + strconv.FormatUint(uint64(id), 10) + ".pdf"
}
