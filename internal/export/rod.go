package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// 内容就绪选择器，按优先级排列；最后一个是“页面渲染出了任何内容”
// 的兜底。全部落空时继续导出（尽力而为，不致命）。
var contentSelectors = []string{
	"#resume-preview",
	"[data-resume-preview]",
	".resume-preview",
	"body > *",
}

const (
	navigationAttempts = 3
	navigationBackoff  = 2 * time.Second
)

// printCleanupCSS 隐藏所有非简历元素并关掉分页不可靠的布局特性。
const printCleanupCSS = `
  nav, aside.app-sidebar, header.app-header, footer,
  .floating-controls, .tour-overlay, .toast-container {
    display: none !important;
  }
  html, body {
    margin: 0 !important;
    padding: 0 !important;
    background: white !important;
  }
  #resume-preview, [data-resume-preview] {
    display: block !important;
    box-shadow: none !important;
    margin: 0 auto !important;
  }
  #resume-preview .page, [data-resume-preview] .page {
    display: block !important;
  }
  @media print {
    * {
      -webkit-print-color-adjust: exact !important;
      print-color-adjust: exact !important;
    }
  }
`

// RodBrowser 基于 go-rod 的默认实现：每次导出独占一个浏览器进程。
// 冷启动成本是已知的扩展性短板，池化实现可以替换本类型而不动管线。
type RodBrowser struct {
	logger          *slog.Logger
	browserTimeout  time.Duration
	navTimeout      time.Duration
	selectorTimeout time.Duration
	pdfTimeout      time.Duration
}

// NewRodBrowser 用默认超时构造 RodBrowser。
func NewRodBrowser(logger *slog.Logger) *RodBrowser {
	return &RodBrowser{
		logger:          logger,
		browserTimeout:  90 * time.Second,
		navTimeout:      30 * time.Second,
		selectorTimeout: 15 * time.Second,
		pdfTimeout:      60 * time.Second,
	}
}

// RenderPDF 实现 Browser。浏览器进程在每条退出路径上都会被关闭。
func (b *RodBrowser) RenderPDF(ctx context.Context, req PageRequest) ([]byte, error) {
	log := b.logger.With(slog.String("url", req.URL))
	log.Info("export: launching headless browser")

	launch := launcher.New().
		Headless(true).
		NoSandbox(true)

	if path, ok := launcher.LookPath(); ok {
		launch = launch.Bin(path)
	}

	browserURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: launch chromium: %v", ErrBrowser, err)
	}
	defer launch.Cleanup()

	browser := rod.New().ControlURL(browserURL).Context(ctx).Timeout(b.browserTimeout)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: connect browser: %v", ErrBrowser, err)
	}
	defer func() {
		_ = browser.Close()
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: create page: %v", ErrBrowser, err)
	}

	if err := b.setCookies(page, req.Cookies); err != nil {
		return nil, fmt.Errorf("%w: propagate cookies: %v", ErrBrowser, err)
	}

	if err := b.navigateWithRetry(page, req.URL, log); err != nil {
		return nil, err
	}

	b.waitForContent(page, log)

	log.Info("export: injecting print-cleanup css")
	if err := page.AddStyleTag("", printCleanupCSS); err != nil {
		return nil, fmt.Errorf("%w: inject cleanup css: %v", ErrBrowser, err)
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: "print"}).Call(page); err != nil {
		return nil, fmt.Errorf("%w: set emulated media: %v", ErrBrowser, err)
	}

	data, err := b.printToPDF(page)
	if err != nil {
		return nil, err
	}

	log.Info("export: pdf generated", slog.Int("bytes", len(data)))
	return data, nil
}

func (b *RodBrowser) setCookies(page *rod.Page, cookies []Cookie) error {
	if len(cookies) == 0 {
		return nil
	}
	params := make([]*proto.NetworkCookieParam, 0, len(cookies))
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		params = append(params, &proto.NetworkCookieParam{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   path,
		})
	}
	return page.SetCookies(params)
}

// navigateWithRetry 对瞬时导航失败固定间隔重试，上限 3 次。
func (b *RodBrowser) navigateWithRetry(page *rod.Page, targetURL string, log *slog.Logger) error {
	var lastErr error
	for attempt := 1; attempt <= navigationAttempts; attempt++ {
		nav := page.Timeout(b.navTimeout)
		if lastErr = nav.Navigate(targetURL); lastErr == nil {
			if lastErr = nav.WaitLoad(); lastErr == nil {
				return nil
			}
		}
		log.Warn("export: navigation failed",
			slog.Int("attempt", attempt),
			slog.Any("error", lastErr),
		)
		if attempt < navigationAttempts {
			time.Sleep(navigationBackoff)
		}
	}
	return fmt.Errorf("%w: navigate after %d attempts: %v", ErrRenderTimeout, navigationAttempts, lastErr)
}

// waitForContent 在已知选择器之间竞速等待内容就绪。
// 超时不是致命错误：记录后照常导出。
func (b *RodBrowser) waitForContent(page *rod.Page, log *slog.Logger) {
	race := page.Timeout(b.selectorTimeout).Race()
	for _, sel := range contentSelectors {
		race = race.Element(sel)
	}
	if _, err := race.Do(); err != nil {
		log.Warn("export: no content selector matched, proceeding anyway", slog.Any("error", err))
		return
	}
	// 给异步渲染的字体与图片一个短暂的稳定窗口。
	_ = page.WaitIdle(3 * time.Second)
}

func (b *RodBrowser) printToPDF(page *rod.Page) ([]byte, error) {
	params := &proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      float64Ptr(8.27),
		PaperHeight:     float64Ptr(11.69),
		MarginTop:       float64Ptr(0.5),
		MarginBottom:    float64Ptr(0.5),
		MarginLeft:      float64Ptr(0.5),
		MarginRight:     float64Ptr(0.5),
	}
	reader, err := page.Timeout(b.pdfTimeout).PDF(params)
	if err != nil {
		return nil, fmt.Errorf("%w: print to pdf: %v", ErrBrowser, err)
	}
	defer func() {
		_ = reader.Close()
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: read pdf bytes: %v", ErrBrowser, err)
	}
	return data, nil
}

func float64Ptr(value float64) *float64 {
	return &value
}
