package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/ports"
	"fizzo-agent/pkg/apperr"
	"fizzo-agent/pkg/logg"
	"fizzo-agent/pkg/tracing"

	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	browserManagerName = "BrowserManager"
	browserTracer      = "browser.manager"

	actionTimeout = 15000
	fillTimeout   = 5000
)

// launchArgs keep headless chromium alive in constrained containers.
var launchArgs = []string{
	"--no-sandbox",
	"--disable-setuid-sandbox",
	"--disable-dev-shm-usage",
	"--disable-accelerated-2d-canvas",
	"--no-first-run",
	"--no-zygote",
	"--disable-gpu",
}

// Manager drives one Playwright page. One Manager serves exactly one
// invocation: Launch at the start, Close on every exit path.
type Manager struct {
	config     *config.Config
	logger     *zap.Logger
	tracer     trace.Tracer
	playwright *playwright.Playwright
	browser    playwright.Browser
	page       playwright.Page
	ready      bool
}

func NewManager(conf *config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		config: conf,
		logger: logger.With(zap.String(logg.Layer, browserManagerName)),
		tracer: otel.Tracer(browserTracer),
		ready:  false,
	}
}

func (m *Manager) Launch(ctx context.Context) (err error) {
	const op = "Launch"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Launching browser")
	step.AddEvent("installing playwright")

	err = playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_install_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}

	step.AddEvent("starting playwright")

	pw, err := playwright.Run()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "playwright_start_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.playwright = pw

	browserOptions := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.config.BrowserConfig.Headless),
		SlowMo:   playwright.Float(float64(m.config.BrowserConfig.SlowMo)),
		Args:     launchArgs,
	}

	browser, err := pw.Chromium.Launch(browserOptions)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "browser_launch_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.browser = browser

	page, err := browser.NewPage()
	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "page_create_failed",
			apperr.MetaStage:  apperr.StageBrowser,
		})
	}
	m.page = page

	// The mobile variant of the site renders the simpler login form.
	if err := page.SetExtraHTTPHeaders(map[string]string{
		"User-Agent": m.config.BrowserConfig.UserAgent,
	}); err != nil {
		logger.Warn("Failed to set user agent", zap.Error(err))
	}

	m.ready = true
	logger.Info("Browser launched successfully")

	return nil
}

func (m *Manager) Close(ctx context.Context) (err error) {
	const op = "Close"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	logger.Info("Closing browser")

	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}

	if m.playwright != nil {
		if err := m.playwright.Stop(); err != nil {
			return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
				apperr.MetaReason: "playwright_stop_failed",
			})
		}
	}

	m.ready = false
	logger.Info("Browser closed")

	return nil
}

func (m *Manager) Navigate(ctx context.Context, url string) (err error) {
	const op = "Navigate"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.URL, url))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("url", url))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	step.AddEvent("navigating to URL")

	_, err = m.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(m.config.BrowserConfig.Timeout)),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	})

	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "goto_failed",
			apperr.MetaStage:  apperr.StageNavigation,
			apperr.MetaURL:    url,
		})
	}

	step.AddEvent("navigation completed")

	return nil
}

// IsVisible reports whether an element matching the selector is visible
// within the timeout. Query errors count as a negative answer; the caller's
// next candidate is the recovery path.
func (m *Manager) IsVisible(ctx context.Context, selector string, timeoutMs int) bool {
	if !m.ready {
		return false
	}

	_, err := m.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(timeoutMs)),
		State:   playwright.WaitForSelectorStateVisible,
	})

	return err == nil
}

func (m *Manager) Click(ctx context.Context, selector string) (err error) {
	const op = "Click"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	step.AddEvent("clicking element")

	err = m.page.Click(selector, playwright.PageClickOptions{
		Timeout: playwright.Float(actionTimeout),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:   "click_failed",
			apperr.MetaStage:    apperr.StageInteraction,
			apperr.MetaSelector: selector,
		})
	}

	step.AddEvent("click completed")

	return nil
}

func (m *Manager) Fill(ctx context.Context, selector, value string) (err error) {
	const op = "Fill"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	step.AddEvent("waiting for element")

	_, err = m.page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(fillTimeout),
		State:   playwright.WaitForSelectorStateVisible,
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeTimeout, err, map[string]any{
			apperr.MetaReason:   "wait_selector_timeout",
			apperr.MetaSelector: selector,
		})
	}

	step.AddEvent("filling field")

	err = m.page.Fill(selector, value, playwright.PageFillOptions{
		Timeout: playwright.Float(fillTimeout),
	})
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason:   "fill_failed",
			apperr.MetaStage:    apperr.StageInteraction,
			apperr.MetaSelector: selector,
		})
	}

	step.AddEvent("fill completed")

	return nil
}

func (m *Manager) Press(ctx context.Context, key string) (err error) {
	const op = "Press"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("key", key))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	step.AddEvent("pressing key")

	err = m.page.Keyboard().Press(key)
	if err != nil {
		return apperr.Wrap(op, apperr.CodeActionFailed, err, map[string]any{
			apperr.MetaReason: "press_failed",
			apperr.MetaStage:  apperr.StageInteraction,
		})
	}

	if key == "Enter" {
		time.Sleep(1 * time.Second)
	}

	step.AddEvent("press completed")

	return nil
}

func (m *Manager) QueryAll(ctx context.Context, selector string) (elements []ports.Element, err error) {
	const op = "QueryAll"
	logger := m.logger.With(zap.String(logg.Operation, op), zap.String(logg.Selector, selector))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op, attribute.String("selector", selector))
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return nil, apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	handles, err := m.page.QuerySelectorAll(selector)
	if err != nil {
		return nil, apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason:   "query_failed",
			apperr.MetaSelector: selector,
		})
	}

	elements = make([]ports.Element, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, &element{handle: handle})
	}

	return elements, nil
}

func (m *Manager) CurrentURL(ctx context.Context) string {
	if !m.ready {
		return ""
	}

	return m.page.URL()
}

func (m *Manager) Screenshot(ctx context.Context, path string) (err error) {
	const op = "Screenshot"
	logger := m.logger.With(zap.String(logg.Operation, op))

	ctx, step := tracing.StartSpan(ctx, m.tracer, logger, op)
	defer func() {
		step.End(err)
	}()

	if !m.ready {
		return apperr.WrapErrorWithReason(op, apperr.CodeBrowserNotReady, "browser_not_ready")
	}

	_, err = m.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(false),
		Type:     playwright.ScreenshotTypeJpeg,
		Quality:  playwright.Int(60),
	})

	if err != nil {
		return apperr.Wrap(op, apperr.CodeInternal, err, map[string]any{
			apperr.MetaReason: "screenshot_failed",
			apperr.MetaStage:  apperr.StageScreenshot,
		})
	}

	return nil
}

func (m *Manager) IsReady() bool {
	return m.ready
}

// element adapts a Playwright handle to the ports.Element interface.
type element struct {
	handle playwright.ElementHandle
}

func (e *element) GetAttribute(name string) (string, error) {
	return e.handle.GetAttribute(name)
}

func (e *element) TextContent() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}

func (e *element) Query(selector string) (ports.Element, error) {
	handle, err := e.handle.QuerySelector(selector)
	if err != nil {
		return nil, err
	}

	if handle == nil {
		return nil, fmt.Errorf("no element matching %q", selector)
	}

	return &element{handle: handle}, nil
}

func (e *element) Fill(value string) error {
	return e.handle.Fill(value)
}

func (e *element) Click() error {
	return e.handle.Click()
}
