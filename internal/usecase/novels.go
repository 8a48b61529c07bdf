package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/selector"
	"fizzo-agent/pkg/logg"
	"fizzo-agent/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	novelServiceName = "NovelService"
	novelTracer      = "usecase.novels"

	missingCredentialsMessage = "email and password are required"
)

// idAttributes are the data attributes consulted when an item's href yields
// no identifier.
var idAttributes = []string{"data-id", "data-novel-id"}

type NovelService struct {
	config   *config.Config
	logger   *zap.Logger
	browsers ports.BrowserFactory
	tracer   trace.Tracer
}

type NovelServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Browsers ports.BrowserFactory
}

func NewNovelService(params NovelServiceParams) *NovelService {
	return &NovelService{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, novelServiceName)),
		browsers: params.Browsers,
		tracer:   otel.Tracer(novelTracer),
	}
}

// FetchNovelList logs in as the given account and returns its novels. The
// returned envelope is the sole outcome: validation failures, exhausted
// login retries and browser faults all fold into it, and the browser is
// released on every path.
func (s *NovelService) FetchNovelList(ctx context.Context, creds entity.Credentials) (result *entity.NovelListResult) {
	const op = "FetchNovelList"
	logger := s.logger.With(
		zap.String(logg.Operation, op),
		zap.String(logg.User, logg.MaskIdentity(creds.Identity)))

	var opErr error

	ctx, step := tracing.StartSpan(ctx, s.tracer, logger, op)
	defer func() {
		step.End(opErr)
	}()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered from panic", zap.Any("panic", r))
			result = entity.NovelListFailure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	if !creds.Valid() {
		return entity.NovelListFailure(missingCredentialsMessage)
	}

	browser := s.browsers.NewBrowser()
	defer func() {
		if err := browser.Close(ctx); err != nil {
			logger.Warn("Failed to close browser", zap.Error(err))
		}
	}()

	step.AddEvent("launching browser")

	if err := browser.Launch(ctx); err != nil {
		opErr = err
		logger.Error("Browser launch failed", zap.Error(err))

		return entity.NovelListFailure(err.Error())
	}

	flow := newLoginFlow(s.config, logger, s.tracer, browser, "fizzo")

	step.AddEvent("logging in")

	if err := flow.Run(ctx, creds); err != nil {
		opErr = err

		return entity.NovelListFailure(loginFailedMessage)
	}

	step.AddEvent("extracting novels")

	novels := s.extractNovels(ctx, browser, flow.resolver)
	logger.Info("Novel extraction finished", zap.Int(logg.Count, len(novels)))

	return entity.NovelListSuccess(novels)
}

// extractNovels runs the post-login pipeline: optional navigation to the
// stories view, list discovery over the item candidates, per-item id/title
// derivation, and first-seen dedup. Finding nothing is a valid outcome.
func (s *NovelService) extractNovels(ctx context.Context, browser ports.BrowserManager, resolver *selector.Resolver) []entity.Novel {
	const op = "extractNovels"
	logger := s.logger.With(zap.String(logg.Operation, op))

	// Dashboards sometimes embed the list directly, so a missing menu is
	// not an error.
	if resolver.ResolveAndClick(ctx, selector.StoryInfoMenu) {
		logger.Info("Navigated to story list")
		time.Sleep(s.config.FizzoConfig.ClickSettleDelay)
	} else {
		logger.Info("Story menu not found, scraping current view")
	}

	s.snapshotList(ctx, browser)

	query, items := resolver.ResolveAll(ctx, selector.NovelItems)
	if len(items) == 0 {
		logger.Info("No novel items matched any candidate")

		return []entity.Novel{}
	}

	logger.Info("Novel items found",
		zap.String(logg.Selector, query),
		zap.Int(logg.Count, len(items)))

	novels := make([]entity.Novel, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		novel, ok := novelFromElement(item)
		if !ok {
			// Malformed items skip only themselves.
			continue
		}

		if _, dup := seen[novel.ID]; dup {
			continue
		}
		seen[novel.ID] = struct{}{}

		logger.Info("Novel found",
			zap.String(logg.NovelID, novel.ID),
			zap.String("title", novel.Title))
		novels = append(novels, novel)
	}

	return novels
}

func (s *NovelService) snapshotList(ctx context.Context, browser ports.BrowserManager) {
	if !s.config.BrowserConfig.Screenshots {
		return
	}

	path := s.config.BrowserConfig.ScreenshotDir + "/fizzo_novel_list.jpg"
	if err := browser.Screenshot(ctx, path); err != nil {
		s.logger.Debug("Snapshot capture failed", zap.Error(err))
	}
}

// novelFromElement derives (id, title) from one matched item. An item that
// yields no identifier or an empty title is dropped, not an error.
func novelFromElement(item ports.Element) (entity.Novel, bool) {
	id := identifierOf(item)
	if id == "" {
		return entity.Novel{}, false
	}

	title := titleOf(item)
	if title == "" {
		return entity.Novel{}, false
	}

	return entity.Novel{ID: id, Title: title}, true
}

// identifierOf prefers a path-segment id from the item's href, then falls
// back to the known data attributes.
func identifierOf(item ports.Element) string {
	if href, err := item.GetAttribute("href"); err == nil && href != "" {
		if id := identifierFromHref(href); id != "" {
			return id
		}
	}

	for _, attr := range idAttributes {
		if id, err := item.GetAttribute(attr); err == nil && id != "" {
			return id
		}
	}

	return ""
}

// identifierFromHref parses the two known path shapes,
// ".../novel/<id>/..." and ".../story/<id>/...".
func identifierFromHref(href string) string {
	for _, marker := range []string{"novel/", "story/"} {
		idx := strings.Index(href, marker)
		if idx < 0 {
			continue
		}

		rest := href[idx+len(marker):]
		if end := strings.IndexByte(rest, '/'); end >= 0 {
			rest = rest[:end]
		}

		if rest != "" {
			return rest
		}
	}

	return ""
}

// titleOf prefers a nested title element, then the item's own text.
func titleOf(item ports.Element) string {
	if titleEl, err := item.Query(selector.NovelTitle); err == nil && titleEl != nil {
		if text, err := titleEl.TextContent(); err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text)
		}
	}

	text, err := item.TextContent()
	if err != nil {
		return ""
	}

	return strings.TrimSpace(text)
}
