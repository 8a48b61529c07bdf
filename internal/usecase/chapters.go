package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"fizzo-agent/internal/config"
	"fizzo-agent/internal/entity"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/selector"
	"fizzo-agent/pkg/apperr"
	"fizzo-agent/pkg/logg"
	"fizzo-agent/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	chapterServiceName = "ChapterService"
	chapterTracer      = "usecase.chapters"
)

type ChapterService struct {
	config   *config.Config
	logger   *zap.Logger
	browsers ports.BrowserFactory
	tracer   trace.Tracer
}

type ChapterServiceParams struct {
	fx.In

	Config   *config.Config
	Logger   *zap.Logger
	Browsers ports.BrowserFactory
}

func NewChapterService(params ChapterServiceParams) *ChapterService {
	return &ChapterService{
		config:   params.Config,
		logger:   params.Logger.With(zap.String(logg.Layer, chapterServiceName)),
		browsers: params.Browsers,
		tracer:   otel.Tracer(chapterTracer),
	}
}

// PublishChapter logs in, opens the chapter editor for the requested novel
// and publishes the draft. Length bounds are enforced before any browser
// work. Like the novel list, the envelope is the only outcome and the
// browser is released on every path.
func (s *ChapterService) PublishChapter(ctx context.Context, creds entity.Credentials, draft entity.ChapterDraft) (result *entity.ChapterPublishResult) {
	const op = "PublishChapter"
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
			result = entity.ChapterPublishFailure(fmt.Sprintf("internal error: %v", r))
		}
	}()

	if message, ok := s.validateDraft(creds, draft); !ok {
		return entity.ChapterPublishFailure(message)
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

		return entity.ChapterPublishFailure(err.Error())
	}

	flow := newLoginFlow(s.config, logger, s.tracer, browser, "fizzo_publish")

	step.AddEvent("logging in")

	if err := flow.Run(ctx, creds); err != nil {
		opErr = err

		return entity.ChapterPublishFailure(loginFailedMessage)
	}

	resolver := flow.resolver

	if draft.NovelID != "" {
		step.AddEvent("selecting novel")
		s.selectNovel(ctx, resolver, draft.NovelID)
	}

	// The editor is mandatory; everything before publish confirmation that
	// cannot be found past this point fails the operation.
	step.AddEvent("opening chapter editor")

	if !resolver.ResolveAndClick(ctx, selector.NewChapterButton) {
		opErr = apperr.Wrap(op, apperr.CodeElementNotFound, errors.New("new chapter button not found"), map[string]any{
			apperr.MetaReason: "editor_not_found",
			apperr.MetaStage:  apperr.StagePublish,
		})

		return entity.ChapterPublishFailure("could not open chapter editor")
	}

	time.Sleep(s.config.FizzoConfig.FormSettleDelay)

	step.AddEvent("filling chapter")

	if !resolver.ResolveAndFill(ctx, selector.ChapterTitleField, draft.Title) {
		logger.Warn("Chapter title field not found, continuing without title")
	}

	if !resolver.ResolveAndFill(ctx, selector.ChapterContentField, draft.Content) {
		opErr = apperr.Wrap(op, apperr.CodeElementNotFound, errors.New("chapter content field not found"), map[string]any{
			apperr.MetaReason: "content_field_not_found",
			apperr.MetaStage:  apperr.StagePublish,
		})

		return entity.ChapterPublishFailure("could not find chapter content field")
	}

	// Let the editor auto-save before publishing.
	time.Sleep(s.config.FizzoConfig.FormSettleDelay)

	step.AddEvent("publishing chapter")

	published := resolver.ResolveAndClick(ctx, selector.PublishControl)
	if !published {
		logger.Warn("Publish control not found, chapter may remain a draft")
	}

	time.Sleep(s.config.FizzoConfig.LoginSettleDelay)

	_, confirmed := resolver.Resolve(ctx, selector.PublishConfirmation)

	logger.Info("Chapter publish finished",
		zap.Bool("published", published),
		zap.Bool("confirmed", confirmed))

	return &entity.ChapterPublishResult{
		Success:       true,
		ChapterTitle:  draft.Title,
		ContentLength: utf8.RuneCountInString(draft.Content),
		Published:     published,
		Confirmed:     confirmed,
	}
}

func (s *ChapterService) validateDraft(creds entity.Credentials, draft entity.ChapterDraft) (string, bool) {
	if !creds.Valid() {
		return missingCredentialsMessage, false
	}

	if draft.Title == "" || draft.Content == "" {
		return "chapter title and content are required", false
	}

	length := utf8.RuneCountInString(draft.Content)

	if length < s.config.FizzoConfig.MinChapterLength {
		return fmt.Sprintf("chapter content must be at least %d characters", s.config.FizzoConfig.MinChapterLength), false
	}

	if length > s.config.FizzoConfig.MaxChapterLength {
		return fmt.Sprintf("chapter content must be less than %d characters", s.config.FizzoConfig.MaxChapterLength), false
	}

	return "", true
}

// selectNovel steers the dashboard to the requested novel. Best-effort: when
// the novel cannot be located the site's default novel is used, matching how
// the dashboard behaves for single-novel accounts.
func (s *ChapterService) selectNovel(ctx context.Context, resolver *selector.Resolver, novelID string) {
	logger := s.logger.With(zap.String(logg.NovelID, novelID))

	direct := selector.CandidateSet{
		Role: "novel selector",
		Queries: []string{
			fmt.Sprintf(`[data-novel-id="%s"]`, novelID),
			fmt.Sprintf(`a[href*="novel/%s"]`, novelID),
			`select.novel-selector`,
		},
	}

	if resolver.ResolveAndClick(ctx, direct) {
		logger.Info("Novel selected")
		time.Sleep(s.config.FizzoConfig.ClickSettleDelay)

		return
	}

	// Second chance through the story menu.
	if !resolver.ResolveAndClick(ctx, selector.StoryInfoMenu) {
		logger.Warn("Novel not found, using default novel")

		return
	}

	time.Sleep(s.config.FizzoConfig.ClickSettleDelay)

	inMenu := selector.CandidateSet{
		Role: "novel menu item",
		Queries: []string{
			fmt.Sprintf(`[data-id="%s"]`, novelID),
			fmt.Sprintf(`[data-novel-id="%s"]`, novelID),
			fmt.Sprintf(`a[href*="%s"]`, novelID),
		},
	}

	if resolver.ResolveAndClick(ctx, inMenu) {
		logger.Info("Novel selected from story menu")
		time.Sleep(s.config.FizzoConfig.ClickSettleDelay)

		return
	}

	logger.Warn("Novel not found in story menu, using default novel")
}
