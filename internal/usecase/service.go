package usecase

import (
	"fizzo-agent/internal/config"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Novels   adapters.NovelService
	Chapters adapters.ChapterService
}

type Params struct {
	fx.In

	Logger   *zap.Logger
	Config   *config.Config
	Browsers ports.BrowserFactory
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Novels:   factory.CreateNovelService(),
		Chapters: factory.CreateChapterService(),
	}
}
