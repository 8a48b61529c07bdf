package usecase

import (
	"fizzo-agent/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateNovelService() adapters.NovelService {
	return NewNovelService(NovelServiceParams{
		Config:   f.deps.Config,
		Logger:   f.deps.Logger,
		Browsers: f.deps.Browsers,
	})
}

func (f *serviceFactory) CreateChapterService() adapters.ChapterService {
	return NewChapterService(ChapterServiceParams{
		Config:   f.deps.Config,
		Logger:   f.deps.Logger,
		Browsers: f.deps.Browsers,
	})
}
