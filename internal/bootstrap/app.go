package bootstrap

import (
	"time"

	"fizzo-agent/internal/browser"
	"fizzo-agent/internal/config"
	"fizzo-agent/internal/httpapi"
	"fizzo-agent/internal/ports"
	"fizzo-agent/internal/usecase"

	"go.uber.org/fx"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewFactory, fx.As(new(ports.BrowserFactory))),

			usecase.NewUsecase,

			httpapi.NewServer,
		),

		fx.Invoke(
			runServer,
		),

		fx.StartTimeout(10*time.Second),
	)
}
