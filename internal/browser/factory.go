package browser

import (
	"fizzo-agent/internal/config"
	"fizzo-agent/internal/ports"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Factory hands each invocation its own Manager. Invocations never share a
// page, so concurrent callers with distinct credentials stay independent.
type Factory struct {
	config *config.Config
	logger *zap.Logger
}

type FactoryParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
}

func NewFactory(params FactoryParams) *Factory {
	return &Factory{
		config: params.Config,
		logger: params.Logger,
	}
}

func (f *Factory) NewBrowser() ports.BrowserManager {
	return NewManager(f.config, f.logger)
}
