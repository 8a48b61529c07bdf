package bootstrap

import (
	"context"

	"fizzo-agent/internal/httpapi"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func runServer(lc fx.Lifecycle, server *httpapi.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting fizzo automation service")

			go func() {
				if err := server.Start(); err != nil {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down fizzo automation service")

			if err := server.Stop(ctx); err != nil {
				logger.Error("Failed to stop HTTP server", zap.Error(err))
			}

			return nil
		},
	})
}
