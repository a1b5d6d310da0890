// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down background work and connections, in reverse
// order of startup: scheduler, chat hub, Redis, then MongoDB.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if scheduler != nil {
		logger.Info("stopping task scheduler")
		if err := scheduler.Stop(ctx); err != nil {
			logger.Error("scheduler stop failed", zap.Error(err))
		}
	}

	if chatHub != nil {
		logger.Info("stopping chat hub")
		if err := chatHub.Stop(ctx); err != nil {
			logger.Error("chat hub stop failed", zap.Error(err))
		}
	}

	if deps.Redis != nil {
		if err := deps.Redis.Close(); err != nil {
			logger.Error("redis close failed", zap.Error(err))
		}
	}

	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
