// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	chatfeature "github.com/dalemusser/communityhub/internal/app/features/chat"
	redemptionstore "github.com/dalemusser/communityhub/internal/app/store/redemptions"
	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/tasks"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Long-lived components created during Startup and referenced by
// BuildHandler and Shutdown.
var (
	scheduler *tasks.Scheduler
	chatHub   *chatfeature.Hub
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It seeds
// the admin account, starts the background scheduler, and brings up the
// chat hub.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := ensureAdmin(ctx, appCfg, deps, logger); err != nil {
		return err
	}

	scheduler = tasks.NewScheduler(logger)
	sweepJob := tasks.RedemptionExpiryJob(redemptionstore.New(deps.MongoDatabase), logger)
	if err := scheduler.Add(sweepJob); err != nil {
		return err
	}
	scheduler.Start()

	if deps.Redis != nil {
		chatHub = chatfeature.NewHub(deps.Redis, logger)
		chatHub.Start()
	}

	return nil
}

// ensureAdmin promotes the configured admin account, creating it with a
// pending credential if it does not exist yet.
func ensureAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminUsername == "" {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	users := userstore.New(deps.MongoDatabase)
	u, err := users.GetByUsername(opCtx, appCfg.AdminUsername)
	switch {
	case err == nil:
		if u.Role == models.RoleAdmin {
			return nil
		}
		if err := users.SetRole(opCtx, u.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("admin account promoted", zap.String("username", u.Username))
		return nil
	case errors.Is(err, userstore.ErrNotFound):
		created, err := users.Create(opCtx, models.User{
			Username:   appCfg.AdminUsername,
			LoginID:    appCfg.AdminLoginID,
			AuthMethod: models.AuthPending,
			Role:       models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		logger.Info("admin account created", zap.String("username", created.Username))
		return nil
	default:
		return err
	}
}
