// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/dalemusser/communityhub/internal/app/features/auth"
	authgooglefeature "github.com/dalemusser/communityhub/internal/app/features/authgoogle"
	businessesfeature "github.com/dalemusser/communityhub/internal/app/features/businesses"
	chatfeature "github.com/dalemusser/communityhub/internal/app/features/chat"
	eventsfeature "github.com/dalemusser/communityhub/internal/app/features/events"
	healthfeature "github.com/dalemusser/communityhub/internal/app/features/health"
	inboxfeature "github.com/dalemusser/communityhub/internal/app/features/inbox"
	mediafeature "github.com/dalemusser/communityhub/internal/app/features/media"
	membersfeature "github.com/dalemusser/communityhub/internal/app/features/members"
	pointsfeature "github.com/dalemusser/communityhub/internal/app/features/points"
	vouchersfeature "github.com/dalemusser/communityhub/internal/app/features/vouchers"
	inboxstore "github.com/dalemusser/communityhub/internal/app/store/inbox"
	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/mailer"
	"github.com/dalemusser/communityhub/internal/app/system/notify"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.TokenKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh user data on
	// each request. Role changes take effect immediately.
	sessionMgr.SetUserFetcher(userstore.NewFetcher(deps.MongoDatabase))

	// Notifications fan out to the inbox and, where configured, email.
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)
	notifier := notify.New(inboxstore.New(deps.MongoDatabase), mail, logger)

	r := chi.NewRouter()

	// Global auth middleware: loads the session user into context if the
	// request carries a valid cookie or bearer token.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Redis, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored uploads are served by the app itself; S3 objects carry
	// their own URLs.
	if appCfg.StorageType == "" || appCfg.StorageType == "local" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Authentication
	authHandler := authfeature.NewHandler(deps.MongoDatabase, sessionMgr, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	googleHandler := authgooglefeature.NewHandler(deps.MongoDatabase, sessionMgr,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Membership workflow
	membersHandler := membersfeature.NewHandler(deps.MongoDatabase, notifier, logger)
	r.Mount("/members", membersfeature.Routes(membersHandler))

	// Event workflow
	eventsHandler := eventsfeature.NewHandler(deps.MongoDatabase, notifier, logger)
	r.Mount("/events", eventsfeature.Routes(eventsHandler))

	// Voucher catalog and redemption
	vouchersHandler := vouchersfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/voucher", vouchersfeature.Routes(vouchersHandler))

	// Point balances
	pointsHandler := pointsfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/points", pointsfeature.Routes(pointsHandler))

	// Business directory
	businessesHandler := businessesfeature.NewHandler(deps.MongoDatabase, deps.Storage, logger)
	r.Mount("/businesses", businessesfeature.Routes(businessesHandler))

	// Notification inbox
	inboxHandler := inboxfeature.NewHandler(deps.MongoDatabase, logger)
	r.Mount("/inbox", inboxfeature.Routes(inboxHandler))

	// Media gallery
	mediaHandler := mediafeature.NewHandler(deps.MongoDatabase, deps.Storage, logger)
	r.Mount("/media", mediafeature.Routes(mediaHandler))

	// Forum chat (requires Redis)
	if chatHub != nil {
		chatHandler := chatfeature.NewHandler(chatHub, logger)
		r.Mount("/chat", chatfeature.Routes(chatHandler))
	}

	return r, nil
}
