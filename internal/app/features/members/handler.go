// internal/app/features/members/handler.go
package members

import (
	memberappstore "github.com/dalemusser/communityhub/internal/app/store/memberapps"
	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the membership workflow.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Notifier *notify.Notifier
	Users    *userstore.Store
	Apps     *memberappstore.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Notifier: notifier,
		Users:    userstore.New(db),
		Apps:     memberappstore.New(db),
	}
}
