// internal/app/features/events/handler.go
package events

import (
	eventappstore "github.com/dalemusser/communityhub/internal/app/store/eventapps"
	participantstore "github.com/dalemusser/communityhub/internal/app/store/participants"
	pointstore "github.com/dalemusser/communityhub/internal/app/store/points"
	"github.com/dalemusser/communityhub/internal/app/system/notify"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// approvalPoints is the fixed credit for an approved event registration.
const approvalPoints = 50

// Handler is the feature-level handler for the event workflow.
type Handler struct {
	DB           *mongo.Database
	Log          *zap.Logger
	Notifier     *notify.Notifier
	Apps         *eventappstore.Store
	Participants *participantstore.Store
	Points       *pointstore.Store
}

func NewHandler(db *mongo.Database, notifier *notify.Notifier, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		Notifier:     notifier,
		Apps:         eventappstore.New(db),
		Participants: participantstore.New(db),
		Points:       pointstore.New(db),
	}
}
