// internal/app/features/businesses/handler.go
package businesses

import (
	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	"github.com/dalemusser/communityhub/internal/app/system/storage"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the business directory.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	Businesses *businessstore.Store
	Storage    storage.Store
	Sanitizer  *bluemonday.Policy
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		Log:        logger,
		Businesses: businessstore.New(db),
		Storage:    store,
		Sanitizer:  bluemonday.UGCPolicy(),
	}
}
