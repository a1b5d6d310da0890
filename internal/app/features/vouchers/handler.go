// internal/app/features/vouchers/handler.go
package vouchers

import (
	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	pointstore "github.com/dalemusser/communityhub/internal/app/store/points"
	redemptionstore "github.com/dalemusser/communityhub/internal/app/store/redemptions"
	voucherstore "github.com/dalemusser/communityhub/internal/app/store/vouchers"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the feature-level handler for the voucher catalog and the
// redemption workflow.
type Handler struct {
	DB          *mongo.Database
	Log         *zap.Logger
	Vouchers    *voucherstore.Store
	Redemptions *redemptionstore.Store
	Points      *pointstore.Store
	Businesses  *businessstore.Store
	Sanitizer   *bluemonday.Policy
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Vouchers:    voucherstore.New(db),
		Redemptions: redemptionstore.New(db),
		Points:      pointstore.New(db),
		Businesses:  businessstore.New(db),
		Sanitizer:   bluemonday.UGCPolicy(),
	}
}
