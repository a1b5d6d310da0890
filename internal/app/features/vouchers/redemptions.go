// internal/app/features/vouchers/redemptions.go
package vouchers

import (
	"context"
	"errors"
	"net/http"
	"time"

	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	voucherstore "github.com/dalemusser/communityhub/internal/app/store/vouchers"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// redemptionView is one row of the redemption list response.
type redemptionView struct {
	ID           string    `json:"id"`
	VoucherTitle string    `json:"voucherTitle"`
	BusinessName string    `json:"businessName"`
	PointsUsed   int       `json:"pointsUsed"`
	RedeemedAt   time.Time `json:"redeemedAt"`
	ExpiryDate   time.Time `json:"expiryDate"`
	Status       string    `json:"status"`
}

// HandleListRedemptions handles GET /voucher/voucher-redemption.
//
// This is the read-repair path of the redemption lifecycle: a redemption
// whose voucher is gone is persisted as deleted and reported with title
// "Unknown"; an active redemption past its voucher's expiry is persisted
// as expired. Repair is idempotent, so repeated reads return the same
// persisted result. Admins may inspect another user with ?userId=.
func (h *Handler) HandleListRedemptions(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}
	if q := r.URL.Query().Get("userId"); q != "" && u.Role == models.RoleAdmin {
		qid, err := primitive.ObjectIDFromHex(q)
		if err != nil {
			httpjson.BadRequest(w, "Invalid user id")
			return
		}
		userID = qid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	redemptions, err := h.Redemptions.ListByUser(ctx, userID)
	if err != nil {
		h.Log.Error("list redemptions failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	now := time.Now()
	views := make([]redemptionView, 0, len(redemptions))
	for _, red := range redemptions {
		views = append(views, h.repairAndView(ctx, red, now))
	}
	httpjson.OK(w, "OK", httpjson.M{"redemptions": views})
}

// repairAndView resolves the voucher and business for one redemption,
// persisting any status transition it discovers. Transitions never reverse:
// active → expired on time, active|expired → deleted when the voucher is gone.
func (h *Handler) repairAndView(ctx context.Context, red models.VoucherRedemption, now time.Time) redemptionView {
	view := redemptionView{
		ID:           red.ID.Hex(),
		VoucherTitle: "Unknown",
		BusinessName: "Unknown",
		PointsUsed:   red.PointsUsed,
		RedeemedAt:   red.RedeemedAt,
		ExpiryDate:   red.ExpiresAt,
		Status:       red.Status,
	}

	voucher, err := h.Vouchers.GetByID(ctx, red.VoucherID)
	switch {
	case errors.Is(err, voucherstore.ErrNotFound):
		if red.Status != models.RedemptionDeleted {
			if err := h.Redemptions.SetStatus(ctx, red.ID, models.RedemptionDeleted); err != nil {
				h.Log.Warn("redemption repair failed",
					zap.String("redemption_id", red.ID.Hex()), zap.Error(err))
			}
		}
		view.Status = models.RedemptionDeleted
		return view
	case err != nil:
		h.Log.Warn("voucher lookup failed",
			zap.String("redemption_id", red.ID.Hex()), zap.Error(err))
		return view
	}

	view.VoucherTitle = voucher.Title
	view.ExpiryDate = voucher.ExpiryDate
	if voucher.ExpiryDate.Before(now) && red.Status == models.RedemptionActive {
		if err := h.Redemptions.SetStatus(ctx, red.ID, models.RedemptionExpired); err != nil {
			h.Log.Warn("redemption repair failed",
				zap.String("redemption_id", red.ID.Hex()), zap.Error(err))
		}
		view.Status = models.RedemptionExpired
	}

	if biz, err := h.Businesses.GetByID(ctx, red.BusinessID); err == nil {
		view.BusinessName = biz.Name
	} else if !errors.Is(err, businessstore.ErrNotFound) {
		h.Log.Warn("business lookup failed",
			zap.String("redemption_id", red.ID.Hex()), zap.Error(err))
	}
	return view
}
