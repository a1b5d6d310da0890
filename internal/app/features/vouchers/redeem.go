// internal/app/features/vouchers/redeem.go
package vouchers

import (
	"context"
	"errors"
	"net/http"
	"time"

	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	pointstore "github.com/dalemusser/communityhub/internal/app/store/points"
	voucherstore "github.com/dalemusser/communityhub/internal/app/store/vouchers"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// redeemCooldown is the minimum gap between two redemptions by one user.
const redeemCooldown = 24 * time.Hour

type redeemRequest struct {
	VoucherID string `json:"voucherId"`
}

// HandleRedeem handles POST /voucher/redeem.
//
// Preconditions are checked in a fixed order, each with its own failure:
// voucher exists (404), not expired (400), in stock (400), caller is a
// member (403), no redemption in the last 24 hours (429), enough points
// (400). The points and stock writes are conditional updates, so a
// concurrent redeemer cannot drive a balance negative or take the last
// unit twice; a failed stock take refunds the points already deducted.
func (h *Handler) HandleRedeem(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	var req redeemRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	voucherID, err := primitive.ObjectIDFromHex(req.VoucherID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid voucher id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	voucher, err := h.Vouchers.GetByID(ctx, voucherID)
	if err != nil {
		if errors.Is(err, voucherstore.ErrNotFound) {
			httpjson.NotFound(w, "Voucher not found")
			return
		}
		h.Log.Error("load voucher failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	now := time.Now()
	if voucher.ExpiryDate.Before(now) {
		httpjson.BadRequest(w, "Voucher expired")
		return
	}
	if voucher.Stock <= 0 {
		httpjson.BadRequest(w, "Voucher out of stock")
		return
	}
	if u.Role != models.RoleMember {
		httpjson.Forbidden(w, "Only members can redeem vouchers")
		return
	}

	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	recent, err := h.Redemptions.HasRecent(ctx, userID, redeemCooldown)
	if err != nil {
		h.Log.Error("cooldown check failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if recent {
		httpjson.TooManyRequests(w, "You can only redeem once every 24 hours")
		return
	}

	balance, err := h.Points.GetByUser(ctx, userID)
	if err != nil {
		h.Log.Error("load points failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if balance.Points < voucher.PointsRequired {
		httpjson.BadRequest(w, "Not enough points")
		return
	}

	// Effects. Each write is conditional; the checks above only shrink the
	// window for races, the filters close it.
	err = h.Points.Deduct(ctx, userID, voucher.PointsRequired, "Voucher redeemed: "+voucher.Title)
	if err != nil {
		if errors.Is(err, pointstore.ErrInsufficientPoints) {
			httpjson.BadRequest(w, "Not enough points")
			return
		}
		h.Log.Error("points deduction failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Vouchers.DecrementStock(ctx, voucherID); err != nil {
		// Give the points back before reporting failure.
		if refundErr := h.Points.Award(ctx, userID, voucher.PointsRequired, "Refund: "+voucher.Title); refundErr != nil {
			h.Log.Error("points refund failed",
				zap.String("user_id", userID.Hex()),
				zap.String("voucher_id", voucherID.Hex()),
				zap.Error(refundErr))
		}
		if errors.Is(err, voucherstore.ErrOutOfStock) {
			httpjson.BadRequest(w, "Voucher out of stock")
			return
		}
		h.Log.Error("stock decrement failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	redemption, err := h.Redemptions.Create(ctx, models.VoucherRedemption{
		UserID:     userID,
		VoucherID:  voucherID,
		BusinessID: voucher.BusinessID,
		PointsUsed: voucher.PointsRequired,
		ExpiresAt:  voucher.ExpiryDate,
	})
	if err != nil {
		// Unwind both effects so the failed attempt costs nothing.
		if stockErr := h.Vouchers.IncrementStock(ctx, voucherID); stockErr != nil {
			h.Log.Error("stock restore failed",
				zap.String("voucher_id", voucherID.Hex()),
				zap.Error(stockErr))
		}
		if refundErr := h.Points.Award(ctx, userID, voucher.PointsRequired, "Refund: "+voucher.Title); refundErr != nil {
			h.Log.Error("points refund failed",
				zap.String("user_id", userID.Hex()),
				zap.String("voucher_id", voucherID.Hex()),
				zap.Error(refundErr))
		}
		h.Log.Error("redemption insert failed",
			zap.String("user_id", userID.Hex()),
			zap.String("voucher_id", voucherID.Hex()),
			zap.Error(err))
		httpjson.Internal(w)
		return
	}

	businessName := "Unknown"
	if biz, err := h.Businesses.GetByID(ctx, voucher.BusinessID); err == nil {
		businessName = biz.Name
	} else if !errors.Is(err, businessstore.ErrNotFound) {
		h.Log.Warn("business lookup failed", zap.Error(err))
	}

	h.Log.Info("voucher redeemed",
		zap.String("user_id", userID.Hex()),
		zap.String("voucher_id", voucherID.Hex()),
		zap.Int("points_used", redemption.PointsUsed))

	httpjson.OK(w, "Voucher redeemed", httpjson.M{
		"redemption": httpjson.M{
			"id":           redemption.ID.Hex(),
			"voucherTitle": voucher.Title,
			"businessName": businessName,
			"pointsUsed":   redemption.PointsUsed,
			"redeemedAt":   redemption.RedeemedAt,
			"status":       redemption.Status,
		},
	})
}
