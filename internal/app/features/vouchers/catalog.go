// internal/app/features/vouchers/catalog.go
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
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList handles GET /voucher, the public catalog.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	vouchers, err := h.Vouchers.List(ctx)
	if err != nil {
		h.Log.Error("list vouchers failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"vouchers": vouchers})
}

type voucherRequest struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PointsRequired int       `json:"points_required"`
	ExpiryDate     time.Time `json:"expiry_date"`
	Stock          int       `json:"stock"`
}

func (h *Handler) validateVoucherRequest(req *voucherRequest) string {
	if req.Title == "" {
		return "Title is required"
	}
	if req.PointsRequired <= 0 {
		return "Points required must be positive"
	}
	if req.Stock < 0 {
		return "Stock must not be negative"
	}
	if req.ExpiryDate.IsZero() {
		return "Expiry date is required"
	}
	return ""
}

// callerBusiness resolves the signed-in user's business listing.
func (h *Handler) callerBusiness(ctx context.Context, r *http.Request) (*models.Business, int, string) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		return nil, http.StatusUnauthorized, "Authentication required"
	}
	ownerID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		return nil, http.StatusUnauthorized, "Authentication required"
	}
	biz, err := h.Businesses.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, businessstore.ErrNotFound) {
			return nil, http.StatusForbidden, "You need a business listing to manage vouchers"
		}
		h.Log.Error("load business failed", zap.Error(err))
		return nil, http.StatusInternalServerError, ""
	}
	return biz, 0, ""
}

// HandleCreate handles POST /voucher (business owner).
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req voucherRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if msg := h.validateVoucherRequest(&req); msg != "" {
		httpjson.BadRequest(w, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	biz, status, msg := h.callerBusiness(ctx, r)
	if biz == nil {
		if status == http.StatusInternalServerError {
			httpjson.Internal(w)
			return
		}
		httpjson.Error(w, status, msg)
		return
	}

	v, err := h.Vouchers.Create(ctx, models.Voucher{
		BusinessID:     biz.ID,
		Title:          req.Title,
		Description:    h.Sanitizer.Sanitize(req.Description),
		PointsRequired: req.PointsRequired,
		ExpiryDate:     req.ExpiryDate,
		Stock:          req.Stock,
	})
	if err != nil {
		h.Log.Error("create voucher failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("voucher created",
		zap.String("voucher_id", v.ID.Hex()),
		zap.String("business_id", biz.ID.Hex()))
	httpjson.Created(w, "Voucher created", httpjson.M{"voucher": v})
}

// HandleUpdate handles PUT /voucher/{id} (business owner).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	voucherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid voucher id")
		return
	}

	var req voucherRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if msg := h.validateVoucherRequest(&req); msg != "" {
		httpjson.BadRequest(w, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	biz, status, msg := h.callerBusiness(ctx, r)
	if biz == nil {
		if status == http.StatusInternalServerError {
			httpjson.Internal(w)
			return
		}
		httpjson.Error(w, status, msg)
		return
	}

	err = h.Vouchers.Update(ctx, voucherID, biz.ID, voucherstore.VoucherUpdate{
		Title:          req.Title,
		Description:    h.Sanitizer.Sanitize(req.Description),
		PointsRequired: req.PointsRequired,
		ExpiryDate:     req.ExpiryDate,
		Stock:          req.Stock,
	})
	if err != nil {
		if errors.Is(err, voucherstore.ErrNotFound) {
			httpjson.NotFound(w, "Voucher not found")
			return
		}
		h.Log.Error("update voucher failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "Voucher updated", nil)
}

// HandleDelete handles DELETE /voucher/{id} (business owner). Existing
// redemptions of a deleted voucher surface as status "deleted" on the next
// redemption list read.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	voucherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid voucher id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	biz, status, msg := h.callerBusiness(ctx, r)
	if biz == nil {
		if status == http.StatusInternalServerError {
			httpjson.Internal(w)
			return
		}
		httpjson.Error(w, status, msg)
		return
	}

	if err := h.Vouchers.Delete(ctx, voucherID, biz.ID); err != nil {
		if errors.Is(err, voucherstore.ErrNotFound) {
			httpjson.NotFound(w, "Voucher not found")
			return
		}
		h.Log.Error("delete voucher failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "Voucher deleted", nil)
}
