// internal/app/features/businesses/crud.go
package businesses

import (
	"context"
	"errors"
	"net/http"

	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleList handles GET /businesses, the public directory.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	listings, err := h.Businesses.List(ctx)
	if err != nil {
		h.Log.Error("list businesses failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"businesses": listings})
}

// HandleGet handles GET /businesses/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid business id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	biz, err := h.Businesses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, businessstore.ErrNotFound) {
			httpjson.NotFound(w, "Business not found")
			return
		}
		h.Log.Error("load business failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"business": biz})
}

type businessRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Website     string `json:"website"`
}

// HandleCreate handles POST /businesses. One listing per owner.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}
	ownerID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return
	}

	var req businessRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if normalize.Name(req.Name) == "" {
		httpjson.BadRequest(w, "Business name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	biz, err := h.Businesses.Create(ctx, models.Business{
		OwnerID:     ownerID,
		Username:    u.Username,
		Name:        req.Name,
		Description: h.Sanitizer.Sanitize(req.Description),
		Category:    req.Category,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, businessstore.ErrOwnerHasBusiness) {
			httpjson.BadRequest(w, "You already have a business listing")
			return
		}
		h.Log.Error("create business failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("business created",
		zap.String("business_id", biz.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()))
	httpjson.Created(w, "Business created", httpjson.M{"business": biz})
}

// HandleUpdate handles PUT /businesses/{id} (owner only).
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ownerID, ok := h.idsFromRequest(w, r)
	if !ok {
		return
	}

	var req businessRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if normalize.Name(req.Name) == "" {
		httpjson.BadRequest(w, "Business name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Businesses.Update(ctx, id, ownerID, businessstore.BusinessUpdate{
		Name:        req.Name,
		Description: h.Sanitizer.Sanitize(req.Description),
		Category:    req.Category,
		Address:     req.Address,
		Phone:       req.Phone,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, businessstore.ErrNotFound) {
			httpjson.NotFound(w, "Business not found")
			return
		}
		h.Log.Error("update business failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "Business updated", nil)
}

// HandleDelete handles DELETE /businesses/{id} (owner only).
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ownerID, ok := h.idsFromRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Businesses.Delete(ctx, id, ownerID); err != nil {
		if errors.Is(err, businessstore.ErrNotFound) {
			httpjson.NotFound(w, "Business not found")
			return
		}
		h.Log.Error("delete business failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "Business deleted", nil)
}

// idsFromRequest parses the listing id from the URL and the owner id from
// the session, writing the error response itself on failure.
func (h *Handler) idsFromRequest(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid business id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	u, ok := sysauth.CurrentUser(r)
	if !ok {
		httpjson.Unauthorized(w, "Authentication required")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	ownerID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		httpjson.Unauthorized(w, "Authentication required")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return id, ownerID, true
}
