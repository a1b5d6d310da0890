// internal/app/features/businesses/slideshow.go
package businesses

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/storage"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.uber.org/zap"
)

// maxSlideshowBytes caps a single slideshow image upload.
const maxSlideshowBytes = 10 << 20

// HandleSlideshowUpload handles POST /businesses/{id}/slideshow (owner only).
// Multipart form with an "image" file part.
func (h *Handler) HandleSlideshowUpload(w http.ResponseWriter, r *http.Request) {
	id, ownerID, ok := h.idsFromRequest(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSlideshowBytes)
	if err := r.ParseMultipartForm(maxSlideshowBytes); err != nil {
		httpjson.BadRequest(w, "Upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		httpjson.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		httpjson.BadRequest(w, "Only image uploads are allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// Confirm ownership before writing bytes anywhere.
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
	if biz.OwnerID != ownerID {
		httpjson.Forbidden(w, "You do not own this business")
		return
	}

	key := storage.ObjectKey("slideshow/"+id.Hex(), header.Filename)
	url, err := h.Storage.Put(ctx, key, file, header.Size, storage.PutOptions{ContentType: contentType})
	if err != nil {
		h.Log.Error("slideshow upload failed", zap.String("key", key), zap.Error(err))
		httpjson.Internal(w)
		return
	}

	img := models.SlideshowImage{Path: key, URL: url, UploadedAt: time.Now()}
	if err := h.Businesses.AddSlideshowImage(ctx, id, ownerID, img); err != nil {
		if removeErr := h.Storage.Remove(ctx, key); removeErr != nil {
			h.Log.Warn("orphaned upload cleanup failed", zap.String("key", key), zap.Error(removeErr))
		}
		h.Log.Error("record slideshow image failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("slideshow image added",
		zap.String("business_id", id.Hex()),
		zap.String("key", key))
	httpjson.Created(w, "Image uploaded", httpjson.M{"image": img})
}

type slideshowRemoveRequest struct {
	Path string `json:"path"`
}

// HandleSlideshowRemove handles DELETE /businesses/{id}/slideshow (owner
// only). The image is identified by the storage path returned at upload.
func (h *Handler) HandleSlideshowRemove(w http.ResponseWriter, r *http.Request) {
	id, ownerID, ok := h.idsFromRequest(w, r)
	if !ok {
		return
	}

	var req slideshowRemoveRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Path == "" {
		httpjson.BadRequest(w, "Missing image path")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Businesses.RemoveSlideshowImage(ctx, id, ownerID, req.Path); err != nil {
		if errors.Is(err, businessstore.ErrNotFound) {
			httpjson.NotFound(w, "Business not found")
			return
		}
		h.Log.Error("remove slideshow image failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	// The gallery row is gone; a leftover blob is only wasted space.
	if err := h.Storage.Remove(ctx, req.Path); err != nil {
		h.Log.Warn("slideshow blob removal failed", zap.String("key", req.Path), zap.Error(err))
	}

	h.Log.Info("slideshow image removed",
		zap.String("business_id", id.Hex()),
		zap.String("key", req.Path))
	httpjson.OK(w, "Image removed", nil)
}
