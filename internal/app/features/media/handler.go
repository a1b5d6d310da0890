// internal/app/features/media/handler.go
package media

import (
	"context"
	"errors"
	"net/http"
	"strings"

	mediastore "github.com/dalemusser/communityhub/internal/app/store/media"
	sysauth "github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/storage"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single gallery upload.
const maxUploadBytes = 25 << 20

// listLimit caps the default gallery page.
const listLimit = 100

// Handler is the feature-level handler for the media gallery.
type Handler struct {
	Log     *zap.Logger
	Media   *mediastore.Store
	Storage storage.Store
}

func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Media:   mediastore.New(db),
		Storage: store,
	}
}

// HandleUpload handles POST /media. Multipart form with a "file" part and an
// optional "title" field. Bytes go to blob storage, metadata to the document
// store.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpjson.BadRequest(w, "Upload too large or malformed")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.BadRequest(w, "Missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		httpjson.BadRequest(w, "Only image and video uploads are allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	key := storage.ObjectKey("media/"+ownerID.Hex(), header.Filename)
	url, err := h.Storage.Put(ctx, key, file, header.Size, storage.PutOptions{ContentType: contentType})
	if err != nil {
		h.Log.Error("media upload failed", zap.String("key", key), zap.Error(err))
		httpjson.Internal(w)
		return
	}

	item, err := h.Media.Create(ctx, models.MediaItem{
		OwnerID:     ownerID,
		Title:       r.FormValue("title"),
		Path:        key,
		URL:         url,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		if removeErr := h.Storage.Remove(ctx, key); removeErr != nil {
			h.Log.Warn("orphaned upload cleanup failed", zap.String("key", key), zap.Error(removeErr))
		}
		h.Log.Error("record media item failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("media uploaded",
		zap.String("media_id", item.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()),
		zap.Int64("size", item.Size))
	httpjson.Created(w, "Media uploaded", httpjson.M{"item": item})
}

// HandleList handles GET /media, the public gallery.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Media.List(ctx, listLimit)
	if err != nil {
		h.Log.Error("list media failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.OK(w, "OK", httpjson.M{"items": items})
}

// HandleDelete handles DELETE /media/{id} (owner only). The metadata row
// goes first; a stranded blob is cheaper than a dangling row.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid media id")
		return
	}
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	item, err := h.Media.Delete(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, mediastore.ErrNotFound) {
			httpjson.NotFound(w, "Media item not found")
			return
		}
		h.Log.Error("delete media failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.Storage.Remove(ctx, item.Path); err != nil {
		h.Log.Warn("blob removal failed", zap.String("key", item.Path), zap.Error(err))
	}
	httpjson.OK(w, "Media deleted", nil)
}
