package businessstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	businessstore "github.com/dalemusser/communityhub/internal/app/store/businesses"
	"github.com/dalemusser/communityhub/internal/app/system/indexes"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*businessstore.Store, context.Context) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return businessstore.New(db), ctx
}

func TestCreateOneListingPerOwner(t *testing.T) {
	store, ctx := setup(t)

	owner := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Business{
		OwnerID:  owner,
		Username: "shopkeeper",
		Name:     "Corner Cafe",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := store.Create(ctx, models.Business{
		OwnerID:  owner,
		Username: "shopkeeper",
		Name:     "Second Shop",
	})
	if !errors.Is(err, businessstore.ErrOwnerHasBusiness) {
		t.Fatalf("Create err = %v, want ErrOwnerHasBusiness", err)
	}
}

func TestGetByOwner(t *testing.T) {
	store, ctx := setup(t)

	owner := primitive.NewObjectID()
	created, err := store.Create(ctx, models.Business{
		OwnerID:  owner,
		Username: "shopkeeper",
		Name:     "Corner Cafe",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("GetByOwner: %v", err)
	}
	if got.ID != created.ID {
		t.Error("returned a different listing")
	}

	if _, err := store.GetByOwner(ctx, primitive.NewObjectID()); !errors.Is(err, businessstore.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListSortedByName(t *testing.T) {
	store, ctx := setup(t)

	for _, name := range []string{"Zebra Prints", "apple Stand", "Corner Cafe"} {
		if _, err := store.Create(ctx, models.Business{
			OwnerID:  primitive.NewObjectID(),
			Username: "owner-" + name,
			Name:     name,
		}); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d listings, want 3", len(got))
	}
	// Sorting uses the folded name, so case does not matter.
	want := []string{"apple Stand", "Corner Cafe", "Zebra Prints"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("list[%d] = %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestUpdateScopedToOwner(t *testing.T) {
	store, ctx := setup(t)

	owner := primitive.NewObjectID()
	b, err := store.Create(ctx, models.Business{
		OwnerID:  owner,
		Username: "shopkeeper",
		Name:     "Corner Cafe",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = store.Update(ctx, b.ID, primitive.NewObjectID(), businessstore.BusinessUpdate{Name: "Hijacked"})
	if !errors.Is(err, businessstore.ErrNotFound) {
		t.Fatalf("Update by non-owner err = %v, want ErrNotFound", err)
	}

	if err := store.Update(ctx, b.ID, owner, businessstore.BusinessUpdate{Name: "Corner Cafe & Bakery"}); err != nil {
		t.Fatalf("Update by owner: %v", err)
	}
	got, err := store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Corner Cafe & Bakery" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestSlideshow(t *testing.T) {
	store, ctx := setup(t)

	owner := primitive.NewObjectID()
	b, err := store.Create(ctx, models.Business{
		OwnerID:  owner,
		Username: "shopkeeper",
		Name:     "Corner Cafe",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	img := models.SlideshowImage{
		Path:       "slideshow/abc/front.jpg",
		URL:        "/uploads/slideshow/abc/front.jpg",
		UploadedAt: time.Now().UTC(),
	}
	if err := store.AddSlideshowImage(ctx, b.ID, owner, img); err != nil {
		t.Fatalf("AddSlideshowImage: %v", err)
	}

	got, err := store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Slideshow) != 1 || got.Slideshow[0].Path != img.Path {
		t.Fatalf("slideshow = %+v, want one image", got.Slideshow)
	}

	// Only the owner may remove images.
	err = store.RemoveSlideshowImage(ctx, b.ID, primitive.NewObjectID(), img.Path)
	if !errors.Is(err, businessstore.ErrNotFound) {
		t.Fatalf("remove by non-owner err = %v, want ErrNotFound", err)
	}

	if err := store.RemoveSlideshowImage(ctx, b.ID, owner, img.Path); err != nil {
		t.Fatalf("RemoveSlideshowImage: %v", err)
	}
	got, err = store.GetByID(ctx, b.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Slideshow) != 0 {
		t.Errorf("slideshow has %d images after removal, want 0", len(got.Slideshow))
	}
}
