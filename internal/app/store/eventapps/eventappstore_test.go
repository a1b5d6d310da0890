package eventappstore_test

import (
	"context"
	"errors"
	"testing"

	eventappstore "github.com/dalemusser/communityhub/internal/app/store/eventapps"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePendingGuardIsUserWide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventappstore.New(db)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	_, err := store.Create(ctx, models.EventApplication{
		UserID:    userID,
		Username:  "dragonfly",
		EventName: "Spring Fair",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// The guard blocks any pending application by the user, even for a
	// different event.
	_, err = store.Create(ctx, models.EventApplication{
		UserID:    userID,
		Username:  "dragonfly",
		EventName: "Autumn Market",
	})
	if !errors.Is(err, eventappstore.ErrPendingApplicationExists) {
		t.Fatalf("Create err = %v, want ErrPendingApplicationExists", err)
	}

	// A different user is not blocked.
	_, err = store.Create(ctx, models.EventApplication{
		UserID:    primitive.NewObjectID(),
		Username:  "bee",
		EventName: "Spring Fair",
	})
	if err != nil {
		t.Fatalf("Create for other user: %v", err)
	}
}

func TestCreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventappstore.New(db)
	ctx := context.Background()

	app, err := store.Create(ctx, models.EventApplication{
		UserID:    primitive.NewObjectID(),
		Username:  "dragonfly",
		EventName: "Spring Fair",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.Status != models.ApplicationPending {
		t.Errorf("status = %q, want pending", app.Status)
	}
	if app.PaymentStatus != models.PaymentUnpaid {
		t.Errorf("payment status = %q, want unpaid", app.PaymentStatus)
	}
}

func TestSetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventappstore.New(db)
	ctx := context.Background()

	app, err := store.Create(ctx, models.EventApplication{
		UserID:    primitive.NewObjectID(),
		Username:  "dragonfly",
		EventName: "Spring Fair",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := store.SetStatus(ctx, app.ID, models.ApplicationApproved)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != models.ApplicationApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}

	if _, err := store.SetStatus(ctx, primitive.NewObjectID(), models.ApplicationApproved); !errors.Is(err, eventappstore.ErrNotFound) {
		t.Fatalf("SetStatus on missing app err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := eventappstore.New(db)
	ctx := context.Background()

	app, err := store.Create(ctx, models.EventApplication{
		UserID:    primitive.NewObjectID(),
		Username:  "dragonfly",
		EventName: "Spring Fair",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.Delete(ctx, app.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.GetByID(ctx, app.ID); !errors.Is(err, eventappstore.ErrNotFound) {
		t.Fatalf("GetByID after delete err = %v, want ErrNotFound", err)
	}

	// Deleting the pending application unblocks a new one.
	if _, err := store.Create(ctx, models.EventApplication{
		UserID:    app.UserID,
		Username:  "dragonfly",
		EventName: "Autumn Market",
	}); err != nil {
		t.Fatalf("Create after delete: %v", err)
	}
}
