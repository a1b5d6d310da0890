package redemptionstore_test

import (
	"context"
	"testing"
	"time"

	redemptionstore "github.com/dalemusser/communityhub/internal/app/store/redemptions"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateForcesActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := redemptionstore.New(db)
	ctx := context.Background()

	red, err := store.Create(ctx, models.VoucherRedemption{
		UserID:     primitive.NewObjectID(),
		VoucherID:  primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		PointsUsed: 100,
		Status:     models.RedemptionDeleted, // caller-supplied status is ignored
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if red.Status != models.RedemptionActive {
		t.Errorf("status = %q, want active", red.Status)
	}
	if red.RedeemedAt.IsZero() {
		t.Error("RedeemedAt not set")
	}
}

func TestHasRecent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := redemptionstore.New(db)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	now := time.Now().UTC()

	recent, err := store.HasRecent(ctx, userID, 24*time.Hour)
	if err != nil {
		t.Fatalf("HasRecent: %v", err)
	}
	if recent {
		t.Error("user with no redemptions reported as recent")
	}

	// A redemption from 25 hours ago is outside the window.
	fx.CreateRedemption(userID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now.Add(-25*time.Hour), now.Add(24*time.Hour))

	recent, err = store.HasRecent(ctx, userID, 24*time.Hour)
	if err != nil {
		t.Fatalf("HasRecent: %v", err)
	}
	if recent {
		t.Error("redemption outside the window reported as recent")
	}

	fx.CreateRedemption(userID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now.Add(-time.Hour), now.Add(24*time.Hour))

	recent, err = store.HasRecent(ctx, userID, 24*time.Hour)
	if err != nil {
		t.Fatalf("HasRecent: %v", err)
	}
	if !recent {
		t.Error("redemption inside the window not reported as recent")
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := redemptionstore.New(db)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	now := time.Now().UTC()
	older := fx.CreateRedemption(userID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now.Add(-2*time.Hour), now.Add(24*time.Hour))
	newer := fx.CreateRedemption(userID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now.Add(-time.Hour), now.Add(24*time.Hour))
	fx.CreateRedemption(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now, now.Add(24*time.Hour))

	got, err := store.ListByUser(ctx, userID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d redemptions, want 2", len(got))
	}
	if got[0].ID != newer.ID || got[1].ID != older.ID {
		t.Error("redemptions not sorted newest first")
	}
}

func TestSetStatusIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := redemptionstore.New(db)
	ctx := context.Background()

	now := time.Now().UTC()
	red := fx.CreateRedemption(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now, now.Add(24*time.Hour))

	if err := store.SetStatus(ctx, red.ID, models.RedemptionExpired); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	// Repairing again must not error.
	if err := store.SetStatus(ctx, red.ID, models.RedemptionExpired); err != nil {
		t.Fatalf("SetStatus repeat: %v", err)
	}

	got, err := store.ListByUser(ctx, red.UserID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(got) != 1 || got[0].Status != models.RedemptionExpired {
		t.Errorf("status = %q, want expired", got[0].Status)
	}
}

func TestExpireDue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := redemptionstore.New(db)
	ctx := context.Background()

	now := time.Now().UTC()
	due := fx.CreateRedemption(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now.Add(-48*time.Hour), now.Add(-time.Hour))
	fresh := fx.CreateRedemption(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, now, now.Add(24*time.Hour))
	deleted := fx.CreateRedemption(primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionDeleted, now.Add(-48*time.Hour), now.Add(-time.Hour))

	n, err := store.ExpireDue(ctx, now)
	if err != nil {
		t.Fatalf("ExpireDue: %v", err)
	}
	if n != 1 {
		t.Errorf("repaired %d redemptions, want 1", n)
	}

	check := func(userID primitive.ObjectID, want string) {
		t.Helper()
		got, err := store.ListByUser(ctx, userID)
		if err != nil {
			t.Fatalf("ListByUser: %v", err)
		}
		if len(got) != 1 || got[0].Status != want {
			t.Errorf("status = %q, want %q", got[0].Status, want)
		}
	}
	check(due.UserID, models.RedemptionExpired)
	check(fresh.UserID, models.RedemptionActive)
	// A deleted redemption stays deleted even if its expiry has passed.
	check(deleted.UserID, models.RedemptionDeleted)
}
