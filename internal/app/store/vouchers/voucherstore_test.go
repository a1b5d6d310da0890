package voucherstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	voucherstore "github.com/dalemusser/communityhub/internal/app/store/vouchers"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDecrementStockLastUnit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := voucherstore.New(db)
	ctx := context.Background()

	v := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 1, time.Now().Add(24*time.Hour))

	if err := store.DecrementStock(ctx, v.ID); err != nil {
		t.Fatalf("DecrementStock on last unit: %v", err)
	}

	// Stock is zero now; the conditional filter must refuse a second take.
	err := store.DecrementStock(ctx, v.ID)
	if !errors.Is(err, voucherstore.ErrOutOfStock) {
		t.Fatalf("DecrementStock err = %v, want ErrOutOfStock", err)
	}

	got, err := store.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stock != 0 {
		t.Errorf("stock = %d, want 0", got.Stock)
	}
}

func TestDecrementStockMissingVoucher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := voucherstore.New(db)
	ctx := context.Background()

	err := store.DecrementStock(ctx, primitive.NewObjectID())
	if !errors.Is(err, voucherstore.ErrOutOfStock) {
		t.Fatalf("DecrementStock err = %v, want ErrOutOfStock", err)
	}
}

func TestIncrementStock(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := voucherstore.New(db)
	ctx := context.Background()

	v := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))

	if err := store.DecrementStock(ctx, v.ID); err != nil {
		t.Fatalf("DecrementStock: %v", err)
	}
	if err := store.IncrementStock(ctx, v.ID); err != nil {
		t.Fatalf("IncrementStock: %v", err)
	}

	got, err := store.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Stock != 2 {
		t.Errorf("stock = %d, want 2", got.Stock)
	}
}

func TestUpdateScopedToBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := voucherstore.New(db)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	v := fx.CreateVoucher(owner, "Free Coffee", 100, 5, time.Now().Add(24*time.Hour))

	title := "Free Tea"
	err := store.Update(ctx, v.ID, primitive.NewObjectID(), voucherstore.VoucherUpdate{Title: title})
	if !errors.Is(err, voucherstore.ErrNotFound) {
		t.Fatalf("Update by wrong business err = %v, want ErrNotFound", err)
	}

	if err := store.Update(ctx, v.ID, owner, voucherstore.VoucherUpdate{Title: title}); err != nil {
		t.Fatalf("Update by owner business: %v", err)
	}
	got, err := store.GetByID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Free Tea" {
		t.Errorf("title = %q, want Free Tea", got.Title)
	}
}

func TestDeleteScopedToBusiness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := voucherstore.New(db)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	v := fx.CreateVoucher(owner, "Free Coffee", 100, 5, time.Now().Add(24*time.Hour))

	err := store.Delete(ctx, v.ID, primitive.NewObjectID())
	if !errors.Is(err, voucherstore.ErrNotFound) {
		t.Fatalf("Delete by wrong business err = %v, want ErrNotFound", err)
	}

	if err := store.Delete(ctx, v.ID, owner); err != nil {
		t.Fatalf("Delete by owner business: %v", err)
	}
	if _, err := store.GetByID(ctx, v.ID); !errors.Is(err, voucherstore.ErrNotFound) {
		t.Fatalf("GetByID after delete err = %v, want ErrNotFound", err)
	}
}
