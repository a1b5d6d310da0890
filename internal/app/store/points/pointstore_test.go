package pointstore_test

import (
	"context"
	"errors"
	"testing"

	pointstore "github.com/dalemusser/communityhub/internal/app/store/points"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGetByUserMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()

	p, err := store.GetByUser(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("GetByUser on missing doc: %v", err)
	}
	if p.Points != 0 {
		t.Errorf("missing balance = %d, want 0", p.Points)
	}
	if len(p.History) != 0 {
		t.Errorf("missing history has %d entries, want 0", len(p.History))
	}
}

func TestAwardCreatesDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if err := store.Award(ctx, userID, 50, "Event registration approved: Spring Fair"); err != nil {
		t.Fatalf("Award: %v", err)
	}

	p, err := store.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 50 {
		t.Errorf("balance = %d, want 50", p.Points)
	}
	if len(p.History) != 1 {
		t.Fatalf("history has %d entries, want 1", len(p.History))
	}
	if p.History[0].Amount != 50 {
		t.Errorf("history amount = %d, want 50", p.History[0].Amount)
	}
}

func TestAwardAccumulates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if err := store.Award(ctx, userID, 50, "first"); err != nil {
		t.Fatalf("Award: %v", err)
	}
	if err := store.Award(ctx, userID, 30, "second"); err != nil {
		t.Fatalf("Award: %v", err)
	}

	p, err := store.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 80 {
		t.Errorf("balance = %d, want 80", p.Points)
	}
	if len(p.History) != 2 {
		t.Errorf("history has %d entries, want 2", len(p.History))
	}
}

func TestDeduct(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if err := store.Award(ctx, userID, 150, "seed"); err != nil {
		t.Fatalf("Award: %v", err)
	}
	if err := store.Deduct(ctx, userID, 100, "Voucher redeemed: Coffee"); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	p, err := store.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 50 {
		t.Errorf("balance = %d, want 50", p.Points)
	}
	last := p.History[len(p.History)-1]
	if last.Amount != -100 {
		t.Errorf("debit history amount = %d, want -100", last.Amount)
	}
}

func TestDeductInsufficient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()
	userID := primitive.NewObjectID()

	if err := store.Award(ctx, userID, 40, "seed"); err != nil {
		t.Fatalf("Award: %v", err)
	}

	err := store.Deduct(ctx, userID, 100, "Voucher redeemed: Coffee")
	if !errors.Is(err, pointstore.ErrInsufficientPoints) {
		t.Fatalf("Deduct err = %v, want ErrInsufficientPoints", err)
	}

	// Balance must be untouched after a refused deduction.
	p, err := store.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 40 {
		t.Errorf("balance after refused deduction = %d, want 40", p.Points)
	}
}

func TestDeductNoDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := pointstore.New(db)
	ctx := context.Background()

	err := store.Deduct(ctx, primitive.NewObjectID(), 1, "any")
	if !errors.Is(err, pointstore.ErrInsufficientPoints) {
		t.Fatalf("Deduct err = %v, want ErrInsufficientPoints", err)
	}
}
