package vouchers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/communityhub/internal/app/features/vouchers"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*vouchers.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return vouchers.NewHandler(db, zap.NewNop()), db
}

func redeemRequestFor(t *testing.T, u models.User, voucherID primitive.ObjectID) *http.Request {
	t.Helper()
	r := testutil.NewJSONRequest(t, http.MethodPost, "/voucher/redeem",
		map[string]string{"voucherId": voucherID.Hex()})
	return testutil.WithUser(r, testutil.UserFromModel(u))
}

func TestHandleRedeem(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	owner := fx.CreateMemberUser("shopkeeper", "shop@example.com")
	biz := fx.CreateBusiness(owner.ID, owner.Username, "Corner Cafe")
	voucher := fx.CreateVoucher(biz.ID, "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))
	fx.CreatePoint(member.ID, 150)

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, "Voucher redeemed")
	testutil.AssertContains(t, rec, "Free Coffee")
	testutil.AssertContains(t, rec, "Corner Cafe")

	// Points down by the voucher cost, stock down by one.
	p, err := h.Points.GetByUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 50 {
		t.Errorf("balance = %d, want 50", p.Points)
	}
	v, err := h.Vouchers.GetByID(ctx, voucher.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if v.Stock != 1 {
		t.Errorf("stock = %d, want 1", v.Stock)
	}

	reds, err := h.Redemptions.ListByUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(reds) != 1 {
		t.Fatalf("got %d redemptions, want 1", len(reds))
	}
	if reds[0].Status != models.RedemptionActive {
		t.Errorf("status = %q, want active", reds[0].Status)
	}
	if reds[0].PointsUsed != 100 {
		t.Errorf("points used = %d, want 100", reds[0].PointsUsed)
	}
	if reds[0].ExpiresAt.IsZero() {
		t.Error("redemption did not snapshot the voucher expiry")
	}
}

func TestHandleRedeemNotFound(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, primitive.NewObjectID()))

	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertContains(t, rec, "Voucher not found")
}

func TestHandleRedeemExpired(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(-time.Hour))
	fx.CreatePoint(member.ID, 150)

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "Voucher expired")
}

func TestHandleRedeemExpiryCheckedBeforeRole(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	// An expired voucher reports expiry even to a guest; the role check
	// comes later in the precondition order.
	guest := fx.CreateUser("visitor", "v@example.com", models.RoleGuest)
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(-time.Hour))

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, guest, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "Voucher expired")
}

func TestHandleRedeemOutOfStock(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 0, time.Now().Add(24*time.Hour))
	fx.CreatePoint(member.ID, 150)

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "Voucher out of stock")
}

func TestHandleRedeemGuestForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	guest := fx.CreateUser("visitor", "v@example.com", models.RoleGuest)
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, guest, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusForbidden)
}

func TestHandleRedeemAdminForbidden(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	// Redeeming is for members only; admins manage vouchers, they do not
	// hold points.
	admin := fx.CreateAdmin("overseer", "admin@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, admin, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusForbidden)
	testutil.AssertContains(t, rec, "Only members can redeem")
}

func TestHandleRedeemCooldown(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))
	fx.CreatePoint(member.ID, 500)
	fx.CreateRedemption(member.ID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusTooManyRequests)
	testutil.AssertContains(t, rec, "once every 24 hours")
}

func TestHandleRedeemNotEnoughPoints(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))
	fx.CreatePoint(member.ID, 40)

	rec := testutil.NewRecorder()
	h.HandleRedeem(rec, redeemRequestFor(t, member, voucher.ID))

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "Not enough points")

	// Refusal leaves balance and stock alone.
	p, err := h.Points.GetByUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("GetByUser: %v", err)
	}
	if p.Points != 40 {
		t.Errorf("balance = %d, want 40", p.Points)
	}
	v, err := h.Vouchers.GetByID(ctx, voucher.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if v.Stock != 2 {
		t.Errorf("stock = %d, want 2", v.Stock)
	}
}

func TestHandleListRedemptionsRepairsDeleted(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	// The voucher behind this redemption no longer exists.
	fx.CreateRedemption(member.ID, primitive.NewObjectID(), primitive.NewObjectID(),
		models.RedemptionActive, time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour))

	list := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/voucher/voucher-redemption", nil)
		req := testutil.WithUser(r, testutil.UserFromModel(member))
		rec := testutil.NewRecorder()
		h.HandleListRedemptions(rec, req)
		return rec
	}

	rec := list()
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, `"status":"deleted"`)
	testutil.AssertContains(t, rec, `"voucherTitle":"Unknown"`)

	// The repair is persisted.
	reds, err := h.Redemptions.ListByUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if reds[0].Status != models.RedemptionDeleted {
		t.Errorf("persisted status = %q, want deleted", reds[0].Status)
	}

	// And idempotent: a second read reports the same state.
	rec = list()
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, `"status":"deleted"`)
}

func TestHandleListRedemptionsRepairsExpired(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(-time.Hour))
	fx.CreateRedemption(member.ID, voucher.ID, voucher.BusinessID,
		models.RedemptionActive, time.Now().Add(-48*time.Hour), voucher.ExpiryDate)

	r := httptest.NewRequest(http.MethodGet, "/voucher/voucher-redemption", nil)
	req := testutil.WithUser(r, testutil.UserFromModel(member))
	rec := testutil.NewRecorder()
	h.HandleListRedemptions(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, `"status":"expired"`)
	testutil.AssertContains(t, rec, `"voucherTitle":"Free Coffee"`)

	reds, err := h.Redemptions.ListByUser(ctx, member.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if reds[0].Status != models.RedemptionExpired {
		t.Errorf("persisted status = %q, want expired", reds[0].Status)
	}
}

func TestHandleListRedemptionsAdminInspectsUser(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	admin := fx.CreateAdmin("overseer", "admin@example.com")
	voucher := fx.CreateVoucher(primitive.NewObjectID(), "Free Coffee", 100, 2, time.Now().Add(24*time.Hour))
	fx.CreateRedemption(member.ID, voucher.ID, voucher.BusinessID,
		models.RedemptionActive, time.Now().Add(-time.Hour), voucher.ExpiryDate)

	r := httptest.NewRequest(http.MethodGet, "/voucher/voucher-redemption?userId="+member.ID.Hex(), nil)
	req := testutil.WithUser(r, testutil.UserFromModel(admin))
	rec := testutil.NewRecorder()
	h.HandleListRedemptions(rec, req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, "Free Coffee")
}
