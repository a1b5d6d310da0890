package members_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dalemusser/communityhub/internal/app/features/members"
	inboxstore "github.com/dalemusser/communityhub/internal/app/store/inbox"
	memberappstore "github.com/dalemusser/communityhub/internal/app/store/memberapps"
	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/mailer"
	"github.com/dalemusser/communityhub/internal/app/system/notify"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*members.Handler, *mongo.Database) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	notifier := notify.New(inboxstore.New(db), mailer.New(mailer.Config{}, logger), logger)
	return members.NewHandler(db, notifier, logger), db
}

func TestHandleActionAcceptProvisionsAccount(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	// The applicant has no account yet.
	app := fx.CreateMemberApplication(primitive.NewObjectID(), "dragonfly", "dana@example.com")

	admin := fx.CreateAdmin("admin", "admin@example.com")
	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/action",
		map[string]string{"id": app.ID.Hex(), "action": "accept"})
	r = testutil.WithUser(r, testutil.UserFromModel(admin))
	rec := testutil.NewRecorder()
	h.HandleAction(rec, r)

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, "Accepted")

	// The account is provisioned as a member with no credential; the
	// applicant claims it by registering with the same login id.
	u, err := h.Users.GetByUsername(ctx, "dragonfly")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if u.Role != models.RoleMember {
		t.Errorf("role = %q, want member", u.Role)
	}
	if u.AuthMethod != models.AuthPending {
		t.Errorf("auth method = %q, want pending", u.AuthMethod)
	}
	if u.PasswordHash != "" {
		t.Error("provisioned account must carry no credential")
	}
	if u.LoginID != app.Email {
		t.Errorf("login id = %q, want the application email", u.LoginID)
	}

	// The application is consumed: a second accept finds nothing.
	r = testutil.NewJSONRequest(t, http.MethodPost, "/members/action",
		map[string]string{"id": app.ID.Hex(), "action": "accept"})
	r = testutil.WithUser(r, testutil.UserFromModel(admin))
	rec = testutil.NewRecorder()
	h.HandleAction(rec, r)
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	testutil.AssertContains(t, rec, "Application not found")

	// The applicant got an inbox notification.
	n, err := inboxstore.New(db).Count(ctx, "dragonfly")
	if err != nil {
		t.Fatalf("inbox count: %v", err)
	}
	if n != 1 {
		t.Errorf("inbox count = %d, want 1", n)
	}
}

func TestHandleActionAcceptPromotesExistingUser(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	guest := fx.CreateUser("dragonfly", "dana@example.com", models.RoleGuest)
	app := fx.CreateMemberApplication(guest.ID, guest.Username, guest.LoginID)
	admin := fx.CreateAdmin("admin", "admin@example.com")

	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/action",
		map[string]string{"id": app.ID.Hex(), "action": "accept"})
	r = testutil.WithUser(r, testutil.UserFromModel(admin))
	rec := testutil.NewRecorder()
	h.HandleAction(rec, r)

	testutil.AssertStatus(t, rec, http.StatusOK)

	u, err := h.Users.GetByID(ctx, guest.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u.Role != models.RoleMember {
		t.Errorf("role = %q, want member", u.Role)
	}
	// Promotion reuses the account rather than creating a second one.
	if u.AuthMethod != models.AuthInternal {
		t.Errorf("auth method = %q, want internal", u.AuthMethod)
	}
}

func TestHandleActionReject(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)
	ctx := context.Background()

	app := fx.CreateMemberApplication(primitive.NewObjectID(), "dragonfly", "dana@example.com")
	admin := fx.CreateAdmin("admin", "admin@example.com")

	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/action",
		map[string]string{"id": app.ID.Hex(), "action": "reject"})
	r = testutil.WithUser(r, testutil.UserFromModel(admin))
	rec := testutil.NewRecorder()
	h.HandleAction(rec, r)

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, "Rejected")

	if _, err := h.Apps.GetByID(ctx, app.ID); !errors.Is(err, memberappstore.ErrNotFound) {
		t.Fatalf("application err = %v, want ErrNotFound", err)
	}
	// Rejection does not create an account.
	if _, err := h.Users.GetByUsername(ctx, "dragonfly"); !errors.Is(err, userstore.ErrNotFound) {
		t.Fatalf("user err = %v, want ErrNotFound", err)
	}
}

func TestHandleActionInvalidAction(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	admin := fx.CreateAdmin("admin", "admin@example.com")
	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/action",
		map[string]string{"id": primitive.NewObjectID().Hex(), "action": "promote"})
	r = testutil.WithUser(r, testutil.UserFromModel(admin))
	rec := testutil.NewRecorder()
	h.HandleAction(rec, r)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "Invalid action")
}

func TestHandleApply(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	guest := fx.CreateUser("dragonfly", "dana@example.com", models.RoleGuest)

	body := map[string]string{"full_name": "Dana Fly", "email": "dana@example.com"}
	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/apply", body)
	r = testutil.WithUser(r, testutil.UserFromModel(guest))
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	// One pending application per user.
	r = testutil.NewJSONRequest(t, http.MethodPost, "/members/apply", body)
	r = testutil.WithUser(r, testutil.UserFromModel(guest))
	rec = testutil.NewRecorder()
	h.HandleApply(rec, r)
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "pending application")
}

func TestHandleApplyAlreadyMember(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	member := fx.CreateMemberUser("dragonfly", "dana@example.com")
	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/apply",
		map[string]string{"full_name": "Dana Fly", "email": "dana@example.com"})
	r = testutil.WithUser(r, testutil.UserFromModel(member))
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
	testutil.AssertContains(t, rec, "already a member")
}

func TestHandleApplyBadEmail(t *testing.T) {
	h, db := newTestHandler(t)
	fx := testutil.NewFixtures(t, db)

	guest := fx.CreateUser("dragonfly", "dana@example.com", models.RoleGuest)
	r := testutil.NewJSONRequest(t, http.MethodPost, "/members/apply",
		map[string]string{"full_name": "Dana Fly", "email": "not-an-email"})
	r = testutil.WithUser(r, testutil.UserFromModel(guest))
	rec := testutil.NewRecorder()
	h.HandleApply(rec, r)

	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}
