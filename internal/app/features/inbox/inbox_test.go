package inbox_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/communityhub/internal/app/features/inbox"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/dalemusser/communityhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleListConsumes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := inbox.NewHandler(db, zap.NewNop())

	user := fx.CreateMemberUser("dragonfly", "dana@example.com")
	fx.CreateInboxMessage("dragonfly", "Your membership application has been approved")
	fx.CreateInboxMessage("bee", "not yours")

	list := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/inbox", nil)
		req := testutil.WithUser(r, testutil.UserFromModel(user))
		rec := testutil.NewRecorder()
		h.HandleList(rec, req)
		return rec
	}

	rec := list()
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, "approved")

	// Reading consumed the messages; the next read is empty.
	rec = list()
	testutil.AssertStatus(t, rec, http.StatusOK)

	var body struct {
		Messages []models.InboxMessage `json:"messages"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if len(body.Messages) != 0 {
		t.Errorf("second read returned %d messages, want 0", len(body.Messages))
	}
}

func TestHandleCountDoesNotConsume(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := inbox.NewHandler(db, zap.NewNop())

	user := fx.CreateMemberUser("dragonfly", "dana@example.com")
	fx.CreateInboxMessage("dragonfly", "first")
	fx.CreateInboxMessage("dragonfly", "second")

	count := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodGet, "/inbox/count", nil)
		req := testutil.WithUser(r, testutil.UserFromModel(user))
		rec := testutil.NewRecorder()
		h.HandleCount(rec, req)
		return rec
	}

	rec := count()
	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertContains(t, rec, `"count":2`)

	// Counting twice gives the same answer.
	rec = count()
	testutil.AssertContains(t, rec, `"count":2`)
}

func TestHandleListUnauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := inbox.NewHandler(db, zap.NewNop())

	r := httptest.NewRequest(http.MethodGet, "/inbox", nil)
	rec := testutil.NewRecorder()
	h.HandleList(rec, r)

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}
