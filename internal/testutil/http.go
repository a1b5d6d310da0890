package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// TestUser is the identity injected into request contexts by WithUser.
type TestUser struct {
	ID       string
	Username string
	LoginID  string
	Role     string
}

// UserFromModel converts a seeded user fixture into a TestUser.
func UserFromModel(u models.User) TestUser {
	return TestUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		LoginID:  u.LoginID,
		Role:     u.Role,
	}
}

// WithUser attaches a signed-in user to the request context, bypassing the
// session middleware.
func WithUser(r *http.Request, u TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		ID:       u.ID,
		Username: u.Username,
		LoginID:  u.LoginID,
		Role:     u.Role,
	})
}

// WithChiURLParam injects a chi URL parameter into the request context so
// handlers can be exercised without a full router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewJSONRequest builds a request with the given body marshaled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// NewRecorder returns a fresh response recorder.
func NewRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

// AssertStatus fails the test if the recorded status differs from want.
func AssertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, want, rec.Body.String())
	}
}

// AssertContains fails the test if the response body lacks the substring.
func AssertContains(t *testing.T, rec *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(rec.Body.String(), substr) {
		t.Fatalf("body %q does not contain %q", rec.Body.String(), substr)
	}
}

// DecodeJSON unmarshals the recorded body into out.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response body %q: %v", rec.Body.String(), err)
	}
}
