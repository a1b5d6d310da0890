// internal/app/system/auth/auth.go

// Package auth owns request identity: signed session cookies for browser
// clients, bearer tokens for API clients, and the context user that both
// resolve to.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is what we cache per request and inject into r.Context().
type SessionUser struct {
	ID       string
	Username string
	LoginID  string
	Role     string
}

// UserFetcher loads fresh user data by ID on each request so role changes
// and deleted accounts take effect immediately.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the request user and a "found?" flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user directly into the request context, bypassing
// session and token verification. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// SessionManager issues and verifies browser sessions and API tokens.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	tokens  *TokenIssuer
	fetcher UserFetcher
	log     *zap.Logger
}

// NewSessionManager builds a cookie-session manager. The session key signs
// cookies; the token key signs bearer JWTs. Secure cookies are enabled in
// production mode by the caller.
func NewSessionManager(sessionKey, tokenKey, name, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return nil, errors.New("session key must not be empty")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is shorter than 32 bytes; use a stronger key in production")
	}

	store := sessions.NewCookieStore([]byte(sessionKey), securecookie.GenerateRandomKey(32))
	store.Options = &sessions.Options{
		Path:     "/",
		Domain:   domain,
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	issuer, err := NewTokenIssuer(tokenKey)
	if err != nil {
		return nil, err
	}

	return &SessionManager{
		store:  store,
		name:   name,
		tokens: issuer,
		log:    logger,
	}, nil
}

// SetUserFetcher wires the store lookup used to refresh the context user.
// Without a fetcher, LoadSessionUser authenticates nobody.
func (m *SessionManager) SetUserFetcher(f UserFetcher) { m.fetcher = f }

// Tokens exposes the bearer-token issuer for login handlers.
func (m *SessionManager) Tokens() *TokenIssuer { return m.tokens }

// SignIn establishes a session for the given user ID.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if the request carries a
// valid session cookie or bearer token. Unauthenticated requests pass
// through untouched; enforcement lives in the authz middleware.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := m.requestUserID(r); id != "" && m.fetcher != nil {
			if u := m.fetcher.FetchUser(r.Context(), id); u != nil {
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requestUserID resolves the caller's user ID from the bearer token if
// present, otherwise from the session cookie.
func (m *SessionManager) requestUserID(r *http.Request) string {
	if ah := r.Header.Get("Authorization"); strings.HasPrefix(ah, "Bearer ") {
		id, err := m.tokens.Verify(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			m.log.Debug("bearer token rejected", zap.Error(err))
			return ""
		}
		return id
	}

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return ""
	}
	if isAuth, _ := sess.Values[isAuthKey].(bool); !isAuth {
		return ""
	}
	id, _ := sess.Values[userIDKey].(string)
	return id
}
