// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	userstore "github.com/dalemusser/communityhub/internal/app/store/users"
	"github.com/dalemusser/communityhub/internal/app/system/auth"
	"github.com/dalemusser/communityhub/internal/app/system/httpjson"
	"github.com/dalemusser/communityhub/internal/app/system/normalize"
	"github.com/dalemusser/communityhub/internal/app/system/timeouts"
	"github.com/dalemusser/communityhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Handler handles Google OAuth authentication.
type Handler struct {
	DB         *mongo.Database
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Users      *userstore.Store

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://example.com/auth/google/callback"

	mu     sync.Mutex
	states map[string]time.Time
}

// NewHandler creates a new Google OAuth handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, clientID, clientSecret, baseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Log:          logger,
		SessionMgr:   sessionMgr,
		Users:        userstore.New(db),
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(baseURL, "/") + "/auth/google/callback",
		states:       make(map[string]time.Time),
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// ServeLogin handles GET /auth/google, redirecting to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("Google OAuth not configured")
		httpjson.Error(w, http.StatusServiceUnavailable, "Google sign-in is not available")
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("failed to generate OAuth state", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	h.saveState(state)

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state, oauth2.AccessTypeOffline), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /auth/google/callback: validates state, exchanges
// the code, finds or creates the user, and signs them in.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("Google OAuth error",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		httpjson.Unauthorized(w, "Google sign-in was denied")
		return
	}

	state := r.URL.Query().Get("state")
	if !h.consumeState(state) {
		h.Log.Warn("invalid or expired OAuth state")
		httpjson.BadRequest(w, "Invalid or expired sign-in state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		httpjson.BadRequest(w, "Missing authorization code")
		return
	}

	ctx := r.Context()
	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("failed to exchange OAuth code", zap.Error(err))
		httpjson.Unauthorized(w, "Google sign-in failed")
		return
	}

	googleUser, err := fetchGoogleUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("failed to fetch Google user info", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if googleUser.Email == "" {
		httpjson.BadRequest(w, "Google account has no email address")
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()

	user, err := h.findOrCreateUser(opCtx, googleUser)
	if err != nil {
		h.Log.Error("google user lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, user.ID.Hex()); err != nil {
		h.Log.Error("session save failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Internal(w)
		return
	}
	bearer, err := h.SessionMgr.Tokens().Issue(user.ID.Hex())
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.Internal(w)
		return
	}

	h.Log.Info("user logged in via Google OAuth",
		zap.String("user_id", user.ID.Hex()),
		zap.String("login_id", user.LoginID))
	httpjson.OK(w, "Login successful", httpjson.M{"token": bearer})
}

// findOrCreateUser resolves a Google identity to a local account by email,
// creating a guest account on first sign-in.
func (h *Handler) findOrCreateUser(ctx context.Context, gu *googleUserInfo) (*models.User, error) {
	email := normalize.Email(gu.Email)

	user, err := h.Users.GetByLoginID(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userstore.ErrNotFound) {
		return nil, err
	}

	username := usernameFromEmail(email)
	for i := 0; i < 5; i++ {
		taken, err := h.Users.UsernameExists(ctx, username)
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		username = fmt.Sprintf("%s%d", usernameFromEmail(email), time.Now().UnixNano()%10000)
	}

	created, err := h.Users.Create(ctx, models.User{
		Username:      username,
		LoginID:       email,
		AuthMethod:    models.AuthGoogle,
		Role:          models.RoleGuest,
		Avatar:        gu.Picture,
		EmailVerified: gu.EmailVerified,
	})
	if err != nil {
		return nil, err
	}
	h.Log.Info("google account created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("username", created.Username))
	return &created, nil
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// fetchGoogleUserInfo retrieves user information from Google's userinfo endpoint.
func fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func usernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// generateState creates a cryptographically secure random state string.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

const stateTTL = 10 * time.Minute

func (h *Handler) saveState(state string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := time.Now()
	for s, exp := range h.states {
		if now.After(exp) {
			delete(h.states, s)
		}
	}
	h.states[state] = now.Add(stateTTL)
}

func (h *Handler) consumeState(state string) bool {
	if state == "" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	exp, ok := h.states[state]
	if !ok {
		return false
	}
	delete(h.states, state)
	return time.Now().Before(exp)
}
