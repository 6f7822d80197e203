package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/logoforge/logoforge/internal/config"
	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type authHandler struct {
	authService       *service.AuthService
	googleOAuthConfig *oauth2.Config
	appURL            string
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *authHandler {
	return &authHandler{
		authService: authService,
		appURL:      cfg.AppURL,
		googleOAuthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.AppURL + "/api/auth/google/callback",
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Signup(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	slog.Info("user signed up", "user_id", user.ID, "email", user.Email)
	respondJSON(w, http.StatusCreated, map[string]any{
		"user":    toUserResponse(user),
		"message": "check your email to verify your account",
	})
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	err = h.startSession(w, user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID)
	respondJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the signed-in identity, or 401 through RequireAuth.
func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	profile := ctxkeys.Profile(r.Context())
	respondJSON(w, http.StatusOK, map[string]any{
		"user":    toUserResponse(user),
		"profile": toProfileResponse(profile),
	})
}

func (h *authHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	user, err := h.authService.VerifyEmail(token)
	if err != nil {
		slog.Warn("email verification failed", "error", err)
		respondError(w, http.StatusUnauthorized, "invalid or expired verification link")
		return
	}

	err = h.startSession(w, user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	slog.Info("email verified", "user_id", user.ID)
	http.Redirect(w, r, h.appURL+"/?verified=1", http.StatusSeeOther)
}

// GoogleAuth redirects to the Google consent screen
func (h *authHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	// Random state token for CSRF protection
	state := generateOAuthState()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles the OAuth callback from Google
func (h *authHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie("oauth_state")
	if err != nil || cookie.Value != state || state == "" {
		slog.Warn("google oauth state validation failed", "error", err)
		respondError(w, http.StatusUnauthorized, "oauth state mismatch")
		return
	}

	// Clear state cookie
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	code := r.URL.Query().Get("code")
	token, err := h.googleOAuthConfig.Exchange(r.Context(), code)
	if err != nil {
		slog.Warn("google oauth exchange failed", "error", err)
		respondError(w, http.StatusUnauthorized, "oauth exchange failed")
		return
	}

	info, err := h.fetchGoogleUser(r.Context(), token)
	if err != nil {
		slog.Warn("google userinfo fetch failed", "error", err)
		respondError(w, http.StatusUnauthorized, "failed to fetch account info")
		return
	}

	user, err := h.authService.OAuthLogin(info.Email, info.Name)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	err = h.startSession(w, user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	slog.Info("user logged in via google", "user_id", user.ID)
	http.Redirect(w, r, h.appURL+"/", http.StatusSeeOther)
}

type googleUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *authHandler) fetchGoogleUser(ctx context.Context, token *oauth2.Token) (*googleUser, error) {
	client := h.googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	info := &googleUser{}
	err = json.NewDecoder(resp.Body).Decode(info)
	if err != nil {
		return nil, err
	}
	return info, nil
}

// startSession issues the JWT and sets the auth cookie.
func (h *authHandler) startSession(w http.ResponseWriter, user *model.User) error {
	token, err := h.authService.GenerateSession(user)
	if err != nil {
		return err
	}
	h.authService.SetSessionCookie(w, token, time.Now().Add(h.authService.SessionExpiry()))
	return nil
}

// generateOAuthState creates a random token for the OAuth CSRF check
func generateOAuthState() string {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic("failed to generate oauth state: " + err.Error())
	}
	return base64.URLEncoding.EncodeToString(b)
}
