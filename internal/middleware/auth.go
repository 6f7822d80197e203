package middleware

import (
	"net/http"
	"strings"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/service"
)

// AuthMiddleware resolves the session token (cookie or bearer header)
// and adds user + profile to the context if valid. Requests without a
// valid session simply continue anonymous; enforcement happens in
// RequireAuth and RequireAdmin.
func AuthMiddleware(
	authService *service.AuthService,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := authService.VerifySession(token)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.ByID(userID)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: never carry the hash through the request context
			user.PasswordHash = nil

			profile, err := profileRepo.ByUserID(userID)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithProfile(ctx, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken reads the auth cookie, falling back to an Authorization
// bearer header for non-browser clients.
func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(header, "Bearer "); found {
		return strings.TrimSpace(after)
	}
	return ""
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile := ctxkeys.Profile(r.Context())
		if profile == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"authentication required"}`))
			return
		}
		if !profile.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"admin access required"}`))
			return
		}
		next.ServeHTTP(w, r)
	}
}
