package middleware

import (
	"net/http"
	"strings"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/service"
)

// maintenanceExempt lists path prefixes that stay reachable during
// maintenance so admins can sign in and turn it back off.
var maintenanceExempt = []string{
	"/healthz",
	"/api/auth/",
	"/api/settings",
}

// Maintenance returns 503 to non-admins while maintenance mode is
// enabled in settings. The flag is read per request so toggling it
// takes effect immediately.
func Maintenance(settings *service.SettingsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cfg, err := settings.Snapshot()
			if err != nil || !cfg.MaintenanceMode {
				next.ServeHTTP(w, r)
				return
			}

			for _, prefix := range maintenanceExempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			profile := ctxkeys.Profile(r.Context())
			if profile != nil && profile.IsAdmin() {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"down for maintenance, back soon"}`))
		})
	}
}
