package routes

import (
	"net/http"
	"time"

	"github.com/logoforge/logoforge/internal/app"
	"github.com/logoforge/logoforge/internal/handler"
	"github.com/logoforge/logoforge/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	asset := handler.NewAssetHandler(app.CatalogService, app.ProfileService)
	download := handler.NewDownloadHandler(app.DownloadService, app.SettingsService)
	chat := handler.NewChatHandler(app.ChatService, app.Hub)
	channel := handler.NewChannelHandler(app.ProfileService)
	upload := handler.NewUploadHandler(app.UploadService)
	settings := handler.NewSettingsHandler(app.SettingsService, app.Markdown)
	admin := handler.NewAdminHandler(app.ModerationService, app.SettingsService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Auth (rate limited against brute force)
	authLimiter := middleware.RateLimit(5, 15*time.Minute)

	mux.HandleFunc("POST /api/auth/signup", authLimiter(auth.Signup))
	mux.HandleFunc("POST /api/auth/login", authLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))
	mux.HandleFunc("GET /api/auth/verify-email/{token}", auth.VerifyEmail)
	mux.HandleFunc("GET /api/auth/google", authLimiter(auth.GoogleAuth))
	mux.HandleFunc("GET /api/auth/google/callback", authLimiter(auth.GoogleCallback))

	// Catalog
	mux.HandleFunc("GET /api/assets", asset.List)
	mux.HandleFunc("GET /api/prompts", asset.Prompts)
	mux.HandleFunc("GET /api/assets/{id}", asset.Show)
	mux.HandleFunc("GET /api/assets/{id}/comments", asset.Comments)

	// Site configuration
	mux.HandleFunc("GET /api/settings", settings.Public)

	// Chat
	mux.HandleFunc("GET /api/chat/messages", chat.History)
	mux.HandleFunc("GET /api/chat/ws", chat.Socket)

	// Creator channels
	mux.HandleFunc("GET /api/channels/{userId}", channel.Show)

	// ============================================================================
	// AUTHENTICATED ROUTES
	// ============================================================================

	// Download gate
	mux.HandleFunc("POST /api/assets/{id}/download/{kind}", middleware.RequireAuth(download.Begin))
	mux.HandleFunc("GET /api/downloads/{attemptId}", middleware.RequireAuth(download.Status))
	mux.HandleFunc("POST /api/downloads/{attemptId}/claim", middleware.RequireAuth(download.Claim))
	mux.HandleFunc("DELETE /api/downloads/{attemptId}", middleware.RequireAuth(download.Cancel))
	mux.HandleFunc("POST /api/downloads/share", middleware.RequireAuth(download.CompleteShare))
	mux.HandleFunc("POST /api/downloads/unlock", middleware.RequireAuth(download.CompleteUnlock))
	mux.HandleFunc("GET /api/downloads", middleware.RequireAuth(download.History))

	// Chat send (rate limited against flooding)
	chatLimiter := middleware.RateLimit(30, time.Minute)
	mux.HandleFunc("POST /api/chat/messages", chatLimiter(middleware.RequireAuth(chat.Send)))

	// Social
	mux.HandleFunc("POST /api/assets/{id}/comments", middleware.RequireAuth(asset.AddComment))
	mux.HandleFunc("DELETE /api/comments/{commentId}", middleware.RequireAuth(asset.DeleteComment))
	mux.HandleFunc("POST /api/assets/{id}/like", middleware.RequireAuth(asset.Like))
	mux.HandleFunc("DELETE /api/assets/{id}/like", middleware.RequireAuth(asset.Unlike))
	mux.HandleFunc("POST /api/channels/{userId}/follow", middleware.RequireAuth(channel.Follow))
	mux.HandleFunc("DELETE /api/channels/{userId}/follow", middleware.RequireAuth(channel.Unfollow))
	mux.HandleFunc("PATCH /api/profile", middleware.RequireAuth(channel.UpdateProfile))
	mux.HandleFunc("GET /api/profile/uploads", middleware.RequireAuth(channel.MyUploads))

	// Upload
	mux.HandleFunc("POST /api/uploads", middleware.RequireAuth(upload.Submit))

	// ============================================================================
	// ADMIN ROUTES
	// ============================================================================

	mux.HandleFunc("GET /api/admin/assets/pending", middleware.RequireAdmin(admin.PendingAssets))
	mux.HandleFunc("POST /api/admin/assets/{id}/approve", middleware.RequireAdmin(admin.ApproveAsset))
	mux.HandleFunc("POST /api/admin/assets/{id}/reject", middleware.RequireAdmin(admin.RejectAsset))
	mux.HandleFunc("DELETE /api/admin/assets/{id}", middleware.RequireAdmin(admin.DeleteAsset))
	mux.HandleFunc("GET /api/admin/users", middleware.RequireAdmin(admin.Users))
	mux.HandleFunc("POST /api/admin/users/{userId}/block", middleware.RequireAdmin(admin.BlockUser))
	mux.HandleFunc("POST /api/admin/users/{userId}/unblock", middleware.RequireAdmin(admin.UnblockUser))
	mux.HandleFunc("GET /api/admin/abuse-logs", middleware.RequireAdmin(admin.AbuseLogs))
	mux.HandleFunc("GET /api/admin/settings", middleware.RequireAdmin(admin.Settings))
	mux.HandleFunc("PUT /api/admin/settings", middleware.RequireAdmin(admin.SaveSetting))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService, app.UserRepo, app.ProfileRepo),
		middleware.Maintenance(app.SettingsService),
	)
}
