package handler

import (
	"net/http"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/service"
)

type channelHandler struct {
	profileService *service.ProfileService
}

func NewChannelHandler(profileService *service.ProfileService) *channelHandler {
	return &channelHandler{profileService: profileService}
}

// Show serves a creator page: profile, published uploads, follower count.
func (h *channelHandler) Show(w http.ResponseWriter, r *http.Request) {
	viewerID := ""
	if user := ctxkeys.User(r.Context()); user != nil {
		viewerID = user.ID
	}

	channel, err := h.profileService.Channel(r.PathValue("userId"), viewerID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"profile":   toProfileResponse(channel.Profile),
		"uploads":   toAssetResponses(channel.Uploads, false),
		"followers": channel.Followers,
		"following": channel.Following,
	})
}

func (h *channelHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.profileService.Follow(user.ID, r.PathValue("userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "following"})
}

func (h *channelHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.profileService.Unfollow(user.ID, r.PathValue("userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "unfollowed"})
}

// UpdateProfile lets the signed-in user edit their own page.
func (h *channelHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user := ctxkeys.User(r.Context())
	err := h.profileService.UpdateInfo(user.ID, req.DisplayName, req.Bio)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

// MyUploads lists the signed-in user's submissions in one status so
// creators can watch their moderation queue.
func (h *channelHandler) MyUploads(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = "approved"
	}

	user := ctxkeys.User(r.Context())
	assets, err := h.profileService.MyUploads(user.ID, status)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	// Owners see their own moderation status
	respondJSON(w, http.StatusOK, map[string]any{"assets": toAssetResponses(assets, true)})
}
