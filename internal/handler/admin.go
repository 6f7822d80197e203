package handler

import (
	"net/http"
	"time"

	"github.com/logoforge/logoforge/internal/service"
)

type adminHandler struct {
	moderationService *service.ModerationService
	settingsService   *service.SettingsService
}

func NewAdminHandler(moderationService *service.ModerationService, settingsService *service.SettingsService) *adminHandler {
	return &adminHandler{
		moderationService: moderationService,
		settingsService:   settingsService,
	}
}

func (h *adminHandler) PendingAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.moderationService.Pending()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"assets": toAssetResponses(assets, true)})
}

func (h *adminHandler) ApproveAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.moderationService.Approve(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"asset": toAssetResponse(asset, true)})
}

func (h *adminHandler) RejectAsset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	asset, err := h.moderationService.Reject(r.PathValue("id"), req.Reason)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"asset": toAssetResponse(asset, true)})
}

func (h *adminHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	err := h.moderationService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "asset deleted"})
}

func (h *adminHandler) Users(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.moderationService.Users()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (h *adminHandler) BlockUser(w http.ResponseWriter, r *http.Request) {
	err := h.moderationService.BlockUser(r.PathValue("userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user blocked"})
}

func (h *adminHandler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	err := h.moderationService.UnblockUser(r.PathValue("userId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user unblocked"})
}

func (h *adminHandler) AbuseLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.moderationService.AbuseLogs(100)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	type abuseLogResponse struct {
		ID             string    `json:"id"`
		UserID         string    `json:"user_id"`
		MessageAttempt string    `json:"message_attempt"`
		DetectedWord   string    `json:"detected_word"`
		CreatedAt      time.Time `json:"created_at"`
	}
	out := make([]abuseLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, abuseLogResponse(*l))
	}
	respondJSON(w, http.StatusOK, map[string]any{"logs": out})
}

// Settings returns the raw key/value rows for the admin editor.
func (h *adminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	raw, err := h.settingsService.Raw()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"settings": raw})
}

// SaveSetting upserts one key. The stored value is echoed back exactly
// as persisted.
func (h *adminHandler) SaveSetting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.settingsService.Set(req.Key, req.Value)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	value, err := h.settingsService.Get(req.Key)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": value})
}
