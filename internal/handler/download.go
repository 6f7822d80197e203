package handler

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/service"
)

type downloadHandler struct {
	downloadService *service.DownloadService
	settingsService *service.SettingsService
}

func NewDownloadHandler(downloadService *service.DownloadService, settingsService *service.SettingsService) *downloadHandler {
	return &downloadHandler{
		downloadService: downloadService,
		settingsService: settingsService,
	}
}

type attemptResponse struct {
	ID          string `json:"id"`
	AssetID     string `json:"asset_id"`
	Kind        string `json:"kind"`
	State       string `json:"state"`
	ReadyAt     string `json:"ready_at"`
	WaitSeconds int    `json:"wait_seconds"`
}

func toAttemptResponse(a *service.Attempt, now time.Time) attemptResponse {
	return attemptResponse{
		ID:          a.ID,
		AssetID:     a.AssetID,
		Kind:        a.Kind,
		State:       a.State,
		ReadyAt:     a.ReadyAt.UTC().Format(time.RFC3339),
		WaitSeconds: remainingSeconds(a.ReadyAt, now),
	}
}

func remainingSeconds(readyAt, now time.Time) int {
	if !now.Before(readyAt) {
		return 0
	}
	return int(math.Ceil(readyAt.Sub(now).Seconds()))
}

// Begin opens a download attempt for one asset file. Entitlement
// failures carry a code so the client knows which unlock flow to show.
func (h *downloadHandler) Begin(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	attempt, err := h.downloadService.Begin(user.ID, r.PathValue("id"), r.PathValue("kind"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnlockRequired):
			cfg, _ := h.settingsService.Snapshot()
			respondJSON(w, http.StatusForbidden, map[string]string{
				"error":      err.Error(),
				"code":       "unlock_required",
				"unlock_url": cfg.ShortlinkURL,
			})
		case errors.Is(err, service.ErrShareRequired):
			respondJSON(w, http.StatusForbidden, map[string]string{
				"error": err.Error(),
				"code":  "share_required",
			})
		default:
			respondServiceError(w, r, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"attempt": toAttemptResponse(attempt, h.downloadService.Now()),
	})
}

// Status reports a parked attempt, mainly its countdown.
func (h *downloadHandler) Status(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	attempt, err := h.downloadService.Attempt(user.ID, r.PathValue("attemptId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"attempt": toAttemptResponse(attempt, h.downloadService.Now()),
	})
}

// Claim releases the file URL once the countdown has elapsed. Early
// claims answer 425 with the seconds left.
func (h *downloadHandler) Claim(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	url, remaining, err := h.downloadService.Claim(r.Context(), user.ID, r.PathValue("attemptId"))
	if err != nil {
		if errors.Is(err, service.ErrNotReady) {
			respondJSON(w, http.StatusTooEarly, map[string]any{
				"error":        err.Error(),
				"wait_seconds": int(math.Ceil(remaining.Seconds())),
			})
			return
		}
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *downloadHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	h.downloadService.Cancel(user.ID, r.PathValue("attemptId"))
	respondJSON(w, http.StatusOK, map[string]string{"message": "download cancelled"})
}

// CompleteShare marks the share step done for this session.
func (h *downloadHandler) CompleteShare(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.downloadService.CompleteShare(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "share recorded"})
}

// CompleteUnlock records a shortlink completion as a grant.
func (h *downloadHandler) CompleteUnlock(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	grant, err := h.downloadService.IssueGrant(user.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"expires_at": grant.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *downloadHandler) History(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	downloads, err := h.downloadService.History(user.ID, 50)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	type downloadResponse struct {
		ID        string    `json:"id"`
		AssetID   string    `json:"asset_id"`
		Kind      string    `json:"kind"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]downloadResponse, 0, len(downloads))
	for _, d := range downloads {
		out = append(out, downloadResponse{ID: d.ID, AssetID: d.AssetID, Kind: d.Kind, CreatedAt: d.CreatedAt})
	}
	respondJSON(w, http.StatusOK, map[string]any{"downloads": out})
}
