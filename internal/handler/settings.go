package handler

import (
	"log/slog"
	"net/http"

	"github.com/logoforge/logoforge/internal/markdown"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/service"
)

type settingsHandler struct {
	settingsService *service.SettingsService
	renderer        *markdown.Renderer
}

func NewSettingsHandler(settingsService *service.SettingsService, renderer *markdown.Renderer) *settingsHandler {
	return &settingsHandler{
		settingsService: settingsService,
		renderer:        renderer,
	}
}

type siteConfigResponse struct {
	SiteName        string `json:"site_name"`
	MaintenanceMode bool   `json:"maintenance_mode"`

	AnnouncementEnabled bool   `json:"announcement_enabled"`
	AnnouncementHTML    string `json:"announcement_html,omitempty"`
	PopupEnabled        bool   `json:"popup_enabled"`
	TelegramLink        string `json:"telegram_link"`
	YoutubeLink         string `json:"youtube_link"`
	CommunityRulesHTML  string `json:"community_rules_html,omitempty"`
	AdSnippet           string `json:"ad_snippet,omitempty"`

	MonetizationMode string `json:"monetization_mode"`
	DownloadWait     int    `json:"download_wait_seconds"`

	FooterAbout     string             `json:"footer_about"`
	FooterCopyright string             `json:"footer_copyright"`
	FooterLinks     []model.FooterLink `json:"footer_links"`
}

// Public serves the site configuration clients render from. Markdown
// fields go out as HTML so clients never parse markdown themselves.
// The shortlink URL is withheld; it only appears in gate responses.
func (h *settingsHandler) Public(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settingsService.Snapshot()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	resp := siteConfigResponse{
		SiteName:            cfg.SiteName,
		MaintenanceMode:     cfg.MaintenanceMode,
		AnnouncementEnabled: cfg.AnnouncementEnabled,
		PopupEnabled:        cfg.PopupEnabled,
		TelegramLink:        cfg.TelegramLink,
		YoutubeLink:         cfg.YoutubeLink,
		AdSnippet:           cfg.AdSnippet,
		MonetizationMode:    cfg.MonetizationMode,
		DownloadWait:        cfg.DownloadWait,
		FooterAbout:         cfg.FooterAbout,
		FooterCopyright:     cfg.FooterCopyright,
		FooterLinks:         cfg.FooterLinks[:],
	}

	if cfg.AnnouncementEnabled && cfg.AnnouncementText != "" {
		html, err := h.renderer.Render(cfg.AnnouncementText)
		if err != nil {
			slog.Warn("failed to render announcement", "error", err)
		} else {
			resp.AnnouncementHTML = html
		}
	}
	if cfg.CommunityRules != "" {
		html, err := h.renderer.Render(cfg.CommunityRules)
		if err != nil {
			slog.Warn("failed to render community rules", "error", err)
		} else {
			resp.CommunityRulesHTML = html
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"config": resp})
}
