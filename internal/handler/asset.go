package handler

import (
	"net/http"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/service"
)

type assetHandler struct {
	catalogService *service.CatalogService
	profileService *service.ProfileService
}

func NewAssetHandler(catalogService *service.CatalogService, profileService *service.ProfileService) *assetHandler {
	return &assetHandler{
		catalogService: catalogService,
		profileService: profileService,
	}
}

// List serves the public catalog with optional ?q= and ?category= filters.
func (h *assetHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	assets, err := h.catalogService.Approved(search, category)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"assets": toAssetResponses(assets, false)})
}

// Prompts serves the AI prompt library.
func (h *assetHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	assets, err := h.catalogService.Prompts()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"assets": toAssetResponses(assets, false)})
}

func (h *assetHandler) Show(w http.ResponseWriter, r *http.Request) {
	asset, err := h.catalogService.View(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"asset": toAssetResponse(asset, false)})
}

func (h *assetHandler) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.profileService.Comments(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	respondJSON(w, http.StatusOK, map[string]any{"comments": out})
}

func (h *assetHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	user := ctxkeys.User(r.Context())
	comment, err := h.profileService.AddComment(user.ID, r.PathValue("id"), req.Content)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"comment": toCommentResponse(comment)})
}

func (h *assetHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	profile := ctxkeys.Profile(r.Context())
	err := h.profileService.DeleteComment(profile, r.PathValue("commentId"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "comment deleted"})
}

func (h *assetHandler) Like(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.profileService.Like(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "liked"})
}

func (h *assetHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	err := h.profileService.Unlike(user.ID, r.PathValue("id"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "unliked"})
}
