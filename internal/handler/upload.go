package handler

import (
	"net/http"

	"github.com/logoforge/logoforge/internal/ctxkeys"
	"github.com/logoforge/logoforge/internal/service"
)

// maxUploadMemory bounds the multipart parse buffer; larger files spill
// to temp storage.
const maxUploadMemory = 32 << 20

type uploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *uploadHandler {
	return &uploadHandler{uploadService: uploadService}
}

// Submit accepts the multipart upload form: metadata fields plus the
// preview image and optional source files.
func (h *uploadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(maxUploadMemory)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid upload form")
		return
	}

	input := service.UploadInput{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		AIPrompt:    r.FormValue("ai_prompt"),
		VectorLink:  r.FormValue("vector_link"),
	}

	if files := r.MultipartForm.File["preview"]; len(files) > 0 {
		input.Preview = files[0]
	}
	if files := r.MultipartForm.File["project"]; len(files) > 0 {
		input.Project = files[0]
	}
	if files := r.MultipartForm.File["vector"]; len(files) > 0 {
		input.Vector = files[0]
	}

	profile := ctxkeys.Profile(r.Context())
	asset, err := h.uploadService.Submit(r.Context(), profile, input)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"asset": toAssetResponse(asset, true)})
}
