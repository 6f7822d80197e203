package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/logoforge/logoforge/internal/service"
	"github.com/logoforge/logoforge/internal/validation"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	err := json.NewEncoder(w).Encode(payload)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps known service errors onto HTTP statuses.
// Anything unrecognized is a 500 with the detail logged, never echoed.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, ok := serviceErrorStatus(err)
	if !ok {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	respondError(w, status, err.Error())
}

func serviceErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrLoginRequired),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailNotVerified),
		errors.Is(err, service.ErrOAuthOnlyAccount),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, true

	case errors.Is(err, service.ErrUserBlocked),
		errors.Is(err, service.ErrUnlockRequired),
		errors.Is(err, service.ErrShareRequired),
		errors.Is(err, service.ErrNotCommentAuthor):
		return http.StatusForbidden, true

	case errors.Is(err, service.ErrAssetNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrAttemptNotFound),
		errors.Is(err, service.ErrFileNotAvailable):
		return http.StatusNotFound, true

	case errors.Is(err, service.ErrNotReady):
		return http.StatusTooEarly, true

	case errors.Is(err, service.ErrAlreadyModerated):
		return http.StatusConflict, true

	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrMessageEmpty),
		errors.Is(err, service.ErrLinkNotAllowed),
		errors.Is(err, service.ErrCommentEmpty),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrPreviewRequired),
		errors.Is(err, service.ErrInvalidLink),
		errors.Is(err, service.ErrInvalidDownloadKind),
		errors.Is(err, service.ErrSettingKeyRequired),
		errors.Is(err, service.ErrSettingInvalid),
		errors.Is(err, service.ErrDisplayNameRequired),
		errors.Is(err, validation.ErrFileTooLarge),
		errors.Is(err, validation.ErrFileExtension),
		errors.Is(err, validation.ErrFileContent),
		errors.Is(err, validation.ErrPasswordTooShort),
		errors.Is(err, validation.ErrPasswordTooLong),
		errors.Is(err, validation.ErrPasswordTooCommon):
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

// decodeJSON reads a JSON request body into dst with a sane size cap.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
