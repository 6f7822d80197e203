package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/logoforge/logoforge/internal/service"
	"github.com/logoforge/logoforge/internal/validation"
	"github.com/stretchr/testify/assert"
)

func TestServiceErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"login required", service.ErrLoginRequired, http.StatusUnauthorized},
		{"password login on oauth account", service.ErrOAuthOnlyAccount, http.StatusUnauthorized},
		{"deleting someone else's comment", service.ErrNotCommentAuthor, http.StatusForbidden},
		{"share required", service.ErrShareRequired, http.StatusForbidden},
		{"attempt not found", service.ErrAttemptNotFound, http.StatusNotFound},
		{"claim before countdown", service.ErrNotReady, http.StatusTooEarly},
		{"re-moderating a settled asset", service.ErrAlreadyModerated, http.StatusConflict},
		{"blank display name", service.ErrDisplayNameRequired, http.StatusUnprocessableEntity},
		{"oversized upload", fmt.Errorf("%w: maximum size is 5 MB", validation.ErrFileTooLarge), http.StatusUnprocessableEntity},
		{"bad upload extension", fmt.Errorf("%w: .exe", validation.ErrFileExtension), http.StatusUnprocessableEntity},
		{"mislabeled upload content", fmt.Errorf("%w (detected: text/html; charset=utf-8)", validation.ErrFileContent), http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := serviceErrorStatus(tt.err)
			assert.True(t, ok)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestServiceErrorStatusUnknownIsUnmapped(t *testing.T) {
	// Unrecognized errors become a logged 500, never an echoed message
	_, ok := serviceErrorStatus(errors.New("pq: connection reset"))
	assert.False(t, ok)
}
