package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/storage"
	"github.com/logoforge/logoforge/internal/validation"
)

var (
	ErrPreviewRequired = errors.New("a preview image is required")
	ErrTitleRequired   = errors.New("title is required")
	ErrInvalidLink     = errors.New("external link must be a valid http(s) URL")
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// UploadInput is one submission from the upload form. Exactly one
// preview image is required; the source files are optional and the XML
// slot can alternatively carry an external link.
type UploadInput struct {
	Title       string
	Category    string
	Description string
	AIPrompt    string

	Preview *multipart.FileHeader
	Project *multipart.FileHeader
	Vector  *multipart.FileHeader

	// VectorLink is used when the vector file is hosted elsewhere.
	VectorLink string
}

// UploadService turns form submissions into stored files plus an asset
// row. Self-serve uploads land in the moderation queue; admin uploads
// go straight into the catalog.
type UploadService struct {
	assetRepo repository.AssetRepository
	storage   storage.Storage
}

func NewUploadService(assetRepo repository.AssetRepository, storage storage.Storage) *UploadService {
	return &UploadService{assetRepo: assetRepo, storage: storage}
}

func (s *UploadService) Submit(ctx context.Context, uploader *model.Profile, input UploadInput) (*model.Asset, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Preview == nil {
		return nil, ErrPreviewRequired
	}

	err := validation.ValidateFile(input.Preview, validation.ImageConstraints)
	if err != nil {
		return nil, err
	}
	if input.Project != nil {
		err = validation.ValidateFile(input.Project, validation.ProjectConstraints)
		if err != nil {
			return nil, err
		}
	}
	if input.Vector != nil {
		err = validation.ValidateFile(input.Vector, validation.VectorConstraints)
		if err != nil {
			return nil, err
		}
	}

	input.VectorLink = strings.TrimSpace(input.VectorLink)
	if input.VectorLink != "" {
		err = validateExternalLink(input.VectorLink)
		if err != nil {
			return nil, err
		}
	}

	urlPNG, err := s.store(ctx, uploader.UserID, input.Preview)
	if err != nil {
		return nil, err
	}

	var urlPLP, urlXML *string
	if input.Project != nil {
		stored, err := s.store(ctx, uploader.UserID, input.Project)
		if err != nil {
			return nil, err
		}
		urlPLP = &stored
	}
	switch {
	case input.Vector != nil:
		stored, err := s.store(ctx, uploader.UserID, input.Vector)
		if err != nil {
			return nil, err
		}
		urlXML = &stored
	case input.VectorLink != "":
		urlXML = &input.VectorLink
	}

	status := model.AssetPending
	if uploader.IsAdmin() {
		status = model.AssetApproved
	}

	asset := &model.Asset{
		ID:          uuid.New().String(),
		UploaderID:  &uploader.UserID,
		Title:       input.Title,
		Category:    strings.TrimSpace(input.Category),
		Description: strings.TrimSpace(input.Description),
		AIPrompt:    strings.TrimSpace(input.AIPrompt),
		URLPNG:      urlPNG,
		URLPLP:      urlPLP,
		URLXML:      urlXML,
		Status:      status,
		CreatedAt:   time.Now(),
	}

	err = s.assetRepo.Create(asset)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset: %w", err)
	}

	slog.Info("asset submitted", "asset_id", asset.ID, "uploader_id", uploader.UserID, "status", status)
	return asset, nil
}

// store uploads one file under the uploader's prefix and returns its
// public URL.
func (s *UploadService) store(ctx context.Context, userID string, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	path := fmt.Sprintf("uploads/%s/%d_%s", userID, time.Now().UnixNano(), cleanFilename(header.Filename))
	err = s.storage.Save(ctx, path, file)
	if err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return s.storage.PublicURL(path), nil
}

func cleanFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." {
		name = "file"
	}
	return name
}

func validateExternalLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidLink
	}
	return nil
}
