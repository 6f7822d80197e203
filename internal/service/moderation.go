package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
	"github.com/logoforge/logoforge/internal/storage"
)

var (
	ErrAlreadyModerated = errors.New("asset has already been moderated")
)

// ModerationService drives the two admin state machines: assets move
// pending -> approved | rejected (terminal), users move active <-> blocked
// (reversible).
type ModerationService struct {
	assetRepo   repository.AssetRepository
	profileRepo repository.ProfileRepository
	abuseRepo   repository.AbuseLogRepository
	storage     storage.Storage
}

func NewModerationService(
	assetRepo repository.AssetRepository,
	profileRepo repository.ProfileRepository,
	abuseRepo repository.AbuseLogRepository,
	storage storage.Storage,
) *ModerationService {
	return &ModerationService{
		assetRepo:   assetRepo,
		profileRepo: profileRepo,
		abuseRepo:   abuseRepo,
		storage:     storage,
	}
}

func (s *ModerationService) Pending() ([]*model.Asset, error) {
	return s.assetRepo.Pending()
}

// Approve moves a pending asset into the catalog. Approving an already
// approved asset is a no-op: status stays put and no side effect repeats.
func (s *ModerationService) Approve(id string) (*model.Asset, error) {
	asset, err := s.assetRepo.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	switch asset.Status {
	case model.AssetApproved:
		return asset, nil
	case model.AssetRejected:
		return nil, ErrAlreadyModerated
	}

	err = s.assetRepo.UpdateStatus(id, model.AssetApproved, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to approve asset: %w", err)
	}

	asset.Status = model.AssetApproved
	slog.Info("asset approved", "asset_id", id)

	return asset, nil
}

// Reject records the free-text reason. The reason is kept for the audit
// trail only; public asset responses never carry it.
func (s *ModerationService) Reject(id, reason string) (*model.Asset, error) {
	asset, err := s.assetRepo.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	if asset.Status != model.AssetPending {
		return nil, ErrAlreadyModerated
	}

	err = s.assetRepo.UpdateStatus(id, model.AssetRejected, &reason)
	if err != nil {
		return nil, fmt.Errorf("failed to reject asset: %w", err)
	}

	asset.Status = model.AssetRejected
	asset.RejectionReason = &reason
	slog.Info("asset rejected", "asset_id", id)

	return asset, nil
}

// Delete removes an asset permanently, in any status. Stored objects are
// cleaned up best-effort after the row is gone.
func (s *ModerationService) Delete(ctx context.Context, id string) error {
	asset, err := s.assetRepo.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return ErrAssetNotFound
		}
		return err
	}

	err = s.assetRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	for _, url := range []string{asset.URLPNG, deref(asset.URLPLP), deref(asset.URLXML)} {
		key, ok := s.storage.Key(url)
		if !ok {
			continue // external link, nothing stored
		}
		delErr := s.storage.Delete(ctx, key)
		if delErr != nil {
			slog.Warn("failed to delete stored object", "error", delErr, "asset_id", id, "key", key)
		}
	}

	slog.Info("asset deleted", "asset_id", id)
	return nil
}

// BlockUser flips a user to blocked. Reversible via UnblockUser.
func (s *ModerationService) BlockUser(userID string) error {
	return s.setUserStatus(userID, model.StatusBlocked)
}

func (s *ModerationService) UnblockUser(userID string) error {
	return s.setUserStatus(userID, model.StatusActive)
}

func (s *ModerationService) setUserStatus(userID, status string) error {
	_, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	err = s.profileRepo.UpdateStatus(userID, status)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}

	slog.Info("user status changed", "user_id", userID, "status", status)
	return nil
}

func (s *ModerationService) Users() ([]*model.Profile, error) {
	return s.profileRepo.List()
}

func (s *ModerationService) AbuseLogs(limit int) ([]*model.AbuseLog, error) {
	if limit <= 0 {
		limit = 100
	}
	return s.abuseRepo.List(limit)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
