package service

import (
	"errors"
	"log/slog"

	"github.com/logoforge/logoforge/internal/model"
	"github.com/logoforge/logoforge/internal/repository"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
)

// CatalogService is the read side of the marketplace. Every public
// listing is filtered to approved assets; pending and rejected rows are
// never visible outside the admin surface.
type CatalogService struct {
	assetRepo repository.AssetRepository
}

func NewCatalogService(assetRepo repository.AssetRepository) *CatalogService {
	return &CatalogService{assetRepo: assetRepo}
}

func (s *CatalogService) Approved(search, category string) ([]*model.Asset, error) {
	return s.assetRepo.Approved(search, category)
}

// Prompts lists approved AI-Art assets for the prompt library page.
func (s *CatalogService) Prompts() ([]*model.Asset, error) {
	return s.assetRepo.Approved("", "AI-Art")
}

// View fetches one asset for public display and bumps its view counter.
// The counter write is fire-and-forget; a failed increment never hides
// the asset.
func (s *CatalogService) View(id string) (*model.Asset, error) {
	asset, err := s.assetRepo.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrAssetNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	if asset.Status != model.AssetApproved {
		return nil, ErrAssetNotFound
	}

	go func() {
		err := s.assetRepo.IncrementViews(asset.ID)
		if err != nil {
			slog.Warn("failed to increment views", "error", err, "asset_id", asset.ID)
		}
	}()

	return asset, nil
}
