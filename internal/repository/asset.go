package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
)

type AssetRepository interface {
	Create(asset *model.Asset) error
	ByID(id string) (*model.Asset, error)
	Approved(search, category string) ([]*model.Asset, error)
	ByUploader(uploaderID, status string) ([]*model.Asset, error)
	Pending() ([]*model.Asset, error)
	UpdateStatus(id, status string, reason *string) error
	Delete(id string) error
	IncrementViews(id string) error
	IncrementDownloads(id string) error
	AdjustLikes(id string, delta int64) error
}

type assetRepository struct {
	db *sqlx.DB
}

func NewAssetRepository(db *sqlx.DB) *assetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(asset *model.Asset) error {
	query := `INSERT INTO assets (id, uploader_id, title, category, description, ai_prompt, url_png, url_plp, url_xml, status, rejection_reason, views, downloads, likes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.db.Exec(query,
		asset.ID,
		asset.UploaderID,
		asset.Title,
		asset.Category,
		asset.Description,
		asset.AIPrompt,
		asset.URLPNG,
		asset.URLPLP,
		asset.URLXML,
		asset.Status,
		asset.RejectionReason,
		asset.Views,
		asset.Downloads,
		asset.Likes,
		asset.CreatedAt,
	)

	return err
}

func (r *assetRepository) ByID(id string) (*model.Asset, error) {
	asset := &model.Asset{}
	query := `SELECT * FROM assets WHERE id = $1`

	err := r.db.Get(asset, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAssetNotFound
	}

	return asset, err
}

// Approved returns the public catalog: approved assets only, newest first.
// Search matches the title case-insensitively; category is an exact match.
func (r *assetRepository) Approved(search, category string) ([]*model.Asset, error) {
	var assets []*model.Asset

	query := `SELECT * FROM assets WHERE status = 'approved'`
	args := []any{}

	if search != "" {
		args = append(args, "%"+search+"%")
		query += ` AND LOWER(title) LIKE LOWER($1)`
	}
	if category != "" {
		args = append(args, category)
		if len(args) == 1 {
			query += ` AND category = $1`
		} else {
			query += ` AND category = $2`
		}
	}
	query += ` ORDER BY created_at DESC`

	err := r.db.Select(&assets, query, args...)
	if err != nil {
		return nil, err
	}

	return assets, nil
}

func (r *assetRepository) ByUploader(uploaderID, status string) ([]*model.Asset, error) {
	var assets []*model.Asset
	query := `SELECT * FROM assets WHERE uploader_id = $1 AND status = $2 ORDER BY created_at DESC`

	err := r.db.Select(&assets, query, uploaderID, status)
	if err != nil {
		return nil, err
	}

	return assets, nil
}

func (r *assetRepository) Pending() ([]*model.Asset, error) {
	var assets []*model.Asset
	query := `SELECT * FROM assets WHERE status = 'pending' ORDER BY created_at ASC`

	err := r.db.Select(&assets, query)
	if err != nil {
		return nil, err
	}

	return assets, nil
}

func (r *assetRepository) UpdateStatus(id, status string, reason *string) error {
	query := `UPDATE assets SET status = $1, rejection_reason = $2 WHERE id = $3`
	_, err := r.db.Exec(query, status, reason, id)
	return err
}

func (r *assetRepository) Delete(id string) error {
	query := `DELETE FROM assets WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *assetRepository) IncrementViews(id string) error {
	query := `UPDATE assets SET views = views + 1 WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *assetRepository) IncrementDownloads(id string) error {
	query := `UPDATE assets SET downloads = downloads + 1 WHERE id = $1`
	_, err := r.db.Exec(query, id)
	return err
}

func (r *assetRepository) AdjustLikes(id string, delta int64) error {
	query := `UPDATE assets SET likes = likes + $1 WHERE id = $2`
	_, err := r.db.Exec(query, delta, id)
	return err
}
