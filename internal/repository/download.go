package repository

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/logoforge/logoforge/internal/model"
)

type DownloadRepository interface {
	Create(download *model.Download) error
	ByUser(userID string, limit int) ([]*model.Download, error)
}

type downloadRepository struct {
	db *sqlx.DB
}

func NewDownloadRepository(db *sqlx.DB) *downloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) Create(download *model.Download) error {
	query := `INSERT INTO downloads (id, user_id, asset_id, kind, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, download.ID, download.UserID, download.AssetID, download.Kind, download.CreatedAt)
	return err
}

func (r *downloadRepository) ByUser(userID string, limit int) ([]*model.Download, error) {
	var downloads []*model.Download
	query := `SELECT * FROM downloads WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	err := r.db.Select(&downloads, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return downloads, nil
}

type GrantRepository interface {
	Create(grant *model.DownloadGrant) error
	ActiveByUser(userID string, now time.Time) (*model.DownloadGrant, error)
	DeleteExpired(now time.Time) error
}

type grantRepository struct {
	db *sqlx.DB
}

func NewGrantRepository(db *sqlx.DB) *grantRepository {
	return &grantRepository{db: db}
}

func (r *grantRepository) Create(grant *model.DownloadGrant) error {
	query := `INSERT INTO download_grants (id, user_id, expires_at, created_at)
	          VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, grant.ID, grant.UserID, grant.ExpiresAt, grant.CreatedAt)
	return err
}

// ActiveByUser returns the freshest unexpired grant for the user.
// Expired rows are simply not selected; they are never an error.
func (r *grantRepository) ActiveByUser(userID string, now time.Time) (*model.DownloadGrant, error) {
	grant := &model.DownloadGrant{}
	query := `SELECT * FROM download_grants WHERE user_id = $1 AND expires_at > $2
	          ORDER BY expires_at DESC LIMIT 1`

	err := r.db.Get(grant, query, userID, now)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return grant, nil
}

func (r *grantRepository) DeleteExpired(now time.Time) error {
	query := `DELETE FROM download_grants WHERE expires_at <= $1`
	_, err := r.db.Exec(query, now)
	return err
}
